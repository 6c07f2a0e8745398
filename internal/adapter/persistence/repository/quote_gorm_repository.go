package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"quote_rollup/internal/domain/entities"
	"quote_rollup/internal/usecase/interfaces"

	"gorm.io/gorm"
)

// QuoteGormRepository persists Quote entities in a SQL database through gorm.
type QuoteGormRepository struct {
	db *gorm.DB
}

var _ interfaces.IQuoteRepository = (*QuoteGormRepository)(nil)

func NewQuoteGormRepository(db *gorm.DB) *QuoteGormRepository {
	return &QuoteGormRepository{db: db}
}

func (r *QuoteGormRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	row := toQuoteRow(q)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteGormRepository) Retrieve(ctx context.Context, id string, columns []string) (entities.Quote, error) {
	tx := r.db.WithContext(ctx)
	if len(columns) > 0 {
		cols, err := selectQuoteColumns(columns)
		if err != nil {
			return entities.Quote{}, err
		}
		tx = tx.Select(cols)
	}

	var row quoteRow
	err := tx.Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Quote{}, nil
	}
	if err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteRow(row), nil
}

// Query runs a QueryExpression against the quotes table. A not-equal
// condition also matches rows where the column is NULL, the same way a
// missing attribute is treated by the DynamoDB store.
func (r *QuoteGormRepository) Query(ctx context.Context, q entities.QueryExpression) ([]entities.Quote, error) {
	if !strings.EqualFold(q.EntityName, entities.EntityQuote) {
		return nil, fmt.Errorf("%w: entity %q", ErrUnsupportedQuery, q.EntityName)
	}

	tx := r.db.WithContext(ctx).Model(&quoteRow{})
	if len(q.Columns) > 0 {
		cols, err := selectQuoteColumns(q.Columns)
		if err != nil {
			return nil, err
		}
		tx = tx.Select(cols)
	}

	for _, c := range q.Conditions {
		cols, ok := quoteColumns[strings.ToLower(c.Attribute)]
		if !ok || len(cols) != 1 {
			return nil, fmt.Errorf("%w: attribute %q", ErrUnsupportedQuery, c.Attribute)
		}
		col := cols[0]
		switch c.Operator {
		case entities.ConditionEqual:
			tx = tx.Where(col+" = ?", c.Value)
		case entities.ConditionNotEqual:
			tx = tx.Where("("+col+" <> ? OR "+col+" IS NULL)", c.Value)
		default:
			return nil, fmt.Errorf("%w: operator %q", ErrUnsupportedQuery, c.Operator)
		}
	}

	var rows []quoteRow
	if err := tx.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	quotes := make([]entities.Quote, 0, len(rows))
	for _, row := range rows {
		quotes = append(quotes, fromQuoteRow(row))
	}
	return quotes, nil
}

func (r *QuoteGormRepository) UpdateStatus(ctx context.Context, id string, status entities.QuoteStatus) (entities.Quote, error) {
	return r.update(ctx, id, map[string]interface{}{
		"status_code": int(status),
	})
}

func (r *QuoteGormRepository) UpdateAmount(ctx context.Context, id string, amount *entities.Money) (entities.Quote, error) {
	values := map[string]interface{}{
		"amount":   nil,
		"currency": "",
	}
	if amount != nil {
		values["amount"] = amount.Value
		values["currency"] = amount.Currency
	}
	return r.update(ctx, id, values)
}

func (r *QuoteGormRepository) update(ctx context.Context, id string, values map[string]interface{}) (entities.Quote, error) {
	values["updated_at"] = time.Now().UTC()

	var out entities.Quote
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&quoteRow{}).Where("id = ?", id).Updates(values)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		var row quoteRow
		if err := tx.Where("id = ?", id).Take(&row).Error; err != nil {
			return err
		}
		out = fromQuoteRow(row)
		return nil
	})
	if err != nil {
		return entities.Quote{}, err
	}
	return out, nil
}

func selectQuoteColumns(columns []string) ([]string, error) {
	set := map[string]struct{}{"id": {}}
	for _, c := range columns {
		cols, ok := quoteColumns[strings.ToLower(c)]
		if !ok {
			return nil, fmt.Errorf("%w: column %q", ErrUnsupportedQuery, c)
		}
		for _, col := range cols {
			set[col] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for col := range set {
		out = append(out, col)
	}
	sort.Strings(out)
	return out, nil
}
