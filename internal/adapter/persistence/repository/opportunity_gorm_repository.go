package repository

import (
	"context"
	"errors"
	"time"

	"quote_rollup/internal/domain/entities"
	"quote_rollup/internal/usecase/interfaces"

	"gorm.io/gorm"
)

// OpportunityGormRepository persists Opportunity entities through gorm.
type OpportunityGormRepository struct {
	db *gorm.DB
}

var _ interfaces.IOpportunityRepository = (*OpportunityGormRepository)(nil)

func NewOpportunityGormRepository(db *gorm.DB) *OpportunityGormRepository {
	return &OpportunityGormRepository{db: db}
}

func (r *OpportunityGormRepository) Create(ctx context.Context, o entities.Opportunity) (entities.Opportunity, error) {
	row := toOpportunityRow(o)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.Opportunity{}, err
	}
	return o, nil
}

func (r *OpportunityGormRepository) GetByID(ctx context.Context, id string) (entities.Opportunity, error) {
	var row opportunityRow
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Opportunity{}, nil
	}
	if err != nil {
		return entities.Opportunity{}, err
	}
	return fromOpportunityRow(row), nil
}

func (r *OpportunityGormRepository) UpdateTotalWonAmount(ctx context.Context, id string, total entities.Money) (entities.Opportunity, error) {
	var out entities.Opportunity
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cols := map[string]interface{}{
			"total_won_amount": total.Value,
			"updated_at":       time.Now().UTC(),
		}
		if total.Currency != "" {
			cols["currency"] = total.Currency
		}
		res := tx.Model(&opportunityRow{}).Where("id = ?", id).Updates(cols)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		var row opportunityRow
		if err := tx.Where("id = ?", id).Take(&row).Error; err != nil {
			return err
		}
		out = fromOpportunityRow(row)
		return nil
	})
	if err != nil {
		return entities.Opportunity{}, err
	}
	return out, nil
}
