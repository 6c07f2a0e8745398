package repository

import (
	"time"

	"quote_rollup/internal/domain/entities"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type quoteRow struct {
	ID            string              `gorm:"primaryKey;size:64"`
	Name          string              `gorm:"size:300"`
	OpportunityID *string             `gorm:"size:64;index"`
	StatusCode    *int                `gorm:"index"`
	StateCode     *int
	Amount        decimal.NullDecimal `gorm:"type:numeric(19,4)"`
	Currency      string              `gorm:"size:3"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (quoteRow) TableName() string { return "quotes" }

type opportunityRow struct {
	ID             string          `gorm:"primaryKey;size:64"`
	Name           string          `gorm:"size:300;not null"`
	TotalWonAmount decimal.Decimal `gorm:"type:numeric(19,4);not null;default:0"`
	Currency       string          `gorm:"size:3"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (opportunityRow) TableName() string { return "opportunities" }

// MigrateGorm creates or updates the quotes and opportunities tables.
func MigrateGorm(db *gorm.DB) error {
	return db.AutoMigrate(&opportunityRow{}, &quoteRow{})
}

// Logical quote attributes and their SQL columns.
var quoteColumns = map[string][]string{
	entities.QuoteAttrID:            {"id"},
	entities.QuoteAttrName:          {"name"},
	entities.QuoteAttrOpportunityID: {"opportunity_id"},
	entities.QuoteAttrStatusCode:    {"status_code"},
	entities.QuoteAttrStateCode:     {"state_code"},
	entities.QuoteAttrTotalAmount:   {"amount", "currency"},
}

func toQuoteRow(q entities.Quote) quoteRow {
	row := quoteRow{
		ID:            q.ID,
		Name:          q.Name,
		OpportunityID: q.OpportunityID,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
	if q.StatusCode != nil {
		v := int(*q.StatusCode)
		row.StatusCode = &v
	}
	if q.StateCode != nil {
		v := int(*q.StateCode)
		row.StateCode = &v
	}
	if q.Amount != nil {
		row.Amount = decimal.NewNullDecimal(q.Amount.Value)
		row.Currency = q.Amount.Currency
	}
	return row
}

func fromQuoteRow(row quoteRow) entities.Quote {
	q := entities.Quote{
		ID:            row.ID,
		Name:          row.Name,
		OpportunityID: row.OpportunityID,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
	if row.StatusCode != nil {
		v := entities.QuoteStatus(*row.StatusCode)
		q.StatusCode = &v
	}
	if row.StateCode != nil {
		v := entities.QuoteState(*row.StateCode)
		q.StateCode = &v
	}
	if row.Amount.Valid {
		m := entities.NewMoney(row.Amount.Decimal, row.Currency)
		q.Amount = &m
	}
	return q
}

func toOpportunityRow(o entities.Opportunity) opportunityRow {
	return opportunityRow{
		ID:             o.ID,
		Name:           o.Name,
		TotalWonAmount: o.TotalWonAmount.Value,
		Currency:       o.TotalWonAmount.Currency,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func fromOpportunityRow(row opportunityRow) entities.Opportunity {
	return entities.Opportunity{
		ID:             row.ID,
		Name:           row.Name,
		TotalWonAmount: entities.NewMoney(row.TotalWonAmount, row.Currency),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
