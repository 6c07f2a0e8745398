package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"quote_rollup/internal/domain/entities"
	"quote_rollup/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrOpportunityNotFound    = errors.New("opportunity not found")
	ErrInvalidOpportunityID   = errors.New("invalid opportunity id")
	ErrInvalidOpportunityName = errors.New("invalid opportunity name")
)

// IOpportunityUseCase exposes opportunity reads and creation. The Won quote
// total is never written from here; only the rollup sets it.

type IOpportunityUseCase interface {
	Create(ctx context.Context, name, currency string) (entities.Opportunity, error)
	GetByID(ctx context.Context, id string) (entities.Opportunity, error)
}

type OpportunityUseCase struct {
	repo            interfaces.IOpportunityRepository
	defaultCurrency string
}

var _ IOpportunityUseCase = (*OpportunityUseCase)(nil)

// NewOpportunityUseCase builds the use case. defaultCurrency is used for
// opportunities created without one.
func NewOpportunityUseCase(repo interfaces.IOpportunityRepository, defaultCurrency string) *OpportunityUseCase {
	return &OpportunityUseCase{
		repo:            repo,
		defaultCurrency: strings.ToUpper(strings.TrimSpace(defaultCurrency)),
	}
}

func (u *OpportunityUseCase) Create(ctx context.Context, name, currency string) (entities.Opportunity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entities.Opportunity{}, ErrInvalidOpportunityName
	}

	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = u.defaultCurrency
	}

	now := time.Now().UTC()
	o := entities.Opportunity{
		ID:             uuid.NewString(),
		Name:           name,
		TotalWonAmount: entities.ZeroMoney(currency),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return u.repo.Create(ctx, o)
}

func (u *OpportunityUseCase) GetByID(ctx context.Context, id string) (entities.Opportunity, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Opportunity{}, ErrInvalidOpportunityID
	}

	o, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Opportunity{}, err
	}
	if o.ID == "" {
		return entities.Opportunity{}, ErrOpportunityNotFound
	}
	return o, nil
}
