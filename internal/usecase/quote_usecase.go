package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quote_rollup/internal/domain/entities"
	"quote_rollup/internal/pkg/logger"
	"quote_rollup/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrQuoteNotFound         = errors.New("quote not found")
	ErrInvalidQuoteID        = errors.New("invalid quote id")
	ErrInvalidQuoteStatus    = errors.New("invalid quote status")
	ErrInvalidQuoteAmount    = errors.New("invalid quote amount")
	ErrQuoteOppNotFound      = errors.New("opportunity referenced by quote not found")
	ErrQuoteStatusNotFound   = errors.New("quote has no status to restore")
	ErrQuoteCurrencyMismatch = errors.New("quote currency differs from opportunity currency")
)

// CreateQuoteInput carries the attributes of a new quote. Status defaults to
// draft; quotes cannot be created directly in a closing status because the
// rollup only follows updates.
type CreateQuoteInput struct {
	Name          string
	OpportunityID string
	Amount        *entities.Money
	Status        entities.QuoteStatus
	State         *entities.QuoteState
}

// QuoteChange is the outcome of an update that went through the
// post-operation pipeline.
type QuoteChange struct {
	Quote  entities.Quote
	Rollup RecomputeResult
}

// IQuoteUseCase exposes quote operations. Every update runs the Won quote
// rollup synchronously after the write:
//   - status changes => statuscode in the change payload (rollup recomputes)
//   - amount changes => totalamount in the change payload (rollup guard skips)
//
// A failed rollup aborts the update: the previous value is restored and the
// failure is returned.

type IQuoteUseCase interface {
	CreateQuote(ctx context.Context, in CreateQuoteInput) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	ChangeStatus(ctx context.Context, id string, status entities.QuoteStatus) (QuoteChange, error)
	Win(ctx context.Context, id string) (QuoteChange, error)
	Lose(ctx context.Context, id string) (QuoteChange, error)
	UpdateAmount(ctx context.Context, id string, amount *entities.Money) (QuoteChange, error)
}

type QuoteUseCase struct {
	repo          interfaces.IQuoteRepository
	opportunities interfaces.IOpportunityRepository
	rollup        IRecomputeUseCase
	log           *logger.Logger
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(repo interfaces.IQuoteRepository, opportunities interfaces.IOpportunityRepository, rollup IRecomputeUseCase, log *logger.Logger) *QuoteUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &QuoteUseCase{
		repo:          repo,
		opportunities: opportunities,
		rollup:        rollup,
		log:           log.With("component", "quote_pipeline"),
	}
}

func (u *QuoteUseCase) CreateQuote(ctx context.Context, in CreateQuoteInput) (entities.Quote, error) {
	status := in.Status
	if status == 0 {
		status = entities.QuoteStatusDraft
	}
	switch status {
	case entities.QuoteStatusDraft, entities.QuoteStatusActive, entities.QuoteStatusOpen:
	default:
		return entities.Quote{}, ErrInvalidQuoteStatus
	}
	if in.Amount != nil && in.Amount.Value.IsNegative() {
		return entities.Quote{}, ErrInvalidQuoteAmount
	}

	amount := in.Amount
	var oppID *string
	if v := strings.TrimSpace(in.OpportunityID); v != "" {
		opp, err := u.opportunities.GetByID(ctx, v)
		if err != nil {
			return entities.Quote{}, err
		}
		if opp.ID == "" {
			return entities.Quote{}, ErrQuoteOppNotFound
		}
		if amount, err = inOpportunityCurrency(opp, amount); err != nil {
			return entities.Quote{}, err
		}
		oppID = &v
	}

	state := entities.QuoteStateActive
	if in.State != nil {
		state = *in.State
	}

	now := time.Now().UTC()
	q := entities.Quote{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(in.Name),
		OpportunityID: oppID,
		StatusCode:    &status,
		StateCode:     &state,
		Amount:        amount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return u.repo.Create(ctx, q)
}

func (u *QuoteUseCase) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	q, err := u.repo.Retrieve(ctx, id, nil)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

func (u *QuoteUseCase) Win(ctx context.Context, id string) (QuoteChange, error) {
	return u.ChangeStatus(ctx, id, entities.QuoteStatusWon)
}

func (u *QuoteUseCase) Lose(ctx context.Context, id string) (QuoteChange, error) {
	return u.ChangeStatus(ctx, id, entities.QuoteStatusLost)
}

func (u *QuoteUseCase) ChangeStatus(ctx context.Context, id string, status entities.QuoteStatus) (QuoteChange, error) {
	if !status.Valid() {
		return QuoteChange{}, ErrInvalidQuoteStatus
	}
	before, err := u.GetByID(ctx, id)
	if err != nil {
		return QuoteChange{}, err
	}

	updated, err := u.repo.UpdateStatus(ctx, before.ID, status)
	if err != nil {
		return QuoteChange{}, err
	}
	if updated.ID == "" {
		return QuoteChange{}, ErrQuoteNotFound
	}

	return u.runPipeline(ctx, updated, entities.QuoteAttrStatusCode, func(restoreCtx context.Context) error {
		if before.StatusCode == nil {
			return ErrQuoteStatusNotFound
		}
		_, err := u.repo.UpdateStatus(restoreCtx, before.ID, *before.StatusCode)
		return err
	})
}

func (u *QuoteUseCase) UpdateAmount(ctx context.Context, id string, amount *entities.Money) (QuoteChange, error) {
	if amount != nil && amount.Value.IsNegative() {
		return QuoteChange{}, ErrInvalidQuoteAmount
	}
	before, err := u.GetByID(ctx, id)
	if err != nil {
		return QuoteChange{}, err
	}
	if amount != nil && before.HasParent() {
		opp, err := u.opportunities.GetByID(ctx, strings.TrimSpace(*before.OpportunityID))
		if err != nil {
			return QuoteChange{}, err
		}
		if opp.ID == "" {
			return QuoteChange{}, ErrQuoteOppNotFound
		}
		if amount, err = inOpportunityCurrency(opp, amount); err != nil {
			return QuoteChange{}, err
		}
	}

	updated, err := u.repo.UpdateAmount(ctx, before.ID, amount)
	if err != nil {
		return QuoteChange{}, err
	}
	if updated.ID == "" {
		return QuoteChange{}, ErrQuoteNotFound
	}

	return u.runPipeline(ctx, updated, entities.QuoteAttrTotalAmount, func(restoreCtx context.Context) error {
		_, err := u.repo.UpdateAmount(restoreCtx, before.ID, before.Amount)
		return err
	})
}

// runPipeline fires the post-operation rollup for an applied update and
// restores the previous value when the rollup fails.
func (u *QuoteUseCase) runPipeline(ctx context.Context, updated entities.Quote, changedAttr string, restore func(context.Context) error) (QuoteChange, error) {
	event := entities.NewQuoteUpdateEvent(updated.ID, changedAttr)
	event.CorrelationID = uuid.NewString()

	result, err := u.rollup.Handle(ctx, event)
	if err != nil {
		// The caller may already be cancelled; the restore must still run.
		if rErr := restore(context.WithoutCancel(ctx)); rErr != nil {
			u.log.Error("restore after failed rollup failed",
				"quote_id", updated.ID, "changed", changedAttr, "correlation_id", event.CorrelationID, "error", rErr)
		} else {
			u.log.Warn("quote update rolled back after failed rollup",
				"quote_id", updated.ID, "changed", changedAttr, "correlation_id", event.CorrelationID)
		}
		return QuoteChange{}, err
	}

	u.log.Debug("quote update committed",
		"quote_id", updated.ID, "changed", changedAttr, "rollup", string(result.Outcome), "correlation_id", event.CorrelationID)
	return QuoteChange{Quote: updated, Rollup: result}, nil
}

// inOpportunityCurrency binds a quote amount to the currency of its
// opportunity. An amount without a currency takes the opportunity's; any
// other currency is rejected so Won siblings can always be summed.
func inOpportunityCurrency(opp entities.Opportunity, amount *entities.Money) (*entities.Money, error) {
	want := opp.TotalWonAmount.Currency
	if amount == nil || want == "" {
		return amount, nil
	}
	got := strings.ToUpper(strings.TrimSpace(amount.Currency))
	if got != "" && got != want {
		return nil, fmt.Errorf("%w: %s on opportunity %s (%s)", ErrQuoteCurrencyMismatch, got, opp.ID, want)
	}
	m := entities.NewMoney(amount.Value, want)
	return &m, nil
}
