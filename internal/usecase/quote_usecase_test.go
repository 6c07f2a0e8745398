package usecase

import (
	"context"
	"errors"
	"testing"

	"quote_rollup/internal/domain/entities"
	"quote_rollup/internal/pkg/logger"
	mock_interfaces "quote_rollup/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func newQuoteUseCase(ctrl *gomock.Controller) (*QuoteUseCase, *mock_interfaces.MockIQuoteRepository, *mock_interfaces.MockIOpportunityRepository) {
	quotes := mock_interfaces.NewMockIQuoteRepository(ctrl)
	opps := mock_interfaces.NewMockIOpportunityRepository(ctrl)
	rollup := NewRecomputeUseCase(quotes, opps, logger.NewNop())
	return NewQuoteUseCase(quotes, opps, rollup, logger.NewNop()), quotes, opps
}

func TestQuoteUseCase_CreateQuote(t *testing.T) {
	t.Run("defaults to draft and active state", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, quotes, opps := newQuoteUseCase(ctrl)

		opps.EXPECT().GetByID(gomock.Any(), "opp-1").Return(entities.Opportunity{ID: "opp-1"}, nil)
		quotes.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, q entities.Quote) (entities.Quote, error) {
			return q, nil
		})

		q, err := uc.CreateQuote(context.Background(), CreateQuoteInput{Name: " Q1 ", OpportunityID: "opp-1", Amount: usd("10")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.ID == "" || q.Name != "Q1" {
			t.Fatalf("unexpected quote: %+v", q)
		}
		if *q.StatusCode != entities.QuoteStatusDraft || *q.StateCode != entities.QuoteStateActive {
			t.Fatalf("expected draft/active, got %v/%v", *q.StatusCode, *q.StateCode)
		}
		if q.OpportunityID == nil || *q.OpportunityID != "opp-1" {
			t.Fatalf("expected parent opp-1, got %v", q.OpportunityID)
		}
	})

	t.Run("quote without opportunity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, quotes, _ := newQuoteUseCase(ctrl)

		quotes.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, q entities.Quote) (entities.Quote, error) {
			return q, nil
		})

		q, err := uc.CreateQuote(context.Background(), CreateQuoteInput{Name: "orphan"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.HasParent() {
			t.Fatalf("expected no parent, got %v", *q.OpportunityID)
		}
	})

	t.Run("rejects closing status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, _ := newQuoteUseCase(ctrl)

		_, err := uc.CreateQuote(context.Background(), CreateQuoteInput{Name: "x", Status: entities.QuoteStatusWon})
		if !errors.Is(err, ErrInvalidQuoteStatus) {
			t.Fatalf("expected ErrInvalidQuoteStatus, got %v", err)
		}
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, _ := newQuoteUseCase(ctrl)

		_, err := uc.CreateQuote(context.Background(), CreateQuoteInput{Name: "x", Amount: usd("-1")})
		if !errors.Is(err, ErrInvalidQuoteAmount) {
			t.Fatalf("expected ErrInvalidQuoteAmount, got %v", err)
		}
	})

	t.Run("rejects amount in another currency than the opportunity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, opps := newQuoteUseCase(ctrl)

		opps.EXPECT().GetByID(gomock.Any(), "opp-eur").Return(entities.Opportunity{ID: "opp-eur", TotalWonAmount: entities.ZeroMoney("EUR")}, nil)

		_, err := uc.CreateQuote(context.Background(), CreateQuoteInput{Name: "x", OpportunityID: "opp-eur", Amount: usd("10")})
		if !errors.Is(err, ErrQuoteCurrencyMismatch) {
			t.Fatalf("expected ErrQuoteCurrencyMismatch, got %v", err)
		}
	})

	t.Run("amount without currency takes the opportunity currency", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, quotes, opps := newQuoteUseCase(ctrl)

		opps.EXPECT().GetByID(gomock.Any(), "opp-eur").Return(entities.Opportunity{ID: "opp-eur", TotalWonAmount: entities.ZeroMoney("EUR")}, nil)
		quotes.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, q entities.Quote) (entities.Quote, error) {
			return q, nil
		})

		bare := &entities.Money{Value: decimal.NewFromInt(10)}
		q, err := uc.CreateQuote(context.Background(), CreateQuoteInput{Name: "x", OpportunityID: "opp-eur", Amount: bare})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Amount == nil || q.Amount.Currency != "EUR" || !q.Amount.Value.Equal(decimal.NewFromInt(10)) {
			t.Fatalf("expected 10 EUR, got %v", q.Amount)
		}
	})

	t.Run("unknown opportunity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, opps := newQuoteUseCase(ctrl)

		opps.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Opportunity{}, nil)

		_, err := uc.CreateQuote(context.Background(), CreateQuoteInput{Name: "x", OpportunityID: "missing"})
		if !errors.Is(err, ErrQuoteOppNotFound) {
			t.Fatalf("expected ErrQuoteOppNotFound, got %v", err)
		}
	})
}

func TestQuoteUseCase_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, quotes, _ := newQuoteUseCase(ctrl)

	if _, err := uc.GetByID(context.Background(), " "); !errors.Is(err, ErrInvalidQuoteID) {
		t.Fatalf("expected ErrInvalidQuoteID, got %v", err)
	}

	quotes.EXPECT().Retrieve(gomock.Any(), "nope", gomock.Nil()).Return(entities.Quote{}, nil)
	if _, err := uc.GetByID(context.Background(), "nope"); !errors.Is(err, ErrQuoteNotFound) {
		t.Fatalf("expected ErrQuoteNotFound, got %v", err)
	}
}

func TestQuoteUseCase_Win(t *testing.T) {
	t.Run("updates status and recomputes the opportunity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, quotes, opps := newQuoteUseCase(ctrl)

		draft := quote("q-1", "opp-1", entities.QuoteStatusDraft, usd("40"))
		won := quote("q-1", "opp-1", entities.QuoteStatusWon, usd("40"))

		gomock.InOrder(
			quotes.EXPECT().Retrieve(gomock.Any(), "q-1", gomock.Nil()).Return(draft, nil),
			quotes.EXPECT().UpdateStatus(gomock.Any(), "q-1", entities.QuoteStatusWon).Return(won, nil),
			quotes.EXPECT().Retrieve(gomock.Any(), "q-1", triggeringQuoteColumns).Return(won, nil),
			quotes.EXPECT().Query(gomock.Any(), gomock.Any()).Return([]entities.Quote{quote("q-2", "opp-1", entities.QuoteStatusWon, usd("60"))}, nil),
			opps.EXPECT().UpdateTotalWonAmount(gomock.Any(), "opp-1", moneyEq("100", "USD")).Return(entities.Opportunity{ID: "opp-1"}, nil),
		)

		change, err := uc.Win(context.Background(), "q-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !change.Quote.IsWon() {
			t.Fatalf("expected won quote, got %+v", change.Quote)
		}
		if change.Rollup.Outcome != OutcomeRecomputed || !change.Rollup.Total.Value.Equal(decimal.NewFromInt(100)) {
			t.Fatalf("unexpected rollup: %+v", change.Rollup)
		}
	})

	t.Run("failed rollup restores previous status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, quotes, opps := newQuoteUseCase(ctrl)

		draft := quote("q-1", "opp-1", entities.QuoteStatusDraft, usd("40"))
		won := quote("q-1", "opp-1", entities.QuoteStatusWon, usd("40"))

		gomock.InOrder(
			quotes.EXPECT().Retrieve(gomock.Any(), "q-1", gomock.Nil()).Return(draft, nil),
			quotes.EXPECT().UpdateStatus(gomock.Any(), "q-1", entities.QuoteStatusWon).Return(won, nil),
			quotes.EXPECT().Retrieve(gomock.Any(), "q-1", triggeringQuoteColumns).Return(won, nil),
			quotes.EXPECT().Query(gomock.Any(), gomock.Any()).Return(nil, nil),
			opps.EXPECT().UpdateTotalWonAmount(gomock.Any(), "opp-1", gomock.Any()).Return(entities.Opportunity{}, errors.New("write conflict")),
			quotes.EXPECT().UpdateStatus(gomock.Any(), "q-1", entities.QuoteStatusDraft).Return(draft, nil),
		)

		_, err := uc.Win(context.Background(), "q-1")
		if !errors.Is(err, ErrStoreFailure) {
			t.Fatalf("expected store failure, got %v", err)
		}
	})

	t.Run("quote disappears before update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, quotes, _ := newQuoteUseCase(ctrl)

		quotes.EXPECT().Retrieve(gomock.Any(), "q-1", gomock.Nil()).Return(quote("q-1", "opp-1", entities.QuoteStatusDraft, nil), nil)
		quotes.EXPECT().UpdateStatus(gomock.Any(), "q-1", entities.QuoteStatusWon).Return(entities.Quote{}, nil)

		if _, err := uc.Win(context.Background(), "q-1"); !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})
}

func TestQuoteUseCase_ChangeStatus(t *testing.T) {
	t.Run("invalid status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, _ := newQuoteUseCase(ctrl)

		if _, err := uc.ChangeStatus(context.Background(), "q-1", entities.QuoteStatus(42)); !errors.Is(err, ErrInvalidQuoteStatus) {
			t.Fatalf("expected ErrInvalidQuoteStatus, got %v", err)
		}
	})

	t.Run("lose on orphan quote is a missing data no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, quotes, _ := newQuoteUseCase(ctrl)

		open := quote("q-1", "", entities.QuoteStatusOpen, nil)
		lost := quote("q-1", "", entities.QuoteStatusLost, nil)
		quotes.EXPECT().Retrieve(gomock.Any(), "q-1", gomock.Nil()).Return(open, nil)
		quotes.EXPECT().UpdateStatus(gomock.Any(), "q-1", entities.QuoteStatusLost).Return(lost, nil)
		quotes.EXPECT().Retrieve(gomock.Any(), "q-1", triggeringQuoteColumns).Return(lost, nil)

		change, err := uc.Lose(context.Background(), "q-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if change.Rollup.Reason != SkipReasonMissingData {
			t.Fatalf("expected missing data skip, got %+v", change.Rollup)
		}
	})
}

func TestQuoteUseCase_UpdateAmount(t *testing.T) {
	t.Run("amount change does not trigger a recompute", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, quotes, opps := newQuoteUseCase(ctrl)

		won := quote("q-1", "opp-1", entities.QuoteStatusWon, usd("40"))
		updated := quote("q-1", "opp-1", entities.QuoteStatusWon, usd("90"))
		quotes.EXPECT().Retrieve(gomock.Any(), "q-1", gomock.Nil()).Return(won, nil)
		opps.EXPECT().GetByID(gomock.Any(), "opp-1").Return(entities.Opportunity{ID: "opp-1", TotalWonAmount: entities.ZeroMoney("USD")}, nil)
		quotes.EXPECT().UpdateAmount(gomock.Any(), "q-1", gomock.Any()).Return(updated, nil)

		change, err := uc.UpdateAmount(context.Background(), "q-1", usd("90"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if change.Rollup.Reason != SkipReasonGuard {
			t.Fatalf("expected guard skip, got %+v", change.Rollup)
		}
	})

	t.Run("amount in another currency is rejected before the write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, quotes, opps := newQuoteUseCase(ctrl)

		quotes.EXPECT().Retrieve(gomock.Any(), "q-1", gomock.Nil()).Return(quote("q-1", "opp-1", entities.QuoteStatusWon, usd("10")), nil)
		opps.EXPECT().GetByID(gomock.Any(), "opp-1").Return(entities.Opportunity{ID: "opp-1", TotalWonAmount: entities.ZeroMoney("USD")}, nil)

		eur := &entities.Money{Value: decimal.NewFromInt(7), Currency: "EUR"}
		if _, err := uc.UpdateAmount(context.Background(), "q-1", eur); !errors.Is(err, ErrQuoteCurrencyMismatch) {
			t.Fatalf("expected ErrQuoteCurrencyMismatch, got %v", err)
		}
	})

	t.Run("clearing the amount skips the currency check", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, quotes, _ := newQuoteUseCase(ctrl)

		quotes.EXPECT().Retrieve(gomock.Any(), "q-1", gomock.Nil()).Return(quote("q-1", "opp-1", entities.QuoteStatusDraft, usd("10")), nil)
		quotes.EXPECT().UpdateAmount(gomock.Any(), "q-1", gomock.Nil()).Return(quote("q-1", "opp-1", entities.QuoteStatusDraft, nil), nil)

		change, err := uc.UpdateAmount(context.Background(), "q-1", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if change.Quote.Amount != nil || change.Rollup.Reason != SkipReasonGuard {
			t.Fatalf("unexpected change: %+v", change)
		}
	})

	t.Run("negative amount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, _ := newQuoteUseCase(ctrl)

		if _, err := uc.UpdateAmount(context.Background(), "q-1", usd("-5")); !errors.Is(err, ErrInvalidQuoteAmount) {
			t.Fatalf("expected ErrInvalidQuoteAmount, got %v", err)
		}
	})
}
