package usecase

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"quote_rollup/internal/domain/entities"
	"quote_rollup/internal/pkg/logger"
	"quote_rollup/internal/usecase/interfaces"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "quote_rollup/usecase"

// Outcome is the terminal state of one recompute invocation.
type Outcome string

const (
	OutcomeNoOp       Outcome = "no_op"
	OutcomeRecomputed Outcome = "recomputed"
	OutcomeFailed     Outcome = "failed"
)

// SkipReason explains a no-op outcome.
type SkipReason string

const (
	SkipReasonGuard       SkipReason = "guard_skip"
	SkipReasonMissingData SkipReason = "missing_data_skip"
)

// RecomputeResult describes what one invocation did. Total is only set for
// OutcomeRecomputed.
type RecomputeResult struct {
	Outcome       Outcome
	Reason        SkipReason
	Detail        string
	QuoteID       string
	OpportunityID string
	Total         *entities.Money
	Contributors  int
}

// Columns read from the triggering quote.
var triggeringQuoteColumns = []string{
	entities.QuoteAttrStatusCode,
	entities.QuoteAttrOpportunityID,
	entities.QuoteAttrTotalAmount,
}

// IRecomputeUseCase recomputes the Won quote total of an opportunity from a
// single quote change event.
//
// The handler runs synchronously as part of the operation that changed the
// quote. A returned error means the caller should fail (roll back) that
// operation; nothing is retried here.

type IRecomputeUseCase interface {
	Handle(ctx context.Context, event entities.ChangeEvent) (RecomputeResult, error)
}

type RecomputeUseCase struct {
	quotes        interfaces.IQuoteRepository
	opportunities interfaces.IOpportunityRepository
	log           *logger.Logger
}

var _ IRecomputeUseCase = (*RecomputeUseCase)(nil)

func NewRecomputeUseCase(quotes interfaces.IQuoteRepository, opportunities interfaces.IOpportunityRepository, log *logger.Logger) *RecomputeUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &RecomputeUseCase{
		quotes:        quotes,
		opportunities: opportunities,
		log:           log.With("component", "won_quote_rollup"),
	}
}

func (u *RecomputeUseCase) Handle(ctx context.Context, event entities.ChangeEvent) (res RecomputeResult, err error) {
	quoteID := strings.TrimSpace(event.RecordID)
	res = RecomputeResult{QuoteID: quoteID}

	if !event.IsQuoteUpdate() || !event.HasChanged(entities.QuoteAttrStatusCode) {
		u.log.Debug("rollup skipped: status not part of this change",
			"quote_id", quoteID, "message", event.MessageName, "entity", event.EntityName, "changed", event.ChangedFields)
		res.Outcome = OutcomeNoOp
		res.Reason = SkipReasonGuard
		return res, nil
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "rollup.Recompute",
		trace.WithAttributes(
			attribute.String("quote.id", quoteID),
			attribute.String("correlation.id", event.CorrelationID),
		),
	)
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			res.Outcome = OutcomeFailed
			res.Total = nil
			err = u.fail(span, quoteID, "recompute", ErrorKindUnexpected, fmt.Errorf("panic: %v", r))
		}
	}()

	if quoteID == "" {
		res.Outcome = OutcomeFailed
		return res, u.fail(span, quoteID, "validate event", ErrorKindUnexpected, ErrInvalidChangeEvent)
	}

	res, err = u.recompute(ctx, span, res)
	if err != nil {
		res.Outcome = OutcomeFailed
		res.Total = nil
	}
	return res, err
}

func (u *RecomputeUseCase) recompute(ctx context.Context, span trace.Span, res RecomputeResult) (RecomputeResult, error) {
	quoteID := res.QuoteID

	current, err := u.quotes.Retrieve(ctx, quoteID, triggeringQuoteColumns)
	if err != nil {
		return res, u.fail(span, quoteID, "retrieve quote", ErrorKindStore, err)
	}
	if current.ID == "" {
		return res, u.fail(span, quoteID, "retrieve quote", ErrorKindStore, ErrTriggeringQuoteNotFound)
	}
	if current.StatusCode == nil {
		return u.skipMissingData(span, res, "quote has no status")
	}
	if !current.HasParent() {
		return u.skipMissingData(span, res, "quote has no opportunity")
	}

	opportunityID := strings.TrimSpace(*current.OpportunityID)
	res.OpportunityID = opportunityID
	span.SetAttributes(
		attribute.String("opportunity.id", opportunityID),
		attribute.Int("quote.status", int(*current.StatusCode)),
	)

	// Query results may not reflect the in-flight update of the triggering
	// quote, so it is excluded here and merged from the record in hand.
	query := entities.NewQuery(entities.EntityQuote, entities.QuoteAttrID, entities.QuoteAttrTotalAmount).
		Where(entities.QuoteAttrOpportunityID, entities.ConditionEqual, opportunityID).
		Where(entities.QuoteAttrStatusCode, entities.ConditionEqual, int(entities.QuoteStatusWon)).
		Where(entities.QuoteAttrID, entities.ConditionNotEqual, quoteID)

	siblings, err := u.quotes.Query(ctx, query)
	if err != nil {
		return res, u.fail(span, quoteID, "query won sibling quotes", ErrorKindStore, err)
	}

	total, contributors, err := sumWonAmounts(current, siblings)
	if err != nil {
		return res, u.fail(span, quoteID, "aggregate won amounts", ErrorKindUnexpected, err)
	}

	updated, err := u.opportunities.UpdateTotalWonAmount(ctx, opportunityID, total)
	if err != nil {
		return res, u.fail(span, quoteID, "update opportunity total", ErrorKindStore, err)
	}
	if updated.ID == "" {
		return res, u.fail(span, quoteID, "update opportunity total", ErrorKindStore,
			fmt.Errorf("%w: %s", ErrRollupTargetNotFound, opportunityID))
	}
	if total.Currency == "" {
		total.Currency = updated.TotalWonAmount.Currency
	}

	span.SetAttributes(
		attribute.String("rollup.total", total.Value.String()),
		attribute.Int("rollup.contributors", contributors),
	)
	u.log.Info("rollup recomputed",
		"quote_id", quoteID,
		"opportunity_id", opportunityID,
		"quote_status", current.StatusCode.String(),
		"siblings", len(siblings),
		"contributors", contributors,
		"total", total.String(),
	)

	res.Outcome = OutcomeRecomputed
	res.Total = &total
	res.Contributors = contributors
	return res, nil
}

func (u *RecomputeUseCase) skipMissingData(span trace.Span, res RecomputeResult, detail string) (RecomputeResult, error) {
	u.log.Info("rollup skipped: "+detail, "quote_id", res.QuoteID)
	span.SetAttributes(attribute.String("rollup.skip", detail))
	res.Outcome = OutcomeNoOp
	res.Reason = SkipReasonMissingData
	res.Detail = detail
	return res, nil
}

func (u *RecomputeUseCase) fail(span trace.Span, quoteID, op string, kind ErrorKind, cause error) error {
	fields := []interface{}{
		"quote_id", quoteID,
		"op", op,
		"kind", string(kind),
		"error", cause.Error(),
	}
	if inner := errors.Unwrap(cause); inner != nil {
		fields = append(fields, "cause", inner.Error())
	}
	fields = append(fields, "stack", string(debug.Stack()))
	u.log.Error("rollup failed", fields...)

	span.RecordError(cause)
	span.SetStatus(codes.Error, op+" failed")

	return &RecomputeError{Kind: kind, Op: op, QuoteID: quoteID, Err: cause}
}
