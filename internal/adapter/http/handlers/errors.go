package handlers

import (
	"errors"
	"net/http"

	"quote_rollup/internal/usecase"
	"quote_rollup/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidQuotePayload       = pkg.NewDomainErrorSimple("INVALID_QUOTE_INPUT", "Invalid quote payload", http.StatusBadRequest)
	errInvalidOpportunityPayload = pkg.NewDomainErrorSimple("INVALID_OPPORTUNITY_INPUT", "Invalid opportunity payload", http.StatusBadRequest)
	errInvalidEventPayload       = pkg.NewDomainErrorSimple("INVALID_EVENT_INPUT", "Invalid change event payload", http.StatusBadRequest)
)

func writeError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// mapRollupError covers failures surfaced by the post-operation rollup. The
// original store message is kept in the error details.
func mapRollupError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidChangeEvent):
		return pkg.NewDomainErrorSimple("INVALID_EVENT_INPUT", "Change event has no record id", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrStoreFailure):
		return pkg.NewDomainError("ROLLUP_STORE_FAILURE", "Won quote rollup failed while accessing the record store", err, http.StatusInternalServerError)
	case errors.Is(err, usecase.ErrUnexpectedFailure):
		return pkg.NewDomainError("ROLLUP_FAILED", "Won quote rollup failed", err, http.StatusInternalServerError)
	default:
		return nil
	}
}

func mapQuoteError(err error) *pkg.AppError {
	if appErr := mapRollupError(err); appErr != nil {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidQuoteID), errors.Is(err, usecase.ErrInvalidQuoteStatus), errors.Is(err, usecase.ErrInvalidQuoteAmount):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuoteCurrencyMismatch):
		return pkg.NewDomainError("CURRENCY_MISMATCH", "Quote currency differs from the opportunity currency", err, http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrQuoteOppNotFound):
		return pkg.NewDomainErrorSimple("OPPORTUNITY_NOT_FOUND", "Opportunity referenced by quote not found", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func mapOpportunityError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOpportunityID), errors.Is(err, usecase.ErrInvalidOpportunityName):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOpportunityNotFound):
		return pkg.NewDomainErrorSimple("OPPORTUNITY_NOT_FOUND", "Opportunity not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
