package handlers

import (
	"context"
	"net/http"

	request "quote_rollup/internal/adapter/http/dto/request"
	response "quote_rollup/internal/adapter/http/dto/response"
	"quote_rollup/internal/usecase"

	"github.com/gin-gonic/gin"
)

// QuoteHandler handles HTTP requests for quotes. Every update answers with the
// updated quote and the outcome of the Won quote rollup it triggered.

type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

// CreateQuote godoc
// @Summary      Create a quote
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        body  body      request.CreateQuoteRequest  true  "Quote"
// @Success      201   {object}  response.QuoteResponse
// @Failure      400   {object}  pkg.HTTPError
// @Router       /quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var payload request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidQuotePayload)
		return
	}

	status, err := payload.ResolveStatus()
	if err != nil {
		writeError(c, errInvalidQuotePayload)
		return
	}
	state, err := payload.ResolveState()
	if err != nil {
		writeError(c, errInvalidQuotePayload)
		return
	}
	amount, err := payload.Amount.ToMoney()
	if err != nil {
		writeError(c, errInvalidQuotePayload)
		return
	}

	quote, err := h.usecase.CreateQuote(c.Request.Context(), usecase.CreateQuoteInput{
		Name:          payload.Name,
		OpportunityID: payload.OpportunityID,
		Amount:        amount,
		Status:        status,
		State:         state,
	})
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}

	c.JSON(http.StatusCreated, response.FromQuote(quote))
}

// GetQuote godoc
// @Summary      Get a quote
// @Tags         quotes
// @Produce      json
// @Param        id   path      string  true  "Quote ID"
// @Success      200  {object}  response.QuoteResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}

// ChangeStatus godoc
// @Summary      Change the status of a quote
// @Description  Runs the Won quote rollup of the parent opportunity. A failed rollup rolls the change back.
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id    path      string                        true  "Quote ID"
// @Param        body  body      request.ChangeStatusRequest   true  "Status"
// @Success      200   {object}  response.QuoteChangeResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Failure      500   {object}  pkg.HTTPError
// @Router       /quotes/{id}/status [patch]
func (h *QuoteHandler) ChangeStatus(c *gin.Context) {
	var payload request.ChangeStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidQuotePayload)
		return
	}
	status, err := payload.ResolveStatus()
	if err != nil {
		writeError(c, errInvalidQuotePayload)
		return
	}

	change, err := h.usecase.ChangeStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuoteChange(change))
}

func (h *QuoteHandler) WinQuote(c *gin.Context) {
	h.closeQuote(c, h.usecase.Win)
}

func (h *QuoteHandler) LoseQuote(c *gin.Context) {
	h.closeQuote(c, h.usecase.Lose)
}

func (h *QuoteHandler) closeQuote(
	c *gin.Context,
	closer func(ctx context.Context, id string) (usecase.QuoteChange, error),
) {
	change, err := closer(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuoteChange(change))
}

// UpdateAmount godoc
// @Summary      Change the amount of a quote
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id    path      string                       true  "Quote ID"
// @Param        body  body      request.UpdateAmountRequest  true  "Amount (null clears it)"
// @Success      200   {object}  response.QuoteChangeResponse
// @Router       /quotes/{id}/amount [patch]
func (h *QuoteHandler) UpdateAmount(c *gin.Context) {
	var payload request.UpdateAmountRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidQuotePayload)
		return
	}
	amount, err := payload.Amount.ToMoney()
	if err != nil {
		writeError(c, errInvalidQuotePayload)
		return
	}

	change, err := h.usecase.UpdateAmount(c.Request.Context(), c.Param("id"), amount)
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuoteChange(change))
}
