package handlers

import (
	"net/http"

	request "quote_rollup/internal/adapter/http/dto/request"
	response "quote_rollup/internal/adapter/http/dto/response"
	"quote_rollup/internal/usecase"

	"github.com/gin-gonic/gin"
)

// ChangeEventHandler receives post-operation notifications pushed by a host
// platform and runs the rollup for them. A non-2xx answer tells the host to
// fail the originating operation.

type ChangeEventHandler struct {
	rollup usecase.IRecomputeUseCase
}

func NewChangeEventHandler(rollup usecase.IRecomputeUseCase) *ChangeEventHandler {
	return &ChangeEventHandler{rollup: rollup}
}

// QuoteUpdated godoc
// @Summary  Handle a quote update notification
// @Tags     events
// @Accept   json
// @Produce  json
// @Param    body  body      request.ChangeEventRequest  true  "Change event"
// @Success  200   {object}  response.RollupResponse
// @Failure  400   {object}  pkg.HTTPError
// @Failure  500   {object}  pkg.HTTPError
// @Router   /events/quote-updated [post]
func (h *ChangeEventHandler) QuoteUpdated(c *gin.Context) {
	var payload request.ChangeEventRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidEventPayload)
		return
	}

	if id := c.GetHeader("X-Correlation-ID"); id != "" && payload.CorrelationID == "" {
		payload.CorrelationID = id
	}

	result, err := h.rollup.Handle(c.Request.Context(), payload.ToEvent())
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromRollup(result))
}
