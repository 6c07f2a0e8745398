package handlers

import (
	"net/http"

	request "quote_rollup/internal/adapter/http/dto/request"
	response "quote_rollup/internal/adapter/http/dto/response"
	"quote_rollup/internal/usecase"

	"github.com/gin-gonic/gin"
)

type OpportunityHandler struct {
	usecase usecase.IOpportunityUseCase
}

func NewOpportunityHandler(uc usecase.IOpportunityUseCase) *OpportunityHandler {
	return &OpportunityHandler{usecase: uc}
}

// CreateOpportunity godoc
// @Summary  Create an opportunity
// @Tags     opportunities
// @Accept   json
// @Produce  json
// @Param    body  body      request.CreateOpportunityRequest  true  "Opportunity"
// @Success  201   {object}  response.OpportunityResponse
// @Router   /opportunities [post]
func (h *OpportunityHandler) CreateOpportunity(c *gin.Context) {
	var payload request.CreateOpportunityRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidOpportunityPayload)
		return
	}

	opp, err := h.usecase.Create(c.Request.Context(), payload.ResolveName(), payload.Currency)
	if err != nil {
		writeError(c, mapOpportunityError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromOpportunity(opp))
}

// GetOpportunity godoc
// @Summary  Get an opportunity with its Won quote total
// @Tags     opportunities
// @Produce  json
// @Param    id   path      string  true  "Opportunity ID"
// @Success  200  {object}  response.OpportunityResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /opportunities/{id} [get]
func (h *OpportunityHandler) GetOpportunity(c *gin.Context) {
	opp, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapOpportunityError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOpportunity(opp))
}
