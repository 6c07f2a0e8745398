package routes

import (
	"quote_rollup/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathQuotes        = "/quotes"
	PathOpportunities = "/opportunities"
	PathEvents        = "/events"
)

func addQuoteRoutes(rg *gin.RouterGroup, h *handlers.QuoteHandler) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("", h.CreateQuote)
		quotes.GET("/:id", h.GetQuote)
		// Status and amount updates run the Won quote rollup before answering.
		quotes.PATCH("/:id/status", h.ChangeStatus)
		quotes.PATCH("/:id/win", h.WinQuote)
		quotes.PATCH("/:id/lose", h.LoseQuote)
		quotes.PATCH("/:id/amount", h.UpdateAmount)
	}
}

func addOpportunityRoutes(rg *gin.RouterGroup, h *handlers.OpportunityHandler) {
	opportunities := rg.Group(PathOpportunities)
	{
		opportunities.POST("", h.CreateOpportunity)
		opportunities.GET("/:id", h.GetOpportunity)
	}
}

func addEventRoutes(rg *gin.RouterGroup, h *handlers.ChangeEventHandler) {
	events := rg.Group(PathEvents)
	{
		events.POST("/quote-updated", h.QuoteUpdated)
	}
}
