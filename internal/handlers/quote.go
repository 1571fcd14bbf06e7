package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/leveluphq/levelup-backend/internal/services"
)

type QuoteHandler struct {
  quoteService       services.QuoteService
}

func NewQuoteHandler(quoteService services.QuoteService) *QuoteHandler {
  return &QuoteHandler{quoteService: quoteService}
}

func (qh *QuoteHandler) QuoteOfTheDay(c *gin.Context) {
  quote, err := qh.quoteService.QuoteOfTheDay(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, quote)
}
