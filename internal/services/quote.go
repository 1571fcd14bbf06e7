package services

import (
  "context"
  "fmt"
  "time"
  "gorm.io/gorm"
  "github.com/leveluphq/levelup-backend/internal/apierr"
  "github.com/leveluphq/levelup-backend/internal/logger"
  "github.com/leveluphq/levelup-backend/internal/repos"
  "github.com/leveluphq/levelup-backend/internal/types"
)

type QuoteService interface {
  QuoteOfTheDay(ctx context.Context) (*types.Quote, error)
}

type quoteService struct {
  db        *gorm.DB
  log       *logger.Logger
  quoteRepo repos.QuoteRepo
  now       func() time.Time
}

func NewQuoteService(db *gorm.DB, log *logger.Logger, quoteRepo repos.QuoteRepo) QuoteService {
  serviceLog := log.With("service", "QuoteService")
  return &quoteService{db: db, log: serviceLog, quoteRepo: quoteRepo, now: time.Now}
}

// QuoteOfTheDay rotates through the catalog by UTC day, so every user
// sees the same quote on a given day.
func (qs *quoteService) QuoteOfTheDay(ctx context.Context) (*types.Quote, error) {
  count, err := qs.quoteRepo.Count(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("Failed to count quotes: %w", err)
  }
  if count == 0 {
    return nil, apierr.NotFound("no quotes available")
  }
  day := qs.now().UTC().Unix() / 86400
  offset := int(day % count)
  quote, err := qs.quoteRepo.GetByOffset(ctx, nil, offset)
  if err != nil {
    return nil, fmt.Errorf("Failed to load quote: %w", err)
  }
  if quote == nil {
    return nil, apierr.NotFound("no quotes available")
  }
  return quote, nil
}
