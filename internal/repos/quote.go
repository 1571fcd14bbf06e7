package repos

import (
  "context"
  "gorm.io/gorm"
  "github.com/leveluphq/levelup-backend/internal/logger"
  "github.com/leveluphq/levelup-backend/internal/types"
)

type QuoteRepo interface {
  Count(ctx context.Context, tx *gorm.DB) (int64, error)
  GetByOffset(ctx context.Context, tx *gorm.DB, offset int) (*types.Quote, error)
}

type quoteRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewQuoteRepo(db *gorm.DB, baseLog *logger.Logger) QuoteRepo {
  repoLog := baseLog.With("repo", "QuoteRepo")
  return &quoteRepo{db: db, log: repoLog}
}

func (qr *quoteRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = qr.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Quote{}).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (qr *quoteRepo) GetByOffset(ctx context.Context, tx *gorm.DB, offset int) (*types.Quote, error) {
  transaction := tx
  if transaction == nil {
    transaction = qr.db
  }

  var results []*types.Quote
  if err := transaction.WithContext(ctx).
    Order("created_at ASC").
    Offset(offset).
    Limit(1).
    Find(&results).Error; err != nil {
    return nil, err
  }
  if len(results) == 0 {
    return nil, nil
  }
  return results[0], nil
}
