package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/leveluphq/levelup-backend/internal/logger"
  "github.com/leveluphq/levelup-backend/internal/types"
)

type UserPriorityRepo interface {
  ListByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.UserPriority, error)
  GetByUserAndCategory(ctx context.Context, tx *gorm.DB, userID, categoryID uuid.UUID) (*types.UserPriority, error)
  ReplaceForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, rows []*types.UserPriority) error
}

type userPriorityRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUserPriorityRepo(db *gorm.DB, baseLog *logger.Logger) UserPriorityRepo {
  repoLog := baseLog.With("repo", "UserPriorityRepo")
  return &userPriorityRepo{db: db, log: repoLog}
}

func (upr *userPriorityRepo) ListByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.UserPriority, error) {
  transaction := tx
  if transaction == nil {
    transaction = upr.db
  }

  var results []*types.UserPriority
  if len(userIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id IN ?", userIDs).
    Order("rank ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (upr *userPriorityRepo) GetByUserAndCategory(ctx context.Context, tx *gorm.DB, userID, categoryID uuid.UUID) (*types.UserPriority, error) {
  transaction := tx
  if transaction == nil {
    transaction = upr.db
  }

  var results []*types.UserPriority
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND category_id = ?", userID, categoryID).
    Limit(1).
    Find(&results).Error; err != nil {
    return nil, err
  }
  if len(results) == 0 {
    return nil, nil
  }
  return results[0], nil
}

// ReplaceForUser swaps the whole priority set in one shot. Callers must
// run it inside a transaction so bonus lookups never observe a
// half-written set.
func (upr *userPriorityRepo) ReplaceForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, rows []*types.UserPriority) error {
  transaction := tx
  if transaction == nil {
    transaction = upr.db
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Delete(&types.UserPriority{}).Error; err != nil {
    return err
  }
  if len(rows) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).Create(&rows).Error
}
