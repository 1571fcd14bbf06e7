package repos

import (
  "context"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/leveluphq/levelup-backend/internal/logger"
  "github.com/leveluphq/levelup-backend/internal/types"
)

type UserGoalRepo interface {
  Create(ctx context.Context, tx *gorm.DB, goals []*types.UserGoal) ([]*types.UserGoal, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, goalIDs []uuid.UUID) ([]*types.UserGoal, error)
  GetByUserAndTemplate(ctx context.Context, tx *gorm.DB, userID, templateID uuid.UUID) (*types.UserGoal, error)
  ListByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.UserGoal, error)
  UpdateStatus(ctx context.Context, tx *gorm.DB, goalID uuid.UUID, status string) error
  MarkCompleted(ctx context.Context, tx *gorm.DB, goalID uuid.UUID, periodKey string, completedAt time.Time) error
}

type userGoalRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUserGoalRepo(db *gorm.DB, baseLog *logger.Logger) UserGoalRepo {
  repoLog := baseLog.With("repo", "UserGoalRepo")
  return &userGoalRepo{db: db, log: repoLog}
}

func (ugr *userGoalRepo) Create(ctx context.Context, tx *gorm.DB, goals []*types.UserGoal) ([]*types.UserGoal, error) {
  transaction := tx
  if transaction == nil {
    transaction = ugr.db
  }

  if len(goals) == 0 {
    return []*types.UserGoal{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&goals).Error; err != nil {
    return nil, err
  }
  return goals, nil
}

func (ugr *userGoalRepo) GetByIDs(ctx context.Context, tx *gorm.DB, goalIDs []uuid.UUID) ([]*types.UserGoal, error) {
  transaction := tx
  if transaction == nil {
    transaction = ugr.db
  }

  var results []*types.UserGoal
  if len(goalIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", goalIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ugr *userGoalRepo) GetByUserAndTemplate(ctx context.Context, tx *gorm.DB, userID, templateID uuid.UUID) (*types.UserGoal, error) {
  transaction := tx
  if transaction == nil {
    transaction = ugr.db
  }

  var results []*types.UserGoal
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND template_id = ?", userID, templateID).
    Limit(1).
    Find(&results).Error; err != nil {
    return nil, err
  }
  if len(results) == 0 {
    return nil, nil
  }
  return results[0], nil
}

func (ugr *userGoalRepo) ListByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.UserGoal, error) {
  transaction := tx
  if transaction == nil {
    transaction = ugr.db
  }

  var results []*types.UserGoal
  if len(userIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id IN ?", userIDs).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ugr *userGoalRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, goalID uuid.UUID, status string) error {
  transaction := tx
  if transaction == nil {
    transaction = ugr.db
  }

  return transaction.WithContext(ctx).
    Model(&types.UserGoal{}).
    Where("id = ?", goalID).
    Update("status", status).Error
}

func (ugr *userGoalRepo) MarkCompleted(ctx context.Context, tx *gorm.DB, goalID uuid.UUID, periodKey string, completedAt time.Time) error {
  transaction := tx
  if transaction == nil {
    transaction = ugr.db
  }

  return transaction.WithContext(ctx).
    Model(&types.UserGoal{}).
    Where("id = ?", goalID).
    Updates(map[string]interface{}{
      "completed_period":  periodKey,
      "last_completed_at": completedAt,
    }).Error
}
