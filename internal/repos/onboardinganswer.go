package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/leveluphq/levelup-backend/internal/logger"
  "github.com/leveluphq/levelup-backend/internal/types"
)

type OnboardingAnswerRepo interface {
  ListByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.OnboardingAnswer, error)
  ReplaceForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, answers []*types.OnboardingAnswer) error
}

type onboardingAnswerRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewOnboardingAnswerRepo(db *gorm.DB, baseLog *logger.Logger) OnboardingAnswerRepo {
  repoLog := baseLog.With("repo", "OnboardingAnswerRepo")
  return &onboardingAnswerRepo{db: db, log: repoLog}
}

func (oar *onboardingAnswerRepo) ListByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.OnboardingAnswer, error) {
  transaction := tx
  if transaction == nil {
    transaction = oar.db
  }

  var results []*types.OnboardingAnswer
  if len(userIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id IN ?", userIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (oar *onboardingAnswerRepo) ReplaceForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, answers []*types.OnboardingAnswer) error {
  transaction := tx
  if transaction == nil {
    transaction = oar.db
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Delete(&types.OnboardingAnswer{}).Error; err != nil {
    return err
  }
  if len(answers) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).Create(&answers).Error
}
