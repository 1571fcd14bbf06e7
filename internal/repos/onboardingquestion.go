package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/leveluphq/levelup-backend/internal/logger"
  "github.com/leveluphq/levelup-backend/internal/types"
)

type OnboardingQuestionRepo interface {
  ListActive(ctx context.Context, tx *gorm.DB, language string) ([]*types.OnboardingQuestion, error)
  ListWeights(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) ([]*types.QuestionCategoryWeight, error)
}

type onboardingQuestionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewOnboardingQuestionRepo(db *gorm.DB, baseLog *logger.Logger) OnboardingQuestionRepo {
  repoLog := baseLog.With("repo", "OnboardingQuestionRepo")
  return &onboardingQuestionRepo{db: db, log: repoLog}
}

func (oqr *onboardingQuestionRepo) ListActive(ctx context.Context, tx *gorm.DB, language string) ([]*types.OnboardingQuestion, error) {
  transaction := tx
  if transaction == nil {
    transaction = oqr.db
  }

  var results []*types.OnboardingQuestion
  if err := transaction.WithContext(ctx).
    Where("active = ? AND language = ?", true, language).
    Order("position ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (oqr *onboardingQuestionRepo) ListWeights(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) ([]*types.QuestionCategoryWeight, error) {
  transaction := tx
  if transaction == nil {
    transaction = oqr.db
  }

  var results []*types.QuestionCategoryWeight
  if len(questionIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("question_id IN ?", questionIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
