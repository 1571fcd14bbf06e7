package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/leveluphq/levelup-backend/internal/logger"
  "github.com/leveluphq/levelup-backend/internal/types"
)

type GoalTemplateRepo interface {
  Create(ctx context.Context, tx *gorm.DB, templates []*types.GoalTemplate) ([]*types.GoalTemplate, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) ([]*types.GoalTemplate, error)
  ListCatalogForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.GoalTemplate, error)
  SetEnabled(ctx context.Context, tx *gorm.DB, templateID uuid.UUID, enabled bool) error
}

type goalTemplateRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewGoalTemplateRepo(db *gorm.DB, baseLog *logger.Logger) GoalTemplateRepo {
  repoLog := baseLog.With("repo", "GoalTemplateRepo")
  return &goalTemplateRepo{db: db, log: repoLog}
}

func (gtr *goalTemplateRepo) Create(ctx context.Context, tx *gorm.DB, templates []*types.GoalTemplate) ([]*types.GoalTemplate, error) {
  transaction := tx
  if transaction == nil {
    transaction = gtr.db
  }

  if len(templates) == 0 {
    return []*types.GoalTemplate{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&templates).Error; err != nil {
    return nil, err
  }
  return templates, nil
}

func (gtr *goalTemplateRepo) GetByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) ([]*types.GoalTemplate, error) {
  transaction := tx
  if transaction == nil {
    transaction = gtr.db
  }

  var results []*types.GoalTemplate
  if len(templateIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", templateIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// ListCatalogForUser returns enabled shared templates plus the user's own
// private ones.
func (gtr *goalTemplateRepo) ListCatalogForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.GoalTemplate, error) {
  transaction := tx
  if transaction == nil {
    transaction = gtr.db
  }

  var results []*types.GoalTemplate
  if err := transaction.WithContext(ctx).
    Where("enabled = ? AND (owner_id IS NULL OR owner_id = ?)", true, userID).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (gtr *goalTemplateRepo) SetEnabled(ctx context.Context, tx *gorm.DB, templateID uuid.UUID, enabled bool) error {
  transaction := tx
  if transaction == nil {
    transaction = gtr.db
  }

  return transaction.WithContext(ctx).
    Model(&types.GoalTemplate{}).
    Where("id = ?", templateID).
    Update("enabled", enabled).Error
}
