package services

import (
  "context"
  "fmt"
  "strings"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/leveluphq/levelup-backend/internal/apierr"
  "github.com/leveluphq/levelup-backend/internal/logger"
  "github.com/leveluphq/levelup-backend/internal/normalization"
  "github.com/leveluphq/levelup-backend/internal/repos"
  "github.com/leveluphq/levelup-backend/internal/types"
)

type CategoryService interface {
  List(ctx context.Context) ([]*types.Category, error)
  Create(ctx context.Context, name string) (*types.Category, error)
}

type categoryService struct {
  db            *gorm.DB
  log           *logger.Logger
  categoryRepo  repos.CategoryRepo
}

func NewCategoryService(db *gorm.DB, log *logger.Logger, categoryRepo repos.CategoryRepo) CategoryService {
  serviceLog := log.With("service", "CategoryService")
  return &categoryService{db: db, log: serviceLog, categoryRepo: categoryRepo}
}

func (cs *categoryService) List(ctx context.Context) ([]*types.Category, error) {
  categories, err := cs.categoryRepo.List(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("Failed to list categories: %w", err)
  }
  return categories, nil
}

func (cs *categoryService) Create(ctx context.Context, name string) (*types.Category, error) {
  name = normalization.ParseInputString(name)
  if name == "" {
    return nil, apierr.Validation("category name must not be empty")
  }

  var category *types.Category
  err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    existing, lErr := cs.categoryRepo.List(ctx, tx)
    if lErr != nil {
      return fmt.Errorf("Failed to check existing categories: %w", lErr)
    }
    for _, c := range existing {
      if strings.EqualFold(c.Name, name) {
        return apierr.Conflict("category %q already exists", name)
      }
    }
    category = &types.Category{ID: uuid.New(), Name: name}
    if _, cErr := cs.categoryRepo.Create(ctx, tx, []*types.Category{category}); cErr != nil {
      return fmt.Errorf("Failed to create category: %w", cErr)
    }
    return nil
  })
  if err != nil {
    return nil, err
  }
  return category, nil
}
