package services

import (
  "context"
  "fmt"
  "math"
  "strings"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/leveluphq/levelup-backend/internal/apierr"
  "github.com/leveluphq/levelup-backend/internal/levels"
  "github.com/leveluphq/levelup-backend/internal/logger"
  "github.com/leveluphq/levelup-backend/internal/priorities"
  "github.com/leveluphq/levelup-backend/internal/repos"
  "github.com/leveluphq/levelup-backend/internal/sse"
  "github.com/leveluphq/levelup-backend/internal/types"
)

type CreateTemplateInput struct {
  CategoryID  uuid.UUID   `json:"category_id"`
  Title       string      `json:"title"`
  Description string      `json:"description"`
  BaseXP      int         `json:"base_xp"`
  Frequency   string      `json:"frequency"`
}

// GoalView joins a subscription with its template plus the derived
// completable flag for the current period.
type GoalView struct {
  Goal          *types.UserGoal       `json:"goal"`
  Template      *types.GoalTemplate   `json:"template"`
  PeriodKey     string                `json:"period_key"`
  Completable   bool                  `json:"completable"`
}

type CompletionPreview struct {
  GoalID      uuid.UUID   `json:"goal_id"`
  BaseXP      int         `json:"base_xp"`
  Multiplier  float64     `json:"multiplier"`
  GainedXP    int         `json:"gained_xp"`
  Completable bool        `json:"completable"`
}

type CompletionResult struct {
  GoalID        uuid.UUID         `json:"goal_id"`
  PeriodKey     string            `json:"period_key"`
  BaseXP        int               `json:"base_xp"`
  Multiplier    float64           `json:"multiplier"`
  GainedXP      int               `json:"gained_xp"`
  NewTotalXP    int               `json:"new_total_xp"`
  NewLevel      int               `json:"new_level"`
  LeveledUp     bool              `json:"leveled_up"`
  LevelsGained  int               `json:"levels_gained"`
  Progress      levels.Progress   `json:"progress"`
}

type GoalService interface {
  ListCatalog(ctx context.Context, userID uuid.UUID) ([]*types.GoalTemplate, error)
  CreateTemplate(ctx context.Context, userID uuid.UUID, input CreateTemplateInput) (*types.GoalTemplate, error)
  Subscribe(ctx context.Context, userID, templateID uuid.UUID) (*types.UserGoal, error)
  Archive(ctx context.Context, userID, goalID uuid.UUID) error
  ListMine(ctx context.Context, userID uuid.UUID) ([]GoalView, error)
  Preview(ctx context.Context, userID, goalID uuid.UUID) (CompletionPreview, error)
  Complete(ctx context.Context, userID, goalID uuid.UUID) (CompletionResult, error)
}

type goalService struct {
  db            *gorm.DB
  log           *logger.Logger
  userRepo      repos.UserRepo
  templateRepo  repos.GoalTemplateRepo
  goalRepo      repos.UserGoalRepo
  priorityRepo  repos.UserPriorityRepo
  categoryRepo  repos.CategoryRepo
  publisher     EventPublisher
  now           func() time.Time
}

func NewGoalService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  templateRepo repos.GoalTemplateRepo,
  goalRepo repos.UserGoalRepo,
  priorityRepo repos.UserPriorityRepo,
  categoryRepo repos.CategoryRepo,
  publisher EventPublisher,
) GoalService {
  serviceLog := log.With("service", "GoalService")
  return &goalService{
    db:           db,
    log:          serviceLog,
    userRepo:     userRepo,
    templateRepo: templateRepo,
    goalRepo:     goalRepo,
    priorityRepo: priorityRepo,
    categoryRepo: categoryRepo,
    publisher:    publisher,
    now:          time.Now,
  }
}

// periodKeyFor identifies the completion window: calendar day for daily
// goals, ISO week for weekly ones. A goal is completable again once the
// key differs from the stored one.
func periodKeyFor(frequency string, at time.Time) (string, error) {
  switch frequency {
  case types.FrequencyDaily:
    return at.Format("2006-01-02"), nil
  case types.FrequencyWeekly:
    year, week := at.ISOWeek()
    return fmt.Sprintf("%04d-W%02d", year, week), nil
  default:
    return "", apierr.Invariant("unknown goal frequency %q", frequency)
  }
}

func (gs *goalService) ListCatalog(ctx context.Context, userID uuid.UUID) ([]*types.GoalTemplate, error) {
  templates, err := gs.templateRepo.ListCatalogForUser(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("Failed to list goal catalog: %w", err)
  }
  return templates, nil
}

func (gs *goalService) CreateTemplate(ctx context.Context, userID uuid.UUID, input CreateTemplateInput) (*types.GoalTemplate, error) {
  input.Title = strings.TrimSpace(input.Title)
  if input.Title == "" {
    return nil, apierr.Validation("template title must not be empty")
  }
  if input.BaseXP <= 0 {
    return nil, apierr.Validation("base_xp must be positive, got %d", input.BaseXP)
  }
  if input.Frequency != types.FrequencyDaily && input.Frequency != types.FrequencyWeekly {
    return nil, apierr.Validation("frequency must be %q or %q, got %q", types.FrequencyDaily, types.FrequencyWeekly, input.Frequency)
  }
  categories, err := gs.categoryRepo.GetByIDs(ctx, nil, []uuid.UUID{input.CategoryID})
  if err != nil {
    return nil, fmt.Errorf("Failed to check category: %w", err)
  }
  if len(categories) == 0 {
    return nil, apierr.NotFound("category %s not found", input.CategoryID)
  }

  ownerID := userID
  template := &types.GoalTemplate{
    ID:          uuid.New(),
    CategoryID:  input.CategoryID,
    Title:       input.Title,
    Description: strings.TrimSpace(input.Description),
    BaseXP:      input.BaseXP,
    Frequency:   input.Frequency,
    Enabled:     true,
    OwnerID:     &ownerID,
  }
  if err := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, cErr := gs.templateRepo.Create(ctx, tx, []*types.GoalTemplate{template}); cErr != nil {
      return fmt.Errorf("Failed to create goal template: %w", cErr)
    }
    return nil
  }); err != nil {
    return nil, err
  }
  return template, nil
}

func (gs *goalService) Subscribe(ctx context.Context, userID, templateID uuid.UUID) (*types.UserGoal, error) {
  var goal *types.UserGoal
  err := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    templates, tErr := gs.templateRepo.GetByIDs(ctx, tx, []uuid.UUID{templateID})
    if tErr != nil {
      return fmt.Errorf("Failed to load template: %w", tErr)
    }
    if len(templates) == 0 {
      return apierr.NotFound("goal template %s not found", templateID)
    }
    template := templates[0]
    if !template.Enabled {
      return apierr.NotFound("goal template %s not found", templateID)
    }
    if template.OwnerID != nil && *template.OwnerID != userID {
      return apierr.NotFound("goal template %s not found", templateID)
    }

    existing, eErr := gs.goalRepo.GetByUserAndTemplate(ctx, tx, userID, templateID)
    if eErr != nil {
      return fmt.Errorf("Failed to check existing subscription: %w", eErr)
    }
    if existing != nil {
      if existing.Status == types.UserGoalStatusActive {
        return apierr.Conflict("already subscribed to template %s", templateID)
      }
      if uErr := gs.goalRepo.UpdateStatus(ctx, tx, existing.ID, types.UserGoalStatusActive); uErr != nil {
        return fmt.Errorf("Failed to reactivate goal: %w", uErr)
      }
      existing.Status = types.UserGoalStatusActive
      goal = existing
      return nil
    }

    goal = &types.UserGoal{
      ID:         uuid.New(),
      UserID:     userID,
      TemplateID: templateID,
      Status:     types.UserGoalStatusActive,
    }
    if _, cErr := gs.goalRepo.Create(ctx, tx, []*types.UserGoal{goal}); cErr != nil {
      return fmt.Errorf("Failed to create goal subscription: %w", cErr)
    }
    return nil
  })
  if err != nil {
    return nil, err
  }
  return goal, nil
}

func (gs *goalService) Archive(ctx context.Context, userID, goalID uuid.UUID) error {
  return gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    goal, gErr := gs.loadOwnedGoal(ctx, tx, userID, goalID)
    if gErr != nil {
      return gErr
    }
    if goal.Status == types.UserGoalStatusArchived {
      return nil
    }
    if uErr := gs.goalRepo.UpdateStatus(ctx, tx, goal.ID, types.UserGoalStatusArchived); uErr != nil {
      return fmt.Errorf("Failed to archive goal: %w", uErr)
    }
    return nil
  })
}

func (gs *goalService) ListMine(ctx context.Context, userID uuid.UUID) ([]GoalView, error) {
  goals, err := gs.goalRepo.ListByUserIDs(ctx, nil, []uuid.UUID{userID})
  if err != nil {
    return nil, fmt.Errorf("Failed to list goals: %w", err)
  }
  templateIDs := make([]uuid.UUID, 0, len(goals))
  for _, g := range goals {
    templateIDs = append(templateIDs, g.TemplateID)
  }
  templates, err := gs.templateRepo.GetByIDs(ctx, nil, templateIDs)
  if err != nil {
    return nil, fmt.Errorf("Failed to load templates for goals: %w", err)
  }
  byID := make(map[uuid.UUID]*types.GoalTemplate, len(templates))
  for _, t := range templates {
    byID[t.ID] = t
  }

  at := gs.now()
  views := make([]GoalView, 0, len(goals))
  for _, g := range goals {
    template, ok := byID[g.TemplateID]
    if !ok {
      return nil, apierr.Invariant("goal %s references missing template %s", g.ID, g.TemplateID)
    }
    key, kErr := periodKeyFor(template.Frequency, at)
    if kErr != nil {
      return nil, kErr
    }
    views = append(views, GoalView{
      Goal:        g,
      Template:    template,
      PeriodKey:   key,
      Completable: g.Status == types.UserGoalStatusActive && g.CompletedPeriod != key,
    })
  }
  return views, nil
}

func (gs *goalService) Preview(ctx context.Context, userID, goalID uuid.UUID) (CompletionPreview, error) {
  var preview CompletionPreview
  err := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    goal, gErr := gs.loadOwnedGoal(ctx, tx, userID, goalID)
    if gErr != nil {
      return gErr
    }
    template, tErr := gs.loadTemplate(ctx, tx, goal.TemplateID)
    if tErr != nil {
      return tErr
    }
    key, kErr := periodKeyFor(template.Frequency, gs.now())
    if kErr != nil {
      return kErr
    }
    baseXP, multiplier, mErr := gs.rewardFor(ctx, tx, userID, goal, template)
    if mErr != nil {
      return mErr
    }
    preview = CompletionPreview{
      GoalID:      goal.ID,
      BaseXP:      baseXP,
      Multiplier:  multiplier,
      GainedXP:    int(math.Round(float64(baseXP) * multiplier)),
      Completable: goal.Status == types.UserGoalStatusActive && goal.CompletedPeriod != key,
    }
    return nil
  })
  if err != nil {
    return CompletionPreview{}, err
  }
  return preview, nil
}

// Complete is the one write path that touches XP. The whole flow runs in
// a single transaction behind a row lock on the user, so two completions
// racing for the same user serialize and the period gate holds.
func (gs *goalService) Complete(ctx context.Context, userID, goalID uuid.UUID) (CompletionResult, error) {
  var result CompletionResult
  at := gs.now()
  err := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    user, uErr := gs.userRepo.GetForUpdate(ctx, tx, userID)
    if uErr != nil {
      return fmt.Errorf("Failed to lock user row: %w", uErr)
    }
    if user == nil {
      return apierr.NotFound("user %s not found", userID)
    }

    goal, gErr := gs.loadOwnedGoal(ctx, tx, userID, goalID)
    if gErr != nil {
      return gErr
    }
    if goal.Status != types.UserGoalStatusActive {
      return apierr.Conflict("goal %s is archived", goalID)
    }
    template, tErr := gs.loadTemplate(ctx, tx, goal.TemplateID)
    if tErr != nil {
      return tErr
    }
    key, kErr := periodKeyFor(template.Frequency, at)
    if kErr != nil {
      return kErr
    }
    if goal.CompletedPeriod == key {
      return apierr.Conflict("goal %s already completed for period %s", goalID, key)
    }

    baseXP, multiplier, mErr := gs.rewardFor(ctx, tx, userID, goal, template)
    if mErr != nil {
      return mErr
    }
    gained := int(math.Round(float64(baseXP) * multiplier))

    gain, aErr := levels.ApplyGain(user.XP, user.Level, gained)
    if aErr != nil {
      return aErr
    }
    if uErr := gs.userRepo.UpdateXPAndLevel(ctx, tx, userID, gain.NewTotalXP, gain.NewLevel); uErr != nil {
      return fmt.Errorf("Failed to persist xp gain: %w", uErr)
    }
    if mcErr := gs.goalRepo.MarkCompleted(ctx, tx, goal.ID, key, at); mcErr != nil {
      return fmt.Errorf("Failed to mark goal completed: %w", mcErr)
    }

    prog, pErr := levels.ProgressForTotalXP(gain.NewTotalXP)
    if pErr != nil {
      return pErr
    }
    result = CompletionResult{
      GoalID:       goal.ID,
      PeriodKey:    key,
      BaseXP:       baseXP,
      Multiplier:   multiplier,
      GainedXP:     gained,
      NewTotalXP:   gain.NewTotalXP,
      NewLevel:     gain.NewLevel,
      LeveledUp:    gain.LeveledUp,
      LevelsGained: gain.LevelsGained,
      Progress:     prog,
    }
    return nil
  })
  if err != nil {
    return CompletionResult{}, err
  }

  gs.publish(ctx, userID, sse.SSEEventGoalCompleted, result)
  gs.publish(ctx, userID, sse.SSEEventXPChanged, result.Progress)
  if result.LeveledUp {
    gs.log.Info("User leveled up", "user_id", userID, "new_level", result.NewLevel, "levels_gained", result.LevelsGained)
  }
  return result, nil
}

func (gs *goalService) loadOwnedGoal(ctx context.Context, tx *gorm.DB, userID, goalID uuid.UUID) (*types.UserGoal, error) {
  goals, err := gs.goalRepo.GetByIDs(ctx, tx, []uuid.UUID{goalID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load goal: %w", err)
  }
  if len(goals) == 0 || goals[0].UserID != userID {
    return nil, apierr.NotFound("goal %s not found", goalID)
  }
  return goals[0], nil
}

func (gs *goalService) loadTemplate(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) (*types.GoalTemplate, error) {
  templates, err := gs.templateRepo.GetByIDs(ctx, tx, []uuid.UUID{templateID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load template: %w", err)
  }
  if len(templates) == 0 {
    return nil, apierr.Invariant("goal references missing template %s", templateID)
  }
  return templates[0], nil
}

// rewardFor resolves the base reward (per-subscription override wins over
// the template) and the bonus multiplier from the stored priority rank of
// the template's category.
func (gs *goalService) rewardFor(ctx context.Context, tx *gorm.DB, userID uuid.UUID, goal *types.UserGoal, template *types.GoalTemplate) (int, float64, error) {
  baseXP := template.BaseXP
  if goal.XPRewardOverride != nil {
    baseXP = *goal.XPRewardOverride
  }
  if baseXP <= 0 {
    return 0, 0, apierr.Invariant("non-positive reward %d for goal %s", baseXP, goal.ID)
  }

  priority, pErr := gs.priorityRepo.GetByUserAndCategory(ctx, tx, userID, template.CategoryID)
  if pErr != nil {
    return 0, 0, fmt.Errorf("Failed to load priority for bonus: %w", pErr)
  }
  var rank *int
  if priority != nil {
    rank = &priority.Rank
  }
  return baseXP, priorities.BonusMultiplierForRank(rank), nil
}

func (gs *goalService) publish(ctx context.Context, userID uuid.UUID, event sse.SSEEvent, data any) {
  if gs.publisher == nil {
    return
  }
  msg := sse.SSEMessage{
    Channel: sse.UserChannel(userID),
    Event:   event,
    Data:    data,
  }
  if err := gs.publisher.Publish(ctx, msg); err != nil {
    gs.log.Warn("Failed to publish event", "event", event, "user_id", userID, "error", err)
  }
}
