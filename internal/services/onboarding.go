package services

import (
  "context"
  "fmt"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/leveluphq/levelup-backend/internal/apierr"
  "github.com/leveluphq/levelup-backend/internal/logger"
  "github.com/leveluphq/levelup-backend/internal/priorities"
  "github.com/leveluphq/levelup-backend/internal/repos"
  "github.com/leveluphq/levelup-backend/internal/sse"
  "github.com/leveluphq/levelup-backend/internal/types"
)

const defaultQuestionnaireLanguage = "fr"

type OnboardingService interface {
  ListQuestions(ctx context.Context, userID uuid.UUID, language string) ([]*types.OnboardingQuestion, error)
  SubmitAnswers(ctx context.Context, userID uuid.UUID, language string, answers []priorities.Answer) ([]*types.UserPriority, error)
  GetPriorities(ctx context.Context, userID uuid.UUID) ([]*types.UserPriority, error)
  Reorder(ctx context.Context, userID uuid.UUID, orderedCategoryIDs []uuid.UUID) ([]*types.UserPriority, error)
}

type onboardingService struct {
  db            *gorm.DB
  log           *logger.Logger
  userRepo      repos.UserRepo
  questionRepo  repos.OnboardingQuestionRepo
  answerRepo    repos.OnboardingAnswerRepo
  priorityRepo  repos.UserPriorityRepo
  publisher     EventPublisher
}

func NewOnboardingService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  questionRepo repos.OnboardingQuestionRepo,
  answerRepo repos.OnboardingAnswerRepo,
  priorityRepo repos.UserPriorityRepo,
  publisher EventPublisher,
) OnboardingService {
  serviceLog := log.With("service", "OnboardingService")
  return &onboardingService{
    db:           db,
    log:          serviceLog,
    userRepo:     userRepo,
    questionRepo: questionRepo,
    answerRepo:   answerRepo,
    priorityRepo: priorityRepo,
    publisher:    publisher,
  }
}

func questionnaireLanguage(language string) string {
  if language == "" {
    return defaultQuestionnaireLanguage
  }
  return language
}

// ListQuestions stays readable after onboarding completes; only
// resubmission is gated.
func (os *onboardingService) ListQuestions(ctx context.Context, userID uuid.UUID, language string) ([]*types.OnboardingQuestion, error) {
  questions, err := os.questionRepo.ListActive(ctx, nil, questionnaireLanguage(language))
  if err != nil {
    return nil, fmt.Errorf("Failed to list onboarding questions: %w", err)
  }
  return questions, nil
}

// SubmitAnswers is all-or-nothing: answers are stored, scores derived and
// the priority set replaced inside one transaction, then onboarding is
// sealed. A second submission gets a conflict.
func (os *onboardingService) SubmitAnswers(ctx context.Context, userID uuid.UUID, language string, answers []priorities.Answer) ([]*types.UserPriority, error) {
  if err := priorities.ValidateAnswers(answers); err != nil {
    return nil, err
  }

  var rows []*types.UserPriority
  err := os.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if rErr := os.requireOnboardingOpen(ctx, tx, userID); rErr != nil {
      return rErr
    }

    questions, qErr := os.questionRepo.ListActive(ctx, tx, questionnaireLanguage(language))
    if qErr != nil {
      return fmt.Errorf("Failed to load questions: %w", qErr)
    }
    known := make(map[uuid.UUID]bool, len(questions))
    questionIDs := make([]uuid.UUID, 0, len(questions))
    for _, q := range questions {
      known[q.ID] = true
      questionIDs = append(questionIDs, q.ID)
    }
    for _, a := range answers {
      if !known[a.QuestionID] {
        return apierr.Validation("answer references unknown question %s", a.QuestionID)
      }
    }

    weightRows, wErr := os.questionRepo.ListWeights(ctx, tx, questionIDs)
    if wErr != nil {
      return fmt.Errorf("Failed to load question weights: %w", wErr)
    }
    weights := make(map[uuid.UUID][]priorities.CategoryWeight)
    for _, w := range weightRows {
      weights[w.QuestionID] = append(weights[w.QuestionID], priorities.CategoryWeight{
        CategoryID: w.CategoryID,
        Weight:     w.Weight,
      })
    }

    stored := make([]*types.OnboardingAnswer, 0, len(answers))
    for _, a := range answers {
      stored = append(stored, &types.OnboardingAnswer{
        ID:         uuid.New(),
        UserID:     userID,
        QuestionID: a.QuestionID,
        Value:      a.Value,
      })
    }
    if aErr := os.answerRepo.ReplaceForUser(ctx, tx, userID, stored); aErr != nil {
      return fmt.Errorf("Failed to store answers: %w", aErr)
    }

    ranked := priorities.RankCategories(priorities.NormalizeScores(priorities.ScoreFromAnswers(answers, weights)))
    rows = make([]*types.UserPriority, 0, len(ranked))
    for _, r := range ranked {
      rows = append(rows, &types.UserPriority{
        ID:         uuid.New(),
        UserID:     userID,
        CategoryID: r.CategoryID,
        Score:      r.Score,
        Rank:       r.Rank,
      })
    }
    if pErr := os.priorityRepo.ReplaceForUser(ctx, tx, userID, rows); pErr != nil {
      return fmt.Errorf("Failed to store priorities: %w", pErr)
    }
    if dErr := os.userRepo.SetOnboardingDone(ctx, tx, userID, true); dErr != nil {
      return fmt.Errorf("Failed to mark onboarding done: %w", dErr)
    }
    return nil
  })
  if err != nil {
    return nil, err
  }

  os.log.Info("Onboarding completed", "user_id", userID, "categories", len(rows))
  os.publishPriorities(ctx, userID, rows)
  return rows, nil
}

func (os *onboardingService) GetPriorities(ctx context.Context, userID uuid.UUID) ([]*types.UserPriority, error) {
  rows, err := os.priorityRepo.ListByUserIDs(ctx, nil, []uuid.UUID{userID})
  if err != nil {
    return nil, fmt.Errorf("Failed to list priorities: %w", err)
  }
  return rows, nil
}

// Reorder replaces the ranking with an explicit order. Submitted ids
// must belong to the user's current priority set; categories left out of
// the sequence drop out of the ranking and earn no completion bonus.
func (os *onboardingService) Reorder(ctx context.Context, userID uuid.UUID, orderedCategoryIDs []uuid.UUID) ([]*types.UserPriority, error) {
  if _, err := priorities.ApplyManualOrder(orderedCategoryIDs); err != nil {
    return nil, err
  }

  var rows []*types.UserPriority
  err := os.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    current, cErr := os.priorityRepo.ListByUserIDs(ctx, tx, []uuid.UUID{userID})
    if cErr != nil {
      return fmt.Errorf("Failed to load current priorities: %w", cErr)
    }
    if len(current) == 0 {
      return apierr.Conflict("no priorities to reorder, onboarding not completed")
    }
    have := make(map[uuid.UUID]bool, len(current))
    for _, p := range current {
      have[p.CategoryID] = true
    }
    for _, cid := range orderedCategoryIDs {
      if !have[cid] {
        return apierr.Validation("category %s is not part of the priority set", cid)
      }
    }

    scores := priorities.SyntheticScores(orderedCategoryIDs)
    ranked := priorities.RankCategories(scores)
    rows = make([]*types.UserPriority, 0, len(ranked))
    for _, r := range ranked {
      rows = append(rows, &types.UserPriority{
        ID:         uuid.New(),
        UserID:     userID,
        CategoryID: r.CategoryID,
        Score:      r.Score,
        Rank:       r.Rank,
      })
    }
    return os.priorityRepo.ReplaceForUser(ctx, tx, userID, rows)
  })
  if err != nil {
    return nil, err
  }

  os.publishPriorities(ctx, userID, rows)
  return rows, nil
}

func (os *onboardingService) requireOnboardingOpen(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
  users, err := os.userRepo.GetByIDs(ctx, tx, []uuid.UUID{userID})
  if err != nil {
    return fmt.Errorf("Failed to load user: %w", err)
  }
  if len(users) == 0 {
    return apierr.NotFound("user %s not found", userID)
  }
  if users[0].OnboardingDone {
    return apierr.Conflict("onboarding already completed for user %s", userID)
  }
  return nil
}

func (os *onboardingService) publishPriorities(ctx context.Context, userID uuid.UUID, rows []*types.UserPriority) {
  if os.publisher == nil {
    return
  }
  msg := sse.SSEMessage{
    Channel: sse.UserChannel(userID),
    Event:   sse.SSEEventPrioritiesChanged,
    Data:    rows,
  }
  if err := os.publisher.Publish(ctx, msg); err != nil {
    os.log.Warn("Failed to publish priorities event", "user_id", userID, "error", err)
  }
}
