package services

import (
  "context"
  "sync"
  "testing"
  "github.com/google/uuid"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  gormlogger "gorm.io/gorm/logger"
  "github.com/leveluphq/levelup-backend/internal/logger"
  "github.com/leveluphq/levelup-backend/internal/repos"
  "github.com/leveluphq/levelup-backend/internal/sse"
  "github.com/leveluphq/levelup-backend/internal/types"
)

func setupTestDB(t *testing.T) *gorm.DB {
  t.Helper()
  db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
    Logger: gormlogger.Default.LogMode(gormlogger.Silent),
  })
  if err != nil {
    t.Fatalf("open sqlite: %v", err)
  }
  sqlDB, err := db.DB()
  if err != nil {
    t.Fatalf("unwrap sql.DB: %v", err)
  }
  sqlDB.SetMaxOpenConns(1)
  if err := db.AutoMigrate(
    &types.User{},
    &types.UserToken{},
    &types.Category{},
    &types.GoalTemplate{},
    &types.UserGoal{},
    &types.UserPriority{},
    &types.OnboardingQuestion{},
    &types.QuestionCategoryWeight{},
    &types.OnboardingAnswer{},
    &types.Quote{},
  ); err != nil {
    t.Fatalf("auto migrate: %v", err)
  }
  return db
}

func testLogger(t *testing.T) *logger.Logger {
  t.Helper()
  log, err := logger.New("development")
  if err != nil {
    t.Fatalf("init logger: %v", err)
  }
  return log
}

type testEnv struct {
  db            *gorm.DB
  log           *logger.Logger
  userRepo      repos.UserRepo
  tokenRepo     repos.UserTokenRepo
  categoryRepo  repos.CategoryRepo
  templateRepo  repos.GoalTemplateRepo
  goalRepo      repos.UserGoalRepo
  priorityRepo  repos.UserPriorityRepo
  questionRepo  repos.OnboardingQuestionRepo
  answerRepo    repos.OnboardingAnswerRepo
  quoteRepo     repos.QuoteRepo
  publisher     *capturePublisher
}

func newTestEnv(t *testing.T) *testEnv {
  t.Helper()
  db := setupTestDB(t)
  log := testLogger(t)
  return &testEnv{
    db:           db,
    log:          log,
    userRepo:     repos.NewUserRepo(db, log),
    tokenRepo:    repos.NewUserTokenRepo(db, log),
    categoryRepo: repos.NewCategoryRepo(db, log),
    templateRepo: repos.NewGoalTemplateRepo(db, log),
    goalRepo:     repos.NewUserGoalRepo(db, log),
    priorityRepo: repos.NewUserPriorityRepo(db, log),
    questionRepo: repos.NewOnboardingQuestionRepo(db, log),
    answerRepo:   repos.NewOnboardingAnswerRepo(db, log),
    quoteRepo:    repos.NewQuoteRepo(db, log),
    publisher:    &capturePublisher{},
  }
}

type capturePublisher struct {
  mu    sync.Mutex
  msgs  []sse.SSEMessage
}

func (cp *capturePublisher) Publish(ctx context.Context, msg sse.SSEMessage) error {
  cp.mu.Lock()
  defer cp.mu.Unlock()
  cp.msgs = append(cp.msgs, msg)
  return nil
}

func (cp *capturePublisher) events() []sse.SSEEvent {
  cp.mu.Lock()
  defer cp.mu.Unlock()
  out := make([]sse.SSEEvent, 0, len(cp.msgs))
  for _, m := range cp.msgs {
    out = append(out, m.Event)
  }
  return out
}

func (env *testEnv) createUser(t *testing.T, username string, xp, level int) *types.User {
  t.Helper()
  user := &types.User{
    ID:       uuid.New(),
    Username: username,
    Email:    username + "@example.com",
    Password: "irrelevant",
    Level:    level,
    XP:       xp,
  }
  if _, err := env.userRepo.Create(context.Background(), nil, []*types.User{user}); err != nil {
    t.Fatalf("create user: %v", err)
  }
  return user
}

func (env *testEnv) createCategory(t *testing.T, name string) *types.Category {
  t.Helper()
  cat := &types.Category{ID: uuid.New(), Name: name}
  if _, err := env.categoryRepo.Create(context.Background(), nil, []*types.Category{cat}); err != nil {
    t.Fatalf("create category: %v", err)
  }
  return cat
}

func (env *testEnv) createTemplate(t *testing.T, categoryID uuid.UUID, title string, baseXP int, frequency string) *types.GoalTemplate {
  t.Helper()
  template := &types.GoalTemplate{
    ID:         uuid.New(),
    CategoryID: categoryID,
    Title:      title,
    BaseXP:     baseXP,
    Frequency:  frequency,
    Enabled:    true,
  }
  if _, err := env.templateRepo.Create(context.Background(), nil, []*types.GoalTemplate{template}); err != nil {
    t.Fatalf("create template: %v", err)
  }
  return template
}

func (env *testEnv) setPriorities(t *testing.T, userID uuid.UUID, categoryIDs ...uuid.UUID) {
  t.Helper()
  rows := make([]*types.UserPriority, 0, len(categoryIDs))
  for i, cid := range categoryIDs {
    rows = append(rows, &types.UserPriority{
      ID:         uuid.New(),
      UserID:     userID,
      CategoryID: cid,
      Score:      float64(100 - i*10),
      Rank:       i + 1,
    })
  }
  if err := env.priorityRepo.ReplaceForUser(context.Background(), nil, userID, rows); err != nil {
    t.Fatalf("set priorities: %v", err)
  }
}
