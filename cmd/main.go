package main

import (
  "context"
  "fmt"
  "os"
  "time"
  "github.com/leveluphq/levelup-backend/internal/clients/redis"
  "github.com/leveluphq/levelup-backend/internal/db"
  "github.com/leveluphq/levelup-backend/internal/handlers"
  "github.com/leveluphq/levelup-backend/internal/logger"
  "github.com/leveluphq/levelup-backend/internal/middleware"
  "github.com/leveluphq/levelup-backend/internal/repos"
  "github.com/leveluphq/levelup-backend/internal/server"
  "github.com/leveluphq/levelup-backend/internal/services"
  "github.com/leveluphq/levelup-backend/internal/sse"
  "github.com/leveluphq/levelup-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Fatal("Postgres init failed", "error", err)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Fatal("Postgres auto migration failed", "error", err)
  }
  if err = postgresService.SeedDefaults(); err != nil {
    log.Fatal("Postgres seed failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  userTokenRepo := repos.NewUserTokenRepo(thePG, log)
  categoryRepo := repos.NewCategoryRepo(thePG, log)
  goalTemplateRepo := repos.NewGoalTemplateRepo(thePG, log)
  userGoalRepo := repos.NewUserGoalRepo(thePG, log)
  userPriorityRepo := repos.NewUserPriorityRepo(thePG, log)
  onboardingQuestionRepo := repos.NewOnboardingQuestionRepo(thePG, log)
  onboardingAnswerRepo := repos.NewOnboardingAnswerRepo(thePG, log)
  quoteRepo := repos.NewQuoteRepo(thePG, log)

  // SSE
  log.Info("Setting up SSE hub now...")
  sseHub := sse.NewSSEHub(log)

  // Events go through redis when configured so every replica's hub sees
  // them; otherwise the local hub is enough.
  var publisher services.EventPublisher = services.NewHubPublisher(sseHub)
  eventBus, busErr := redis.NewEventBus(log)
  if busErr != nil {
    log.Warn("Redis event bus unavailable, falling back to local hub", "error", busErr)
  } else {
    publisher = eventBus
    if fErr := eventBus.StartForwarder(context.Background(), sseHub.Broadcast); fErr != nil {
      log.Warn("Failed to start redis forwarder", "error", fErr)
    }
  }

  // Services
  log.Info("Setting up Services from main...")
  authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
  userService := services.NewUserService(thePG, log, userRepo)
  categoryService := services.NewCategoryService(thePG, log, categoryRepo)
  goalService := services.NewGoalService(thePG, log, userRepo, goalTemplateRepo, userGoalRepo, userPriorityRepo, categoryRepo, publisher)
  onboardingService := services.NewOnboardingService(thePG, log, userRepo, onboardingQuestionRepo, onboardingAnswerRepo, userPriorityRepo, publisher)
  quoteService := services.NewQuoteService(thePG, log, quoteRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  userHandler := handlers.NewUserHandler(userService)
  categoryHandler := handlers.NewCategoryHandler(categoryService)
  goalHandler := handlers.NewGoalHandler(goalService)
  onboardingHandler := handlers.NewOnboardingHandler(onboardingService)
  quoteHandler := handlers.NewQuoteHandler(quoteService)
  sseHandler := handlers.NewSSEHandler(sseHub)
  healthcheckHandler := handlers.NewHealthcheckHandler()

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:        authHandler,
    AuthMiddleware:     authMiddleware,
    UserHandler:        userHandler,
    CategoryHandler:    categoryHandler,
    GoalHandler:        goalHandler,
    OnboardingHandler:  onboardingHandler,
    QuoteHandler:       quoteHandler,
    SSEHandler:         sseHandler,
    HealthcheckHandler: healthcheckHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
