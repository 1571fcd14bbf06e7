package server

import (
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "github.com/leveluphq/levelup-backend/internal/handlers"
  "github.com/leveluphq/levelup-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler           *handlers.AuthHandler
  AuthMiddleware        *middleware.AuthMiddleware
  UserHandler           *handlers.UserHandler
  CategoryHandler       *handlers.CategoryHandler
  GoalHandler           *handlers.GoalHandler
  OnboardingHandler     *handlers.OnboardingHandler
  QuoteHandler          *handlers.QuoteHandler
  SSEHandler            *handlers.SSEHandler
  HealthcheckHandler    *handlers.HealthcheckHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)
  router.POST("/register", cfg.AuthHandler.Register)
  router.POST("/login", cfg.AuthHandler.Login)

// ===============
// || Protected ||
// ===============
  protected := router.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Auth
  protected.POST("/refresh", cfg.AuthHandler.Refresh)
  protected.POST("/logout", cfg.AuthHandler.Logout)
  // SSE
  protected.GET("/sse/stream", cfg.SSEHandler.Stream)
  // User
  protected.GET("/user", cfg.UserHandler.Me)
  protected.GET("/user/progress", cfg.UserHandler.Progress)
  protected.GET("/leaderboard", cfg.UserHandler.Leaderboard)
  // Categories
  protected.GET("/categories", cfg.CategoryHandler.List)
  protected.POST("/categories", cfg.CategoryHandler.Create)
  // Onboarding
  protected.GET("/onboarding/questions", cfg.OnboardingHandler.Questions)
  protected.POST("/onboarding/answers", cfg.OnboardingHandler.Submit)
  protected.GET("/priorities", cfg.OnboardingHandler.Priorities)
  protected.PUT("/priorities/order", cfg.OnboardingHandler.Reorder)
  // Goals
  protected.GET("/goals/catalog", cfg.GoalHandler.Catalog)
  protected.POST("/goals/templates", cfg.GoalHandler.CreateTemplate)
  protected.POST("/goals", cfg.GoalHandler.Subscribe)
  protected.GET("/goals", cfg.GoalHandler.ListMine)
  protected.GET("/goals/:id/preview", cfg.GoalHandler.Preview)
  protected.POST("/goals/:id/complete", cfg.GoalHandler.Complete)
  protected.DELETE("/goals/:id", cfg.GoalHandler.Archive)
  // Quotes
  protected.GET("/quote/today", cfg.QuoteHandler.QuoteOfTheDay)

  return router
}
