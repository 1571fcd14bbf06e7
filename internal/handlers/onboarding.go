package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/leveluphq/levelup-backend/internal/priorities"
  "github.com/leveluphq/levelup-backend/internal/services"
)

type OnboardingHandler struct {
  onboardingService       services.OnboardingService
}

func NewOnboardingHandler(onboardingService services.OnboardingService) *OnboardingHandler {
  return &OnboardingHandler{onboardingService: onboardingService}
}

func (oh *OnboardingHandler) Questions(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  questions, err := oh.onboardingService.ListQuestions(c.Request.Context(), userID, c.Query("lang"))
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"questions": questions})
}

func (oh *OnboardingHandler) Submit(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req struct {
    Language      string                    `json:"language"`
    Answers       []priorities.Answer       `json:"answers"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  rows, err := oh.onboardingService.SubmitAnswers(c.Request.Context(), userID, req.Language, req.Answers)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, gin.H{"priorities": rows})
}

func (oh *OnboardingHandler) Priorities(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  rows, err := oh.onboardingService.GetPriorities(c.Request.Context(), userID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"priorities": rows})
}

func (oh *OnboardingHandler) Reorder(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req struct {
    OrderedCategoryIDs    []uuid.UUID   `json:"ordered_category_ids"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  rows, err := oh.onboardingService.Reorder(c.Request.Context(), userID, req.OrderedCategoryIDs)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"priorities": rows})
}
