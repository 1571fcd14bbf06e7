package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/leveluphq/levelup-backend/internal/services"
)

type GoalHandler struct {
  goalService       services.GoalService
}

func NewGoalHandler(goalService services.GoalService) *GoalHandler {
  return &GoalHandler{goalService: goalService}
}

func goalIDParam(c *gin.Context) (uuid.UUID, bool) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
    return uuid.Nil, false
  }
  return id, true
}

func (gh *GoalHandler) Catalog(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  templates, err := gh.goalService.ListCatalog(c.Request.Context(), userID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"templates": templates})
}

func (gh *GoalHandler) CreateTemplate(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req services.CreateTemplateInput
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  template, err := gh.goalService.CreateTemplate(c.Request.Context(), userID, req)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, template)
}

func (gh *GoalHandler) Subscribe(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req struct {
    TemplateID    uuid.UUID   `json:"template_id"`
  }
  if err := c.ShouldBindJSON(&req); err != nil || req.TemplateID == uuid.Nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  goal, err := gh.goalService.Subscribe(c.Request.Context(), userID, req.TemplateID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, goal)
}

func (gh *GoalHandler) Archive(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  goalID, ok := goalIDParam(c)
  if !ok {
    return
  }
  if err := gh.goalService.Archive(c.Request.Context(), userID, goalID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"archived": true})
}

func (gh *GoalHandler) ListMine(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  views, err := gh.goalService.ListMine(c.Request.Context(), userID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"goals": views})
}

func (gh *GoalHandler) Preview(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  goalID, ok := goalIDParam(c)
  if !ok {
    return
  }
  preview, err := gh.goalService.Preview(c.Request.Context(), userID, goalID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, preview)
}

func (gh *GoalHandler) Complete(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  goalID, ok := goalIDParam(c)
  if !ok {
    return
  }
  result, err := gh.goalService.Complete(c.Request.Context(), userID, goalID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, result)
}
