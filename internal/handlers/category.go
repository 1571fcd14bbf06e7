package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/leveluphq/levelup-backend/internal/services"
)

type CategoryHandler struct {
  categoryService       services.CategoryService
}

func NewCategoryHandler(categoryService services.CategoryService) *CategoryHandler {
  return &CategoryHandler{categoryService: categoryService}
}

func (ch *CategoryHandler) List(c *gin.Context) {
  categories, err := ch.categoryService.List(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"categories": categories})
}

func (ch *CategoryHandler) Create(c *gin.Context) {
  var req struct {
    Name      string      `json:"name"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  category, err := ch.categoryService.Create(c.Request.Context(), req.Name)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, category)
}
