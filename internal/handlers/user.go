package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/leveluphq/levelup-backend/internal/requestdata"
  "github.com/leveluphq/levelup-backend/internal/services"
)

type UserHandler struct {
  userService       services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
  return &UserHandler{userService: userService}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
    return uuid.Nil, false
  }
  return rd.UserID, true
}

func (uh *UserHandler) Me(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  user, err := uh.userService.GetMe(c.Request.Context(), userID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, user)
}

func (uh *UserHandler) Progress(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  prog, err := uh.userService.XPProgress(c.Request.Context(), userID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, prog)
}

func (uh *UserHandler) Leaderboard(c *gin.Context) {
  entries, err := uh.userService.Leaderboard(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"leaderboard": entries})
}
