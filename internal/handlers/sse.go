package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/leveluphq/levelup-backend/internal/sse"
)

type SSEHandler struct {
  hub       *sse.SSEHub
}

func NewSSEHandler(hub *sse.SSEHub) *SSEHandler {
  return &SSEHandler{hub: hub}
}

// Stream subscribes the caller to their own event channel and blocks
// until the client disconnects.
func (sh *SSEHandler) Stream(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  client := sh.hub.NewSSEClient(userID)
  sh.hub.AddChannel(client, sse.UserChannel(userID))
  defer sh.hub.CloseClient(client)
  sh.hub.ServeHTTP(c.Writer, c.Request, client)
}
