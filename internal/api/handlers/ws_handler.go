package handlers

import (
	"log"
	"net/http"

	"github.com/adflow-io/adflow-go/internal/api/middleware"
	"github.com/adflow-io/adflow-go/internal/ws"
	"github.com/adflow-io/adflow-go/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WSHandler struct {
	hub *ws.Hub
}

func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// Events streams request lifecycle events. Browsers cannot set headers
// on websocket dials, so the token rides in the query string.
func (h *WSHandler) Events(c *gin.Context) {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "token required"})
		return
	}

	claims, err := middleware.ParseToken(tokenStr)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}

	staff := claims.Role == "operator" || claims.Role == "admin"
	h.hub.Subscribe(conn, staff)
}
