package http

import (
	"github.com/gin-gonic/gin"

	"wordlink/internal/api/ws"
	"wordlink/internal/store"
)

func NewRouter(gw *ws.Gateway, st *store.MemoryStore) *gin.Engine {
	r := gin.Default()

	// All gameplay runs over the websocket.
	r.GET("/ws", gw.HandleWS)

	// Ops endpoints.
	r.GET("/healthz", HealthHandler())
	r.GET("/stats", StatsHandler(gw, st))

	return r
}
