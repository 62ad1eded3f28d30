package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wordlink/internal/api/ws"
	"wordlink/internal/store"
)

func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func StatsHandler(gw *ws.Gateway, st *store.MemoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, StatsResponse{
			Rooms:       st.Len(),
			Connections: gw.ConnectionCount(),
		})
	}
}
