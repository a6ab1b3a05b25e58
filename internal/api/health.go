package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"codevimarsh/internal/storage"
)

// ISO 8601，UTC 並保留毫秒
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

const readyTimeout = 2 * time.Second

// Health 不依賴資料庫，只要程式在執行就回 OK
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"message":   "Server is running",
		"timestamp": time.Now().UTC().Format(timestampLayout),
	})
}

// Ready 透過連線池確認資料庫可用
func Ready(pool *storage.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if pool == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "not configured"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()

		if err := pool.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unavailable",
				"database": "down",
				"code":     storage.ErrorCode(err),
			})
			return
		}

		stats := pool.Stats()
		c.JSON(http.StatusOK, gin.H{
			"status":   "ready",
			"database": "up",
			"pool": gin.H{
				"max":    pool.Max(),
				"open":   stats.OpenConnections,
				"in_use": stats.InUse,
				"idle":   stats.Idle,
			},
		})
	}
}
