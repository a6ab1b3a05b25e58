package middleware

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"codevimarsh/internal/routing"
	"codevimarsh/internal/stats"
)

// RouteGroupKey 是路由群組名稱在 gin.Context 中的鍵
const RouteGroupKey = "routeGroup"

const statsTimeout = 500 * time.Millisecond

// RouteGroup 以路由表標記請求所屬的群組，請求結束後交給 rec 記錄
func RouteGroup(table *routing.Table, rec stats.Recorder) gin.HandlerFunc {
	if rec == nil {
		rec = stats.Nop{}
	}
	return func(c *gin.Context) {
		var group string
		if r, ok := table.Match(c.Request.URL.Path); ok {
			group = r.Group
		}
		c.Set(RouteGroupKey, group)

		c.Next()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), statsTimeout)
		defer cancel()
		ev := stats.Event{
			Group:  group,
			Method: c.Request.Method,
			Status: c.Writer.Status(),
			At:     time.Now(),
		}
		if err := rec.Record(ctx, ev); err != nil {
			log.Printf("stats: record %s %s: %v", ev.Method, group, err)
		}
	}
}
