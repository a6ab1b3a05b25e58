package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"codevimarsh/internal/api/handlers"
	"codevimarsh/internal/routing"
	"codevimarsh/internal/storage"
)

// SetupRoutes 依路由表掛載所有路由
func SetupRoutes(r *gin.Engine, table *routing.Table, groups map[string]handlers.Group, pool *storage.Pool) {
	for _, rt := range table.Routes() {
		switch rt.Kind {
		case routing.KindGroup:
			if g, ok := groups[rt.Group]; ok {
				g.Register(r.Group(rt.Prefix))
			}
		case routing.KindBuiltin:
			switch rt.Group {
			case routing.GroupHealth:
				r.GET(rt.Prefix, Health)
			case routing.GroupReady:
				r.GET(rt.Prefix, Ready(pool))
			}
		}
	}

	// 沒有註冊到的路徑再依前綴找一次，catch-all 群組（/api）在這裡接手
	r.NoRoute(func(c *gin.Context) {
		if rt, ok := table.Match(c.Request.URL.Path); ok {
			if rt.Kind == routing.KindGroup || rt.Kind == routing.KindCatchAll {
				if g, ok := groups[rt.Group]; ok {
					g.Handle(c)
					return
				}
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
}
