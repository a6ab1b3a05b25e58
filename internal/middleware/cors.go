package middleware

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"codevimarsh/internal/corspolicy"
)

// CORS 把跨來源政策的判定轉成 HTTP 回應。
// 允許時回傳請求的 Origin 並允許憑證；拒絕時以 403 中止請求。
func CORS(policy *corspolicy.Policy) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if policy.Evaluate(origin) == corspolicy.Allow {
				return true
			}
			log.Printf("cors: origin %q not allowed", origin)
			return false
		},
		AllowMethods:     corspolicy.AllowedMethods,
		AllowHeaders:     corspolicy.AllowedHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
