package api

import (
	"github.com/gin-gonic/gin"

	"codevimarsh/internal/api/handlers"
	"codevimarsh/internal/corspolicy"
	"codevimarsh/internal/middleware"
	"codevimarsh/internal/routing"
	"codevimarsh/internal/stats"
	"codevimarsh/internal/storage"
	"codevimarsh/pkg/config"
)

// Dependencies 是組裝閘道所需的元件，建立後不再變動
type Dependencies struct {
	Config *config.Config
	Table  *routing.Table
	Policy *corspolicy.Policy
	Groups map[string]handlers.Group
	// Pool 為 nil 表示資料庫無法開啟
	Pool  *storage.Pool
	Stats stats.Recorder
	// RateLimit 為 nil 表示未啟用限流
	RateLimit *middleware.RateLimitStore
}

// PolicyOptions 把設定轉成跨來源政策的參數
func PolicyOptions(cfg config.CORSConfig) corspolicy.Options {
	return corspolicy.Options{
		FrontendURL:       cfg.FrontendURL,
		FrontendDomain:    cfg.FrontendDomain,
		DeploymentURL:     cfg.DeploymentURL,
		DeploymentID:      cfg.DeploymentID,
		DevelopmentBypass: cfg.DevBypass,
		TrustedSubstrings: cfg.TrustedSubstrings,
	}
}

// NewServer 建立完整的請求處理流程：
// 統計 → 跨來源 → 安全標頭 → 大小限制 → 限流 → 靜態檔案 → 路由
func NewServer(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	if deps.Table == nil {
		deps.Table = routing.Default()
	}
	if deps.Policy == nil {
		deps.Policy = corspolicy.New(PolicyOptions(cfg.CORS))
	}

	r := gin.Default()
	r.Use(middleware.RouteGroup(deps.Table, deps.Stats))
	r.Use(middleware.CORS(deps.Policy))
	r.Use(middleware.SecureHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	if deps.RateLimit != nil {
		r.Use(middleware.RateLimit(deps.RateLimit, cfg.RateLimit.RetryAfter))
	}

	for _, rt := range deps.Table.Routes() {
		if rt.Kind == routing.KindStatic {
			mountUploads(r, rt.Prefix, cfg.Uploads.Dir)
		}
	}

	SetupRoutes(r, deps.Table, deps.Groups, deps.Pool)
	return r
}
