package api

import (
	"log"

	"codevimarsh/internal/api/handlers"
	"codevimarsh/internal/routing"
	"codevimarsh/internal/service"
	"codevimarsh/pkg/config"
)

// NewGroups 決定每個路由群組由誰處理：
// 有設定 UPSTREAM_<GROUP>_URL 時轉發到該服務；
// auth 與 users 在資料庫可用時使用內建實作；
// contact 是 /api 的 catch-all，未設定時不掛載，未知路徑維持 404；
// 其餘回 503。
func NewGroups(cfg *config.Config, services *service.Services) map[string]handlers.Group {
	groups := make(map[string]handlers.Group, len(config.UpstreamGroups))

	for _, name := range config.UpstreamGroups {
		if upstream := cfg.Upstreams[name]; upstream != "" {
			g, err := handlers.NewProxyGroup(name, upstream)
			if err == nil {
				groups[name] = g
				continue
			}
			log.Printf("route group %s: %v", name, err)
		}

		switch {
		case name == routing.GroupAuth && services != nil:
			groups[name] = handlers.NewAuthHandler(services.User, services.Tokens)
		case name == routing.GroupUsers && services != nil:
			groups[name] = handlers.NewUserHandler(services.User, services.Tokens)
		case name == routing.GroupContact:
		case name == routing.GroupAuth || name == routing.GroupUsers:
			groups[name] = handlers.NewUnavailableGroup(name, "database unavailable")
		default:
			groups[name] = handlers.NewUnavailableGroup(name, "handler group not configured")
		}
	}
	return groups
}
