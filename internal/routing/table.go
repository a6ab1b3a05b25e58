package routing

import (
	"fmt"
	"strings"
)

// 路由群組名稱
const (
	GroupAuth          = "auth"
	GroupUsers         = "users"
	GroupAnnouncements = "announcements"
	GroupTeam          = "team"
	GroupEvents        = "events"
	GroupAdmin         = "admin"
	GroupUpload        = "upload"
	GroupResources     = "resources"
	GroupCode          = "code"
	GroupAptitude      = "aptitude"
	GroupConcept       = "concept"
	GroupContact       = "contact"
	GroupHealth        = "health"
	GroupReady         = "ready"
	GroupUploads       = "uploads"
)

// Kind 描述一個前綴由誰處理
type Kind int

const (
	// KindGroup 由外部路由群組處理
	KindGroup Kind = iota
	// KindCatchAll 同樣交給路由群組，但只接收其他前綴都沒有吃下的請求
	KindCatchAll
	// KindBuiltin 由閘道本身回應（健康檢查等）
	KindBuiltin
	// KindStatic 靜態檔案
	KindStatic
)

type Route struct {
	Prefix string
	Group  string
	Kind   Kind
}

// Table 是建立後不可變的前綴路由表
type Table struct {
	routes []Route
}

func NewTable(routes ...Route) (*Table, error) {
	seen := make(map[string]bool, len(routes))
	for _, r := range routes {
		if !strings.HasPrefix(r.Prefix, "/") {
			return nil, fmt.Errorf("route prefix %q must start with /", r.Prefix)
		}
		if len(r.Prefix) > 1 && strings.HasSuffix(r.Prefix, "/") {
			return nil, fmt.Errorf("route prefix %q must not end with /", r.Prefix)
		}
		if seen[r.Prefix] {
			return nil, fmt.Errorf("duplicate route prefix %q", r.Prefix)
		}
		seen[r.Prefix] = true
	}
	return &Table{routes: append([]Route(nil), routes...)}, nil
}

// Default 回傳網站後端使用的路由表
func Default() *Table {
	t, err := NewTable(
		Route{"/api/auth", GroupAuth, KindGroup},
		Route{"/api/users", GroupUsers, KindGroup},
		Route{"/api/announcements", GroupAnnouncements, KindGroup},
		Route{"/api/team", GroupTeam, KindGroup},
		Route{"/api/events", GroupEvents, KindGroup},
		Route{"/api/admin", GroupAdmin, KindGroup},
		Route{"/api/upload", GroupUpload, KindGroup},
		Route{"/api/resources", GroupResources, KindGroup},
		Route{"/api/code", GroupCode, KindGroup},
		Route{"/api/aptitude", GroupAptitude, KindGroup},
		Route{"/api/concept", GroupConcept, KindGroup},
		Route{"/api", GroupContact, KindCatchAll},
		Route{"/api/health", GroupHealth, KindBuiltin},
		Route{"/api/ready", GroupReady, KindBuiltin},
		Route{"/uploads", GroupUploads, KindStatic},
	)
	if err != nil {
		panic(err)
	}
	return t
}

// Routes 依插入順序回傳所有路由
func (t *Table) Routes() []Route {
	return append([]Route(nil), t.routes...)
}

// Match 找出與路徑相符的最長前綴，只在路徑段落邊界上比對
func (t *Table) Match(path string) (Route, bool) {
	var (
		best  Route
		found bool
	)
	for _, r := range t.routes {
		if !hasSegmentPrefix(path, r.Prefix) {
			continue
		}
		if !found || len(r.Prefix) > len(best.Prefix) {
			best, found = r, true
		}
	}
	return best, found
}

func hasSegmentPrefix(path, prefix string) bool {
	if prefix == "/" {
		return strings.HasPrefix(path, "/")
	}
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}
