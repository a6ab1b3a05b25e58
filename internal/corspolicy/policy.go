// Package corspolicy 決定一個跨來源請求是否被允許。
//
// 白名單在啟動時由 Options 建立一次，之後不再變動；
// Evaluate 只回傳 Allow 或 Deny，如何轉成 HTTP 回應由中間件負責。
package corspolicy

import (
	"net/http"
	"strings"
)

// Decision 是跨來源政策的判定結果
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// 本機開發用的固定來源
var LocalOrigins = []string{
	"http://localhost:3000",
	"http://localhost:3001",
}

// 預覽部署網域，來源字串包含其中之一即放行
var DefaultTrustedSubstrings = []string{"vercel.app", "vercel.dev"}

var (
	AllowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	AllowedHeaders = []string{"Content-Type", "Authorization"}
)

// Options 是建立白名單所需的全部設定
type Options struct {
	FrontendURL    string
	FrontendDomain string
	// DeploymentURL 與 DeploymentID 通常只有主機名稱，會補上 https://
	DeploymentURL string
	DeploymentID  string
	// DevelopmentBypass 開啟時任何來源都放行，只應在本機開發使用
	DevelopmentBypass bool
	// nil 時使用 DefaultTrustedSubstrings
	TrustedSubstrings []string
}

type Policy struct {
	allowList []string
	devBypass bool
	trusted   []string
}

func New(opts Options) *Policy {
	candidates := append([]string{}, LocalOrigins...)
	candidates = append(candidates,
		opts.FrontendURL,
		withHTTPS(opts.DeploymentURL),
		withHTTPS(opts.DeploymentID),
		opts.FrontendDomain,
	)

	allowList := make([]string, 0, len(candidates))
	for _, origin := range candidates {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowList = append(allowList, origin)
		}
	}

	trusted := opts.TrustedSubstrings
	if trusted == nil {
		trusted = DefaultTrustedSubstrings
	}
	cleaned := make([]string, 0, len(trusted))
	for _, s := range trusted {
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}

	return &Policy{
		allowList: allowList,
		devBypass: opts.DevelopmentBypass,
		trusted:   cleaned,
	}
}

func withHTTPS(host string) string {
	host = strings.TrimSpace(host)
	if host == "" || strings.Contains(host, "://") {
		return host
	}
	return "https://" + host
}

// AllowList 回傳白名單的副本
func (p *Policy) AllowList() []string {
	return append([]string(nil), p.allowList...)
}

// Evaluate 判定指定 Origin 是否允許
func (p *Policy) Evaluate(origin string) Decision {
	// 沒有 Origin 的請求（curl、行動 App）一律放行
	if origin == "" {
		return Allow
	}

	for _, allowed := range p.allowList {
		if origin == allowed {
			return Allow
		}
	}

	if p.devBypass {
		return Allow
	}

	for _, s := range p.trusted {
		if strings.Contains(origin, s) {
			return Allow
		}
	}

	return Deny
}
