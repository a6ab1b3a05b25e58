package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"codevimarsh/internal/middleware"
)

// ProxyGroup 把整個前綴轉發給外部服務，回應原樣傳回
type ProxyGroup struct {
	name   string
	target *url.URL
	proxy  *httputil.ReverseProxy
}

func NewProxyGroup(name, upstream string) (*ProxyGroup, error) {
	target, err := url.Parse(upstream)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream for %s: %w", name, err)
	}
	if (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		return nil, fmt.Errorf("invalid upstream for %s: %q must be an absolute http(s) URL", name, upstream)
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	director := proxy.Director
	proxy.Director = func(r *http.Request) {
		director(r)
		r.Host = target.Host
	}
	// 跨來源標頭只由閘道決定
	proxy.ModifyResponse = func(resp *http.Response) error {
		for key := range resp.Header {
			if strings.HasPrefix(key, "Access-Control-") {
				resp.Header.Del(key)
			}
		}
		return nil
	}
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		status, msg := http.StatusBadGateway, "bad gateway"
		if middleware.BodyTooLarge(err) {
			status, msg = http.StatusRequestEntityTooLarge, "request entity too large"
		} else {
			log.Printf("proxy %s: %s %s: %v", name, r.Method, r.URL.Path, err)
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		fmt.Fprintf(w, `{"error":%q}`, msg)
	}

	return &ProxyGroup{name: name, target: target, proxy: proxy}, nil
}

func (g *ProxyGroup) Register(rg *gin.RouterGroup) {
	rg.Any("", g.Handle)
	rg.Any("/*path", g.Handle)
}

// Handle 轉發請求。請求一律帶可取消的 context，
// ReverseProxy 才不會改用 CloseNotifier 監看用戶端斷線
func (g *ProxyGroup) Handle(c *gin.Context) {
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	g.proxy.ServeHTTP(c.Writer, c.Request.WithContext(ctx))
}

func (g *ProxyGroup) Target() *url.URL {
	return g.target
}
