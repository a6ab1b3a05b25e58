package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Group 是掛載在固定路徑前綴下的一組路由。
// 閘道不檢查群組內部的行為，只負責把請求交給它。
type Group interface {
	// Register 在前綴對應的 RouterGroup 上註冊路由
	Register(rg *gin.RouterGroup)
	// Handle 處理落在前綴內、但沒有對應路由的請求
	Handle(c *gin.Context)
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
}

// UnavailableGroup 在群組沒有可用的後端時回 503
type UnavailableGroup struct {
	name   string
	reason string
}

func NewUnavailableGroup(name, reason string) *UnavailableGroup {
	return &UnavailableGroup{name: name, reason: reason}
}

func (g *UnavailableGroup) Register(rg *gin.RouterGroup) {
	rg.Any("", g.Handle)
	rg.Any("/*path", g.Handle)
}

func (g *UnavailableGroup) Handle(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"error": g.reason,
		"group": g.name,
	})
}
