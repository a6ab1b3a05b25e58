package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"codevimarsh/internal/middleware"
	"codevimarsh/internal/models"
	"codevimarsh/internal/service"
	"codevimarsh/internal/utils"
)

// UserHandler 處理會員資料的查詢，所有路由都需要登入
type UserHandler struct {
	userService *service.UserService
	tokens      *utils.TokenManager
}

func NewUserHandler(userService *service.UserService, tokens *utils.TokenManager) *UserHandler {
	return &UserHandler{userService: userService, tokens: tokens}
}

func (h *UserHandler) Register(rg *gin.RouterGroup) {
	rg.Use(middleware.AuthMiddleware(h.tokens))
	rg.GET("/me", h.Me)
	rg.GET("/:id", h.GetUser)
}

func (h *UserHandler) Handle(c *gin.Context) {
	notFound(c)
}

// Me 回傳目前登入的會員
func (h *UserHandler) Me(c *gin.Context) {
	h.respondUser(c, c.GetUint("userID"))
}

// GetUser 回傳指定會員；一般會員只能查詢自己
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if uint(id) != c.GetUint("userID") && c.GetString("userRole") != string(models.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	h.respondUser(c, uint(id))
}

func (h *UserHandler) respondUser(c *gin.Context, id uint) {
	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}
	c.JSON(http.StatusOK, user)
}
