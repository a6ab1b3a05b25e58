package models

import (
	"gorm.io/gorm"
)

// User 表示網站的會員
type User struct {
	gorm.Model          // 內嵌 gorm.Model，提供 ID、CreatedAt、UpdatedAt 和 DeletedAt 字段
	Name       string   `gorm:"size:100;not null" json:"name"`
	Email      string   `gorm:"size:255;uniqueIndex;not null" json:"email"` // 登入帳號，必須唯一
	Password   string   `gorm:"not null" json:"-"`                          // 密碼雜湊，json 序列化時會被忽略
	Role       UserRole `gorm:"size:20;not null;default:student" json:"role"`
}

// UserRole 定義用戶角色的類型
type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleAdmin   UserRole = "admin"
)
