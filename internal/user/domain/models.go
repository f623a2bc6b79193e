package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	RoleAdmin      = "admin"
	RoleChildAdmin = "child_admin"
)

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleChildAdmin
}

type User struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Username     string       `gorm:"uniqueIndex;not null" json:"username"`
	Email        string       `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string       `gorm:"not null" json:"-"`
	Role         string       `gorm:"not null;default:child_admin" json:"role"`
	IsActive     bool         `gorm:"not null;default:true" json:"isActive"`
	CreatedAt    time.Time    `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time    `gorm:"not null" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// AppAccess grants a child_admin visibility into one app.
type AppAccess struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID    snowflake.ID `gorm:"not null;uniqueIndex:idx_user_app_access_pair" json:"userId"`
	AppID     string       `gorm:"not null;uniqueIndex:idx_user_app_access_pair" json:"appId"`
	CreatedAt time.Time    `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time    `gorm:"not null" json:"updatedAt"`
}

func (AppAccess) TableName() string { return "user_app_access" }
