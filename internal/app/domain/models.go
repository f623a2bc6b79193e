package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// App is one tenant application reporting payments into the platform.
// AppID is the external 5-digit identifier and never changes after create.
type App struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	AppID      string       `gorm:"uniqueIndex;not null" json:"appId"`
	AppName    string       `gorm:"not null" json:"appName"`
	AppLogoURL string       `json:"appLogoUrl"`
	CreatedAt  time.Time    `gorm:"not null" json:"createdAt"`
	UpdatedAt  time.Time    `gorm:"not null" json:"updatedAt"`
}

func (App) TableName() string { return "apps" }
