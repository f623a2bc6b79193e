package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	TagPrimary = "primary"
	TagRetry   = "retry"
	TagBackup  = "backup"
	TagCustom  = "custom"
)

func ValidTag(tag string) bool {
	switch tag {
	case TagPrimary, TagRetry, TagBackup, TagCustom:
		return true
	}
	return false
}

// Collection is one UPI collection id registered for an app under a tag.
// A collection id appears at most once per app, whatever its tag.
type Collection struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	AppID        string       `gorm:"not null;uniqueIndex:idx_collections_app_collection" json:"appId"`
	CollectionID string       `gorm:"not null;uniqueIndex:idx_collections_app_collection" json:"collectionId"`
	Tag          string       `gorm:"not null" json:"tag"`
	CreatedAt    time.Time    `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time    `gorm:"not null" json:"updatedAt"`
}

func (Collection) TableName() string { return "collections" }
