package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	SettlementYes = "yes"
	SettlementNo  = "no"
)

// Spend is the marketing spend recorded for one app on one IST calendar
// day. Date stores the UTC instant of that day's IST midnight.
type Spend struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	AppID       string       `gorm:"not null;uniqueIndex:idx_spends_app_date" json:"appId"`
	Date        time.Time    `gorm:"not null;uniqueIndex:idx_spends_app_date" json:"date"`
	SpendAmount float64      `gorm:"not null" json:"spendAmount"`
	ROI         float64      `gorm:"not null;default:0" json:"roi"`
	Settlement  string       `gorm:"not null;default:no" json:"settlement"`
	Notes       string       `gorm:"not null;default:''" json:"notes"`
	CreatedAt   time.Time    `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time    `gorm:"not null" json:"updatedAt"`
}

func (Spend) TableName() string { return "spends" }
