package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusRetry   = "retry"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusSuccess, StatusFailed, StatusRetry:
		return true
	}
	return false
}

// Payment is one gateway transaction, keyed by the gateway uuid so webhook
// redelivery lands on the same row. Ant is an opaque gateway passthrough.
type Payment struct {
	ID              snowflake.ID `gorm:"primaryKey" json:"id"`
	UUID            string       `gorm:"uniqueIndex;not null" json:"uuid"`
	AppID           string       `gorm:"index;not null" json:"appId"`
	PtStatus        string       `gorm:"not null" json:"ptStatus"`
	CollectionID    string       `json:"collectionId"`
	Ant             string       `json:"ant"`
	Amount          float64      `json:"amount"`
	TransactionDate time.Time    `gorm:"index;not null" json:"transactionDate"`
	CreatedAt       time.Time    `gorm:"not null" json:"createdAt"`
	UpdatedAt       time.Time    `gorm:"not null" json:"updatedAt"`
}

func (Payment) TableName() string { return "payments" }

// Point is the slice of a payment the aggregation engine consumes.
type Point struct {
	AppID           string
	TransactionDate time.Time
	Amount          float64
	PtStatus        string
}
