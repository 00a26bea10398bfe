package model

import (
	"time"

	"gorm.io/datatypes"
)

type WebhookLog struct {
	ID        int64          `gorm:"primaryKey;autoIncrement;<-:create"`
	Gateway   Gateway        `gorm:"type:varchar(16);not null;index"`
	Method    string         `gorm:"type:varchar(64);not null"`
	RequestID string         `gorm:"type:varchar(255)"`
	Payload   datatypes.JSON `gorm:"type:json"`
	ErrorCode int            `gorm:"not null;default:0"`
	CreatedAt time.Time      `gorm:"type:timestamp;default:CURRENT_TIMESTAMP"`
}
