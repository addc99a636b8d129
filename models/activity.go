package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog records one successful mutation for the notification feed.
type ActivityLog struct {
	ID       uint           `json:"id" gorm:"primaryKey"`
	UserID   string         `json:"user_id" gorm:"size:64;index"`
	Username string         `json:"username"`
	Action   string         `json:"action" gorm:"type:varchar(20)"` // create | update | delete
	Entity   string         `json:"entity" gorm:"type:varchar(20)"` // inventory | purchase | invoice | ...
	EntityID string         `json:"entity_id" gorm:"size:64"`
	Payload  datatypes.JSON `json:"payload" gorm:"type:json"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
