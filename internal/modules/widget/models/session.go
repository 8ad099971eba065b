package models

import (
	"time"

	"gorm.io/datatypes"
)

// WidgetSession is one visitor's widget: the resolved bot plus the full
// application state serialised as JSON.
type WidgetSession struct {
	ID         string         `json:"id" gorm:"type:varchar(36);primaryKey"`
	BotID      string         `json:"bot_id" gorm:"type:varchar(64);index"`
	Alias      string         `json:"alias" gorm:"type:varchar(128)"`
	Status     string         `json:"status" gorm:"type:varchar(20);not null;default:'no_bot'"`
	State      datatypes.JSON `json:"state"`
	LastSeenAt time.Time      `json:"last_seen_at" gorm:"not null;index"`
	CreatedAt  time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for WidgetSession
func (WidgetSession) TableName() string {
	return "widget_sessions"
}
