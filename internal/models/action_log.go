package models

import "time"

// ActionLog is the append-only audit trail of admin mutations. Entries are
// written once and only ever read back, paginated or as a CSV export.
type ActionLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"userId"`
	ActionType  string    `gorm:"type:varchar(100);not null" json:"actionType"`
	Description string    `gorm:"type:text;not null" json:"description"`
	EntityID    uint      `json:"entityId"`
	EntityType  string    `gorm:"type:varchar(100)" json:"entityType"`
	CreatedAt   time.Time `json:"createdAt"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
