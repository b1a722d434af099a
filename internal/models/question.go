package models

import "time"

type Question struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Text   string `gorm:"type:text;uniqueIndex;not null" json:"text"`
	Answer string `gorm:"type:text;not null" json:"answer"`
	// Nullable: a question survives with no category only through direct
	// updates; category deletion removes its questions outright.
	CategoryID *uint     `gorm:"index" json:"categoryId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
