package models

import "time"

// AuthToken binds an opaque bearer key to exactly one account.
type AuthToken struct {
	Key       string    `gorm:"primarykey;type:varchar(64)" json:"-"`
	UserID    uint64    `gorm:"uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
