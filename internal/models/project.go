package models

import (
	"time"
)

type Project struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Initials     string    `gorm:"type:varchar(255);not null" json:"initials"`
	Description  string    `gorm:"type:text" json:"description"`
	UserID       uint64    `gorm:"not null" json:"user_id"`
	ViewCount    uint64    `gorm:"not null;default:0" json:"view_count"`
	Deleted      bool      `gorm:"not null;default:false" json:"deleted"`
	TaskSequence uint64    `gorm:"not null;default:0" json:"-"`
	CreatedAt    time.Time `json:"created"`
	UpdatedAt    time.Time `json:"modified"`

	// Relations
	User  User   `gorm:"foreignKey:UserID" json:"-"`
	Tasks []Task `gorm:"foreignKey:ProjectID" json:"-"`
}

// OwnerID reports the owning account.
func (p *Project) OwnerID() uint64 { return p.UserID }

// IsDeleted reports the soft-delete flag.
func (p *Project) IsDeleted() bool { return p.Deleted }
