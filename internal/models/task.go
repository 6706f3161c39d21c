package models

import (
	"fmt"
	"time"
)

type TaskStatus string

const (
	TaskStatusPending  TaskStatus = "Pending"
	TaskStatusProgress TaskStatus = "Progress"
	TaskStatusDone     TaskStatus = "Done"
)

type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Seq         uint64     `gorm:"not null;uniqueIndex:idx_tasks_project_seq,priority:2" json:"seq"`
	Code        string     `gorm:"type:varchar(300);not null" json:"code"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	Description string     `gorm:"type:text" json:"description"`
	UserID      uint64     `gorm:"not null" json:"user_id"`
	ProjectID   uint64     `gorm:"not null;uniqueIndex:idx_tasks_project_seq,priority:1" json:"project_id"`
	ViewCount   uint64     `gorm:"not null;default:0" json:"view_count"`
	Deleted     bool       `gorm:"not null;default:false" json:"deleted"`
	CreatedAt   time.Time  `json:"created"`
	UpdatedAt   time.Time  `json:"modified"`

	// Relations
	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}

// OwnerID reports the owning account.
func (t *Task) OwnerID() uint64 { return t.UserID }

// IsDeleted reports the soft-delete flag.
func (t *Task) IsDeleted() bool { return t.Deleted }

// SequenceCode formats the human-readable per-project task identifier.
func SequenceCode(initials string, seq uint64) string {
	return fmt.Sprintf("%s-%d", initials, seq)
}
