package models

import (
	"time"

	"gorm.io/gorm"
)

// ReminderKind identifies what a queued reminder refers to
type ReminderKind string

const (
	ReminderEvent   ReminderKind = "event"
	ReminderCooking ReminderKind = "cooking"
	ReminderTodo    ReminderKind = "todo"
	ReminderGeneric ReminderKind = "generic"
)

// Reminder is a queued, time-triggered, at-most-once notification. Rows are
// never deleted; Sent only ever moves from false to true, so the table doubles
// as an audit trail of everything that was ever queued.
type Reminder struct {
	ID          uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	Kind        ReminderKind `gorm:"size:10;not null" json:"kind"`
	ReferenceID string       `gorm:"size:50;not null;index" json:"reference_id"`
	UserID      uint         `gorm:"not null;index" json:"user_id"`
	TriggerTime time.Time    `gorm:"not null;index" json:"trigger_time"`
	Message     string       `gorm:"size:500" json:"message"`
	Sent        bool         `gorm:"not null;default:false;index" json:"sent"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
}

// BeforeCreate hook is called before creating a new reminder
func (r *Reminder) BeforeCreate(tx *gorm.DB) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	return nil
}

// TableName specifies the table name for the Reminder model
func (Reminder) TableName() string {
	return "reminder"
}
