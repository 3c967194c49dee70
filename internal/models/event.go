package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendeeStatus represents an attendee's RSVP state
type AttendeeStatus string

const (
	AttendeePending  AttendeeStatus = "pending"
	AttendeeAccepted AttendeeStatus = "accepted"
	AttendeeDeclined AttendeeStatus = "declined"
)

// Event represents a household event
type Event struct {
	ID          string     `gorm:"primaryKey;size:50" json:"id"`
	Title       string     `gorm:"size:100;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	EventDate   time.Time  `gorm:"not null;index" json:"event_date"`
	EventTime   *time.Time `json:"event_time"` // nil when the time is still TBD
	CreatedBy   uint       `gorm:"not null" json:"created_by"`
	Remind24h   bool       `gorm:"not null;default:true" json:"remind_24h"`
	Remind1h    bool       `gorm:"not null;default:true" json:"remind_1h"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`

	Attendees []EventAttendee `gorm:"foreignKey:EventID" json:"attendees,omitempty"`
}

// EventAttendee represents a member's RSVP for an event
type EventAttendee struct {
	EventID     string         `gorm:"primaryKey;size:50" json:"event_id"`
	UserID      uint           `gorm:"primaryKey" json:"user_id"`
	Status      AttendeeStatus `gorm:"size:10;not null;default:pending" json:"status"`
	RespondedAt *time.Time     `json:"responded_at"`
}

// BeforeCreate hook is called before creating a new event
func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = now
	}
	return nil
}

// TableName specifies the table name for the Event model
func (Event) TableName() string {
	return "event"
}

// TableName specifies the table name for the EventAttendee model
func (EventAttendee) TableName() string {
	return "event_attendee"
}

// CreateEventRequest represents the data needed to create a new event
type CreateEventRequest struct {
	Title       string   `json:"title" binding:"required,max=100"`
	Description string   `json:"description" binding:"max=500"`
	Date        string   `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string   `json:"time"`                    // HH:MM, optional
	Remind24h   *bool    `json:"remind_24h"`
	Remind1h    *bool    `json:"remind_1h"`
	Attendees   []string `json:"attendees"` // usernames invited alongside the creator
}

// RSVPRequest represents an attendee's response to an invitation
type RSVPRequest struct {
	Status AttendeeStatus `json:"status" binding:"required,oneof=accepted declined"`
}
