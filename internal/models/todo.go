package models

import (
	"time"

	"gorm.io/gorm"
)

// TodoStatus represents a task's lifecycle state
type TodoStatus string

const (
	TodoPending   TodoStatus = "pending"
	TodoCompleted TodoStatus = "completed"
)

// Todo represents a household task
type Todo struct {
	ID               uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID           uint       `gorm:"not null;index" json:"user_id"`
	Title            string     `gorm:"size:100;not null" json:"title"`
	Description      string     `gorm:"size:500" json:"description"`
	EstimatedMinutes int        `gorm:"not null;default:30" json:"estimated_minutes"`
	Importance       int        `gorm:"not null;default:3" json:"importance"` // 1 (low) to 5 (critical)
	Category         string     `gorm:"size:30;not null;default:general" json:"category"`
	Status           TodoStatus `gorm:"size:10;not null;default:pending;index" json:"status"`
	DueDate          *time.Time `json:"due_date"`
	CreatedAt        time.Time  `gorm:"not null" json:"created_at"`
	CompletedAt      *time.Time `json:"completed_at"`
}

// BeforeCreate hook is called before creating a new todo
func (t *Todo) BeforeCreate(tx *gorm.DB) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	if t.EstimatedMinutes <= 0 {
		t.EstimatedMinutes = 30
	}
	if t.Importance < 1 || t.Importance > 5 {
		t.Importance = 3
	}
	if t.Category == "" {
		t.Category = "general"
	}
	if t.Status == "" {
		t.Status = TodoPending
	}
	return nil
}

// TableName specifies the table name for the Todo model
func (Todo) TableName() string {
	return "todo"
}

// PlanEntry represents one slot of a member's daily plan. Regenerating a
// day's plan replaces all prior entries for that (user, date).
type PlanEntry struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint      `gorm:"not null;index:idx_plan_user_date" json:"user_id"`
	TodoID          uint      `gorm:"not null" json:"todo_id"`
	ScheduledDate   time.Time `gorm:"not null;index:idx_plan_user_date" json:"scheduled_date"`
	StartTime       string    `gorm:"size:5;not null" json:"start_time"` // HH:MM
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	Rationale       string    `gorm:"size:200" json:"rationale"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`

	Todo Todo `gorm:"foreignKey:TodoID" json:"todo,omitempty"`
}

// TableName specifies the table name for the PlanEntry model
func (PlanEntry) TableName() string {
	return "plan_entry"
}

// CreateTodoRequest represents the data needed to create a todo
type CreateTodoRequest struct {
	Title            string `json:"title" binding:"required,max=100"`
	Description      string `json:"description" binding:"max=500"`
	EstimatedMinutes int    `json:"estimated_minutes" binding:"omitempty,min=1,max=1440"`
	Importance       int    `json:"importance" binding:"omitempty,min=1,max=5"`
	Category         string `json:"category" binding:"max=30"`
	DueDate          string `json:"due_date"` // YYYY-MM-DD, optional
}

// QuickTodoRequest represents a free-form task description to be parsed
type QuickTodoRequest struct {
	Text string `json:"text" binding:"required,max=500"`
}

// UpdateTodoStatusRequest represents a status change for a todo
type UpdateTodoStatusRequest struct {
	Status TodoStatus `json:"status" binding:"required,oneof=pending completed"`
}
