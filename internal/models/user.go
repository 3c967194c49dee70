package models

import (
	"time"
)

// User represents a household member
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:30;not null" json:"username" binding:"required,alphanum"`
	Email     string    `gorm:"size:255" json:"email"` // delivery contact; empty means unreachable
	Timezone  string    `gorm:"size:64;not null;default:UTC" json:"timezone"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "user"
}

// CreateUserRequest represents the data needed to register a household member
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,alphanum,min=2,max=30"`
	Email    string `json:"email" binding:"omitempty,email"`
	Timezone string `json:"timezone"`
}
