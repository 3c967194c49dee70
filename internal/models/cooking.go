package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MealType represents which meal of the day an entry covers
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snacks    MealType = "snacks"
)

// StringList represents a list of strings stored as JSONB
type StringList []string

func (s *StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = make([]string, 0)
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}
}

// CookingEntry represents one scheduled meal. The schema does not enforce
// uniqueness per (cook_date, meal_type); duplicate entries are legal and each
// is independently reminder-eligible.
type CookingEntry struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CookDate     time.Time      `gorm:"not null;index" json:"cook_date"`
	MealType     MealType       `gorm:"size:10;not null" json:"meal_type"`
	CookID       uint           `gorm:"not null;index" json:"cook_id"`
	DishName     string         `gorm:"size:100;not null" json:"dish_name"`
	Ingredients  StringList     `gorm:"type:jsonb" json:"ingredients"`
	Instructions StringList     `gorm:"type:jsonb" json:"instructions"`
	Recipe       datatypes.JSON `gorm:"type:jsonb" json:"recipe,omitempty"` // raw generator payload
	Notes        string         `gorm:"size:500" json:"notes"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
}

// BeforeCreate hook is called before creating a new cooking entry
func (c *CookingEntry) BeforeCreate(tx *gorm.DB) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	return nil
}

// TableName specifies the table name for the CookingEntry model
func (CookingEntry) TableName() string {
	return "cooking_entry"
}

// CreateCookingRequest represents the data needed to schedule a meal
type CreateCookingRequest struct {
	Date     string   `json:"date" binding:"required"` // YYYY-MM-DD
	MealType MealType `json:"meal_type" binding:"required,oneof=breakfast lunch dinner snacks"`
	DishName string   `json:"dish_name" binding:"required,max=100"`
	Servings int      `json:"servings" binding:"omitempty,min=1,max=20"`
	Notes    string   `json:"notes" binding:"max=500"`
}
