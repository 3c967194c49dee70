package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homehub/internal/models"
	"homehub/internal/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store wraps the relational database behind the operations the rest of the
// system consumes. Workers and handlers receive a Store rather than reaching
// for a package-level connection so they can be tested in isolation.
type Store struct {
	db *gorm.DB
}

// New creates a Store on top of an initialized gorm connection
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ---------- users ----------

// GetOrCreateUser returns the member with the given username, creating a
// record on first sight.
func (s *Store) GetOrCreateUser(ctx context.Context, username, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup user %s: %w", username, err)
	}

	user = models.User{
		Username:  username,
		Email:     email,
		Timezone:  "UTC",
		CreatedAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user %s: %w", username, err)
	}
	return &user, nil
}

// GetUserByUsername returns a member by username, or nil if unknown
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user %s: %w", username, err)
	}
	return &user, nil
}

// ---------- events ----------

// CreateEvent persists a new event
func (s *Store) CreateEvent(ctx context.Context, event *models.Event) error {
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// GetEvent returns an event by id, or nil if it no longer exists
func (s *Store) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup event %s: %w", id, err)
	}
	return &event, nil
}

// UpcomingEvents returns events dated today or later, soonest first
func (s *Store) UpcomingEvents(ctx context.Context, now time.Time, limit int) ([]models.Event, error) {
	var events []models.Event
	err := s.db.WithContext(ctx).
		Where("event_date >= ?", utils.DateOf(now)).
		Order("event_date, event_time").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	return events, nil
}

// SetAttendeeStatus records or updates a member's RSVP for an event
func (s *Store) SetAttendeeStatus(ctx context.Context, eventID string, userID uint, status models.AttendeeStatus) error {
	now := time.Now()
	attendee := models.EventAttendee{
		EventID:     eventID,
		UserID:      userID,
		Status:      status,
		RespondedAt: &now,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "responded_at"}),
	}).Create(&attendee).Error
	if err != nil {
		return fmt.Errorf("set attendee status: %w", err)
	}
	return nil
}

// Attendees returns every RSVP row for an event
func (s *Store) Attendees(ctx context.Context, eventID string) ([]models.EventAttendee, error) {
	var attendees []models.EventAttendee
	err := s.db.WithContext(ctx).Where("event_id = ?", eventID).Find(&attendees).Error
	if err != nil {
		return nil, fmt.Errorf("list attendees for event %s: %w", eventID, err)
	}
	return attendees, nil
}

// AcceptedAttendees returns the user ids of attendees who accepted the
// invitation. Only these members receive generated reminders.
func (s *Store) AcceptedAttendees(ctx context.Context, eventID string) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&models.EventAttendee{}).
		Where("event_id = ? AND status = ?", eventID, models.AttendeeAccepted).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list accepted attendees for event %s: %w", eventID, err)
	}
	return ids, nil
}

// ---------- cooking schedule ----------

// AddCookingEntry persists a new cooking schedule entry
func (s *Store) AddCookingEntry(ctx context.Context, entry *models.CookingEntry) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create cooking entry: %w", err)
	}
	return nil
}

// CookingForDate returns every entry scheduled on the given calendar date
func (s *Store) CookingForDate(ctx context.Context, date time.Time) ([]models.CookingEntry, error) {
	day := utils.DateOf(date)
	var entries []models.CookingEntry
	err := s.db.WithContext(ctx).
		Where("cook_date >= ? AND cook_date < ?", day, day.AddDate(0, 0, 1)).
		Order("meal_type").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list cooking entries for %s: %w", day.Format("2006-01-02"), err)
	}
	return entries, nil
}

// UpcomingCooking returns entries from the given date onward
func (s *Store) UpcomingCooking(ctx context.Context, from time.Time, limit int) ([]models.CookingEntry, error) {
	var entries []models.CookingEntry
	err := s.db.WithContext(ctx).
		Where("cook_date >= ?", utils.DateOf(from)).
		Order("cook_date, meal_type").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list upcoming cooking entries: %w", err)
	}
	return entries, nil
}

// ---------- todos ----------

// CreateTodo persists a new task
func (s *Store) CreateTodo(ctx context.Context, todo *models.Todo) error {
	if err := s.db.WithContext(ctx).Create(todo).Error; err != nil {
		return fmt.Errorf("create todo: %w", err)
	}
	return nil
}

// GetTodo returns a task by id, or nil if unknown
func (s *Store) GetTodo(ctx context.Context, id uint) (*models.Todo, error) {
	var todo models.Todo
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&todo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup todo %d: %w", id, err)
	}
	return &todo, nil
}

// PendingTodos returns a member's open tasks, most important first
func (s *Store) PendingTodos(ctx context.Context, userID uint, limit int) ([]models.Todo, error) {
	var todos []models.Todo
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.TodoPending).
		Order("importance DESC, due_date ASC, created_at DESC").
		Limit(limit).
		Find(&todos).Error
	if err != nil {
		return nil, fmt.Errorf("list pending todos for user %d: %w", userID, err)
	}
	return todos, nil
}

// TodosByStatus returns a member's tasks filtered by status; pass "all" to
// list everything
func (s *Store) TodosByStatus(ctx context.Context, userID uint, status string, limit int) ([]models.Todo, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "all" {
		query = query.Where("status = ?", status)
	}
	var todos []models.Todo
	err := query.Order("importance DESC, due_date ASC, created_at DESC").Limit(limit).Find(&todos).Error
	if err != nil {
		return nil, fmt.Errorf("list todos for user %d: %w", userID, err)
	}
	return todos, nil
}

// UpdateTodoStatus flips a task between pending and completed
func (s *Store) UpdateTodoStatus(ctx context.Context, id uint, status models.TodoStatus) error {
	updates := map[string]interface{}{"status": status, "completed_at": nil}
	if status == models.TodoCompleted {
		updates["completed_at"] = time.Now()
	}
	result := s.db.WithContext(ctx).Model(&models.Todo{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("update todo %d status: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteTodo removes a task
func (s *Store) DeleteTodo(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.Todo{}, id).Error; err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}
	return nil
}

// ---------- planner ----------

// ReplaceDailyPlan discards a member's plan for a date and stores the new
// entries in its place. Plans are superseded wholesale, never merged.
func (s *Store) ReplaceDailyPlan(ctx context.Context, userID uint, date time.Time, entries []models.PlanEntry) error {
	day := utils.DateOf(date)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND scheduled_date = ?", userID, day).
			Delete(&models.PlanEntry{}).Error; err != nil {
			return fmt.Errorf("clear daily plan: %w", err)
		}
		for i := range entries {
			entries[i].UserID = userID
			entries[i].ScheduledDate = day
			entries[i].CreatedAt = time.Now()
			if err := tx.Create(&entries[i]).Error; err != nil {
				return fmt.Errorf("save plan entry: %w", err)
			}
		}
		return nil
	})
}

// DailyPlan returns a member's plan for a date, earliest slot first
func (s *Store) DailyPlan(ctx context.Context, userID uint, date time.Time) ([]models.PlanEntry, error) {
	var entries []models.PlanEntry
	err := s.db.WithContext(ctx).
		Preload("Todo").
		Where("user_id = ? AND scheduled_date = ?", userID, utils.DateOf(date)).
		Order("start_time").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list daily plan for user %d: %w", userID, err)
	}
	return entries, nil
}

// ---------- reminders ----------

// DueReminder is a pending reminder with its recipient's contact attached
type DueReminder struct {
	models.Reminder
	Username string `json:"username"`
	Email    string `json:"email"`
}

// CreateReminder queues a notification for later delivery
func (s *Store) CreateReminder(ctx context.Context, kind models.ReminderKind, referenceID string, userID uint, triggerTime time.Time, message string) (uint, error) {
	reminder := models.Reminder{
		Kind:        kind,
		ReferenceID: referenceID,
		UserID:      userID,
		TriggerTime: triggerTime,
		Message:     message,
	}
	if err := s.db.WithContext(ctx).Create(&reminder).Error; err != nil {
		return 0, fmt.Errorf("create reminder: %w", err)
	}
	return reminder.ID, nil
}

// DueReminders returns every unsent reminder whose trigger time has passed,
// joined with the recipient's contact key
func (s *Store) DueReminders(ctx context.Context, now time.Time) ([]DueReminder, error) {
	var due []DueReminder
	err := s.db.WithContext(ctx).
		Table("reminder").
		Select(`reminder.*, "user".username AS username, "user".email AS email`).
		Joins(`JOIN "user" ON "user".id = reminder.user_id`).
		Where("reminder.sent = ? AND reminder.trigger_time <= ?", false, now).
		Find(&due).Error
	if err != nil {
		return nil, fmt.Errorf("list due reminders: %w", err)
	}
	return due, nil
}

// MarkReminderSent flips a reminder's sent flag. The flag only ever moves
// from false to true; there is no way back.
func (s *Store) MarkReminderSent(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).
		Model(&models.Reminder{}).
		Where("id = ?", id).
		Update("sent", true).Error
	if err != nil {
		return fmt.Errorf("mark reminder %d sent: %w", id, err)
	}
	return nil
}
