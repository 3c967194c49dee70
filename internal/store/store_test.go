package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"homehub/internal/database"
	"homehub/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return New(db)
}

func mustUser(t *testing.T, s *Store, username, email string) *models.User {
	t.Helper()
	user, err := s.GetOrCreateUser(context.Background(), username, email)
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func TestDueRemindersFiltersFutureAndSent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	user := mustUser(t, s, "alice", "alice@example.com")

	dueID, err := s.CreateReminder(ctx, models.ReminderGeneric, "1", user.ID, now.Add(-time.Minute), "due now")
	if err != nil {
		t.Fatalf("create due reminder: %v", err)
	}
	if _, err := s.CreateReminder(ctx, models.ReminderGeneric, "2", user.ID, now.Add(time.Hour), "future"); err != nil {
		t.Fatalf("create future reminder: %v", err)
	}
	sentID, err := s.CreateReminder(ctx, models.ReminderGeneric, "3", user.ID, now.Add(-time.Hour), "already sent")
	if err != nil {
		t.Fatalf("create sent reminder: %v", err)
	}
	if err := s.MarkReminderSent(ctx, sentID); err != nil {
		t.Fatalf("mark sent: %v", err)
	}

	due, err := s.DueReminders(ctx, now)
	if err != nil {
		t.Fatalf("list due reminders: %v", err)
	}
	if len(due) != 1 {
		t.Fatalf("expected 1 due reminder, got %d", len(due))
	}
	if due[0].ID != dueID {
		t.Fatalf("expected reminder %d, got %d", dueID, due[0].ID)
	}
	if due[0].Username != "alice" || due[0].Email != "alice@example.com" {
		t.Fatalf("expected recipient contact attached, got %q / %q", due[0].Username, due[0].Email)
	}
}

func TestMarkReminderSentIsMonotonic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	user := mustUser(t, s, "bob", "bob@example.com")
	id, err := s.CreateReminder(ctx, models.ReminderGeneric, "1", user.ID, now.Add(-time.Minute), "msg")
	if err != nil {
		t.Fatalf("create reminder: %v", err)
	}

	// Marking twice is harmless and never resets the flag
	if err := s.MarkReminderSent(ctx, id); err != nil {
		t.Fatalf("first mark: %v", err)
	}
	if err := s.MarkReminderSent(ctx, id); err != nil {
		t.Fatalf("second mark: %v", err)
	}

	due, err := s.DueReminders(ctx, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("list due reminders: %v", err)
	}
	if len(due) != 0 {
		t.Fatalf("expected no due reminders after mark, got %d", len(due))
	}

	var reminder models.Reminder
	if err := s.db.First(&reminder, id).Error; err != nil {
		t.Fatalf("load reminder: %v", err)
	}
	if !reminder.Sent {
		t.Fatalf("expected reminder to stay sent")
	}
}

func TestSetAttendeeStatusUpserts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := mustUser(t, s, "carol", "carol@example.com")
	event := models.Event{
		Title:     "House meeting",
		EventDate: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
		CreatedBy: user.ID,
	}
	if err := s.CreateEvent(ctx, &event); err != nil {
		t.Fatalf("create event: %v", err)
	}

	if err := s.SetAttendeeStatus(ctx, event.ID, user.ID, models.AttendeePending); err != nil {
		t.Fatalf("set pending: %v", err)
	}
	if err := s.SetAttendeeStatus(ctx, event.ID, user.ID, models.AttendeeAccepted); err != nil {
		t.Fatalf("set accepted: %v", err)
	}

	attendees, err := s.Attendees(ctx, event.ID)
	if err != nil {
		t.Fatalf("list attendees: %v", err)
	}
	if len(attendees) != 1 {
		t.Fatalf("expected upsert to keep 1 row, got %d", len(attendees))
	}
	if attendees[0].Status != models.AttendeeAccepted {
		t.Fatalf("expected status accepted, got %q", attendees[0].Status)
	}

	accepted, err := s.AcceptedAttendees(ctx, event.ID)
	if err != nil {
		t.Fatalf("list accepted: %v", err)
	}
	if len(accepted) != 1 || accepted[0] != user.ID {
		t.Fatalf("expected accepted attendee %d, got %v", user.ID, accepted)
	}
}

func TestReplaceDailyPlanSupersedes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	date := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	user := mustUser(t, s, "dave", "dave@example.com")
	first := models.Todo{UserID: user.ID, Title: "Laundry", EstimatedMinutes: 45, Importance: 4}
	second := models.Todo{UserID: user.ID, Title: "Dishes", EstimatedMinutes: 20, Importance: 2}
	if err := s.CreateTodo(ctx, &first); err != nil {
		t.Fatalf("create todo: %v", err)
	}
	if err := s.CreateTodo(ctx, &second); err != nil {
		t.Fatalf("create todo: %v", err)
	}

	initial := []models.PlanEntry{
		{TodoID: first.ID, StartTime: "09:00", DurationMinutes: 45},
		{TodoID: second.ID, StartTime: "10:00", DurationMinutes: 20},
	}
	if err := s.ReplaceDailyPlan(ctx, user.ID, date, initial); err != nil {
		t.Fatalf("save initial plan: %v", err)
	}

	replacement := []models.PlanEntry{
		{TodoID: second.ID, StartTime: "09:00", DurationMinutes: 20},
	}
	if err := s.ReplaceDailyPlan(ctx, user.ID, date, replacement); err != nil {
		t.Fatalf("replace plan: %v", err)
	}

	plan, err := s.DailyPlan(ctx, user.ID, date)
	if err != nil {
		t.Fatalf("load plan: %v", err)
	}
	if len(plan) != 1 {
		t.Fatalf("expected replacement to discard prior entries, got %d", len(plan))
	}
	if plan[0].TodoID != second.ID || plan[0].StartTime != "09:00" {
		t.Fatalf("unexpected plan entry: %+v", plan[0])
	}
	if plan[0].Todo.Title != "Dishes" {
		t.Fatalf("expected todo preloaded, got %+v", plan[0].Todo)
	}
}

func TestCookingForDateMatchesCalendarDay(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := mustUser(t, s, "erin", "erin@example.com")
	tomorrow := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	entries := []models.CookingEntry{
		{CookDate: tomorrow, MealType: models.Dinner, CookID: user.ID, DishName: "Carbonara"},
		{CookDate: tomorrow.AddDate(0, 0, 1), MealType: models.Lunch, CookID: user.ID, DishName: "Soup"},
	}
	for i := range entries {
		if err := s.AddCookingEntry(ctx, &entries[i]); err != nil {
			t.Fatalf("create cooking entry: %v", err)
		}
	}

	got, err := s.CookingForDate(ctx, tomorrow)
	if err != nil {
		t.Fatalf("list cooking entries: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 entry for %s, got %d", tomorrow.Format("2006-01-02"), len(got))
	}
	if got[0].DishName != "Carbonara" {
		t.Fatalf("expected Carbonara, got %q", got[0].DishName)
	}
}
