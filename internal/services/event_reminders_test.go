package services

import (
	"context"
	"testing"
	"time"

	"homehub/internal/models"
	"homehub/internal/store"
)

func allReminders(t *testing.T, st *store.Store) []store.DueReminder {
	t.Helper()
	// Far-future cutoff returns everything still unsent
	due, err := st.DueReminders(context.Background(), time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("list reminders: %v", err)
	}
	return due
}

func TestScheduleEventRemindersOnlyForAcceptedAttendees(t *testing.T) {
	st := newTestStore(t)
	planner := NewReminderPlanner(st)
	ctx := context.Background()

	a := mustUser(t, st, "alice", "alice@example.com")
	b := mustUser(t, st, "bob", "bob@example.com")
	c := mustUser(t, st, "carol", "carol@example.com")

	eventTime := time.Date(2025, 3, 20, 18, 0, 0, 0, time.UTC)
	event := models.Event{Title: "Dinner party", EventDate: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), EventTime: &eventTime, CreatedBy: a.ID}
	if err := st.CreateEvent(ctx, &event); err != nil {
		t.Fatalf("create event: %v", err)
	}
	for _, rsvp := range []struct {
		userID uint
		status models.AttendeeStatus
	}{
		{a.ID, models.AttendeeAccepted},
		{b.ID, models.AttendeeDeclined},
		{c.ID, models.AttendeeAccepted},
	} {
		if err := st.SetAttendeeStatus(ctx, event.ID, rsvp.userID, rsvp.status); err != nil {
			t.Fatalf("set attendee status: %v", err)
		}
	}

	if err := planner.ScheduleEventReminders(ctx, event.ID, eventTime, true, true); err != nil {
		t.Fatalf("schedule reminders: %v", err)
	}

	reminders := allReminders(t, st)
	if len(reminders) != 4 {
		t.Fatalf("expected 4 reminders (2 accepted attendees x 2 offsets), got %d", len(reminders))
	}

	perUser := map[uint]int{}
	triggers := map[time.Time]int{}
	for _, r := range reminders {
		if r.Kind != models.ReminderEvent || r.ReferenceID != event.ID {
			t.Fatalf("unexpected reminder: %+v", r)
		}
		perUser[r.UserID]++
		triggers[r.TriggerTime.UTC()]++
	}
	if perUser[a.ID] != 2 || perUser[c.ID] != 2 {
		t.Fatalf("expected 2 reminders each for accepted attendees, got %v", perUser)
	}
	if perUser[b.ID] != 0 {
		t.Fatalf("declined attendee must get no reminders, got %d", perUser[b.ID])
	}
	if triggers[eventTime.Add(-24*time.Hour)] != 2 || triggers[eventTime.Add(-time.Hour)] != 2 {
		t.Fatalf("expected triggers at event-24h and event-1h, got %v", triggers)
	}
}

func TestScheduleEventRemindersHonorsFlags(t *testing.T) {
	st := newTestStore(t)
	planner := NewReminderPlanner(st)
	ctx := context.Background()

	a := mustUser(t, st, "alice", "alice@example.com")
	eventTime := time.Date(2025, 3, 20, 18, 0, 0, 0, time.UTC)
	event := models.Event{Title: "Checkup", EventDate: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), EventTime: &eventTime, CreatedBy: a.ID}
	if err := st.CreateEvent(ctx, &event); err != nil {
		t.Fatalf("create event: %v", err)
	}
	if err := st.SetAttendeeStatus(ctx, event.ID, a.ID, models.AttendeeAccepted); err != nil {
		t.Fatalf("set attendee status: %v", err)
	}

	if err := planner.ScheduleEventReminders(ctx, event.ID, eventTime, false, true); err != nil {
		t.Fatalf("schedule reminders: %v", err)
	}

	reminders := allReminders(t, st)
	if len(reminders) != 1 {
		t.Fatalf("expected only the 1h reminder, got %d", len(reminders))
	}
	if !reminders[0].TriggerTime.UTC().Equal(eventTime.Add(-time.Hour)) {
		t.Fatalf("expected trigger at event-1h, got %v", reminders[0].TriggerTime)
	}
	if reminders[0].Message != "Event starts in 1 hour" {
		t.Fatalf("unexpected message: %q", reminders[0].Message)
	}
}

func TestScheduleEventRemindersWithNoAcceptedAttendees(t *testing.T) {
	st := newTestStore(t)
	planner := NewReminderPlanner(st)
	ctx := context.Background()

	a := mustUser(t, st, "alice", "alice@example.com")
	eventTime := time.Date(2025, 3, 20, 18, 0, 0, 0, time.UTC)
	event := models.Event{Title: "Ghost town", EventDate: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), EventTime: &eventTime, CreatedBy: a.ID}
	if err := st.CreateEvent(ctx, &event); err != nil {
		t.Fatalf("create event: %v", err)
	}
	if err := st.SetAttendeeStatus(ctx, event.ID, a.ID, models.AttendeePending); err != nil {
		t.Fatalf("set attendee status: %v", err)
	}

	// Empty result, not an error
	if err := planner.ScheduleEventReminders(ctx, event.ID, eventTime, true, true); err != nil {
		t.Fatalf("schedule reminders: %v", err)
	}
	if reminders := allReminders(t, st); len(reminders) != 0 {
		t.Fatalf("expected no reminders without accepted attendees, got %d", len(reminders))
	}
}
