package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"homehub/internal/models"
	"homehub/internal/store"
)

// ReminderPlanner derives reminders from upstream schedules and appends them
// to the queue. It never delivers anything itself; the dispatcher picks the
// entries up when their trigger time passes.
type ReminderPlanner struct {
	store *store.Store
}

// NewReminderPlanner wires a planner to the store
func NewReminderPlanner(st *store.Store) *ReminderPlanner {
	return &ReminderPlanner{store: st}
}

// ScheduleEventReminders inserts 24h-before and/or 1h-before reminders for an
// event, one per attendee who accepted the invitation. Declined and pending
// attendees get nothing, and an event with no accepted attendees yields no
// reminders at all. Callers must only invoke this once the event has a
// concrete time; a date-only event has no timestamp to offset from.
func (p *ReminderPlanner) ScheduleEventReminders(ctx context.Context, eventID string, eventTime time.Time, want24h, want1h bool) error {
	attendees, err := p.store.AcceptedAttendees(ctx, eventID)
	if err != nil {
		return fmt.Errorf("schedule reminders for event %s: %w", eventID, err)
	}

	created := 0
	if want24h {
		trigger := eventTime.Add(-24 * time.Hour)
		for _, userID := range attendees {
			if _, err := p.store.CreateReminder(ctx, models.ReminderEvent, eventID, userID, trigger, "Event starts in 24 hours"); err != nil {
				return err
			}
			created++
		}
	}

	if want1h {
		trigger := eventTime.Add(-1 * time.Hour)
		for _, userID := range attendees {
			if _, err := p.store.CreateReminder(ctx, models.ReminderEvent, eventID, userID, trigger, "Event starts in 1 hour"); err != nil {
				return err
			}
			created++
		}
	}

	if created > 0 {
		log.Printf("Scheduled %d reminders for event %s", created, eventID)
	}
	return nil
}
