package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"homehub/internal/delivery"
	"homehub/internal/models"
	"homehub/internal/store"
	"homehub/internal/utils"
)

// titleCase capitalizes the first letter of a meal type for display
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ReminderDispatcher polls the reminder queue on a fixed interval, delivers
// every due reminder and marks it sent. Delivery is at-most-once best-effort:
// a reminder is marked sent after its first attempt no matter how the attempt
// went, so a bad reminder can never wedge the queue.
type ReminderDispatcher struct {
	store           *store.Store
	sink            delivery.Sink
	interval        time.Duration
	deliveryTimeout time.Duration
	now             func() time.Time
	stop            chan struct{}
	done            chan struct{}
}

// NewReminderDispatcher wires a dispatcher to its store and delivery sink
func NewReminderDispatcher(st *store.Store, sink delivery.Sink) *ReminderDispatcher {
	return &ReminderDispatcher{
		store:           st,
		sink:            sink,
		interval:        time.Minute * 5, // Check every 5 minutes
		deliveryTimeout: time.Second * 10,
		now:             time.Now,
		stop:            make(chan struct{}),
		done:            make(chan struct{}),
	}
}

// Start launches the background dispatch loop
func (d *ReminderDispatcher) Start() {
	go d.run()
}

// Stop shuts the loop down and waits for an in-flight tick to finish
func (d *ReminderDispatcher) Stop() {
	close(d.stop)
	<-d.done
}

// run executes ticks one at a time. A single loop consuming the ticker means
// two scans can never overlap and double-deliver the same reminder.
func (d *ReminderDispatcher) run() {
	defer close(d.done)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := d.Tick(context.Background()); err != nil {
				log.Printf("Error checking reminders: %v", err)
			}
		case <-d.stop:
			return
		}
	}
}

// Tick scans for due, unsent reminders and processes the whole batch. A store
// read failure aborts the tick; the next scheduled tick is the retry.
func (d *ReminderDispatcher) Tick(ctx context.Context) error {
	now := d.now()

	due, err := d.store.DueReminders(ctx, now)
	if err != nil {
		return err
	}

	for _, reminder := range due {
		d.dispatch(ctx, reminder, now)
	}

	if len(due) > 0 {
		log.Printf("Processed %d reminders", len(due))
	}
	return nil
}

// dispatch handles a single reminder: render, deliver, mark sent. Exactly one
// store mutation happens per reminder regardless of the delivery outcome.
func (d *ReminderDispatcher) dispatch(ctx context.Context, reminder store.DueReminder, now time.Time) {
	msg, deliverable := d.render(ctx, reminder, now)
	if deliverable {
		recipient := delivery.Recipient{
			UserID:   reminder.UserID,
			Username: reminder.Username,
			Email:    reminder.Email,
		}

		// Bounded per-delivery timeout so a hung sink cannot stall the batch
		deliverCtx, cancel := context.WithTimeout(ctx, d.deliveryTimeout)
		err := d.sink.Deliver(deliverCtx, recipient, msg)
		cancel()

		switch {
		case errors.Is(err, delivery.ErrUnreachable):
			log.Printf("Cannot deliver to %s (unreachable)", reminder.Username)
		case err != nil:
			log.Printf("Error sending %s reminder %d to %s: %v", reminder.Kind, reminder.ID, reminder.Username, err)
		default:
			log.Printf("Sent %s reminder to %s", reminder.Kind, reminder.Username)
		}
	}

	if err := d.store.MarkReminderSent(ctx, reminder.ID); err != nil {
		log.Printf("Error marking reminder %d sent: %v", reminder.ID, err)
	}
}

// render resolves a reminder's kind into a deliverable message. A false
// second return means the reminder is deliberately skipped: the entity it
// referenced is gone, the cook is no longer on tomorrow's schedule, or the
// kind is reserved. Skipped reminders are still marked sent.
func (d *ReminderDispatcher) render(ctx context.Context, reminder store.DueReminder, now time.Time) (delivery.Message, bool) {
	switch reminder.Kind {
	case models.ReminderEvent:
		event, err := d.store.GetEvent(ctx, reminder.ReferenceID)
		if err != nil {
			log.Printf("Error looking up event for reminder %d: %v", reminder.ID, err)
			return delivery.Message{}, false
		}
		if event == nil {
			// Event deleted after the reminder was queued; treat as resolved
			return delivery.Message{}, false
		}

		when := "TBD"
		if event.EventTime != nil {
			when = event.EventTime.Format("3:04 PM")
		}
		body := fmt.Sprintf("Your event %s is coming up on %s at %s.",
			event.Title, event.EventDate.Format("Mon Jan 2"), when)
		if event.Description != "" {
			body += " " + event.Description
		}
		if reminder.Message != "" {
			body += " " + reminder.Message
		}
		return delivery.Message{
			Subject: fmt.Sprintf("Event reminder: %s", event.Title),
			Body:    body,
		}, true

	case models.ReminderCooking:
		tomorrow := utils.DateOf(now).AddDate(0, 0, 1)
		meals, err := d.store.CookingForDate(ctx, tomorrow)
		if err != nil {
			log.Printf("Error looking up cooking schedule for reminder %d: %v", reminder.ID, err)
			return delivery.Message{}, false
		}

		var lines []string
		for _, meal := range meals {
			if meal.CookID == reminder.UserID {
				lines = append(lines, fmt.Sprintf("%s: %s", titleCase(string(meal.MealType)), meal.DishName))
			}
		}
		if len(lines) == 0 {
			// Recipient is no longer cooking tomorrow
			return delivery.Message{}, false
		}

		body := "You're scheduled to cook tomorrow! " + strings.Join(lines, "; ")
		if reminder.Message != "" {
			body += ". " + reminder.Message
		}
		return delivery.Message{
			Subject: "Cooking reminder",
			Body:    body,
		}, true

	case models.ReminderTodo:
		// Reserved for future use; todo reminders are never delivered
		return delivery.Message{}, false

	default:
		// Unrecognized kinds fall back to a generic notification that
		// carries just the stored message text
		return delivery.Message{
			Subject: "Reminder",
			Body:    reminder.Message,
		}, true
	}
}
