package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"homehub/internal/models"
	"homehub/internal/store"
	"homehub/internal/utils"
)

// CookingSweep runs once per day at local midnight and queues a prep reminder
// for every meal scheduled on the following calendar day. The reminder fires
// at 08:00 on the day the sweep ran, i.e. the morning before the cooking date.
//
// The sweep is not idempotent: running it twice for the same day inserts
// duplicate reminders. That matches the queue's append-only design; there is
// no dedup key on (kind, reference_id, trigger_time).
type CookingSweep struct {
	store *store.Store
	now   func() time.Time
	stop  chan struct{}
	done  chan struct{}
}

// NewCookingSweep wires the daily sweep to the store
func NewCookingSweep(st *store.Store) *CookingSweep {
	return &CookingSweep{
		store: st,
		now:   time.Now,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Start launches the background loop
func (s *CookingSweep) Start() {
	go s.run()
}

// Stop shuts the loop down
func (s *CookingSweep) Stop() {
	close(s.stop)
	<-s.done
}

func (s *CookingSweep) run() {
	defer close(s.done)

	for {
		timer := time.NewTimer(s.untilNextMidnight())
		select {
		case <-timer.C:
			if err := s.RunOnce(context.Background()); err != nil {
				log.Printf("Error creating cooking reminders: %v", err)
			}
		case <-s.stop:
			timer.Stop()
			return
		}
	}
}

// untilNextMidnight returns the wait until the next local midnight
func (s *CookingSweep) untilNextMidnight() time.Duration {
	now := s.now()
	next := utils.DateOf(now).AddDate(0, 0, 1)
	return next.Sub(now)
}

// RunOnce performs one sweep relative to the injected clock's current time
func (s *CookingSweep) RunOnce(ctx context.Context) error {
	now := s.now()
	tomorrow := utils.DateOf(now).AddDate(0, 0, 1)

	meals, err := s.store.CookingForDate(ctx, tomorrow)
	if err != nil {
		return fmt.Errorf("cooking sweep: %w", err)
	}

	trigger := utils.CombineDateTime(utils.DateOf(now), 8, 0)
	for _, meal := range meals {
		message := fmt.Sprintf("Don't forget to prepare ingredients for %s!", meal.DishName)
		_, err := s.store.CreateReminder(ctx, models.ReminderCooking,
			strconv.FormatUint(uint64(meal.ID), 10), meal.CookID, trigger, message)
		if err != nil {
			return fmt.Errorf("cooking sweep: %w", err)
		}
	}

	if len(meals) > 0 {
		log.Printf("Created %d cooking reminders for %s", len(meals), tomorrow.Format("2006-01-02"))
	}
	return nil
}
