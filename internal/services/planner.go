package services

import (
	"context"
	"fmt"
	"time"

	"homehub/internal/ai"
	"homehub/internal/models"
	"homehub/internal/store"
)

// planAvailableHours is the daily time budget handed to the optimizer
const planAvailableHours = 8

// PlannerService turns a member's pending todos into a concrete daily plan
type PlannerService struct {
	store  *store.Store
	helper *ai.Client
}

// NewPlannerService wires the planner to the store and the AI helper
func NewPlannerService(st *store.Store, helper *ai.Client) *PlannerService {
	return &PlannerService{store: st, helper: helper}
}

// PlanDay schedules a member's pending tasks for the given date and commits
// the result, replacing any plan previously stored for that day. Tasks the
// optimizer could not place are simply absent from the plan. Returns nil when
// there is nothing to schedule.
func (p *PlannerService) PlanDay(ctx context.Context, userID uint, date time.Time) ([]models.PlanEntry, error) {
	todos, err := p.store.PendingTodos(ctx, userID, 20)
	if err != nil {
		return nil, fmt.Errorf("plan day: %w", err)
	}
	if len(todos) == 0 {
		return nil, nil
	}

	tasks := make([]ai.SchedulingTask, 0, len(todos))
	byID := make(map[uint]models.Todo, len(todos))
	for _, todo := range todos {
		byID[todo.ID] = todo
		tasks = append(tasks, ai.SchedulingTask{
			TodoID:           todo.ID,
			Title:            todo.Title,
			EstimatedMinutes: todo.EstimatedMinutes,
			Importance:       todo.Importance,
			Category:         todo.Category,
		})
	}

	placements := p.helper.OptimizeSchedule(ctx, tasks, planAvailableHours)

	entries := make([]models.PlanEntry, 0, len(placements))
	for _, placement := range placements {
		todo, ok := byID[placement.TodoID]
		if !ok {
			continue
		}
		entries = append(entries, models.PlanEntry{
			TodoID:          todo.ID,
			StartTime:       placement.StartTime,
			DurationMinutes: todo.EstimatedMinutes,
			Rationale:       placement.Reasoning,
		})
	}

	if err := p.store.ReplaceDailyPlan(ctx, userID, date, entries); err != nil {
		return nil, fmt.Errorf("plan day: %w", err)
	}
	return entries, nil
}
