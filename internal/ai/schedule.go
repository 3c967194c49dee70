package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"
)

const (
	dayStartClock = "09:00"
	// maxPlacedTasks caps a day's plan no matter how much budget remains
	maxPlacedTasks = 10
)

// SchedulingTask is the read-only view of a todo the optimizer works with
type SchedulingTask struct {
	TodoID           uint   `json:"todo_id"`
	Title            string `json:"title"`
	EstimatedMinutes int    `json:"estimated_minutes"`
	Importance       int    `json:"importance"`
	Category         string `json:"category"`
}

// Placement assigns one task a start time within the day
type Placement struct {
	TodoID    uint   `json:"todo_id"`
	StartTime string `json:"start_time"` // HH:MM
	Reasoning string `json:"reasoning"`
}

// OptimizeSchedule produces a non-overlapping start-time assignment for the
// given tasks within availableHours starting at 09:00. The AI path is
// best-effort; anything short of a fully valid response falls back to the
// deterministic greedy plan. Tasks never mutate; unplaced tasks are simply
// absent from the result.
func (c *Client) OptimizeSchedule(ctx context.Context, tasks []SchedulingTask, availableHours int) []Placement {
	if !c.Enabled() || len(tasks) == 0 {
		return FallbackSchedule(tasks, availableHours)
	}

	// Cap the prompt to keep the request small
	prompted := tasks
	if len(prompted) > 15 {
		prompted = prompted[:15]
	}
	var lines []string
	for _, t := range prompted {
		lines = append(lines, fmt.Sprintf("- ID %d: %s (%dmin, importance: %d/5, category: %s)",
			t.TodoID, t.Title, t.EstimatedMinutes, t.Importance, t.Category))
	}

	prompt := fmt.Sprintf(`You have %d hours available (09:00 to %d:00).

Schedule these tasks optimally:
%s

Consider:
- Batch similar categories together
- High-importance tasks during peak energy hours
- Include 10%% buffer time between tasks
- Don't overpack the schedule

Return ONLY a JSON array:
[
  {"todo_id": 1, "start_time": "09:00", "reasoning": "brief reason"}
]

Only schedule tasks that fit in the available time.`,
		availableHours, 9+availableHours, strings.Join(lines, "\n"))

	text, err := c.complete(ctx, prompt, 1000)
	if err != nil {
		log.Printf("Error optimizing schedule: %v", err)
		return FallbackSchedule(tasks, availableHours)
	}

	var placements []Placement
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &placements); err != nil {
		log.Printf("Error decoding schedule: %v", err)
		return FallbackSchedule(tasks, availableHours)
	}

	// Reject responses that reference unknown tasks or malformed times
	known := make(map[uint]bool, len(tasks))
	for _, t := range tasks {
		known[t.TodoID] = true
	}
	for _, p := range placements {
		if !known[p.TodoID] {
			log.Printf("Schedule references unknown task %d, using fallback", p.TodoID)
			return FallbackSchedule(tasks, availableHours)
		}
		if _, err := time.Parse("15:04", p.StartTime); err != nil {
			log.Printf("Schedule has malformed start time %q, using fallback", p.StartTime)
			return FallbackSchedule(tasks, availableHours)
		}
	}
	return placements
}

// FallbackSchedule is the deterministic greedy planner used whenever the AI
// path is unavailable. Tasks are taken in order of importance (stable on
// ties), each padded with a buffer of max(5, round(10% of duration)) minutes,
// and placed back to back from 09:00. A task that would overrun the budget is
// skipped for good, and no more than ten tasks are ever placed.
func FallbackSchedule(tasks []SchedulingTask, availableHours int) []Placement {
	cursor, _ := time.Parse("15:04", dayStartClock)
	budgetEnd := cursor.Add(time.Duration(availableHours) * time.Hour)

	ordered := make([]SchedulingTask, len(tasks))
	copy(ordered, tasks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Importance > ordered[j].Importance
	})

	var schedule []Placement
	for _, task := range ordered {
		duration := task.EstimatedMinutes
		if duration <= 0 {
			duration = 30
		}
		buffer := int(math.Round(float64(duration) * 0.10))
		if buffer < 5 {
			buffer = 5
		}

		taskEnd := cursor.Add(time.Duration(duration+buffer) * time.Minute)
		if !taskEnd.After(budgetEnd) {
			schedule = append(schedule, Placement{
				TodoID:    task.TodoID,
				StartTime: cursor.Format("15:04"),
				Reasoning: fmt.Sprintf("Priority task (importance: %d)", task.Importance),
			})
			cursor = taskEnd
		}

		if len(schedule) >= maxPlacedTasks {
			break
		}
	}
	return schedule
}
