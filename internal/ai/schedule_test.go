package ai

import (
	"fmt"
	"testing"
)

func TestFallbackScheduleGreedyPlacement(t *testing.T) {
	tasks := []SchedulingTask{
		{TodoID: 1, Title: "Tidy up", EstimatedMinutes: 60, Importance: 2},
		{TodoID: 2, Title: "Pay bills", EstimatedMinutes: 30, Importance: 5},
		{TodoID: 3, Title: "Deep clean", EstimatedMinutes: 600, Importance: 4},
	}

	got := FallbackSchedule(tasks, 2)

	// Order of consideration is importance-descending: 2, 3, 1. Task 2 takes
	// 30+5 buffer minutes, task 3 cannot fit a 2-hour budget and is skipped
	// for good, task 1 (60+6) still fits behind task 2.
	if len(got) != 2 {
		t.Fatalf("expected 2 placements, got %d: %+v", len(got), got)
	}
	if got[0].TodoID != 2 || got[0].StartTime != "09:00" {
		t.Fatalf("expected task 2 at 09:00, got %+v", got[0])
	}
	if got[1].TodoID != 1 || got[1].StartTime != "09:35" {
		t.Fatalf("expected task 1 at 09:35, got %+v", got[1])
	}
	if got[0].Reasoning != "Priority task (importance: 5)" {
		t.Fatalf("unexpected rationale: %q", got[0].Reasoning)
	}
}

func TestFallbackScheduleSkipsOverflowPermanently(t *testing.T) {
	tasks := []SchedulingTask{
		{TodoID: 1, EstimatedMinutes: 600, Importance: 5},
		{TodoID: 2, EstimatedMinutes: 30, Importance: 4},
	}

	got := FallbackSchedule(tasks, 1)

	if len(got) != 1 {
		t.Fatalf("expected 1 placement, got %d", len(got))
	}
	// The overflowing task is dropped without moving the cursor
	if got[0].TodoID != 2 || got[0].StartTime != "09:00" {
		t.Fatalf("expected task 2 at 09:00, got %+v", got[0])
	}
}

func TestFallbackScheduleCapsAtTenTasks(t *testing.T) {
	var tasks []SchedulingTask
	for i := 1; i <= 12; i++ {
		tasks = append(tasks, SchedulingTask{TodoID: uint(i), EstimatedMinutes: 10, Importance: 3})
	}

	got := FallbackSchedule(tasks, 8)

	// All twelve would fit the budget; the hard cap still stops at ten
	if len(got) != 10 {
		t.Fatalf("expected exactly 10 placements, got %d", len(got))
	}
	for i, placement := range got {
		if placement.TodoID != uint(i+1) {
			t.Fatalf("expected stable order, placement %d is task %d", i, placement.TodoID)
		}
	}
	// 10-minute tasks get the 5-minute floor buffer, so slots are 15 minutes
	if got[1].StartTime != "09:15" {
		t.Fatalf("expected second slot at 09:15, got %q", got[1].StartTime)
	}
}

func TestFallbackScheduleStableOnEqualImportance(t *testing.T) {
	var tasks []SchedulingTask
	for i := 1; i <= 4; i++ {
		tasks = append(tasks, SchedulingTask{
			TodoID:           uint(i),
			Title:            fmt.Sprintf("task %d", i),
			EstimatedMinutes: 30,
			Importance:       3,
		})
	}

	got := FallbackSchedule(tasks, 8)

	if len(got) != 4 {
		t.Fatalf("expected 4 placements, got %d", len(got))
	}
	for i, placement := range got {
		if placement.TodoID != uint(i+1) {
			t.Fatalf("equal-importance tasks must keep input order, got %+v", got)
		}
	}
}

func TestFallbackScheduleEmptyInput(t *testing.T) {
	if got := FallbackSchedule(nil, 8); len(got) != 0 {
		t.Fatalf("expected empty schedule, got %+v", got)
	}
}
