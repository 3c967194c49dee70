package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// newStubClient points a client at a server that replies with the given text
// as the model's message content
func newStubClient(t *testing.T, replyText string) *Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			http.NotFound(w, r)
			return
		}
		resp := map[string]interface{}{
			"content": []map[string]string{{"type": "text", "text": replyText}},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)

	return &Client{
		apiKey:     "test-key",
		model:      "test-model",
		baseURL:    server.URL,
		httpClient: server.Client(),
	}
}

func TestParseTaskUsesModelOutput(t *testing.T) {
	c := newStubClient(t, `{"title":"Buy groceries","description":"milk and eggs","estimated_minutes":60,"importance":4,"category":"shopping","due_date":"2025-03-11"}`)

	got := c.ParseTask(context.Background(), "buy groceries tomorrow, about an hour, pretty important", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	if got.Title != "Buy groceries" || got.Importance != 4 || got.Category != "shopping" {
		t.Fatalf("unexpected parse result: %+v", got)
	}
	if got.DueDate != "2025-03-11" {
		t.Fatalf("expected due date kept, got %q", got.DueDate)
	}
}

func TestParseTaskFallsBackOnGarbage(t *testing.T) {
	c := newStubClient(t, "Sure! Here's your task, formatted nicely:")

	text := "water the plants"
	got := c.ParseTask(context.Background(), text, time.Now())

	if got.Title != text {
		t.Fatalf("expected literal-title fallback, got %+v", got)
	}
	if got.EstimatedMinutes != 30 || got.Importance != 3 || got.Category != "general" {
		t.Fatalf("expected fallback defaults, got %+v", got)
	}
}

func TestParseTaskClampsModelOutput(t *testing.T) {
	c := newStubClient(t, `{"title":"Sort garage","estimated_minutes":-5,"importance":9,"category":"","due_date":"soonish"}`)

	got := c.ParseTask(context.Background(), "sort the garage", time.Now())

	if got.EstimatedMinutes != 30 || got.Importance != 3 || got.Category != "general" {
		t.Fatalf("expected out-of-range fields clamped, got %+v", got)
	}
	if got.DueDate != "" {
		t.Fatalf("expected malformed due date dropped, got %q", got.DueDate)
	}
}

func TestGenerateRecipeFallsBackWhenDisabled(t *testing.T) {
	c := &Client{} // no API key

	got := c.GenerateRecipe(context.Background(), "Spaghetti Carbonara", 4)

	if got.DishName != "Spaghetti Carbonara" || got.Servings != 4 {
		t.Fatalf("unexpected fallback recipe: %+v", got)
	}
	if len(got.Ingredients) == 0 || len(got.Instructions) == 0 {
		t.Fatalf("fallback recipe must be complete, got %+v", got)
	}
}

func TestOptimizeScheduleRejectsUnknownTasks(t *testing.T) {
	c := newStubClient(t, `[{"todo_id":99,"start_time":"09:00","reasoning":"made up"}]`)

	tasks := []SchedulingTask{{TodoID: 1, EstimatedMinutes: 30, Importance: 3}}
	got := c.OptimizeSchedule(context.Background(), tasks, 8)

	// An invented task id invalidates the whole response; the deterministic
	// plan takes over
	if len(got) != 1 || got[0].TodoID != 1 || got[0].StartTime != "09:00" {
		t.Fatalf("expected fallback schedule, got %+v", got)
	}
}

func TestOptimizeScheduleRejectsMalformedTimes(t *testing.T) {
	c := newStubClient(t, `[{"todo_id":1,"start_time":"nine-ish","reasoning":"relaxed"}]`)

	tasks := []SchedulingTask{{TodoID: 1, EstimatedMinutes: 30, Importance: 3}}
	got := c.OptimizeSchedule(context.Background(), tasks, 8)

	if len(got) != 1 || got[0].StartTime != "09:00" {
		t.Fatalf("expected fallback schedule, got %+v", got)
	}
}
