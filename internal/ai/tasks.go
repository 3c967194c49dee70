package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"
)

// ParsedTask is the structured form of a free-form task description
type ParsedTask struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	EstimatedMinutes int    `json:"estimated_minutes"`
	Importance       int    `json:"importance"`
	Category         string `json:"category"`
	DueDate          string `json:"due_date"` // YYYY-MM-DD, empty when none
}

// ParseTask turns text like "buy groceries tomorrow, about an hour, pretty
// important" into a structured task. Any API failure or malformed output
// degrades to a literal-title default rather than an error.
func (c *Client) ParseTask(ctx context.Context, taskText string, today time.Time) ParsedTask {
	if !c.Enabled() {
		return fallbackTaskParse(taskText)
	}

	prompt := fmt.Sprintf(`Parse this task description into structured data: "%s"

Today's date is %s.

Return ONLY a JSON object:
{
  "title": "<concise task title>",
  "description": "<optional details or empty string>",
  "estimated_minutes": <integer, default 30>,
  "importance": <1-5 integer, default 3>,
  "category": "<one of: chore, personal, work, shopping, health, other>",
  "due_date": "<YYYY-MM-DD or empty string>"
}

Extract due dates from phrases like "tomorrow", "next week", "by Friday".`,
		taskText, today.Format("2006-01-02"))

	text, err := c.complete(ctx, prompt, 300)
	if err != nil {
		log.Printf("Error parsing task: %v", err)
		return fallbackTaskParse(taskText)
	}

	var parsed ParsedTask
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &parsed); err != nil {
		log.Printf("Error decoding parsed task: %v", err)
		return fallbackTaskParse(taskText)
	}
	if parsed.Title == "" {
		return fallbackTaskParse(taskText)
	}

	// Clamp model output to legal ranges before it reaches the store
	if parsed.EstimatedMinutes <= 0 {
		parsed.EstimatedMinutes = 30
	}
	if parsed.Importance < 1 || parsed.Importance > 5 {
		parsed.Importance = 3
	}
	if parsed.Category == "" {
		parsed.Category = "general"
	}
	if parsed.DueDate != "" {
		if _, err := time.Parse("2006-01-02", parsed.DueDate); err != nil {
			parsed.DueDate = ""
		}
	}
	return parsed
}

func fallbackTaskParse(taskText string) ParsedTask {
	title := taskText
	if len(title) > 100 {
		title = title[:100]
	}
	return ParsedTask{
		Title:            title,
		EstimatedMinutes: 30,
		Importance:       3,
		Category:         "general",
	}
}
