package handlers

import (
	"net/http"
	"time"

	"homehub/internal/utils"

	"github.com/gin-gonic/gin"
)

// planDate resolves an optional ?date= query, defaulting to today
func planDate(c *gin.Context) (time.Time, bool) {
	if dateParam := c.Query("date"); dateParam != "" {
		date, err := utils.ParseDate(dateParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return time.Time{}, false
		}
		return date, true
	}
	return utils.DateOf(time.Now()), true
}

// PlanDay builds an optimized plan from the member's pending tasks and
// replaces any existing plan for the day
func (h *Handler) PlanDay(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	date, ok := planDate(c)
	if !ok {
		return
	}

	entries, err := h.planner.PlanDay(c.Request.Context(), user.ID, date)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to plan day", err)
		return
	}
	if entries == nil {
		c.JSON(http.StatusOK, gin.H{"date": date.Format("2006-01-02"), "entries": []interface{}{}, "message": "No pending tasks to schedule"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": date.Format("2006-01-02"), "entries": entries})
}

// GetPlan returns the member's stored plan for a date
func (h *Handler) GetPlan(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	date, ok := planDate(c)
	if !ok {
		return
	}

	entries, err := h.store.DailyPlan(c.Request.Context(), user.ID, date)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to load plan", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date.Format("2006-01-02"), "entries": entries})
}
