package handlers

import (
	"log"
	"net/http"
	"time"

	"homehub/internal/models"
	"homehub/internal/utils"

	"github.com/gin-gonic/gin"
)

// CreateEvent creates a household event, seeds the attendee list, and
// schedules 24h/1h reminders when the event has a concrete time
func (h *Handler) CreateEvent(c *gin.Context) {
	var request models.CreateEventRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	date, err := utils.ParseDate(request.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var eventTime *time.Time
	if request.Time != "" {
		hour, minute, err := utils.ParseClock(request.Time)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		t := utils.CombineDateTime(date, hour, minute)
		eventTime = &t
	}

	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	remind24h := request.Remind24h == nil || *request.Remind24h
	remind1h := request.Remind1h == nil || *request.Remind1h

	event := models.Event{
		Title:       request.Title,
		Description: request.Description,
		EventDate:   date,
		EventTime:   eventTime,
		CreatedBy:   user.ID,
		Remind24h:   remind24h,
		Remind1h:    remind1h,
	}
	if err := h.store.CreateEvent(c.Request.Context(), &event); err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create event", err)
		return
	}

	// The creator attends their own event; invitees start out pending
	if err := h.store.SetAttendeeStatus(c.Request.Context(), event.ID, user.ID, models.AttendeeAccepted); err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to add creator as attendee", err)
		return
	}
	for _, username := range request.Attendees {
		invitee, err := h.store.GetUserByUsername(c.Request.Context(), username)
		if err != nil {
			handleError(c, http.StatusInternalServerError, "Failed to look up invitee", err)
			return
		}
		if invitee == nil || invitee.ID == user.ID {
			continue
		}
		if err := h.store.SetAttendeeStatus(c.Request.Context(), event.ID, invitee.ID, models.AttendeePending); err != nil {
			handleError(c, http.StatusInternalServerError, "Failed to invite attendee", err)
			return
		}
	}

	// Time-based reminders need an absolute timestamp; date-only events get none
	if eventTime != nil && (remind24h || remind1h) {
		if err := h.reminders.ScheduleEventReminders(c.Request.Context(), event.ID, *eventTime, remind24h, remind1h); err != nil {
			log.Printf("Warning: Failed to schedule reminders for event %s: %v", event.ID, err)
		}
	}

	c.JSON(http.StatusCreated, event)
}

// GetEvents lists upcoming events
func (h *Handler) GetEvents(c *gin.Context) {
	events, err := h.store.UpcomingEvents(c.Request.Context(), time.Now(), 10)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to list events", err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// RSVP records the authenticated member's response to an event invitation.
// Reminders already queued for a member who later declines are not revoked;
// only the accepted set at scheduling time receives them.
func (h *Handler) RSVP(c *gin.Context) {
	var request models.RSVPRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	eventID := c.Param("id")
	event, err := h.store.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to look up event", err)
		return
	}
	if event == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	if err := h.store.SetAttendeeStatus(c.Request.Context(), eventID, user.ID, request.Status); err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to record RSVP", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event_id": eventID, "status": request.Status})
}
