package handlers

import (
	"log"
	"net/http"

	"homehub/internal/ai"
	"homehub/internal/auth"
	"homehub/internal/models"
	"homehub/internal/services"
	"homehub/internal/store"

	"github.com/gin-gonic/gin"
)

// Handler carries the collaborators the HTTP surface needs
type Handler struct {
	store           *store.Store
	helper          *ai.Client
	reminders       *services.ReminderPlanner
	planner         *services.PlannerService
	jwtSecret       []byte
	householdSecret string
}

// New wires up the HTTP handlers
func New(st *store.Store, helper *ai.Client, reminders *services.ReminderPlanner, planner *services.PlannerService, jwtSecret []byte, householdSecret string) *Handler {
	return &Handler{
		store:           st,
		helper:          helper,
		reminders:       reminders,
		planner:         planner,
		jwtSecret:       jwtSecret,
		householdSecret: householdSecret,
	}
}

// handleError provides a consistent way to handle and log errors
func handleError(c *gin.Context, status int, message string, err error) {
	log.Printf("Error: %v", err)
	c.JSON(status, gin.H{"error": message})
}

// Home handles requests to the root path "/"
func (h *Handler) Home(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to HomeHub!")
}

// Health is a simple health check endpoint
func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// TokenRequest exchanges the household shared secret for a member token
type TokenRequest struct {
	Username string `json:"username" binding:"required,alphanum,min=2,max=30"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// IssueToken authenticates a household member. Identity is intentionally
// lightweight: anyone holding the household secret can register a member name
// and receive a token for it.
func (h *Handler) IssueToken(c *gin.Context) {
	var request TokenRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if c.GetHeader("X-Household-Secret") != h.householdSecret {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid household secret"})
		return
	}

	user, err := h.store.GetOrCreateUser(c.Request.Context(), request.Username, request.Email)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to register member", err)
		return
	}

	token, err := auth.GenerateToken(h.jwtSecret, user.ID, user.Username)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to issue token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// currentUser loads the authenticated member's record
func (h *Handler) currentUser(c *gin.Context) (*models.User, bool) {
	username := c.GetString("username")
	user, err := h.store.GetUserByUsername(c.Request.Context(), username)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to load member", err)
		return nil, false
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown member"})
		return nil, false
	}
	return user, true
}
