package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"homehub/internal/models"
	"homehub/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateTodo adds a task with explicit fields
func (h *Handler) CreateTodo(c *gin.Context) {
	var request models.CreateTodoRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var dueDate *time.Time
	if request.DueDate != "" {
		due, err := utils.ParseDate(request.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		dueDate = &due
	}

	todo := models.Todo{
		UserID:           user.ID,
		Title:            request.Title,
		Description:      request.Description,
		EstimatedMinutes: request.EstimatedMinutes,
		Importance:       request.Importance,
		Category:         request.Category,
		DueDate:          dueDate,
	}
	if err := h.store.CreateTodo(c.Request.Context(), &todo); err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create todo", err)
		return
	}
	c.JSON(http.StatusCreated, todo)
}

// QuickTodo adds a task from a free-form description, parsed by the AI helper
// with a deterministic fallback
func (h *Handler) QuickTodo(c *gin.Context) {
	var request models.QuickTodoRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	parsed := h.helper.ParseTask(c.Request.Context(), request.Text, time.Now())

	var dueDate *time.Time
	if parsed.DueDate != "" {
		if due, err := utils.ParseDate(parsed.DueDate); err == nil {
			dueDate = &due
		}
	}

	todo := models.Todo{
		UserID:           user.ID,
		Title:            parsed.Title,
		Description:      parsed.Description,
		EstimatedMinutes: parsed.EstimatedMinutes,
		Importance:       parsed.Importance,
		Category:         parsed.Category,
		DueDate:          dueDate,
	}
	if err := h.store.CreateTodo(c.Request.Context(), &todo); err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create todo", err)
		return
	}
	c.JSON(http.StatusCreated, todo)
}

// GetTodos lists the member's tasks, filtered by ?status= (default pending)
func (h *Handler) GetTodos(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	status := c.DefaultQuery("status", string(models.TodoPending))
	todos, err := h.store.TodosByStatus(c.Request.Context(), user.ID, status, 50)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to list todos", err)
		return
	}
	c.JSON(http.StatusOK, todos)
}

// UpdateTodoStatus marks a task pending or completed
func (h *Handler) UpdateTodoStatus(c *gin.Context) {
	var request models.UpdateTodoStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	todo, ok := h.ownedTodo(c)
	if !ok {
		return
	}

	if err := h.store.UpdateTodoStatus(c.Request.Context(), todo.ID, request.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to update todo", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": todo.ID, "status": request.Status})
}

// DeleteTodo removes a task
func (h *Handler) DeleteTodo(c *gin.Context) {
	todo, ok := h.ownedTodo(c)
	if !ok {
		return
	}

	if err := h.store.DeleteTodo(c.Request.Context(), todo.ID); err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to delete todo", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ownedTodo resolves the :id parameter to a todo owned by the caller
func (h *Handler) ownedTodo(c *gin.Context) (*models.Todo, bool) {
	user, ok := h.currentUser(c)
	if !ok {
		return nil, false
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid todo id"})
		return nil, false
	}

	todo, err := h.store.GetTodo(c.Request.Context(), uint(id))
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to look up todo", err)
		return nil, false
	}
	if todo == nil || todo.UserID != user.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return nil, false
	}
	return todo, true
}
