package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"homehub/internal/models"
	"homehub/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// CreateCooking schedules a meal and attaches a drafted recipe. Recipe
// generation is best-effort: when the AI helper is unavailable the entry is
// stored with the deterministic placeholder recipe instead.
func (h *Handler) CreateCooking(c *gin.Context) {
	var request models.CreateCookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	date, err := utils.ParseDate(request.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	recipe := h.helper.GenerateRecipe(c.Request.Context(), request.DishName, request.Servings)
	rawRecipe, err := json.Marshal(recipe)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to encode recipe", err)
		return
	}

	entry := models.CookingEntry{
		CookDate:     date,
		MealType:     request.MealType,
		CookID:       user.ID,
		DishName:     request.DishName,
		Ingredients:  models.StringList(recipe.Ingredients),
		Instructions: models.StringList(recipe.Instructions),
		Recipe:       datatypes.JSON(rawRecipe),
		Notes:        request.Notes,
	}
	if err := h.store.AddCookingEntry(c.Request.Context(), &entry); err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to schedule cooking", err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GetCooking lists the cooking schedule, either for a specific date
// (?date=YYYY-MM-DD) or upcoming entries
func (h *Handler) GetCooking(c *gin.Context) {
	if dateParam := c.Query("date"); dateParam != "" {
		date, err := utils.ParseDate(dateParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		entries, err := h.store.CookingForDate(c.Request.Context(), date)
		if err != nil {
			handleError(c, http.StatusInternalServerError, "Failed to list cooking schedule", err)
			return
		}
		c.JSON(http.StatusOK, entries)
		return
	}

	entries, err := h.store.UpcomingCooking(c.Request.Context(), time.Now(), 20)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to list cooking schedule", err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
