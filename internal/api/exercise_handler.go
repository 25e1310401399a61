package api

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs for API (Data Transfer Objects) ---

// AddExerciseRequest defines the expected JSON or form body for logging an exercise.
type AddExerciseRequest struct {
	Description string  `json:"description" form:"description" binding:"required"`
	Duration    float64 `json:"duration" form:"duration" binding:"required,gt=0"` // minutes
	Date        string  `json:"date" form:"date" binding:"omitempty,calendardate"`
}

// ExerciseResponse echoes the user together with the entry just added.
type ExerciseResponse struct {
	ID          string  `json:"_id"`
	Username    string  `json:"username"`
	Date        string  `json:"date"`
	Duration    float64 `json:"duration"`
	Description string  `json:"description"`
}

// MapExerciseToResponse builds the response from the user's latest log entry.
func MapExerciseToResponse(user *domain.User) ExerciseResponse {
	if user == nil {
		return ExerciseResponse{}
	}
	latest, _ := user.Latest()
	return ExerciseResponse{
		ID:          user.ID.Hex(),
		Username:    user.Username,
		Date:        latest.Date,
		Duration:    latest.Duration,
		Description: latest.Description,
	}
}

// --- Handler Methods ---

// AddExercise godoc
// @Summary Log an exercise for a user
// @Tags Exercises
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param _id path string true "User ID"
// @Param exercise body AddExerciseRequest true "Exercise details"
// @Success 200 {object} ExerciseResponse
// @Failure 400 {object} errorResponse "Invalid input (validation error)"
// @Failure 404 {object} errorResponse "User not found"
// @Failure 500 {object} errorResponse
// @Router /users/{_id}/exercises [post]
func (h *ExerciseHandler) AddExercise(c *gin.Context) {
	var req AddExerciseRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, bindError(err))
		return
	}

	user, err := h.exerciseService.AddExercise(c.Request.Context(), c.Param("_id"), service.AddExerciseInput{
		Description: req.Description,
		Duration:    req.Duration,
		Date:        req.Date,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapExerciseToResponse(user))
}
