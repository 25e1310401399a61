package api

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/service"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// LogHandler serves log queries and exports.
type LogHandler struct {
	logService service.LogService
}

func NewLogHandler(logService service.LogService) *LogHandler {
	return &LogHandler{logService: logService}
}

type LogEntryResponse struct {
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

// LogResponse carries the filtered log. Count is the user's all-time total.
type LogResponse struct {
	ID       string             `json:"_id"`
	Username string             `json:"username"`
	Count    int                `json:"count"`
	Log      []LogEntryResponse `json:"log"`
}

type LogExportResponse struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func MapLogToResponse(result *service.LogResult) LogResponse {
	entries := make([]LogEntryResponse, len(result.Log))
	for i, e := range result.Log {
		entries[i] = LogEntryResponse{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        e.Date,
		}
	}
	return LogResponse{
		ID:       result.User.ID.Hex(),
		Username: result.User.Username,
		Count:    result.User.Count,
		Log:      entries,
	}
}

// logQueryFromRequest reads from, to and limit off the query string.
func logQueryFromRequest(c *gin.Context) (domain.LogQuery, error) {
	q, err := domain.ParseLogQuery(c.Query("from"), c.Query("to"), c.Query("limit"))
	if err != nil {
		return domain.LogQuery{}, fmt.Errorf("%w: %v", service.ErrValidationFailed, err)
	}
	return q, nil
}

// GetLogs godoc
// @Summary Get a user's exercise log
// @Tags Logs
// @Produce json
// @Param _id path string true "User ID"
// @Param from query string false "Earliest date, inclusive"
// @Param to query string false "Latest date, inclusive"
// @Param limit query int false "Maximum number of entries"
// @Success 200 {object} LogResponse
// @Failure 400 {object} errorResponse "Malformed from/to"
// @Failure 404 {object} errorResponse "User not found"
// @Failure 500 {object} errorResponse
// @Router /users/{_id}/logs [get]
func (h *LogHandler) GetLogs(c *gin.Context) {
	query, err := logQueryFromRequest(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.logService.GetLogs(c.Request.Context(), c.Param("_id"), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapLogToResponse(result))
}

// ExportLogs godoc
// @Summary Export a user's filtered log to object storage
// @Tags Logs
// @Produce json
// @Param _id path string true "User ID"
// @Param from query string false "Earliest date, inclusive"
// @Param to query string false "Latest date, inclusive"
// @Param limit query int false "Maximum number of entries"
// @Success 200 {object} LogExportResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 503 {object} errorResponse "Exports not configured"
// @Router /users/{_id}/logs/export [post]
func (h *LogHandler) ExportLogs(c *gin.Context) {
	query, err := logQueryFromRequest(c)
	if err != nil {
		respondError(c, err)
		return
	}

	export, err := h.logService.ExportLogs(c.Request.Context(), c.Param("_id"), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, LogExportResponse{
		Key:       export.Key,
		URL:       export.URL,
		ExpiresAt: export.ExpiresAt,
	})
}
