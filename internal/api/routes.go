package api

import (
	"alcyxob/exercise-tracker/internal/service"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *gin.Engine,
	staticDir string,
	userService service.UserService,
	exerciseService service.ExerciseService,
	logService service.LogService,
) error {
	if err := RegisterValidators(); err != nil {
		return err
	}

	userHandler := NewUserHandler(userService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	logHandler := NewLogHandler(logService)

	router.Use(RequestIDMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Landing page with plain HTML forms for the endpoints below.
	if staticDir != "" {
		router.Static("/public", filepath.Join(staticDir, "public"))
		router.GET("/", func(c *gin.Context) {
			c.File(filepath.Join(staticDir, "views", "index.html"))
		})
	}

	apiGroup := router.Group("/api")
	{
		users := apiGroup.Group("/users")
		{
			// GET /api/users
			users.GET("", userHandler.ListUsers)
			// POST /api/users
			users.POST("", userHandler.CreateUser)
			// POST /api/users/{_id}/exercises
			users.POST("/:_id/exercises", exerciseHandler.AddExercise)
			// GET /api/users/{_id}/logs?from&to&limit
			users.GET("/:_id/logs", logHandler.GetLogs)
			// POST /api/users/{_id}/logs/export?from&to&limit
			users.POST("/:_id/logs/export", logHandler.ExportLogs)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		abortWithError(c, http.StatusNotFound, "not found")
	})
	return nil
}

// WithCORS wraps the engine so browsers on allowedOrigins can call the API.
func WithCORS(handler http.Handler, allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	})(handler)
}
