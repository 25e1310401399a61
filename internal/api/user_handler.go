package api

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserHandler holds the user service dependency.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// --- Request/Response Structs ---

// CreateUserRequest accepts JSON or a urlencoded form.
type CreateUserRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
}

type UserResponse struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		Username: user.Username,
		ID:       user.ID.Hex(),
	}
}

// --- Handler Methods ---

// ListUsers godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Success 200 {array} UserResponse
// @Failure 500 {object} errorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = MapUserToResponse(&users[i])
	}
	c.JSON(http.StatusOK, resp)
}

// CreateUser godoc
// @Summary Create a user
// @Tags Users
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param user body CreateUserRequest true "Username"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, bindError(err))
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user))
}
