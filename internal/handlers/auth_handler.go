package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "butce/internal/errors"
	"butce/internal/models"
	"butce/internal/services"
	"butce/internal/session"
)

// AuthHandler handles login, logout and the user's own account.
type AuthHandler struct {
	userService services.UserServicer
	sessions    *session.Manager
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService services.UserServicer, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{userService: userService, sessions: sessions}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required,max=50"`
	Password string `form:"password" json:"password" binding:"required"`
}

// ChangePasswordRequest represents the password change payload
type ChangePasswordRequest struct {
	CurrentPassword string `form:"current_password" json:"current_password" binding:"required"`
	NewPassword     string `form:"new_password" json:"new_password" binding:"required,min=4,max=72"`
}

// UserResponse represents the user data in the response
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// LoginStatusResponse tells the client whether a session is active.
type LoginStatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	Message       string `json:"message,omitempty"`
}

// UserEnvelope wraps a user for login and profile responses.
type UserEnvelope struct {
	User UserResponse `json:"user"`
}

func newUserResponse(user *models.User) UserResponse {
	return UserResponse{ID: user.ID, Username: user.Username}
}

// LoginStatus reports whether the caller already has a session
// @Summary     Login page
// @Description Report whether the caller is logged in
// @Tags        auth
// @Produce     json
// @Success     200 {object} LoginStatusResponse
// @Router      /login [get]
func (h *AuthHandler) LoginStatus(c *gin.Context) {
	if _, ok := h.sessions.CurrentUserID(c); ok {
		c.JSON(http.StatusOK, LoginStatusResponse{Authenticated: true})
		return
	}
	c.JSON(http.StatusOK, LoginStatusResponse{Message: "Please log in"})
}

// Login handles user login
// @Summary     Login user
// @Description Verify credentials and start a cookie session
// @Tags        auth
// @Accept      json,x-www-form-urlencoded
// @Produce     json
// @Param       request body LoginRequest true "User login credentials"
// @Success     200 {object} UserEnvelope "Session established"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Login failed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.Authenticate(req.Username, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.sessions.Establish(c, user); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, UserEnvelope{User: newUserResponse(user)})
}

// Logout ends the session and sends the client back to the login page
// @Summary     Logout
// @Tags        auth
// @Success     303
// @Router      /logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Terminate(c)
	c.Redirect(http.StatusSeeOther, "/login")
}

// GetProfile returns the user's profile
// @Summary     Get user profile
// @Description Get the logged-in user's profile information
// @Tags        user
// @Produce     json
// @Success     200 {object} UserEnvelope "User profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserEnvelope{User: newUserResponse(user)})
}

// ChangePassword rotates the logged-in user's password
// @Summary     Change password
// @Tags        user
// @Accept      json,x-www-form-urlencoded
// @Produce     json
// @Param       request body ChangePasswordRequest true "Current and new password"
// @Success     200 {object} MessageResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Current password is wrong"
// @Router      /password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	if err := h.userService.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Password changed"})
}
