package handlers

import (
	"context"
	"errors"
	"net/http"

	"vocab-service/internal/middleware"
	"vocab-service/internal/service"
	"vocab-service/internal/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Service *service.AuthService
}

func NewAuthHandler(s *service.AuthService) *AuthHandler {
	return &AuthHandler{Service: s}
}

// Register creates a new user account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,min=3"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	user, err := h.Service.Register(context.Background(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			utils.ConflictResponse(c, "Username or email already registered")
			return
		}
		utils.InternalErrorResponse(c, "Failed to register user", err)
		return
	}
	utils.CreatedResponse(c, "User registered", user)
}

// Login verifies credentials and returns a signed token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	token, user, err := h.Service.Login(context.Background(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			utils.UnauthorizedResponse(c, "Invalid email or password")
		case errors.Is(err, service.ErrUserInactive):
			utils.ForbiddenResponse(c, "Account is deactivated")
		default:
			utils.InternalErrorResponse(c, "Failed to log in", err)
		}
		return
	}
	utils.SuccessResponse(c, "Logged in", gin.H{
		"token": token,
		"user":  user,
	})
}

// Profile returns the authenticated user's account.
func (h *AuthHandler) Profile(c *gin.Context) {
	userID := middleware.UserID(c)
	user, err := h.Service.Profile(context.Background(), userID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "User not found", err)
		return
	}
	utils.SuccessResponse(c, "Profile", user)
}
