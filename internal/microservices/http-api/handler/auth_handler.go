package handler

import (
	"net/http"

	"churchhub/internal/microservices/http-api/dto"
	"churchhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the caller's current user record.
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := caller(c)
	if !ok {
		return
	}

	user, err := h.authService.Me(c.Request.Context(), principal.UserID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logout ends the session behind the caller's token; repeating it is harmless.
func (h *AuthHandler) Logout(c *gin.Context) {
	principal, ok := caller(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), principal.SessionID); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}
