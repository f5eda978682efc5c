// internal/handlers/auth.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/souqhub/souq-backend/internal/i18n"
	"github.com/souqhub/souq-backend/internal/services"
	"github.com/souqhub/souq-backend/internal/utils"
)

type AuthHandler struct {
	authService         *services.AuthService
	notificationService *services.NotificationService
}

func NewAuthHandler(authService *services.AuthService, notificationService *services.NotificationService) *AuthHandler {
	return &AuthHandler{
		authService:         authService,
		notificationService: notificationService,
	}
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	user, tokens, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Best effort; registration already succeeded.
	go h.notificationService.SendWelcomeEmail(user)

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAuthRegisterSuccess),
		"user":    user,
		"tokens":  tokens,
	})
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	user, tokens, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAuthLoginSuccess),
		"user":    user,
		"tokens":  tokens,
	})
}

// POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "refresh_token"), nil)
		return
	}

	user, tokens, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

// POST /auth/logout
//
// Tokens are stateless, so logout is acknowledged and the client discards
// its pair. Logged for the audit trail.
func (h *AuthHandler) Logout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if actor, ok := actorID(c); ok {
		h.authService.Logout(actor)
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAuthLogoutSuccess),
	})
}

// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorID(c)
	if !ok {
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if user == nil {
		utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyUserNotFound))
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user})
}
