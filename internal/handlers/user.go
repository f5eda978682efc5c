// internal/handlers/user.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/souqhub/souq-backend/internal/i18n"
	"github.com/souqhub/souq-backend/internal/services"
	"github.com/souqhub/souq-backend/internal/utils"
)

type UserHandler struct {
	userService    *services.UserService
	storageService *services.StorageService
}

func NewUserHandler(userService *services.UserService, storageService *services.StorageService) *UserHandler {
	return &UserHandler{
		userService:    userService,
		storageService: storageService,
	}
}

// GET /users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorID(c)
	if !ok {
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), actor)
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

// PUT /users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorID(c)
	if !ok {
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), actor, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserProfileUpdated),
		"user":    user,
	})
}

// POST /users/avatar
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorID(c)
	if !ok {
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
		return
	}

	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileInvalidType), nil)
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadImage(file, header, h.storageService.AvatarOptions())
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}

	user, err := h.userService.SetAvatar(c.Request.Context(), actor, result.URL)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFileUploadSuccess),
		"user":    user,
	})
}

// DELETE /users/profile
func (h *UserHandler) DeactivateAccount(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorID(c)
	if !ok {
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
		return
	}

	if err := h.userService.DeactivateAccount(c.Request.Context(), actor); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserAccountDeleted),
	})
}

// GET /users/:id
func (h *UserHandler) GetPublicProfile(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "id"), nil)
		return
	}

	profile, err := h.userService.GetPublicProfile(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if profile == nil {
		utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyUserNotFound))
		return
	}

	utils.SuccessResponse(c, gin.H{"user": profile})
}
