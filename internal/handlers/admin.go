// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/souqhub/souq-backend/internal/i18n"
	"github.com/souqhub/souq-backend/internal/models"
	"github.com/souqhub/souq-backend/internal/services"
	"github.com/souqhub/souq-backend/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// GET /admin/listings/pending
func (h *AdminHandler) GetPendingListings(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	page, err := h.adminService.PendingListings(c.Request.Context(), params.Page, params.PageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SetPaginationHeaders(c, page.Page, page.PageSize, page.Total)
	utils.SuccessResponse(c, page)
}

// POST /admin/listings/:id/approve
func (h *AdminHandler) ApproveListing(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	admin, ok := actorID(c)
	if !ok {
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "id"), nil)
		return
	}

	listing, err := h.adminService.ApproveListing(c.Request.Context(), admin, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyListingApproved),
		"listing": listing,
	})
}

// POST /admin/listings/:id/reject
func (h *AdminHandler) RejectListing(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	admin, ok := actorID(c)
	if !ok {
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "id"), nil)
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "reason"), nil)
		return
	}

	listing, err := h.adminService.RejectListing(c.Request.Context(), admin, id, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyListingRejected),
		"listing": listing,
	})
}

// POST /admin/categories
func (h *AdminHandler) SaveCategory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	admin, ok := actorID(c)
	if !ok {
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
		return
	}

	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if err := h.adminService.SaveCategory(c.Request.Context(), admin, &category); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyCategorySaved),
		"category": category,
	})
}

// PUT /admin/users/:id/status
func (h *AdminHandler) SetUserStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	admin, ok := actorID(c)
	if !ok {
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "id"), nil)
		return
	}

	var req struct {
		Status models.UserStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "status"), nil)
		return
	}

	user, err := h.adminService.SetUserStatus(c.Request.Context(), admin, id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAdminActionSuccess),
		"user":    user,
	})
}
