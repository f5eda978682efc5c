// internal/handlers/promotion.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/souqhub/souq-backend/internal/i18n"
	"github.com/souqhub/souq-backend/internal/models"
	"github.com/souqhub/souq-backend/internal/services"
	"github.com/souqhub/souq-backend/internal/utils"
)

type PromotionHandler struct {
	promotionService *services.PromotionService
}

func NewPromotionHandler(promotionService *services.PromotionService) *PromotionHandler {
	return &PromotionHandler{promotionService: promotionService}
}

// POST /promotions
func (h *PromotionHandler) CreateOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorID(c)
	if !ok {
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
		return
	}

	var req struct {
		ListingID     uuid.UUID            `json:"listing_id" binding:"required"`
		PromotionType models.PromotionType `json:"promotion_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	result, err := h.promotionService.CreateOrder(c.Request.Context(), actor, req.ListingID, req.PromotionType)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":       i18n.T(lang, i18n.KeyPromotionCreated),
		"order":         result.Order,
		"client_secret": result.ClientSecret,
	})
}

// POST /promotions/:id/confirm
func (h *PromotionHandler) ConfirmOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorID(c)
	if !ok {
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "id"), nil)
		return
	}

	order, err := h.promotionService.ConfirmOrder(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPromotionConfirmed),
		"order":   order,
	})
}
