// internal/handlers/category.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/souqhub/souq-backend/internal/i18n"
	"github.com/souqhub/souq-backend/internal/services"
	"github.com/souqhub/souq-backend/internal/utils"
)

type CategoryHandler struct {
	categoriesService *services.CategoriesService
}

func NewCategoryHandler(categoriesService *services.CategoriesService) *CategoryHandler {
	return &CategoryHandler{categoriesService: categoriesService}
}

// GET /categories
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoriesService.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"categories": categories})
}

// GET /categories/:id
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	param := c.Param("id")

	// Accept either a UUID or a slug.
	if id, err := uuid.Parse(param); err == nil {
		category, err := h.categoriesService.ByID(c.Request.Context(), id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		if category == nil {
			utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyCategoryNotFound))
			return
		}
		utils.SuccessResponse(c, gin.H{"category": category})
		return
	}

	category, err := h.categoriesService.BySlug(c.Request.Context(), param)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if category == nil {
		utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyCategoryNotFound))
		return
	}
	utils.SuccessResponse(c, gin.H{"category": category})
}
