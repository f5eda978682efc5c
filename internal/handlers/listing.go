// internal/handlers/listing.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/souqhub/souq-backend/internal/i18n"
	"github.com/souqhub/souq-backend/internal/models"
	"github.com/souqhub/souq-backend/internal/services"
	"github.com/souqhub/souq-backend/internal/store"
	"github.com/souqhub/souq-backend/internal/utils"
)

type ListingHandler struct {
	adsService     *services.AdsService
	storageService *services.StorageService
}

func NewListingHandler(adsService *services.AdsService, storageService *services.StorageService) *ListingHandler {
	return &ListingHandler{
		adsService:     adsService,
		storageService: storageService,
	}
}

// GET /listings
func (h *ListingHandler) GetListings(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	filter := buildListingFilter(c)

	page, err := h.adsService.FetchListings(c.Request.Context(), filter, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SetPaginationHeaders(c, page.Page, page.PageSize, page.Total)
	utils.SuccessResponse(c, page)
}

// buildListingFilter reads the optional query predicates. Unparseable
// values are ignored rather than rejected, matching how browse URLs get
// shared around with stale parameters.
func buildListingFilter(c *gin.Context) store.ListingFilter {
	var filter store.ListingFilter

	if categoryIDStr := c.Query("category_id"); categoryIDStr != "" {
		if categoryID, err := uuid.Parse(categoryIDStr); err == nil {
			filter.CategoryID = &categoryID
		}
	}
	if city := c.Query("city"); city != "" {
		filter.City = city
	}
	if regionStr := c.Query("region"); regionStr != "" {
		region := models.Region(regionStr)
		if region.Valid() {
			filter.Region = &region
		}
	}
	if minStr := c.Query("min_price"); minStr != "" {
		if min, err := strconv.ParseFloat(minStr, 64); err == nil {
			filter.MinPrice = &min
		}
	}
	if maxStr := c.Query("max_price"); maxStr != "" {
		if max, err := strconv.ParseFloat(maxStr, 64); err == nil {
			filter.MaxPrice = &max
		}
	}
	if currencyStr := c.Query("currency"); currencyStr != "" {
		currency := models.Currency(currencyStr)
		if currency.Valid() {
			filter.Currency = &currency
		}
	}
	if conditionStr := c.Query("condition"); conditionStr != "" {
		condition := models.Condition(conditionStr)
		filter.Condition = &condition
	}
	if adTypeStr := c.Query("ad_type"); adTypeStr != "" {
		adType := models.AdType(adTypeStr)
		if adType.Valid() {
			filter.AdType = &adType
		}
	}
	if featured, err := strconv.ParseBool(c.Query("featured")); err == nil {
		filter.FeaturedOnly = featured
	}
	if urgent, err := strconv.ParseBool(c.Query("urgent")); err == nil {
		filter.UrgentOnly = urgent
	}
	if ownerIDStr := c.Query("owner_id"); ownerIDStr != "" {
		if ownerID, err := uuid.Parse(ownerIDStr); err == nil {
			filter.OwnerID = &ownerID
		}
	}
	if search := c.Query("q"); search != "" {
		filter.Search = search
	}

	return filter
}

// GET /listings/:id
func (h *ListingHandler) GetListing(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "id"), nil)
		return
	}

	var viewerID *uuid.UUID
	if actor, ok := actorID(c); ok {
		viewerID = &actor
	}

	listing, err := h.adsService.GetListingByID(c.Request.Context(), id, viewerID, actorIsAdmin(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if listing == nil {
		utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyListingNotFound))
		return
	}

	response := gin.H{"listing": listing}
	if viewerID != nil {
		if favorited, err := h.adsService.IsFavorite(c.Request.Context(), *viewerID, id); err == nil {
			response["is_favorite"] = favorited
		}
	}
	utils.SuccessResponse(c, response)
}

// POST /listings
func (h *ListingHandler) CreateListing(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorID(c)
	if !ok {
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
		return
	}

	var req services.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	listing, err := h.adsService.CreateListing(c.Request.Context(), actor, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyListingCreated),
		"listing": listing,
	})
}

// PUT /listings/:id
func (h *ListingHandler) UpdateListing(c *gin.Context) {
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

	var req services.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	listing, err := h.adsService.UpdateListing(c.Request.Context(), actor, id, &req, actorIsAdmin(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyListingUpdated),
		"listing": listing,
	})
}

// DELETE /listings/:id
func (h *ListingHandler) DeleteListing(c *gin.Context) {
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

	if _, err := h.adsService.DeleteListing(c.Request.Context(), actor, id, actorIsAdmin(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyListingDeleted),
	})
}

// POST /listings/:id/favorite
func (h *ListingHandler) ToggleFavorite(c *gin.Context) {
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

	favorited, count, err := h.adsService.ToggleFavorite(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	messageKey := i18n.KeyFavoriteRemoved
	if favorited {
		messageKey = i18n.KeyFavoriteAdded
	}
	utils.SuccessResponse(c, gin.H{
		"message":         i18n.T(lang, messageKey),
		"is_favorite":     favorited,
		"favorites_count": count,
	})
}

// GET /favorites
func (h *ListingHandler) GetFavorites(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorID(c)
	if !ok {
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
		return
	}

	params := utils.GetPaginationParams(c)
	page, err := h.adsService.ListFavorites(c.Request.Context(), actor, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SetPaginationHeaders(c, page.Page, page.PageSize, page.Total)
	utils.SuccessResponse(c, page)
}

// POST /listings/:id/images
func (h *ListingHandler) UploadImage(c *gin.Context) {
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

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileInvalidType), nil)
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadImage(file, header, h.storageService.ListingImageOptions())
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}

	isPrimary, _ := strconv.ParseBool(c.DefaultPostForm("is_primary", "false"))
	sortOrder, _ := strconv.Atoi(c.DefaultPostForm("sort_order", "0"))

	image, err := h.adsService.AttachImage(c.Request.Context(), actor, id, result.URL, result.Key, isPrimary, sortOrder)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFileUploadSuccess),
		"image":   image,
	})
}
