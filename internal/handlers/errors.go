// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/souqhub/souq-backend/internal/i18n"
	"github.com/souqhub/souq-backend/internal/services"
	"github.com/souqhub/souq-backend/internal/utils"
)

// respondServiceError maps the service error taxonomy onto HTTP responses
// with localized messages. Unrecognized errors become 500s without leaking
// backend detail.
func respondServiceError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, services.ErrAuthRequired):
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyListingNotOwner))
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyListingNotFound))
	case errors.Is(err, services.ErrValidation):
		utils.BadRequestResponse(c, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
	case errors.Is(err, services.ErrAccountLocked):
		utils.ErrorResponse(c, 423, "ACCOUNT_LOCKED", i18n.T(lang, i18n.KeyAuthAccountLocked), nil)
	case errors.Is(err, services.ErrAccountDisabled):
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAuthAccountDisabled))
	default:
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyListingFetchFailed))
	}
}

// actorID pulls the authenticated user id out of the request context.
func actorID(c *gin.Context) (uuid.UUID, bool) {
	idStr, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func actorIsAdmin(c *gin.Context) bool {
	userType, ok := utils.GetUserTypeFromContext(c)
	return ok && userType == "admin"
}
