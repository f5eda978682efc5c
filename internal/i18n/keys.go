// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthAccountLocked      = "auth.account_locked"
	KeyAuthAccountDisabled    = "auth.account_disabled"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthUsernameTaken      = "auth.username_taken"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Users
	KeyUserNotFound       = "user.not_found"
	KeyUserProfileUpdated = "user.profile_updated"
	KeyUserAccountDeleted = "user.account_deleted"

	// Listings
	KeyListingCreated       = "listing.created"
	KeyListingUpdated       = "listing.updated"
	KeyListingDeleted       = "listing.deleted"
	KeyListingNotFound      = "listing.not_found"
	KeyListingFetchFailed   = "listing.fetch_failed"
	KeyListingNotOwner      = "listing.not_owner"
	KeyListingApproved      = "listing.approved"
	KeyListingRejected      = "listing.rejected"
	KeyListingPriceRequired = "listing.price_required"

	// Favorites
	KeyFavoriteAdded   = "favorite.added"
	KeyFavoriteRemoved = "favorite.removed"

	// Categories
	KeyCategoryNotFound = "category.not_found"
	KeyCategorySaved    = "category.saved"

	// Promotions
	KeyPromotionCreated   = "promotion.created"
	KeyPromotionConfirmed = "promotion.confirmed"
	KeyPromotionFailed    = "promotion.failed"

	// Admin
	KeyAdminAccessDenied  = "admin.access_denied"
	KeyAdminActionSuccess = "admin.action_success"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// File upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
	KeyFileInvalidType   = "file.invalid_type"
	KeyFileTooLarge      = "file.too_large"
)
