// internal/services/ads_service_test.go
package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souqhub/souq-backend/internal/models"
	"github.com/souqhub/souq-backend/internal/store"
	"github.com/souqhub/souq-backend/internal/store/fixture"
	"github.com/souqhub/souq-backend/internal/utils"
)

func newAdsService() *AdsService {
	return NewAdsService(fixture.New(0), 5*time.Second, 30)
}

// failingStore fails list calls while delegating everything else.
type failingStore struct {
	store.Store
	fail atomic.Bool
}

func (s *failingStore) ListListings(ctx context.Context, filter store.ListingFilter, page, pageSize int) (*store.ListingPage, error) {
	if s.fail.Load() {
		return nil, errors.New("connection refused")
	}
	return s.Store.ListListings(ctx, filter, page, pageSize)
}

// gateStore blocks the first list call until released so a later call can
// overtake it.
type gateStore struct {
	store.Store
	gate  chan struct{}
	calls atomic.Int32
}

func (s *gateStore) ListListings(ctx context.Context, filter store.ListingFilter, page, pageSize int) (*store.ListingPage, error) {
	if s.calls.Add(1) == 1 {
		<-s.gate
	}
	return s.Store.ListListings(ctx, filter, page, pageSize)
}

func TestFetchListingsReachesReady(t *testing.T) {
	svc := newAdsService()

	page, err := svc.FetchListings(context.Background(), store.ListingFilter{}, utils.PaginationParams{Page: 1, PageSize: 4})
	require.NoError(t, err)

	assert.Len(t, page.Items, 4)
	assert.Equal(t, int64(10), page.Total)
	assert.True(t, page.HasMore)

	state := svc.State()
	assert.Equal(t, PhaseReady, state.Phase)
	assert.Len(t, state.Items, 4)
	assert.Empty(t, state.ErrorKey)
}

func TestFetchListingsRejectsBadPaging(t *testing.T) {
	svc := newAdsService()

	_, err := svc.FetchListings(context.Background(), store.ListingFilter{}, utils.PaginationParams{Page: 0, PageSize: 10})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.FetchListings(context.Background(), store.ListingFilter{}, utils.PaginationParams{Page: 1, PageSize: 0})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFetchListingsAppendExtendsItems(t *testing.T) {
	svc := newAdsService()
	ctx := context.Background()

	_, err := svc.FetchListings(ctx, store.ListingFilter{}, utils.PaginationParams{Page: 1, PageSize: 4})
	require.NoError(t, err)

	_, err = svc.FetchListings(ctx, store.ListingFilter{}, utils.PaginationParams{Page: 2, PageSize: 4, Append: true})
	require.NoError(t, err)

	state := svc.State()
	assert.Len(t, state.Items, 8)
	assert.Equal(t, 2, state.Page)
	assert.True(t, state.HasMore)

	// A non-append fetch replaces instead.
	_, err = svc.FetchListings(ctx, store.ListingFilter{}, utils.PaginationParams{Page: 1, PageSize: 4})
	require.NoError(t, err)
	assert.Len(t, svc.State().Items, 4)
}

func TestFetchListingsErrorKeepsPriorItems(t *testing.T) {
	backing := &failingStore{Store: fixture.New(0)}
	svc := NewAdsService(backing, 5*time.Second, 30)
	ctx := context.Background()

	_, err := svc.FetchListings(ctx, store.ListingFilter{}, utils.PaginationParams{Page: 1, PageSize: 4})
	require.NoError(t, err)

	backing.fail.Store(true)
	_, err = svc.FetchListings(ctx, store.ListingFilter{}, utils.PaginationParams{Page: 1, PageSize: 4})
	assert.ErrorIs(t, err, ErrBackend)

	state := svc.State()
	assert.Equal(t, PhaseError, state.Phase)
	assert.NotEmpty(t, state.ErrorKey)
	assert.Len(t, state.Items, 4, "a failed refetch keeps the last good items")

	// Recovery clears the error.
	backing.fail.Store(false)
	_, err = svc.FetchListings(ctx, store.ListingFilter{}, utils.PaginationParams{Page: 1, PageSize: 4})
	require.NoError(t, err)
	assert.Equal(t, PhaseReady, svc.State().Phase)
	assert.Empty(t, svc.State().ErrorKey)
}

func TestFetchListingsDiscardsStaleResponse(t *testing.T) {
	backing := &gateStore{Store: fixture.New(0), gate: make(chan struct{})}
	svc := NewAdsService(backing, 5*time.Second, 30)
	ctx := context.Background()

	slow := make(chan error, 1)
	go func() {
		_, err := svc.FetchListings(ctx, store.ListingFilter{}, utils.PaginationParams{Page: 1, PageSize: 2})
		slow <- err
	}()

	// Wait until the slow fetch is parked inside the store call.
	require.Eventually(t, func() bool { return backing.calls.Load() == 1 }, time.Second, time.Millisecond)

	_, err := svc.FetchListings(ctx, store.ListingFilter{}, utils.PaginationParams{Page: 1, PageSize: 6})
	require.NoError(t, err)
	require.Len(t, svc.State().Items, 6)

	// Release the first fetch; its response must not overwrite the newer one.
	close(backing.gate)
	require.NoError(t, <-slow)
	assert.Len(t, svc.State().Items, 6)
	assert.Equal(t, 6, svc.State().PageSize)
}

func TestGetListingByIDHidesModerated(t *testing.T) {
	svc := newAdsService()
	ctx := context.Background()

	// Anonymous viewers never see pending listings.
	listing, err := svc.GetListingByID(ctx, fixture.ListingPendingPCID, nil, false)
	require.NoError(t, err)
	assert.Nil(t, listing)

	// The owner does.
	owner := fixture.UserOmarID
	listing, err = svc.GetListingByID(ctx, fixture.ListingPendingPCID, &owner, false)
	require.NoError(t, err)
	require.NotNil(t, listing)

	// So does an admin.
	admin := fixture.UserAdminID
	listing, err = svc.GetListingByID(ctx, fixture.ListingPendingPCID, &admin, true)
	require.NoError(t, err)
	assert.NotNil(t, listing)
}

func TestGetListingByIDAbsent(t *testing.T) {
	svc := newAdsService()

	listing, err := svc.GetListingByID(context.Background(), uuid.New(), nil, false)
	assert.NoError(t, err)
	assert.Nil(t, listing)
}

func TestCreateListingRequiresAuth(t *testing.T) {
	svc := newAdsService()

	_, err := svc.CreateListing(context.Background(), uuid.Nil, &CreateListingRequest{})
	assert.ErrorIs(t, err, ErrAuthRequired)
}

func validCreateRequest() *CreateListingRequest {
	price := 1200.0
	return &CreateListingRequest{
		Title:       "دراجة هوائية جبلية",
		Description: "دراجة جبلية 26 انش، جيرات شيمانو، بحالة ممتازة",
		CategoryID:  fixture.CategoryServicesID,
		AdType:      models.AdTypeSell,
		Condition:   models.ConditionGood,
		Price:       &price,
		PriceType:   models.PriceTypeFixed,
		City:        "رام الله",
		Region:      models.RegionRamallah,
	}
}

func TestCreateListingDefaults(t *testing.T) {
	svc := newAdsService()

	before := time.Now()
	listing, err := svc.CreateListing(context.Background(), fixture.UserAhmadID, validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, fixture.UserAhmadID, listing.OwnerID)
	assert.Equal(t, models.ListingStatusActive, listing.Status)
	assert.Equal(t, models.CurrencyILS, listing.Currency)
	assert.Zero(t, listing.ViewsCount)
	assert.Zero(t, listing.FavoritesCount)

	require.NotNil(t, listing.ExpiresAt)
	expected := before.AddDate(0, 0, 30)
	assert.WithinDuration(t, expected, *listing.ExpiresAt, time.Minute)
}

func TestCreateListingPriceRules(t *testing.T) {
	svc := newAdsService()
	ctx := context.Background()

	// Fixed price without an amount is rejected.
	req := validCreateRequest()
	req.Price = nil
	_, err := svc.CreateListing(ctx, fixture.UserAhmadID, req)
	assert.ErrorIs(t, err, ErrValidation)

	// A price supplied with a free listing is silently dropped.
	req = validCreateRequest()
	req.PriceType = models.PriceTypeFree
	listing, err := svc.CreateListing(ctx, fixture.UserAhmadID, req)
	require.NoError(t, err)
	assert.Nil(t, listing.Price)

	// Same for contact-for-price.
	req = validCreateRequest()
	req.PriceType = models.PriceTypeContact
	listing, err = svc.CreateListing(ctx, fixture.UserAhmadID, req)
	require.NoError(t, err)
	assert.Nil(t, listing.Price)
}

func TestCreateListingValidation(t *testing.T) {
	svc := newAdsService()
	ctx := context.Background()

	req := validCreateRequest()
	req.Title = "ab"
	_, err := svc.CreateListing(ctx, fixture.UserAhmadID, req)
	assert.ErrorIs(t, err, ErrValidation)

	req = validCreateRequest()
	req.Region = models.Region("atlantis")
	_, err = svc.CreateListing(ctx, fixture.UserAhmadID, req)
	assert.ErrorIs(t, err, ErrValidation)

	req = validCreateRequest()
	req.AdType = models.AdType("barter")
	_, err = svc.CreateListing(ctx, fixture.UserAhmadID, req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateListingOwnership(t *testing.T) {
	svc := newAdsService()
	ctx := context.Background()

	title := "عنوان محدث"
	req := &UpdateListingRequest{Title: &title}

	// A stranger cannot touch it.
	_, err := svc.UpdateListing(ctx, fixture.UserOmarID, fixture.ListingIphoneID, req, false)
	assert.ErrorIs(t, err, ErrForbidden)

	// The owner can.
	listing, err := svc.UpdateListing(ctx, fixture.UserAhmadID, fixture.ListingIphoneID, req, false)
	require.NoError(t, err)
	assert.Equal(t, title, listing.Title)

	// An admin can too.
	title2 := "عنوان من الإدارة"
	listing, err = svc.UpdateListing(ctx, fixture.UserAdminID, fixture.ListingIphoneID, &UpdateListingRequest{Title: &title2}, true)
	require.NoError(t, err)
	assert.Equal(t, title2, listing.Title)
}

func TestUpdateListingPriceTypeChangeClearsPrice(t *testing.T) {
	svc := newAdsService()

	free := models.PriceTypeFree
	listing, err := svc.UpdateListing(context.Background(), fixture.UserAhmadID, fixture.ListingIphoneID,
		&UpdateListingRequest{PriceType: &free}, false)
	require.NoError(t, err)

	assert.Equal(t, models.PriceTypeFree, listing.PriceType)
	assert.Nil(t, listing.Price)
}

func TestUpdateListingAbsent(t *testing.T) {
	svc := newAdsService()

	title := "x y z"
	_, err := svc.UpdateListing(context.Background(), fixture.UserAhmadID, uuid.New(), &UpdateListingRequest{Title: &title}, false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteListingIdempotent(t *testing.T) {
	svc := newAdsService()
	ctx := context.Background()

	ok, err := svc.DeleteListing(ctx, fixture.UserAhmadID, fixture.ListingParrotID, false)
	require.NoError(t, err)
	assert.True(t, ok)

	// Deleting again still succeeds.
	ok, err = svc.DeleteListing(ctx, fixture.UserAhmadID, fixture.ListingParrotID, false)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDeleteListingForbiddenForStranger(t *testing.T) {
	svc := newAdsService()

	_, err := svc.DeleteListing(context.Background(), fixture.UserOmarID, fixture.ListingIphoneID, false)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestToggleFavoriteRequiresAuth(t *testing.T) {
	svc := newAdsService()

	_, _, err := svc.ToggleFavorite(context.Background(), uuid.Nil, fixture.ListingIphoneID)
	assert.ErrorIs(t, err, ErrAuthRequired)
}

func TestToggleFavoriteAbsentListing(t *testing.T) {
	svc := newAdsService()

	_, _, err := svc.ToggleFavorite(context.Background(), fixture.UserAhmadID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrBackend)
}
