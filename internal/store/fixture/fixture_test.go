// internal/store/fixture/fixture_test.go
package fixture

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souqhub/souq-backend/internal/models"
	"github.com/souqhub/souq-backend/internal/store"
)

func newTestProvider() *Provider {
	return New(0)
}

func TestListListingsDefaultsToActive(t *testing.T) {
	p := newTestProvider()

	page, err := p.ListListings(context.Background(), store.ListingFilter{}, 1, 50)
	require.NoError(t, err)

	assert.Equal(t, int64(10), page.Total)
	for _, l := range page.Items {
		assert.Equal(t, models.ListingStatusActive, l.Status)
	}
}

func TestListListingsExplicitStatusFilter(t *testing.T) {
	p := newTestProvider()

	status := models.ListingStatusPending
	page, err := p.ListListings(context.Background(), store.ListingFilter{Status: &status}, 1, 50)
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	assert.Equal(t, ListingPendingPCID, page.Items[0].ID)
}

func TestListListingsNewestFirst(t *testing.T) {
	p := newTestProvider()

	page, err := p.ListListings(context.Background(), store.ListingFilter{}, 1, 50)
	require.NoError(t, err)

	for i := 1; i < len(page.Items); i++ {
		assert.False(t, page.Items[i].CreatedAt.After(page.Items[i-1].CreatedAt),
			"listings must be ordered newest first")
	}
	assert.Equal(t, ListingIphoneID, page.Items[0].ID)
}

func TestListListingsCategoryFilter(t *testing.T) {
	p := newTestProvider()

	categoryID := CategoryElectronicsID
	page, err := p.ListListings(context.Background(), store.ListingFilter{CategoryID: &categoryID}, 1, 50)
	require.NoError(t, err)

	// Sold TV and pending PC are electronics too but not active.
	assert.Equal(t, int64(2), page.Total)
	for _, l := range page.Items {
		assert.Equal(t, CategoryElectronicsID, l.CategoryID)
	}
}

func TestListListingsPriceRangeInclusive(t *testing.T) {
	p := newTestProvider()

	min, max := 350.0, 950.0
	page, err := p.ListListings(context.Background(), store.ListingFilter{MinPrice: &min, MaxPrice: &max}, 1, 50)
	require.NoError(t, err)

	require.NotEmpty(t, page.Items)
	ids := make(map[string]bool)
	for _, l := range page.Items {
		require.NotNil(t, l.Price)
		assert.GreaterOrEqual(t, *l.Price, min)
		assert.LessOrEqual(t, *l.Price, max)
		ids[l.ID.String()] = true
	}
	// Both boundary values are included.
	assert.True(t, ids[ListingDressID.String()], "price exactly at the minimum matches")
	assert.True(t, ids[ListingLaptopID.String()], "price exactly at the maximum matches")
	// Unpriced listings never match a price range.
	assert.False(t, ids[ListingFreeSofaID.String()])
}

func TestListListingsSearchCaseInsensitive(t *testing.T) {
	p := newTestProvider()

	// Latin query matching the description of an Arabic-titled listing.
	page, err := p.ListListings(context.Background(), store.ListingFilter{Search: "IPHONE"}, 1, 50)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, ListingIphoneID, page.Items[0].ID)

	// Arabic query matching the title.
	page, err = p.ListListings(context.Background(), store.ListingFilter{Search: "آيفون"}, 1, 50)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, ListingIphoneID, page.Items[0].ID)
}

func TestListListingsRegionAndFeatured(t *testing.T) {
	p := newTestProvider()

	region := models.RegionRamallah
	page, err := p.ListListings(context.Background(), store.ListingFilter{Region: &region, FeaturedOnly: true}, 1, 50)
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	for _, l := range page.Items {
		assert.True(t, l.IsFeatured)
		assert.Equal(t, models.RegionRamallah, l.Region)
	}
}

func TestListListingsPagination(t *testing.T) {
	p := newTestProvider()

	page1, err := p.ListListings(context.Background(), store.ListingFilter{}, 1, 4)
	require.NoError(t, err)
	assert.Len(t, page1.Items, 4)
	assert.Equal(t, int64(10), page1.Total)
	assert.True(t, page1.HasMore)

	page3, err := p.ListListings(context.Background(), store.ListingFilter{}, 3, 4)
	require.NoError(t, err)
	assert.Len(t, page3.Items, 2)
	assert.False(t, page3.HasMore)

	// Page boundary exactly at the total: no further pages.
	page2, err := p.ListListings(context.Background(), store.ListingFilter{}, 2, 5)
	require.NoError(t, err)
	assert.Len(t, page2.Items, 5)
	assert.False(t, page2.HasMore)

	// Out-of-range page returns an empty slice, not an error.
	page9, err := p.ListListings(context.Background(), store.ListingFilter{}, 9, 4)
	require.NoError(t, err)
	assert.Empty(t, page9.Items)
	assert.Equal(t, int64(10), page9.Total)
}

func TestGetListingAttachesRelations(t *testing.T) {
	p := newTestProvider()

	listing, err := p.GetListing(context.Background(), ListingIphoneID)
	require.NoError(t, err)
	require.NotNil(t, listing)

	require.NotNil(t, listing.Category)
	assert.Equal(t, "electronics", listing.Category.Slug)
	require.NotNil(t, listing.Owner)
	assert.Empty(t, listing.Owner.PasswordHash)
}

func TestGetListingAbsentIsNotAnError(t *testing.T) {
	p := newTestProvider()

	listing, err := p.GetListing(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, listing)
}

func TestUpdateListingOwnerImmutable(t *testing.T) {
	p := newTestProvider()

	listing, err := p.UpdateListing(context.Background(), ListingIphoneID, map[string]interface{}{
		"owner_id": UserOmarID,
		"title":    "عنوان جديد",
	})
	require.NoError(t, err)
	require.NotNil(t, listing)

	assert.Equal(t, "عنوان جديد", listing.Title)
	assert.Equal(t, UserAhmadID, listing.OwnerID)
}

func TestUpdateListingClearsPrice(t *testing.T) {
	p := newTestProvider()

	listing, err := p.UpdateListing(context.Background(), ListingIphoneID, map[string]interface{}{
		"price_type": models.PriceTypeFree,
		"price":      nil,
	})
	require.NoError(t, err)
	require.NotNil(t, listing)

	assert.Equal(t, models.PriceTypeFree, listing.PriceType)
	assert.Nil(t, listing.Price)
}

func TestDeleteListingIdempotent(t *testing.T) {
	p := newTestProvider()

	removed, err := p.DeleteListing(context.Background(), ListingParrotID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = p.DeleteListing(context.Background(), ListingParrotID)
	require.NoError(t, err)
	assert.False(t, removed)

	listing, err := p.GetListing(context.Background(), ListingParrotID)
	require.NoError(t, err)
	assert.Nil(t, listing)
}

func TestToggleFavoriteMovesCount(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()

	before, err := p.GetListing(ctx, ListingCarID)
	require.NoError(t, err)
	start := before.FavoritesCount

	favorited, count, err := p.ToggleFavorite(ctx, UserAhmadID, ListingCarID)
	require.NoError(t, err)
	assert.True(t, favorited)
	assert.Equal(t, start+1, count)

	isFav, err := p.IsFavorite(ctx, UserAhmadID, ListingCarID)
	require.NoError(t, err)
	assert.True(t, isFav)

	favorited, count, err = p.ToggleFavorite(ctx, UserAhmadID, ListingCarID)
	require.NoError(t, err)
	assert.False(t, favorited)
	assert.Equal(t, start, count)
}

func TestToggleFavoriteAbsentListing(t *testing.T) {
	p := newTestProvider()

	_, _, err := p.ToggleFavorite(context.Background(), UserAhmadID, uuid.New())
	assert.ErrorIs(t, err, store.ErrListingNotFound)
}

func TestListFavoritesMostRecentFirst(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()

	_, _, err := p.ToggleFavorite(ctx, UserAhmadID, ListingCarID)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, _, err = p.ToggleFavorite(ctx, UserAhmadID, ListingDressID)
	require.NoError(t, err)

	page, err := p.ListFavorites(ctx, UserAhmadID, 1, 10)
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	assert.Equal(t, ListingDressID, page.Items[0].ID)
	assert.Equal(t, ListingCarID, page.Items[1].ID)
}

func TestSimulatedLatencyHonorsContext(t *testing.T) {
	p := New(500 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.ListListings(ctx, store.ListingFilter{}, 1, 10)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFixtureUsersCanAuthenticate(t *testing.T) {
	p := newTestProvider()

	user, err := p.GetUserByEmail(context.Background(), "ahmad@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NoError(t, user.CheckPassword(DemoPassword))
}

func TestCreateListingAssignsID(t *testing.T) {
	p := newTestProvider()

	listing := &models.Listing{
		OwnerID:     UserAhmadID,
		CategoryID:  CategoryFurnitureID,
		Title:       "طاولة سفرة خشب زان",
		Description: "طاولة سفرة 6 كراسي خشب زان، استعمال سنة واحدة",
		AdType:      models.AdTypeSell,
		PriceType:   models.PriceTypeFixed,
		Currency:    models.CurrencyILS,
		City:        "رام الله",
		Region:      models.RegionRamallah,
		Status:      models.ListingStatusActive,
	}
	price := 900.0
	listing.Price = &price

	require.NoError(t, p.CreateListing(context.Background(), listing))
	assert.NotEqual(t, uuid.Nil, listing.ID)
	assert.NotNil(t, listing.Category)

	got, err := p.GetListing(context.Background(), listing.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, listing.Title, got.Title)
}
