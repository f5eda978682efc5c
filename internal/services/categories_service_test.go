// internal/services/categories_service_test.go
package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souqhub/souq-backend/internal/models"
	"github.com/souqhub/souq-backend/internal/store"
	"github.com/souqhub/souq-backend/internal/store/fixture"
)

// countingStore counts category loads and can fail them on demand.
type countingStore struct {
	store.Store
	loads atomic.Int32
	fail  atomic.Bool
}

func (s *countingStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	s.loads.Add(1)
	if s.fail.Load() {
		return nil, errors.New("connection refused")
	}
	return s.Store.ListCategories(ctx)
}

func TestCategoriesListActiveSorted(t *testing.T) {
	svc := NewCategoriesService(fixture.New(0), 5*time.Second)

	categories, err := svc.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, categories)

	for i, c := range categories {
		assert.True(t, c.IsActive)
		if i > 0 {
			assert.GreaterOrEqual(t, c.SortOrder, categories[i-1].SortOrder)
		}
	}
}

func TestCategoriesLoadedOnce(t *testing.T) {
	backing := &countingStore{Store: fixture.New(0)}
	svc := NewCategoriesService(backing, 5*time.Second)
	ctx := context.Background()

	_, err := svc.List(ctx)
	require.NoError(t, err)
	_, err = svc.List(ctx)
	require.NoError(t, err)
	_, err = svc.ByID(ctx, fixture.CategoryElectronicsID)
	require.NoError(t, err)

	assert.Equal(t, int32(1), backing.loads.Load(), "the category tree is fetched once per instance")
}

func TestCategoriesFailedLoadRetries(t *testing.T) {
	backing := &countingStore{Store: fixture.New(0)}
	backing.fail.Store(true)
	svc := NewCategoriesService(backing, 5*time.Second)
	ctx := context.Background()

	_, err := svc.List(ctx)
	assert.ErrorIs(t, err, ErrBackend)

	// An error is not sticky: the next call hits the store again.
	backing.fail.Store(false)
	categories, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, categories)
	assert.Equal(t, int32(2), backing.loads.Load())
}

func TestCategoriesByIDAndSlug(t *testing.T) {
	svc := NewCategoriesService(fixture.New(0), 5*time.Second)
	ctx := context.Background()

	byID, err := svc.ByID(ctx, fixture.CategoryElectronicsID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "electronics", byID.Slug)

	bySlug, err := svc.BySlug(ctx, "electronics")
	require.NoError(t, err)
	require.NotNil(t, bySlug)
	assert.Equal(t, fixture.CategoryElectronicsID, bySlug.ID)

	absent, err := svc.BySlug(ctx, "no-such-slug")
	assert.NoError(t, err)
	assert.Nil(t, absent)
}

func TestCategoriesInactiveHidden(t *testing.T) {
	svc := NewCategoriesService(fixture.New(0), 5*time.Second)

	categories, err := svc.List(context.Background())
	require.NoError(t, err)

	for _, c := range categories {
		assert.NotEqual(t, "antiques", c.Slug, "inactive categories stay hidden")
	}
}

func TestCategoriesSaveInvalidatesCache(t *testing.T) {
	backing := &countingStore{Store: fixture.New(0)}
	svc := NewCategoriesService(backing, 5*time.Second)
	ctx := context.Background()

	_, err := svc.List(ctx)
	require.NoError(t, err)

	err = svc.Save(ctx, &models.Category{
		Slug:      "books",
		NameAr:    "كتب",
		NameEn:    "Books",
		SortOrder: 8,
		IsActive:  true,
	})
	require.NoError(t, err)

	categories, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), backing.loads.Load(), "a save drops the cache")

	found := false
	for _, c := range categories {
		if c.Slug == "books" {
			found = true
		}
	}
	assert.True(t, found)
}
