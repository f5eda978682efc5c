// internal/services/categories_service.go
package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/souqhub/souq-backend/internal/models"
	"github.com/souqhub/souq-backend/internal/store"
)

// CategoriesService loads the category tree once per instance and serves
// lookups from memory. A failed load is not sticky: the next call retries.
type CategoriesService struct {
	store   store.Store
	timeout time.Duration

	mu         sync.Mutex
	loaded     bool
	categories []models.Category
	byID       map[uuid.UUID]*models.Category
	bySlug     map[string]*models.Category
}

func NewCategoriesService(s store.Store, timeout time.Duration) *CategoriesService {
	return &CategoriesService{store: s, timeout: timeout}
}

func (s *CategoriesService) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// List returns all active categories ordered by sort_order then Arabic name.
// The first successful call fills the cache; later calls are served from it.
func (s *CategoriesService) List(ctx context.Context) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

// ByID resolves a category from the cache, or (nil, nil) when unknown.
func (s *CategoriesService) ByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	if c, ok := s.byID[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, nil
}

// BySlug resolves a category by its URL slug, or (nil, nil) when unknown.
func (s *CategoriesService) BySlug(ctx context.Context, slug string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	if c, ok := s.bySlug[slug]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, nil
}

// Save writes a category through to the store and drops the cache so the
// next read sees the change.
func (s *CategoriesService) Save(ctx context.Context, category *models.Category) error {
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	if err := s.store.SaveCategory(ctx, category); err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}

	s.mu.Lock()
	s.loaded = false
	s.categories = nil
	s.byID = nil
	s.bySlug = nil
	s.mu.Unlock()
	return nil
}

// Invalidate drops the cache. The next call reloads from the store.
func (s *CategoriesService) Invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.categories = nil
	s.byID = nil
	s.bySlug = nil
	s.mu.Unlock()
}

func (s *CategoriesService) ensureLoadedLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	all, err := s.store.ListCategories(ctx)
	if err != nil {
		// loaded stays false so the next caller retries.
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}

	active := make([]models.Category, 0, len(all))
	for _, c := range all {
		if c.IsActive {
			active = append(active, c)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].SortOrder != active[j].SortOrder {
			return active[i].SortOrder < active[j].SortOrder
		}
		return active[i].NameAr < active[j].NameAr
	})

	s.categories = active
	s.byID = make(map[uuid.UUID]*models.Category, len(active))
	s.bySlug = make(map[string]*models.Category, len(active))
	for i := range s.categories {
		c := &s.categories[i]
		s.byID[c.ID] = c
		s.bySlug[c.Slug] = c
	}
	s.loaded = true
	return nil
}
