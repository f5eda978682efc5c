// internal/store/fixture/fixture.go
package fixture

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/souqhub/souq-backend/internal/models"
	"github.com/souqhub/souq-backend/internal/store"
)

// Provider serves realistic in-memory sample data with the same filter and
// pagination semantics as the record store. A configurable latency simulates
// the network round trip so loading states behave the same in both modes.
type Provider struct {
	mu      sync.Mutex
	latency time.Duration

	listings   []models.Listing
	categories []models.Category
	users      []models.User
	favorites  map[uuid.UUID]map[uuid.UUID]time.Time
	orders     map[uuid.UUID]models.PromotionOrder
	audits     []models.AuditLog
}

// New seeds a provider with the sample dataset. Pass zero latency in tests.
func New(latency time.Duration) *Provider {
	p := &Provider{
		latency:   latency,
		favorites: make(map[uuid.UUID]map[uuid.UUID]time.Time),
		orders:    make(map[uuid.UUID]models.PromotionOrder),
	}
	p.categories = seedCategories()
	p.users = seedUsers()
	p.listings = seedListings()
	return p
}

// wait simulates the backend round trip, honoring context cancellation.
func (p *Provider) wait(ctx context.Context) error {
	if p.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(p.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *Provider) ListListings(ctx context.Context, filter store.ListingFilter, page, pageSize int) (*store.ListingPage, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	matched := make([]models.Listing, 0)
	for i := range p.listings {
		if matches(&p.listings[i], filter) {
			matched = append(matched, p.attach(p.listings[i]))
		}
	}

	// Newest first by creation time.
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := (page - 1) * pageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}

	return store.NewListingPage(matched[start:end], total, page, pageSize), nil
}

// matches applies the shared filter semantics: inclusive numeric ranges and
// case-insensitive substring search over title and description.
func matches(l *models.Listing, filter store.ListingFilter) bool {
	if filter.Status != nil {
		if l.Status != *filter.Status {
			return false
		}
	} else if l.Status != models.ListingStatusActive {
		return false
	}

	if filter.CategoryID != nil && l.CategoryID != *filter.CategoryID {
		return false
	}
	if filter.City != "" && !strings.EqualFold(l.City, filter.City) {
		return false
	}
	if filter.Region != nil && l.Region != *filter.Region {
		return false
	}
	if filter.MinPrice != nil && (l.Price == nil || *l.Price < *filter.MinPrice) {
		return false
	}
	if filter.MaxPrice != nil && (l.Price == nil || *l.Price > *filter.MaxPrice) {
		return false
	}
	if filter.Currency != nil && l.Currency != *filter.Currency {
		return false
	}
	if filter.Condition != nil && l.Condition != *filter.Condition {
		return false
	}
	if filter.AdType != nil && l.AdType != *filter.AdType {
		return false
	}
	if filter.FeaturedOnly && !l.IsFeatured {
		return false
	}
	if filter.UrgentOnly && !l.IsUrgent {
		return false
	}
	if filter.OwnerID != nil && l.OwnerID != *filter.OwnerID {
		return false
	}

	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		title := strings.ToLower(l.Title)
		description := strings.ToLower(l.Description)
		if !strings.Contains(title, needle) && !strings.Contains(description, needle) {
			return false
		}
	}

	return true
}

func (p *Provider) GetListing(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.listings {
		if p.listings[i].ID == id {
			listing := p.attach(p.listings[i])
			return &listing, nil
		}
	}
	return nil, nil
}

// attach joins category and owner onto a copy of the listing, mirroring the
// record store's preloads.
func (p *Provider) attach(l models.Listing) models.Listing {
	for i := range p.categories {
		if p.categories[i].ID == l.CategoryID {
			category := p.categories[i]
			l.Category = &category
			break
		}
	}
	for i := range p.users {
		if p.users[i].ID == l.OwnerID {
			owner := p.users[i]
			owner.PasswordHash = ""
			l.Owner = &owner
			break
		}
	}
	return l
}

func (p *Provider) CreateListing(ctx context.Context, listing *models.Listing) error {
	if err := p.wait(ctx); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if listing.ID == uuid.Nil {
		listing.ID = uuid.New()
	}
	now := time.Now()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	p.listings = append(p.listings, *listing)
	*listing = p.attach(*listing)
	return nil
}

func (p *Provider) UpdateListing(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.Listing, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.listings {
		if p.listings[i].ID == id {
			applyUpdates(&p.listings[i], updates)
			p.listings[i].UpdatedAt = time.Now()
			listing := p.attach(p.listings[i])
			return &listing, nil
		}
	}
	return nil, nil
}

// applyUpdates mirrors the column map the record store passes to gorm.
func applyUpdates(l *models.Listing, updates map[string]interface{}) {
	// The owner is immutable.
	delete(updates, "owner_id")

	for key, value := range updates {
		switch key {
		case "title":
			l.Title, _ = value.(string)
		case "description":
			l.Description, _ = value.(string)
		case "category_id":
			if id, ok := value.(uuid.UUID); ok {
				l.CategoryID = id
			}
		case "ad_type":
			if v, ok := value.(models.AdType); ok {
				l.AdType = v
			}
		case "condition":
			if v, ok := value.(models.Condition); ok {
				l.Condition = v
			}
		case "price":
			switch v := value.(type) {
			case nil:
				l.Price = nil
			case *float64:
				l.Price = v
			case float64:
				price := v
				l.Price = &price
			}
		case "currency":
			if v, ok := value.(models.Currency); ok {
				l.Currency = v
			}
		case "price_type":
			if v, ok := value.(models.PriceType); ok {
				l.PriceType = v
			}
		case "city":
			l.City, _ = value.(string)
		case "region":
			if v, ok := value.(models.Region); ok {
				l.Region = v
			}
		case "status":
			if v, ok := value.(models.ListingStatus); ok {
				l.Status = v
			}
		case "is_featured":
			if v, ok := value.(bool); ok {
				l.IsFeatured = v
			}
		case "is_urgent":
			if v, ok := value.(bool); ok {
				l.IsUrgent = v
			}
		case "tags":
			if v, ok := value.(pq.StringArray); ok {
				l.Tags = v
			}
		case "expires_at":
			switch v := value.(type) {
			case *time.Time:
				l.ExpiresAt = v
			case time.Time:
				t := v
				l.ExpiresAt = &t
			}
		}
	}
}

func (p *Provider) DeleteListing(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := p.wait(ctx); err != nil {
		return false, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.listings {
		if p.listings[i].ID == id {
			p.listings = append(p.listings[:i], p.listings[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (p *Provider) IncrementViews(ctx context.Context, id uuid.UUID) error {
	if err := p.wait(ctx); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.listings {
		if p.listings[i].ID == id {
			p.listings[i].ViewsCount++
			return nil
		}
	}
	return nil
}

func (p *Provider) AddListingImage(ctx context.Context, image *models.ListingImage) error {
	if err := p.wait(ctx); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if image.ID == uuid.Nil {
		image.ID = uuid.New()
	}
	for i := range p.listings {
		if p.listings[i].ID == image.ListingID {
			p.listings[i].Images = append(p.listings[i].Images, *image)
			return nil
		}
	}
	return fmt.Errorf("listing %s not found", image.ListingID)
}

func (p *Provider) ToggleFavorite(ctx context.Context, userID, listingID uuid.UUID) (bool, int64, error) {
	if err := p.wait(ctx); err != nil {
		return false, 0, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var listing *models.Listing
	for i := range p.listings {
		if p.listings[i].ID == listingID {
			listing = &p.listings[i]
			break
		}
	}
	if listing == nil {
		return false, 0, fmt.Errorf("%w: %s", store.ErrListingNotFound, listingID)
	}

	userFavorites := p.favorites[userID]
	if userFavorites == nil {
		userFavorites = make(map[uuid.UUID]time.Time)
		p.favorites[userID] = userFavorites
	}

	if _, ok := userFavorites[listingID]; ok {
		delete(userFavorites, listingID)
		if listing.FavoritesCount > 0 {
			listing.FavoritesCount--
		}
		return false, listing.FavoritesCount, nil
	}

	userFavorites[listingID] = time.Now()
	listing.FavoritesCount++
	return true, listing.FavoritesCount, nil
}

func (p *Provider) IsFavorite(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	if err := p.wait(ctx); err != nil {
		return false, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	_, ok := p.favorites[userID][listingID]
	return ok, nil
}

func (p *Provider) ListFavorites(ctx context.Context, userID uuid.UUID, page, pageSize int) (*store.ListingPage, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	type entry struct {
		listing models.Listing
		addedAt time.Time
	}
	entries := make([]entry, 0)
	for i := range p.listings {
		if addedAt, ok := p.favorites[userID][p.listings[i].ID]; ok {
			entries = append(entries, entry{p.attach(p.listings[i]), addedAt})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].addedAt.After(entries[j].addedAt)
	})

	matched := make([]models.Listing, len(entries))
	for i, e := range entries {
		matched[i] = e.listing
	}

	total := int64(len(matched))
	start := (page - 1) * pageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}

	return store.NewListingPage(matched[start:end], total, page, pageSize), nil
}

func (p *Provider) ListCategories(ctx context.Context) ([]models.Category, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	categories := make([]models.Category, len(p.categories))
	copy(categories, p.categories)
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].SortOrder < categories[j].SortOrder
	})
	return categories, nil
}

func (p *Provider) SaveCategory(ctx context.Context, category *models.Category) error {
	if err := p.wait(ctx); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	for i := range p.categories {
		if p.categories[i].ID == category.ID {
			p.categories[i] = *category
			return nil
		}
	}
	p.categories = append(p.categories, *category)
	return nil
}

func (p *Provider) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.users {
		if p.users[i].ID == id {
			user := p.users[i]
			return &user, nil
		}
	}
	return nil, nil
}

func (p *Provider) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.users {
		if strings.EqualFold(p.users[i].Email, email) {
			user := p.users[i]
			return &user, nil
		}
	}
	return nil, nil
}

func (p *Provider) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.users {
		if strings.EqualFold(p.users[i].Username, username) {
			user := p.users[i]
			return &user, nil
		}
	}
	return nil, nil
}

func (p *Provider) CreateUser(ctx context.Context, user *models.User) error {
	if err := p.wait(ctx); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	p.users = append(p.users, *user)
	return nil
}

func (p *Provider) SaveUser(ctx context.Context, user *models.User) error {
	if err := p.wait(ctx); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.users {
		if p.users[i].ID == user.ID {
			user.UpdatedAt = time.Now()
			p.users[i] = *user
			return nil
		}
	}
	return fmt.Errorf("user %s not found", user.ID)
}

func (p *Provider) SavePromotionOrder(ctx context.Context, order *models.PromotionOrder) error {
	if err := p.wait(ctx); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
		order.CreatedAt = time.Now()
	}
	order.UpdatedAt = time.Now()
	p.orders[order.ID] = *order
	return nil
}

func (p *Provider) GetPromotionOrder(ctx context.Context, id uuid.UUID) (*models.PromotionOrder, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if order, ok := p.orders[id]; ok {
		return &order, nil
	}
	return nil, nil
}

func (p *Provider) RecordAudit(ctx context.Context, entry *models.AuditLog) error {
	if err := p.wait(ctx); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
		entry.CreatedAt = time.Now()
	}
	p.audits = append(p.audits, *entry)
	return nil
}
