// internal/domain/menu/service.go
package menu

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/winston-coffee/ordering-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// Service handles menu reads
type Service struct {
	db *gorm.DB
}

// NewService creates a new menu service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Items retrieves all active menu items
func (s *Service) Items(ctx context.Context) ([]MenuItem, error) {
	var items []MenuItem
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, apperrors.Fetch("failed to load menu", err)
	}
	return items, nil
}

// Item retrieves a single active menu item by ID
func (s *Service) Item(ctx context.Context, id uint) (*MenuItem, error) {
	var item MenuItem
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.Validation("menu item not found")
		}
		return nil, apperrors.Fetch("failed to load menu item", err)
	}
	return &item, nil
}

// Categories derives the category list from the items: distinct categories
// in order of first occurrence, with the synthetic "All" prepended
func Categories(items []MenuItem) []string {
	categories := []string{"All"}
	seen := make(map[string]bool)
	for _, item := range items {
		if item.Category == "" || seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		categories = append(categories, item.Category)
	}
	return categories
}

// Loader fetches the menu once per lifetime and caches the result.
// A failed fetch is logged and leaves the menu empty; the UI shows its
// empty state and the session simply has no menu. No retry, no
// invalidation.
type Loader struct {
	service *Service
	logger  *logrus.Logger

	mu         sync.Mutex
	loaded     bool
	items      []MenuItem
	categories []string
}

// NewLoader creates a menu loader around the service
func NewLoader(service *Service, logger *logrus.Logger) *Loader {
	return &Loader{
		service: service,
		logger:  logger,
	}
}

// Load returns the cached menu, fetching it on the first call. An abandoned
// request (context cancelled mid-fetch) never latches the cache; only a
// completed fetch, successful or not, does.
func (l *Loader) Load(ctx context.Context) ([]MenuItem, []string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded {
		return l.items, l.categories
	}

	items, err := l.service.Items(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return []MenuItem{}, []string{"All"}
		}
		l.logger.WithError(err).Error("menu load failed, serving empty menu")
		items = []MenuItem{}
	}

	l.items = items
	l.categories = Categories(items)
	l.loaded = true
	return l.items, l.categories
}
