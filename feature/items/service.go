package items

import (
	"cmp"
	"context"
	"errors"
	"math"
	"sort"
	"strings"

	"catalog/core/utils"
	"catalog/feature/items/models"
	"catalog/feature/items/store"

	"go.uber.org/zap"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// ErrItemNotFound is returned when no item has the requested id.
var ErrItemNotFound = errors.New("item not found")

// Service handles item listing, lookup and creation.
type Service struct {
	store  store.Store
	logger *zap.Logger
}

// NewService creates a new items service.
func NewService(s store.Store, logger *zap.Logger) *Service {
	return &Service{store: s, logger: logger}
}

// load reads the collection, treating a missing store as empty.
func (s *Service) load(ctx context.Context) ([]models.Item, error) {
	items, err := s.store.List(ctx)
	if errors.Is(err, store.ErrNotFound) {
		s.logger.Debug("Item store not found, returning empty collection")
		return []models.Item{}, nil
	}
	return items, err
}

// List filters, sorts and paginates the collection.
func (s *Service) List(ctx context.Context, q models.ListQuery) (*models.ListResponse, error) {
	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}

	results := filterItems(all, q.Query)
	sortItems(results, q.SortBy, q.SortOrder)

	total := len(results)
	totalPages := int(math.Ceil(float64(total) / float64(q.Limit)))

	start := (q.Page - 1) * q.Limit
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}

	return &models.ListResponse{
		Data: results[start:end],
		Pagination: models.Pagination{
			Page:        q.Page,
			Limit:       q.Limit,
			TotalItems:  total,
			TotalPages:  totalPages,
			HasNextPage: q.Page < totalPages,
			HasPrevPage: q.Page > 1,
		},
		Search: models.SearchInfo{
			Query:        q.Query,
			ResultsCount: total,
		},
	}, nil
}

// Get returns the item with the given id.
func (s *Service) Get(ctx context.Context, id int64) (*models.Item, error) {
	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, ErrItemNotFound
}

// Create validates payload and appends it to the store.
func (s *Service) Create(ctx context.Context, payload map[string]any) (*models.Item, error) {
	item, err := ValidateItem(payload)
	if err != nil {
		return nil, err
	}

	created, err := s.store.Append(ctx, item)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Item created", zap.Int64("id", created.ID), zap.String("name", created.Name))
	return &created, nil
}

func filterItems(all []models.Item, query string) []models.Item {
	results := make([]models.Item, 0, len(all))
	term := strings.ToLower(strings.TrimSpace(query))
	for _, item := range all {
		if term == "" ||
			strings.Contains(strings.ToLower(item.Name), term) ||
			strings.Contains(strings.ToLower(item.Category), term) {
			results = append(results, item)
		}
	}
	return results
}

// sortItems orders by name, category, price or id. Items without a valid price sort last.
func sortItems(items []models.Item, sortBy, sortOrder string) {
	desc := strings.EqualFold(sortOrder, "desc")

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if sortBy == "price" {
			pa, okA := utils.ToFloat(a.Price)
			pb, okB := utils.ToFloat(b.Price)
			if okA != okB {
				return okA
			}
			if desc {
				return pa > pb
			}
			return pa < pb
		}

		c := compareField(a, b, sortBy)
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func compareField(a, b models.Item, sortBy string) int {
	switch sortBy {
	case "id":
		return cmp.Compare(a.ID, b.ID)
	case "category":
		return strings.Compare(strings.ToLower(a.Category), strings.ToLower(b.Category))
	default:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	}
}
