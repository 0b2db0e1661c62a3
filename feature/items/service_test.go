package items

import (
	"context"
	"sync"
	"testing"
	"time"

	"catalog/feature/items/models"
	"catalog/feature/items/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryStore is an in-memory store.Store for tests.
type memoryStore struct {
	mu      sync.Mutex
	items   []models.Item
	listErr error
	nextID  int64
}

func (m *memoryStore) List(ctx context.Context) ([]models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]models.Item, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *memoryStore) ModTime(ctx context.Context) (time.Time, error) {
	return time.Time{}, store.ErrNotFound
}

func (m *memoryStore) Append(ctx context.Context, item models.Item) (models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	item.ID = m.nextID
	m.items = append(m.items, item)
	return item, nil
}

func sampleItems() []models.Item {
	return []models.Item{
		{ID: 1, Name: "Laptop Pro", Category: "Electronics", Price: 2499.0},
		{ID: 2, Name: "Noise Cancelling Headphones", Category: "Electronics", Price: 399.0},
		{ID: 3, Name: "Ultra-Wide Monitor", Category: "Electronics", Price: 999.0},
		{ID: 4, Name: "Ergonomic Chair", Category: "Furniture", Price: 799.0},
		{ID: 5, Name: "Standing Desk", Category: "Furniture"},
	}
}

func newTestService(items []models.Item) (*Service, *memoryStore) {
	ms := &memoryStore{items: items, nextID: 100}
	return NewService(ms, zap.NewNop()), ms
}

func TestService_ListDefaults(t *testing.T) {
	svc, _ := newTestService(sampleItems())

	resp, err := svc.List(context.Background(), models.ListQuery{})
	require.NoError(t, err)

	assert.Len(t, resp.Data, 5)
	assert.Equal(t, "Ergonomic Chair", resp.Data[0].Name)
	assert.Equal(t, models.Pagination{Page: 1, Limit: 20, TotalItems: 5, TotalPages: 1}, resp.Pagination)
}

func TestService_ListSearchAndPaging(t *testing.T) {
	svc, _ := newTestService(sampleItems())

	resp, err := svc.List(context.Background(), models.ListQuery{Query: "ELECTRO", Page: 2, Limit: 2, SortBy: "id"})
	require.NoError(t, err)

	require.Len(t, resp.Data, 1)
	assert.Equal(t, int64(3), resp.Data[0].ID)
	assert.Equal(t, 3, resp.Search.ResultsCount)
	assert.Equal(t, "ELECTRO", resp.Search.Query)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
	assert.False(t, resp.Pagination.HasNextPage)
	assert.True(t, resp.Pagination.HasPrevPage)
}

func TestService_ListPageOutOfRange(t *testing.T) {
	svc, _ := newTestService(sampleItems())

	resp, err := svc.List(context.Background(), models.ListQuery{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, resp.Data)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
}

func TestService_ListLimitClamped(t *testing.T) {
	svc, _ := newTestService(sampleItems())

	resp, err := svc.List(context.Background(), models.ListQuery{Page: 1, Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, 100, resp.Pagination.Limit)
	assert.Len(t, resp.Data, 5)
}

func TestService_ListSortByPrice(t *testing.T) {
	svc, _ := newTestService(sampleItems())

	asc, err := svc.List(context.Background(), models.ListQuery{SortBy: "price", SortOrder: "asc"})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4, 3, 1, 5}, ids(asc.Data))

	desc, err := svc.List(context.Background(), models.ListQuery{SortBy: "price", SortOrder: "desc"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3, 4, 2, 5}, ids(desc.Data))
}

func TestService_ListMissingStore(t *testing.T) {
	ms := &memoryStore{listErr: store.ErrNotFound}
	svc := NewService(ms, zap.NewNop())

	resp, err := svc.List(context.Background(), models.ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, resp.Data)
	assert.Equal(t, 0, resp.Pagination.TotalPages)
}

func TestService_Get(t *testing.T) {
	svc, _ := newTestService(sampleItems())

	item, err := svc.Get(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Ergonomic Chair", item.Name)

	_, err = svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestService_Create(t *testing.T) {
	svc, ms := newTestService(nil)

	item, err := svc.Create(context.Background(), map[string]any{"name": "  Lamp  ", "price": "12.5"})
	require.NoError(t, err)
	assert.Equal(t, int64(101), item.ID)
	assert.Equal(t, "Lamp", item.Name)
	assert.Equal(t, 12.5, item.Price)
	assert.Len(t, ms.items, 1)

	_, err = svc.Create(context.Background(), map[string]any{"price": -1})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, ms.items, 1)
}

func ids(items []models.Item) []int64 {
	out := make([]int64, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}
