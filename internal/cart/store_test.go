package cart

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wisnubjoey/crafthaven/internal/domain"
	"github.com/wisnubjoey/crafthaven/internal/storage"
)

func testProduct(id int64, name string, price float64, stock int) domain.Product {
	return domain.Product{
		ID:           id,
		Name:         name,
		Price:        price,
		Stock:        stock,
		MainPhotoURL: "https://cdn.example/p.jpg",
		Category:     domain.Category{ID: 1, Name: "Kalung"},
	}
}

func TestStoreGetEmpty(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemory(), nil)

	cart, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart)

	total, err := store.Total(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestStoreGetWithoutBackend(t *testing.T) {
	ctx := context.Background()
	store := NewStore(nil, nil)

	cart, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart)

	// writes are dropped, not failed
	require.NoError(t, store.Add(ctx, testProduct(1, "A", 10000, 5), 1))
}

func TestStoreAddMergesByProduct(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemory(), nil)

	require.NoError(t, store.Add(ctx, testProduct(1, "A", 10000, 5), 2))
	require.NoError(t, store.Add(ctx, testProduct(1, "A", 10000, 5), 3))
	require.NoError(t, store.Add(ctx, testProduct(2, "B", 5000, 9), 1))

	cart, err := store.Get(ctx)
	require.NoError(t, err)
	require.Len(t, cart, 2)

	assert.Equal(t, int64(1), cart[0].ProductID)
	assert.Equal(t, 5, cart[0].Quantity)
	assert.Equal(t, "A", cart[0].Name)
	assert.Equal(t, "Kalung", cart[0].CategoryName)
	assert.Equal(t, 5, cart[0].Stock)
	assert.NotEmpty(t, cart[0].ID)
	assert.NotEqual(t, cart[0].ID, cart[1].ID)

	// insertion order preserved
	assert.Equal(t, int64(2), cart[1].ProductID)
}

func TestStoreAddQuantityFloor(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemory(), nil)

	require.NoError(t, store.Add(ctx, testProduct(1, "A", 10000, 5), 0))

	cart, err := store.Get(ctx)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, 1, cart[0].Quantity)
}

func TestStoreTotal(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemory(), nil)

	require.NoError(t, store.Add(ctx, testProduct(1, "A", 10000, 5), 2))
	require.NoError(t, store.Add(ctx, testProduct(2, "B", 2500, 9), 3))

	total, err := store.Total(ctx)
	require.NoError(t, err)
	assert.Equal(t, 27500.0, total)
}

func TestStoreUpdateQuantityUnbounded(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemory(), nil)

	require.NoError(t, store.Add(ctx, testProduct(1, "A", 10000, 5), 1))
	cart, err := store.Get(ctx)
	require.NoError(t, err)

	// the raw store applies no bounds, that is the adapter's job
	require.NoError(t, store.UpdateQuantity(ctx, cart[0].ID, 99))

	cart, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 99, cart[0].Quantity)

	// unknown id is a no-op
	require.NoError(t, store.UpdateQuantity(ctx, "nope", 3))
}

func TestStoreRemove(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemory(), nil)

	require.NoError(t, store.Add(ctx, testProduct(1, "A", 10000, 5), 1))
	require.NoError(t, store.Add(ctx, testProduct(2, "B", 5000, 9), 1))

	cart, err := store.Get(ctx)
	require.NoError(t, err)
	removedID := cart[0].ID

	require.NoError(t, store.Remove(ctx, removedID))

	cart, err = store.Get(ctx)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	_, found := cart.Find(removedID)
	assert.False(t, found)

	// removing again is a no-op
	require.NoError(t, store.Remove(ctx, removedID))
	cart, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, cart, 1)
}

func TestStoreClear(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemory(), nil)

	require.NoError(t, store.Add(ctx, testProduct(1, "A", 10000, 5), 2))
	require.NoError(t, store.Clear(ctx))

	cart, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart)

	total, err := store.Total(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestStoreRoundTripPreservesOrder(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()

	store := NewStore(backend, nil)
	for i := int64(1); i <= 5; i++ {
		require.NoError(t, store.Add(ctx, testProduct(i, "P", float64(i)*1000, 10), int(i)))
	}
	before, err := store.Get(ctx)
	require.NoError(t, err)

	// a fresh store over the same backend sees the identical cart
	reopened := NewStore(backend, nil)
	after, err := reopened.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStoreMalformedBlobResetsToEmpty(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	require.NoError(t, backend.Set(ctx, Key, []byte("{not json")))

	store := NewStore(backend, nil)
	cart, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestStoreUnknownSchemaVersionResetsToEmpty(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()

	blob, err := json.Marshal(map[string]interface{}{
		"version": 99,
		"items":   []map[string]interface{}{{"id": "x", "quantity": 3}},
	})
	require.NoError(t, err)
	require.NoError(t, backend.Set(ctx, Key, blob))

	store := NewStore(backend, nil)
	cart, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart)
}

type failingStore struct {
	err error
}

func (f failingStore) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingStore) Set(context.Context, string, []byte) error   { return f.err }
func (f failingStore) Delete(context.Context, string) error        { return f.err }

func TestStoreBackendErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	backendErr := errors.New("backend down")
	store := NewStore(failingStore{err: backendErr}, nil)

	_, err := store.Get(ctx)
	assert.ErrorIs(t, err, backendErr)

	err = store.Add(ctx, testProduct(1, "A", 10000, 5), 1)
	assert.ErrorIs(t, err, backendErr)
}
