// Package cart owns the shopping cart: a persisted, ordered list of line
// items keyed by product for merging. All reads and writes funnel through
// Store; Session layers reactive snapshots and UI-level bounds on top.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/wisnubjoey/crafthaven/internal/domain"
	"github.com/wisnubjoey/crafthaven/internal/storage"
)

// Key is the fixed persistence key. One cart per profile.
const Key = "shopping_cart"

const schemaVersion = 1

// envelope is the persisted shape. Unknown versions and undecodable blobs
// reset to an empty cart instead of failing the read.
type envelope struct {
	Version int         `json:"version"`
	Items   domain.Cart `json:"items"`
}

// Store is the sole authority over cart contents. Every mutation is a full
// read-modify-write of the persisted blob.
type Store struct {
	storage storage.Store
	log     *logrus.Entry

	mu  sync.Mutex // serializes read-modify-write cycles in this process
	sfg singleflight.Group
}

// NewStore builds a store over the given backend. A nil backend means no
// persistence capability: reads return an empty cart and writes are
// dropped.
func NewStore(st storage.Store, log *logrus.Entry) *Store {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Store{storage: st, log: log}
}

// Get returns the current cart. Missing or malformed persisted data yields
// an empty cart; only real backend failures are returned as errors.
func (s *Store) Get(ctx context.Context) (domain.Cart, error) {
	v, err, _ := s.sfg.Do(Key, func() (interface{}, error) {
		return s.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(domain.Cart), nil
}

// Add merges the product into the cart: an existing line for the same
// product has its quantity incremented, otherwise a new line is appended
// with a snapshot of the product's display fields. Quantities below 1 are
// treated as 1.
func (s *Store) Add(ctx context.Context, product domain.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.load(ctx)
	if err != nil {
		return err
	}

	merged := false
	for i := range cart {
		if cart[i].ProductID == product.ID {
			cart[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart = append(cart, domain.CartItem{
			ID:           uuid.NewString(),
			ProductID:    product.ID,
			Name:         product.Name,
			UnitPrice:    product.Price,
			Quantity:     quantity,
			MainPhotoURL: product.MainPhotoURL,
			CategoryName: product.Category.Name,
			Stock:        product.Stock,
		})
	}

	return s.save(ctx, cart)
}

// UpdateQuantity overwrites the quantity of the line item with the given
// id. The store applies no bounds here; callers that need the [1, stock]
// clamp go through Session. Unknown ids are a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.load(ctx)
	if err != nil {
		return err
	}

	for i := range cart {
		if cart[i].ID == itemID {
			cart[i].Quantity = quantity
			return s.save(ctx, cart)
		}
	}
	return nil
}

// Remove drops the line item with the given id. Unknown ids are a no-op.
func (s *Store) Remove(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.load(ctx)
	if err != nil {
		return err
	}

	remaining := cart[:0]
	for _, item := range cart {
		if item.ID != itemID {
			remaining = append(remaining, item)
		}
	}
	return s.save(ctx, remaining)
}

// Clear persists an empty cart.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(ctx, domain.Cart{})
}

// Total returns the sum of unit price times quantity over the cart.
func (s *Store) Total(ctx context.Context) (float64, error) {
	cart, err := s.Get(ctx)
	if err != nil {
		return 0, err
	}
	return cart.Total(), nil
}

func (s *Store) load(ctx context.Context) (domain.Cart, error) {
	if s.storage == nil {
		return domain.Cart{}, nil
	}

	data, err := s.storage.Get(ctx, Key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Cart{}, nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return s.decode(data), nil
}

// decode applies the corrupt-data policy: anything that does not decode as
// a current-version envelope resets to an empty cart.
func (s *Store) decode(data []byte) domain.Cart {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		s.log.WithError(err).Warn("malformed cart blob, resetting to empty cart")
		return domain.Cart{}
	}
	if env.Version != schemaVersion {
		s.log.WithField("version", env.Version).Warn("unknown cart schema version, resetting to empty cart")
		return domain.Cart{}
	}
	if env.Items == nil {
		return domain.Cart{}
	}
	return env.Items
}

func (s *Store) save(ctx context.Context, cart domain.Cart) error {
	if s.storage == nil {
		return nil
	}

	data, err := json.Marshal(envelope{Version: schemaVersion, Items: cart})
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.storage.Set(ctx, Key, data); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
