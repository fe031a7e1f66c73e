package cart

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/wisnubjoey/crafthaven/internal/checkout"
	"github.com/wisnubjoey/crafthaven/internal/domain"
)

// Session is the reactive adapter over a Store: it holds the single live
// store reference, republishes a full cart snapshot after every mutation,
// and applies the quantity bounds the store itself deliberately leaves to
// this layer.
type Session struct {
	store   *Store
	builder *checkout.Builder
	log     *logrus.Entry

	mu   sync.Mutex
	subs []chan domain.Cart
}

func NewSession(store *Store, builder *checkout.Builder, log *logrus.Entry) *Session {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Session{store: store, builder: builder, log: log}
}

// Subscribe returns a channel that receives the full cart snapshot after
// each mutation. Slow subscribers miss intermediate snapshots rather than
// blocking mutations.
func (s *Session) Subscribe() <-chan domain.Cart {
	ch := make(chan domain.Cart, 1)

	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()

	return ch
}

// Cart returns the current snapshot.
func (s *Session) Cart(ctx context.Context) (domain.Cart, error) {
	return s.store.Get(ctx)
}

// Total returns the current cart total.
func (s *Session) Total(ctx context.Context) (float64, error) {
	return s.store.Total(ctx)
}

// Add puts the product in the cart and returns the republished snapshot.
func (s *Session) Add(ctx context.Context, product domain.Product, quantity int) (domain.Cart, error) {
	if err := s.store.Add(ctx, product, quantity); err != nil {
		return nil, err
	}
	return s.republish(ctx)
}

// UpdateQuantity clamps the requested quantity to [1, stock-at-add-time]
// before handing it to the store. Items added without stock tracking
// (stock 0) only get the floor.
func (s *Session) UpdateQuantity(ctx context.Context, itemID string, quantity int) (domain.Cart, error) {
	current, err := s.store.Get(ctx)
	if err != nil {
		return nil, err
	}

	item, ok := current.Find(itemID)
	if !ok {
		return current, nil
	}

	if quantity < 1 {
		quantity = 1
	}
	if item.Stock > 0 && quantity > item.Stock {
		quantity = item.Stock
	}

	if err := s.store.UpdateQuantity(ctx, itemID, quantity); err != nil {
		return nil, err
	}
	return s.republish(ctx)
}

// Remove drops the line item and returns the republished snapshot.
func (s *Session) Remove(ctx context.Context, itemID string) (domain.Cart, error) {
	if err := s.store.Remove(ctx, itemID); err != nil {
		return nil, err
	}
	return s.republish(ctx)
}

// Clear empties the cart.
func (s *Session) Clear(ctx context.Context) (domain.Cart, error) {
	if err := s.store.Clear(ctx); err != nil {
		return nil, err
	}
	return s.republish(ctx)
}

// Checkout builds the WhatsApp links for the current cart. The cart
// survives checkout: the order is only confirmed over the chat that
// follows, so nothing is cleared here.
func (s *Session) Checkout(ctx context.Context) (checkout.Links, error) {
	current, err := s.store.Get(ctx)
	if err != nil {
		return checkout.Links{}, err
	}
	return s.builder.Links(current)
}

// republish re-reads the full cart and pushes the snapshot to all
// subscribers. Whole-snapshot publishing, not patches.
func (s *Session) republish(ctx context.Context) (domain.Cart, error) {
	current, err := s.store.Get(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	subs := make([]chan domain.Cart, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- current:
		default:
			// drop the stale snapshot so the fresh one can land
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- current:
			default:
			}
		}
	}
	return current, nil
}
