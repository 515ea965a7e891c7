// Package orders keeps the in-memory order book. Orders live for the
// lifetime of the process; nothing is persisted.
package orders

import (
	"sort"
	"sync"
	"time"
)

// Order is a single client order collected through the order form.
type Order struct {
	ID          int64
	Date        string // ISO date (2006-01-02)
	Client      string
	Description string
	Employee    string
	Income      float64
	Contact     string
	Status      string
	CreatedAt   time.Time
}

// StatusPending marks orders that have not been processed yet.
const StatusPending = "pending"

// Store is a mutex-guarded order book with monotonically increasing ids.
type Store struct {
	mu     sync.RWMutex
	seq    int64
	orders []Order
}

// NewStore returns an empty order book.
func NewStore() *Store {
	return &Store{}
}

// Add assigns the next id and appends the order. The stored copy is returned.
func (s *Store) Add(o Order) Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	o.ID = s.seq
	if o.Status == "" {
		o.Status = StatusPending
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	s.orders = append(s.orders, o)
	return o
}

// List returns a copy of all orders in insertion order.
func (s *Store) List() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// ByDate returns orders for the given ISO date, oldest first.
func (s *Store) ByDate(date string) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Order
	for _, o := range s.orders {
		if o.Date == date {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len reports the number of stored orders.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}
