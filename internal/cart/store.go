package cart

import (
	"sync"

	"github.com/mickytroxxy/bluegrass/internal/catalog"
	"github.com/shopspring/decimal"
)

// Line is one product's entry in the cart. Quantity is always >= 1; a line
// whose quantity would drop to zero is removed instead of stored.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Store holds the cart as an ordered sequence of lines, at most one per
// product id. All mutations run to completion under one mutex, which is
// what makes add/remove atomic without any further coordination.
type Store struct {
	mu    sync.Mutex
	lines []Line
}

// NewStore returns an empty cart.
func NewStore() *Store {
	return &Store{}
}

// Add inserts a new line with quantity 1, or increments the existing line
// for the product. Re-adding never reorders: the line keeps its insertion
// position.
func (s *Store) Add(product catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].Product.ID == product.ID {
			s.lines[i].Quantity++
			return
		}
	}
	s.lines = append(s.lines, Line{Product: product, Quantity: 1})
}

// Remove deletes the line for the product id. Absent lines are a no-op.
func (s *Store) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID)
}

func (s *Store) removeLocked(productID string) {
	for i := range s.lines {
		if s.lines[i].Product.ID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity sets the line's quantity. A quantity <= 0 removes the line;
// an absent line is a no-op.
func (s *Store) SetQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if quantity <= 0 {
		s.removeLocked(productID)
		return
	}
	for i := range s.lines {
		if s.lines[i].Product.ID == productID {
			s.lines[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

// Lines returns a copy of the cart in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := make([]Line, len(s.lines))
	copy(lines, s.lines)
	return lines
}

// Item returns the line for the product id, if present.
func (s *Store) Item(productID string) (Line, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, line := range s.lines {
		if line.Product.ID == productID {
			return line, true
		}
	}
	return Line{}, false
}

// Contains reports whether the product has a line in the cart.
func (s *Store) Contains(productID string) bool {
	_, ok := s.Item(productID)
	return ok
}

// Total sums price * quantity over every line. A priceless product
// contributes zero.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// ItemCount sums quantities over every line.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// Restore replaces the cart with persisted lines, dropping anything that
// violates the invariants (duplicate product ids, quantity < 1).
func (s *Store) Restore(lines []Line) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]struct{}, len(lines))
	restored := make([]Line, 0, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 || line.Product.ID == "" {
			continue
		}
		if _, dup := seen[line.Product.ID]; dup {
			continue
		}
		seen[line.Product.ID] = struct{}{}
		restored = append(restored, line)
	}
	s.lines = restored
}
