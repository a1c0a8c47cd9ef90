package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mickytroxxy/bluegrass/internal/cart"
	pkgerrors "github.com/mickytroxxy/bluegrass/pkg/errors"
	"github.com/shopspring/decimal"
)

// Committer is notified after the cart is cleared by a confirmation.
type Committer interface {
	Commit(ctx context.Context)
}

// Confirmation is the simulated order receipt. Nothing is persisted beyond
// clearing the cart; there is no order backend behind this.
type Confirmation struct {
	OrderRef  string          `json:"order_ref"`
	Lines     []cart.Line     `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
	PlacedAt  time.Time       `json:"placed_at"`
}

// Service turns a non-empty cart into a confirmation and empties it.
type Service interface {
	Confirm(ctx context.Context) (*Confirmation, error)
}

// ServiceParams packages the checkout dependencies.
type ServiceParams struct {
	Cart      *cart.Store
	Committer Committer
}

type service struct {
	cart      *cart.Store
	committer Committer
}

// NewService builds the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.Cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart store required")
	}
	return &service{cart: params.Cart, committer: params.Committer}, nil
}

// Confirm snapshots the cart into a receipt, clears it, and commits.
// Confirming an empty cart is a validation error and changes nothing.
func (s *service) Confirm(ctx context.Context) (*Confirmation, error) {
	lines := s.cart.Lines()
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	total := decimal.Zero
	itemCount := 0
	for _, line := range lines {
		total = total.Add(line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		itemCount += line.Quantity
	}

	confirmation := &Confirmation{
		OrderRef:  uuid.NewString(),
		Lines:     lines,
		Total:     total,
		ItemCount: itemCount,
		PlacedAt:  time.Now().UTC(),
	}

	s.cart.Clear()
	if s.committer != nil {
		s.committer.Commit(ctx)
	}
	return confirmation, nil
}
