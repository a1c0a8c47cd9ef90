package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/mickytroxxy/bluegrass/internal/account"
	"github.com/mickytroxxy/bluegrass/internal/cart"
	"github.com/mickytroxxy/bluegrass/internal/catalog"
	"github.com/mickytroxxy/bluegrass/pkg/logger"
)

// ErrNotFound signals that no snapshot has been persisted yet.
var ErrNotFound = errors.New("no persisted snapshot")

// Persister stores and retrieves the serialized combined snapshot as one
// opaque, versionless blob under a fixed root key.
type Persister interface {
	Save(ctx context.Context, blob []byte) error
	Load(ctx context.Context) ([]byte, error)
}

// Snapshot is the persisted shape of the combined store.
type Snapshot struct {
	Account *account.Info `json:"account_info"`
	Cart    []cart.Line   `json:"cart"`
	Catalog catalog.State `json:"catalog"`
}

// Manager binds the member stores to the persistence layer. Every committed
// mutation re-serializes the whole snapshot; startup rehydration seeds the
// stores before the HTTP server is allowed to listen.
type Manager struct {
	persister Persister
	logg      *logger.Logger
	cart      *cart.Store
	catalog   *catalog.Store
	account   *account.Store

	mu sync.Mutex
}

// ManagerParams packages the manager dependencies.
type ManagerParams struct {
	Persister Persister
	Logger    *logger.Logger
	Cart      *cart.Store
	Catalog   *catalog.Store
	Account   *account.Store
}

// NewManager builds the combined state manager.
func NewManager(params ManagerParams) (*Manager, error) {
	if params.Persister == nil {
		return nil, fmt.Errorf("persister required")
	}
	if params.Cart == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	if params.Account == nil {
		return nil, fmt.Errorf("account store required")
	}
	return &Manager{
		persister: params.Persister,
		logg:      params.Logger,
		cart:      params.Cart,
		catalog:   params.Catalog,
		account:   params.Account,
	}, nil
}

// Commit serializes the combined store and hands it to the persister.
// Persistence failures are logged, never surfaced: a missed save degrades
// to slightly stale state after the next restart, which beats failing the
// user's action.
func (m *Manager) Commit(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	blob, err := json.Marshal(m.snapshot())
	if err != nil {
		if m.logg != nil {
			m.logg.Error(ctx, "state.commit.marshal_failed", err)
		}
		return
	}
	if err := m.persister.Save(ctx, blob); err != nil {
		if m.logg != nil {
			m.logg.Error(ctx, "state.commit.save_failed", err)
		}
	}
}

// Rehydrate seeds the stores from the persisted blob. A missing or
// undecodable blob falls back to the documented initial state (empty cart,
// default category, signed out); rehydration is never fatal to startup.
func (m *Manager) Rehydrate(ctx context.Context) {
	blob, err := m.persister.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			if m.logg != nil {
				m.logg.Info(ctx, "state.rehydrate.first_run")
			}
			return
		}
		if m.logg != nil {
			m.logg.Error(ctx, "state.rehydrate.load_failed", err)
		}
		return
	}

	var snapshot Snapshot
	if err := json.Unmarshal(blob, &snapshot); err != nil {
		if m.logg != nil {
			m.logg.Warn(ctx, "state.rehydrate.corrupt_snapshot, seeding initial state")
		}
		return
	}

	m.account.Set(snapshot.Account)
	m.cart.Restore(snapshot.Cart)
	if snapshot.Catalog.Category != "" {
		m.catalog.Restore(snapshot.Catalog)
	}
	if m.logg != nil {
		m.logg.Info(ctx, "state.rehydrate.restored")
	}
}

func (m *Manager) snapshot() Snapshot {
	return Snapshot{
		Account: m.account.Get(),
		Cart:    m.cart.Lines(),
		Catalog: m.catalog.Snapshot(),
	}
}
