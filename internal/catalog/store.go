package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mickytroxxy/bluegrass/pkg/logger"
	"github.com/mickytroxxy/bluegrass/pkg/metrics"
)

const defaultPageSize = 6

// Committer is notified after every committed state change so the combined
// snapshot can be re-persisted.
type Committer interface {
	Commit(ctx context.Context)
}

// State is a read-only copy of the current category session.
type State struct {
	Category string    `json:"category"`
	Items    []Product `json:"items"`
	Loading  bool      `json:"loading"`
	Page     int       `json:"page"`
	HasMore  bool      `json:"has_more"`
}

// fetchToken identifies one issued fetch by category and page. Resolutions
// are applied only when the store's in-flight token is still this exact
// token, so a late response for a superseded category session is discarded.
type fetchToken struct {
	category string
	page     int
}

// Store holds the paginated catalog for the selected category and
// orchestrates fetches against the gateway. The upstream source returns all
// matches in one call, so pages are sliced client-side; consumers see a
// normal paginated contract either way.
type Store struct {
	gateway   Gateway
	pageSize  int
	logg      *logger.Logger
	metrics   *metrics.CatalogMetrics
	committer Committer

	mu       sync.Mutex
	category string
	items    []Product
	loading  bool
	page     int
	hasMore  bool
	inflight *fetchToken
}

// StoreParams packages the catalog store dependencies.
type StoreParams struct {
	Gateway         Gateway
	PageSize        int
	DefaultCategory string
	Logger          *logger.Logger
	Metrics         *metrics.CatalogMetrics
	Committer       Committer
}

// NewStore builds the catalog store seeded with the default category.
func NewStore(params StoreParams) (*Store, error) {
	if params.Gateway == nil {
		return nil, fmt.Errorf("catalog gateway required")
	}
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Store{
		gateway:   params.Gateway,
		pageSize:  pageSize,
		logg:      params.Logger,
		metrics:   params.Metrics,
		committer: params.Committer,
		category:  strings.TrimSpace(params.DefaultCategory),
		page:      1,
		hasMore:   true,
	}, nil
}

// SetCommitter late-binds the snapshot committer. The combined state
// manager is built after its member stores, so the hook cannot be part of
// construction.
func (s *Store) SetCommitter(committer Committer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committer = committer
}

// State returns a copy of the current session.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Store) stateLocked() State {
	items := make([]Product, len(s.items))
	copy(items, s.items)
	return State{
		Category: s.category,
		Items:    items,
		Loading:  s.loading,
		Page:     s.page,
		HasMore:  s.hasMore,
	}
}

// ChangeCategory atomically resets the session to the new category and
// fetches its first page. Any in-flight fetch for the previous category is
// invalidated; its eventual resolution is dropped.
func (s *Store) ChangeCategory(ctx context.Context, category string) State {
	trimmed := strings.TrimSpace(category)
	if trimmed == "" {
		return s.State()
	}

	token := &fetchToken{category: trimmed, page: 1}

	s.mu.Lock()
	s.category = trimmed
	s.items = nil
	s.page = 1
	s.hasMore = true
	s.loading = true
	s.inflight = token
	s.mu.Unlock()

	s.commit(ctx)
	s.fetch(ctx, token)
	return s.State()
}

// LoadMore fetches the next page. It is a no-op while a fetch is in flight
// or once the category is exhausted.
func (s *Store) LoadMore(ctx context.Context) State {
	s.mu.Lock()
	if s.loading || !s.hasMore || s.category == "" {
		state := s.stateLocked()
		s.mu.Unlock()
		return state
	}
	token := &fetchToken{category: s.category, page: s.page + 1}
	s.loading = true
	s.inflight = token
	s.mu.Unlock()

	s.fetch(ctx, token)
	return s.State()
}

func (s *Store) fetch(ctx context.Context, token *fetchToken) {
	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"category": token.category,
			"page":     token.page,
		})
	}

	start := time.Now()
	all, err := s.gateway.FilterByCategory(ctx, token.category)
	s.metrics.ObserveDuration(token.category, time.Since(start))

	if err != nil {
		s.metrics.IncFailure(token.category)
		if s.logg != nil {
			s.logg.Error(ctx, "catalog.fetch.failed", err)
		}
		s.mu.Lock()
		if s.inflight == token {
			s.loading = false
			s.inflight = nil
		}
		s.mu.Unlock()
		return
	}
	s.metrics.IncSuccess(token.category)

	s.mu.Lock()
	if s.inflight != token {
		s.mu.Unlock()
		s.metrics.IncStaleDropped(token.category)
		if s.logg != nil {
			s.logg.Warn(ctx, "catalog.fetch.stale_dropped")
		}
		return
	}

	startIdx := (token.page - 1) * s.pageSize
	endIdx := startIdx + s.pageSize
	if startIdx > len(all) {
		startIdx = len(all)
	}
	if endIdx > len(all) {
		endIdx = len(all)
	}
	pageItems := all[startIdx:endIdx]

	if token.page == 1 {
		s.items = append([]Product(nil), pageItems...)
	} else {
		s.items = append(s.items, pageItems...)
	}
	s.page = token.page
	s.hasMore = endIdx < len(all)
	s.loading = false
	s.inflight = nil
	s.mu.Unlock()

	s.commit(ctx)
}

// Snapshot exports the persisted portion of the session.
func (s *Store) Snapshot() State {
	state := s.State()
	state.Loading = false
	return state
}

// Restore seeds the session from a persisted snapshot. Loading state and
// in-flight fetches never survive a restart.
func (s *Store) Restore(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if category := strings.TrimSpace(state.Category); category != "" {
		s.category = category
	}
	s.items = append([]Product(nil), state.Items...)
	s.page = state.Page
	if s.page < 1 {
		s.page = 1
	}
	s.hasMore = state.HasMore
	s.loading = false
	s.inflight = nil
}

func (s *Store) commit(ctx context.Context) {
	s.mu.Lock()
	committer := s.committer
	s.mu.Unlock()
	if committer != nil {
		committer.Commit(ctx)
	}
}
