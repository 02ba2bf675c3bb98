package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"menu-price-map/models"
	"menu-price-map/pricing"
	"menu-price-map/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultSessionTTL is how long an idle session is kept
const DefaultSessionTTL = 2 * time.Hour

type session struct {
	id         string
	dataset    *models.Dataset
	order      models.Order
	pricing    *models.PricingResult
	generation uint64
	updatedAt  time.Time
}

// SessionService holds the order state of every open map page.
// Implements SessionServiceInterface
type SessionService struct {
	datasets DatasetServiceInterface
	ttl      time.Duration
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[string]*session
}

// Ensure SessionService implements SessionServiceInterface
var _ SessionServiceInterface = (*SessionService)(nil)

// NewSessionService creates a new SessionService. A non-positive ttl uses DefaultSessionTTL.
func NewSessionService(datasets DatasetServiceInterface, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{
		datasets: datasets,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// Create opens a session on the default brand with an empty order
func (s *SessionService) Create(ctx context.Context) (*models.SessionView, error) {
	brand, err := s.datasets.DefaultBrand()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve default brand: %w", err)
	}
	ds, err := s.datasets.Get(ctx, brand.ID)
	if err != nil {
		return nil, err
	}

	sess := &session{
		id:      uuid.New().String(),
		dataset: ds,
		order:   models.NewOrder(),
	}
	sess.pricing = pricing.Compute(ds.Table, sess.order)
	sess.updatedAt = s.now()

	s.mu.Lock()
	s.sweepLocked()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	log.Printf("🆕 CreateSession: id=%s brand=%s", sess.id, brand.ID)
	return viewOf(sess), nil
}

// View returns the current state of a session
func (s *SessionService) View(id string) (*models.SessionView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, err := s.lookupLocked(id)
	if err != nil {
		return nil, err
	}
	return viewOf(sess), nil
}

// Increment adds one unit of an item on the active brand's menu
func (s *SessionService) Increment(id, item string) (*models.SessionView, error) {
	return s.transition(id, func(sess *session) error {
		if !sess.dataset.Table.HasItem(item) {
			return fmt.Errorf("%q: %w", item, ErrUnknownItem)
		}
		sess.order.Increment(item)
		log.Printf("➕ Increment: session=%s item=%s qty=%d", sess.id, item, sess.order[item])
		return nil
	})
}

// Decrement removes one unit of an item; absent items are a no-op
func (s *SessionService) Decrement(id, item string) (*models.SessionView, error) {
	return s.transition(id, func(sess *session) error {
		sess.order.Decrement(item)
		log.Printf("➖ Decrement: session=%s item=%s qty=%d", sess.id, item, sess.order[item])
		return nil
	})
}

// Clear empties the order
func (s *SessionService) Clear(id string) (*models.SessionView, error) {
	return s.transition(id, func(sess *session) error {
		sess.order.Clear()
		log.Printf("🧹 Clear: session=%s", sess.id)
		return nil
	})
}

// transition applies fn under the write lock and recomputes pricing
func (s *SessionService) transition(id string, fn func(sess *session) error) (*models.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookupLocked(id)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	s.recomputeLocked(sess)
	return viewOf(sess), nil
}

// SwitchBrand clears the order and installs the brand's dataset. The load runs
// outside the lock; if another switch started meanwhile this one is dropped
// with ErrStaleDataset and the newer switch wins.
func (s *SessionService) SwitchBrand(ctx context.Context, id, brandID string) (*models.SessionView, error) {
	brands, err := s.datasets.Brands()
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	if !hasBrand(brands, brandID) {
		return nil, fmt.Errorf("brand %q: %w", brandID, ErrUnknownBrand)
	}

	s.mu.Lock()
	sess, err := s.lookupLocked(id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	sess.order.Clear()
	sess.generation++
	gen := sess.generation
	s.recomputeLocked(sess)
	s.mu.Unlock()

	log.Printf("🔀 SwitchBrand: session=%s brand=%s generation=%d", id, brandID, gen)

	ds, err := s.datasets.Get(ctx, brandID)
	if err != nil {
		return nil, fmt.Errorf("failed to switch to %s: %w", brandID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err = s.lookupLocked(id)
	if err != nil {
		return nil, err
	}
	if sess.generation != gen {
		log.Printf("⏭️  SwitchBrand: session=%s brand=%s generation=%d superseded by %d", id, brandID, gen, sess.generation)
		return nil, ErrStaleDataset
	}
	sess.dataset = ds
	// items added while the load was in flight belong to the previous menu
	sess.order.Clear()
	s.recomputeLocked(sess)

	log.Printf("✓ SwitchBrand: session=%s brand=%s stores=%d", id, brandID, ds.Table.Len())
	return viewOf(sess), nil
}

// State returns a snapshot of the session for map drawing
func (s *SessionService) State(id string) (*models.SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, err := s.lookupLocked(id)
	if err != nil {
		return nil, err
	}
	return &models.SessionState{
		ID:         sess.id,
		Dataset:    sess.dataset,
		Order:      sess.order.Clone(),
		Pricing:    sess.pricing,
		Generation: sess.generation,
	}, nil
}

// Breakdown prices the session's order line by line at one store
func (s *SessionService) Breakdown(id, storeID string) (*models.PricingBreakdown, error) {
	state, err := s.State(id)
	if err != nil {
		return nil, err
	}
	breakdown, ok := pricing.Breakdown(state.Dataset.Table, state.Order, storeID)
	if !ok {
		return nil, fmt.Errorf("store %q in %s: %w", storeID, state.Dataset.Brand.ID, ErrStoreNotFound)
	}
	return breakdown, nil
}

func (s *SessionService) lookupLocked(id string) (*session, error) {
	sess, ok := s.sessions[id]
	if !ok || s.expired(sess) {
		return nil, fmt.Errorf("session %q: %w", id, ErrSessionNotFound)
	}
	return sess, nil
}

func (s *SessionService) expired(sess *session) bool {
	return s.now().Sub(sess.updatedAt) > s.ttl
}

// sweepLocked drops idle sessions; callers hold the write lock
func (s *SessionService) sweepLocked() {
	for id, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, id)
			log.Printf("🗑️  SweepSessions: expired session=%s", id)
		}
	}
}

func (s *SessionService) recomputeLocked(sess *session) {
	sess.pricing = pricing.Compute(sess.dataset.Table, sess.order)
	sess.updatedAt = s.now()
}

func viewOf(sess *session) *models.SessionView {
	return &models.SessionView{
		ID:        sess.id,
		Brand:     sess.dataset.Brand.ID,
		Order:     sess.order.Lines(),
		Pricing:   Summarize(sess.pricing, sess.dataset.Table.Len()),
		UpdatedAt: sess.updatedAt,
	}
}

// Summarize turns a pricing result into display strings. The panel is hidden
// and every figure reads "N/A" when nothing was priced.
func Summarize(result *models.PricingResult, stores int) models.PricingSummary {
	var min, avg, max *decimal.Decimal
	if result != nil && result.Stats != nil {
		min, avg, max = &result.Stats.Min, &result.Stats.Average, &result.Stats.Max
	}
	return models.PricingSummary{
		Visible: min != nil,
		Min:     utils.FormatUSDOrNA(min),
		Average: utils.FormatUSDOrNA(avg),
		Max:     utils.FormatUSDOrNA(max),
		Stores:  stores,
	}
}

func hasBrand(brands []models.Brand, id string) bool {
	for _, b := range brands {
		if b.ID == id {
			return true
		}
	}
	return false
}
