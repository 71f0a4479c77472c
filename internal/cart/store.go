package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/five82/storefront/internal/catalog"
)

// Entry is a snapshot of the product fields the cart needs for display and
// pricing. It is a copy; later catalog changes never reach it.
type Entry struct {
	ID          string          `json:"_id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	Badge       string          `json:"badge,omitempty"`
	Category    string          `json:"category,omitempty"`
}

// AddResult tells the caller what Add did, for user feedback.
type AddResult int

const (
	Rejected AddResult = iota
	Added
	AlreadyInCart
)

func (r AddResult) String() string {
	switch r {
	case Added:
		return "added"
	case AlreadyInCart:
		return "already in cart"
	default:
		return "rejected"
	}
}

var (
	// ErrPersist marks a failed slot write. The in-memory cart has still
	// been updated and remains authoritative for the session.
	ErrPersist = errors.New("cart not saved")

	// ErrUnpriced is returned when adding a product without a valid price.
	ErrUnpriced = errors.New("product has no valid price")
)

// Store is the single owner of the cart. Every mutation writes the whole
// list to the slot before returning.
type Store struct {
	mu      sync.Mutex
	slot    Slot
	entries []Entry
	logger  *zap.Logger
}

// NewStore returns an empty Store backed by slot. Call Load to restore the
// persisted cart.
func NewStore(slot Slot, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{slot: slot, logger: logger.Named("cart")}
}

// Load replaces the in-memory cart with the persisted one. Missing or
// unparseable data yields an empty cart; only a failure to read the slot
// is returned, and the cart is empty in that case too.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	data, err := s.slot.Read(ctx)
	if err != nil {
		s.logger.Warn("cart read failed", zap.String("slot", s.slot.Name()), zap.Error(err))
		return fmt.Errorf("read cart: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("discarding unreadable cart", zap.String("slot", s.slot.Name()), zap.Error(err))
		return nil
	}
	s.entries = dedupe(entries)
	if dropped := len(entries) - len(s.entries); dropped > 0 {
		s.logger.Info("collapsed duplicate cart entries", zap.Int("dropped", dropped))
	}
	s.logger.Debug("cart loaded", zap.Int("entries", len(s.entries)))
	return nil
}

// Add snapshots p into the cart. A product already in the cart is left
// alone and AlreadyInCart is returned. A non-nil error wrapping ErrPersist
// means the entry was added but not saved.
func (s *Store) Add(ctx context.Context, p catalog.Product) (AddResult, error) {
	id := strings.TrimSpace(p.ID)
	if id == "" {
		return Rejected, fmt.Errorf("product id is required")
	}
	if !p.PriceValid {
		return Rejected, fmt.Errorf("%w: %s", ErrUnpriced, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) >= 0 {
		return AlreadyInCart, nil
	}
	entry := Entry{
		ID:          id,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Badge:       p.Badge,
		Category:    p.Category.Title,
	}
	s.entries = append(s.entries, entry)
	s.logger.Debug("cart add", zap.String("id", id))
	return Added, s.persist(ctx)
}

// Remove deletes the entry with id. It reports whether an entry was
// removed; removing an absent id is a no-op that does not touch the slot.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	s.entries = append(s.entries[:idx:idx], s.entries[idx+1:]...)
	s.logger.Debug("cart remove", zap.String("id", id))
	return true, s.persist(ctx)
}

// Total sums entry prices rounded to two places. An empty cart totals zero.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, e := range s.entries {
		total = total.Add(e.Price)
	}
	return total.Round(2)
}

// Entries returns a copy of the cart in insertion order.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) == 0 {
		return nil
	}
	dup := make([]Entry, len(s.entries))
	copy(dup, s.entries)
	return dup
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Contains reports whether id is in the cart.
func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(strings.TrimSpace(id)) >= 0
}

func (s *Store) indexOf(id string) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// persist must be called with s.mu held.
func (s *Store) persist(ctx context.Context) error {
	entries := s.entries
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrPersist, err)
	}
	if err := s.slot.Write(ctx, data); err != nil {
		s.logger.Warn("cart write failed", zap.String("slot", s.slot.Name()), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func dedupe(entries []Entry) []Entry {
	seen := make(map[string]struct{}, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		e.ID = strings.TrimSpace(e.ID)
		if e.ID == "" {
			continue
		}
		if _, ok := seen[e.ID]; ok {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
