// Package session owns the mutable state of one shared order: the member
// registry and the line-item ledger. Both live behind a single mutex so that
// cross-entity rules (no item references a member that is gone) change as one
// unit.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/mmynk/warikan/internal/calculator"
	"github.com/mmynk/warikan/internal/models"
)

// OwnedItems selects what happens to a removed member's single-orderer items.
type OwnedItems int

const (
	// RejectOwned refuses the removal while the member owns items.
	RejectOwned OwnedItems = iota

	// DropOwned deletes the member's items together with the member.
	DropOwned

	// ReassignOwned hands the member's items to RemovalPolicy.ReassignTo.
	ReassignOwned
)

// RemovalPolicy configures RemoveMember. The zero value rejects removal of a
// member who still owns items.
type RemovalPolicy struct {
	Owned      OwnedItems
	ReassignTo int
}

// Snapshot is a consistent copy of a session's state.
type Snapshot struct {
	ID        string
	CreatedAt time.Time
	Members   []models.Member
	Items     []models.LineItem
	Total     int64
}

// Session is one shared order being edited.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	registry *Registry
	ledger   *Ledger
}

// New creates a session with the initial member names.
func New(sessionID string, names []string, now time.Time) (*Session, error) {
	registry, err := NewRegistry(names)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:        sessionID,
		CreatedAt: now,
		registry:  registry,
		ledger:    NewLedger(),
	}, nil
}

// Snapshot copies the current members, items and total.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		Members:   s.registry.Members(),
		Items:     s.ledger.Items(),
		Total:     s.ledger.Total(),
	}
}

// AddMember adds a member mid-session. With joinShared the new member is
// also added to every shared item.
func (s *Session) AddMember(name string, joinShared bool) (models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.registry.Add(name)
	if err != nil {
		return models.Member{}, err
	}
	if joinShared {
		s.ledger.joinShared(m.ID)
	}
	return m, nil
}

// RemoveMember removes a member and detaches them from every shared item.
// Items the member ordered alone are handled per policy. Nothing changes
// unless the whole removal succeeds.
func (s *Session) RemoveMember(memberID int, policy RemovalPolicy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.registry.checkRemovable(memberID); err != nil {
		return err
	}

	owned := s.ledger.ownedBy(memberID)
	if len(owned) > 0 {
		switch policy.Owned {
		case RejectOwned:
			return fmt.Errorf("%w: member %d owns %d item(s)", models.ErrDanglingAttribution, memberID, len(owned))
		case DropOwned:
		case ReassignOwned:
			if policy.ReassignTo == memberID {
				return fmt.Errorf("%w: cannot reassign to the member being removed", models.ErrDanglingAttribution)
			}
			if _, ok := s.registry.Get(policy.ReassignTo); !ok {
				return fmt.Errorf("%w: reassign target %d", models.ErrMemberNotFound, policy.ReassignTo)
			}
		default:
			return fmt.Errorf("%w: unknown removal policy %d", models.ErrDanglingAttribution, policy.Owned)
		}
	}

	for _, lineItemID := range owned {
		if policy.Owned == DropOwned {
			s.ledger.RemoveItem(lineItemID)
			continue
		}
		if err := s.ledger.ReattributeOrderer(lineItemID, policy.ReassignTo); err != nil {
			return fmt.Errorf("reassign %s: %w", lineItemID, err)
		}
	}
	s.ledger.detachMember(memberID)
	s.registry.remove(memberID)
	return nil
}

// AddItem adds a catalog entry to the ledger.
func (s *Session) AddItem(entry models.MenuEntry, attr models.Attribution, quantity int) (models.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkAttribution(attr); err != nil {
		return models.LineItem{}, err
	}
	return s.ledger.AddItem(entry, attr, quantity)
}

// AddCustomItem adds a free-form item to the ledger.
func (s *Session) AddCustomItem(name string, unitPrice int64, quantity int, attr models.Attribution) (models.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkAttribution(attr); err != nil {
		return models.LineItem{}, err
	}
	return s.ledger.AddCustomItem(name, unitPrice, quantity, attr)
}

// UpdateQuantity changes an item's quantity by delta.
func (s *Session) UpdateQuantity(lineItemID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.UpdateQuantity(lineItemID, delta)
}

// RemoveItem deletes an item; unknown IDs are ignored.
func (s *Session) RemoveItem(lineItemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.RemoveItem(lineItemID)
}

// ToggleSharedMember flips a member's participation in a shared item.
func (s *Session) ToggleSharedMember(lineItemID string, memberID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.registry.Get(memberID); !ok {
		return fmt.Errorf("%w: %d", models.ErrMemberNotFound, memberID)
	}
	return s.ledger.ToggleSharedMember(lineItemID, memberID)
}

// ReattributeOrderer hands a single-orderer item to another member.
func (s *Session) ReattributeOrderer(lineItemID string, memberID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.registry.Get(memberID); !ok {
		return fmt.Errorf("%w: %d", models.ErrMemberNotFound, memberID)
	}
	return s.ledger.ReattributeOrderer(lineItemID, memberID)
}

// Split computes the payment breakdown for the current state.
// Switching policy never touches the ledger.
func (s *Session) Split(policy calculator.Policy) (*calculator.Breakdown, error) {
	snap := s.Snapshot()
	return calculator.Compute(policy, snap.Items, snap.Members)
}

// Finalize snapshots the session into an Order.
func (s *Session) Finalize(now time.Time) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Finalize(s.ID, s.registry, s.ledger, now)
}

// checkAttribution verifies every member the attribution names is present.
func (s *Session) checkAttribution(attr models.Attribution) error {
	for _, memberID := range attr.Payers() {
		if _, ok := s.registry.Get(memberID); !ok {
			return fmt.Errorf("%w: %d", models.ErrMemberNotFound, memberID)
		}
	}
	if attr.Kind == models.AttributionSingleOrderer && attr.Orderer == 0 {
		return fmt.Errorf("%w: orderer not set", models.ErrMemberNotFound)
	}
	return nil
}
