package session

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mmynk/warikan/internal/id"
	"github.com/mmynk/warikan/internal/models"
)

// Ledger is the ordered list of line items for the active order.
// It is not safe for concurrent use; Session serializes access.
type Ledger struct {
	items []models.LineItem
	newID func() string
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{newID: id.NewLineItemID}
}

// Items returns a deep copy of the line items in ledger order.
func (l *Ledger) Items() []models.LineItem {
	items := make([]models.LineItem, len(l.items))
	for i, item := range l.items {
		items[i] = item.Clone()
	}
	return items
}

// Len returns the number of line items.
func (l *Ledger) Len() int { return len(l.items) }

// Total is the sum of every item's ExtendedPrice.
func (l *Ledger) Total() int64 { return models.SumExtended(l.items) }

// Get looks up a line item by ID.
func (l *Ledger) Get(lineItemID string) (models.LineItem, bool) {
	if i := l.index(lineItemID); i >= 0 {
		return l.items[i].Clone(), true
	}
	return models.LineItem{}, false
}

// AddItem records quantity units of a catalog entry.
// An existing item with the same catalog ID and attribution absorbs the
// quantity instead of a new entry being appended.
func (l *Ledger) AddItem(entry models.MenuEntry, attr models.Attribution, quantity int) (models.LineItem, error) {
	if entry.ID == "" {
		return models.LineItem{}, fmt.Errorf("%w: empty catalog id", models.ErrCatalogEntryNotFound)
	}
	if err := validateEntry(entry.UnitPrice, quantity, attr); err != nil {
		return models.LineItem{}, err
	}

	key := attr.Key()
	for i := range l.items {
		if l.items[i].CatalogID == entry.ID && l.items[i].Attribution.Key() == key {
			merged, err := addQuantity(l.items[i].Quantity, quantity)
			if err != nil {
				return models.LineItem{}, err
			}
			l.items[i].Quantity = merged
			return l.items[i].Clone(), nil
		}
	}

	item := models.LineItem{
		ID:          l.newID(),
		CatalogID:   entry.ID,
		Name:        entry.Name,
		UnitPrice:   entry.UnitPrice,
		Quantity:    quantity,
		Attribution: attr.Clone(),
	}
	l.items = append(l.items, item)
	return item.Clone(), nil
}

// AddCustomItem records a free-form item that is not in the catalog.
// Custom items never merge.
func (l *Ledger) AddCustomItem(name string, unitPrice int64, quantity int, attr models.Attribution) (models.LineItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.LineItem{}, fmt.Errorf("%w: custom item", models.ErrEmptyName)
	}
	if err := validateEntry(unitPrice, quantity, attr); err != nil {
		return models.LineItem{}, err
	}

	item := models.LineItem{
		ID:          l.newID(),
		Name:        name,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
		Attribution: attr.Clone(),
	}
	l.items = append(l.items, item)
	return item.Clone(), nil
}

func validateEntry(unitPrice int64, quantity int, attr models.Attribution) error {
	if quantity < 1 || quantity > models.MaxQuantity {
		return fmt.Errorf("%w: quantity %d outside [1, %d]", models.ErrInvalidQuantity, quantity, models.MaxQuantity)
	}
	if unitPrice <= 0 || unitPrice > models.MaxUnitPrice {
		return fmt.Errorf("%w: unit price %d outside [1, %d]", models.ErrInvalidQuantity, unitPrice, models.MaxUnitPrice)
	}
	if attr.Kind != models.AttributionSingleOrderer && attr.Kind != models.AttributionSharedSet {
		return fmt.Errorf("%w: attribution kind not set", models.ErrAttributionMismatch)
	}
	return nil
}

// addQuantity returns current+delta, failing when it would exceed MaxQuantity.
// current must already be within bounds.
func addQuantity(current, delta int) (int, error) {
	if delta > models.MaxQuantity-current {
		return 0, fmt.Errorf("%w: quantity %d + %d exceeds %d", models.ErrInvalidQuantity, current, delta, models.MaxQuantity)
	}
	return current + delta, nil
}

// UpdateQuantity adds delta to an item's quantity. The item is removed when
// the result drops to zero or below; an increment past MaxQuantity fails and
// leaves the item unchanged.
func (l *Ledger) UpdateQuantity(lineItemID string, delta int) error {
	i := l.index(lineItemID)
	if i < 0 {
		return fmt.Errorf("%w: %s", models.ErrLineItemNotFound, lineItemID)
	}

	if delta <= -l.items[i].Quantity {
		l.items = slices.Delete(l.items, i, i+1)
		return nil
	}
	quantity, err := addQuantity(l.items[i].Quantity, delta)
	if err != nil {
		return err
	}
	l.items[i].Quantity = quantity
	return nil
}

// RemoveItem deletes an item. Removing an unknown ID is a no-op.
func (l *Ledger) RemoveItem(lineItemID string) {
	if i := l.index(lineItemID); i >= 0 {
		l.items = slices.Delete(l.items, i, i+1)
	}
}

// ToggleSharedMember adds memberID to a shared item's co-payers, or removes it
// if already present.
func (l *Ledger) ToggleSharedMember(lineItemID string, memberID int) error {
	i := l.index(lineItemID)
	if i < 0 {
		return fmt.Errorf("%w: %s", models.ErrLineItemNotFound, lineItemID)
	}
	if !l.items[i].Attribution.IsShared() {
		return fmt.Errorf("%w: %s is not shared", models.ErrAttributionMismatch, lineItemID)
	}

	l.items[i].Attribution = l.items[i].Attribution.Toggle(memberID)
	return nil
}

// ReattributeOrderer hands a single-orderer item to another member.
func (l *Ledger) ReattributeOrderer(lineItemID string, memberID int) error {
	i := l.index(lineItemID)
	if i < 0 {
		return fmt.Errorf("%w: %s", models.ErrLineItemNotFound, lineItemID)
	}
	if l.items[i].Attribution.Kind != models.AttributionSingleOrderer {
		return fmt.Errorf("%w: %s has no single orderer", models.ErrAttributionMismatch, lineItemID)
	}

	l.items[i].Attribution = models.SingleOrderer(memberID)
	return nil
}

// Unresolved returns the IDs of items nobody is attributed to.
func (l *Ledger) Unresolved() []string {
	var ids []string
	for _, item := range l.items {
		if !item.Attribution.Resolved() {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// ownedBy returns the IDs of single-orderer items owned by memberID.
func (l *Ledger) ownedBy(memberID int) []string {
	var ids []string
	for _, item := range l.items {
		if item.Attribution.Kind == models.AttributionSingleOrderer && item.Attribution.Orderer == memberID {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// detachMember drops memberID from every shared set.
func (l *Ledger) detachMember(memberID int) {
	for i := range l.items {
		l.items[i].Attribution = l.items[i].Attribution.Without(memberID)
	}
}

// joinShared adds memberID to every shared set that lacks it.
func (l *Ledger) joinShared(memberID int) {
	for i := range l.items {
		attr := l.items[i].Attribution
		if attr.IsShared() && !attr.Includes(memberID) {
			l.items[i].Attribution = attr.Toggle(memberID)
		}
	}
}

func (l *Ledger) index(lineItemID string) int {
	return slices.IndexFunc(l.items, func(item models.LineItem) bool { return item.ID == lineItemID })
}
