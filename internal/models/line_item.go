package models

// Bounds on a single line item. With both in force ExtendedPrice cannot
// overflow int64.
const (
	MaxQuantity  = 9999
	MaxUnitPrice = 1_000_000_000
)

// LineItem is one entry of the ledger.
// Items can be owned by one member or shared among several.
type LineItem struct {
	// ID is the unique identifier for the line item (typeid, prefix "li").
	ID string

	// CatalogID links back to the menu entry. Empty for custom items,
	// which never merge with each other.
	CatalogID string

	// Name is copied from the catalog entry at entry time.
	Name string

	// UnitPrice is the price of a single unit in the smallest currency unit.
	UnitPrice int64

	// Quantity is always in [1, MaxQuantity] while the item is in a ledger.
	Quantity int

	// Attribution decides who owes for this item.
	Attribution Attribution
}

// ExtendedPrice is UnitPrice × Quantity.
func (li LineItem) ExtendedPrice() int64 {
	return li.UnitPrice * int64(li.Quantity)
}

// Clone returns a deep copy of the item.
func (li LineItem) Clone() LineItem {
	li.Attribution = li.Attribution.Clone()
	return li
}

// SumExtended returns the sum of ExtendedPrice over items.
func SumExtended(items []LineItem) int64 {
	var total int64
	for _, item := range items {
		total += item.ExtendedPrice()
	}
	return total
}
