package models

import "time"

// Order is the immutable record produced at checkout.
// It is a deep snapshot: nothing in it aliases live session state.
type Order struct {
	// ID is the unique identifier for the order (typeid, prefix "ord").
	ID string

	// SessionID is the session the order was finalized from.
	SessionID string

	// Members is the member list at checkout, in registry order.
	Members []Member

	// Items is the ledger at checkout, in ledger order.
	Items []LineItem

	// Total is the sum of every item's ExtendedPrice.
	Total int64

	// Timestamp is when the order was finalized.
	Timestamp time.Time
}
