package models

import "errors"

// Sentinel errors shared by the registry, ledger, split engine and finalizer.
// All of them are recoverable validation failures.
var (
	// Member registry
	ErrDuplicateName       = errors.New("warikan: duplicate member name")
	ErrEmptyName           = errors.New("warikan: name is empty")
	ErrBelowMinimum        = errors.New("warikan: membership below minimum")
	ErrMemberNotFound      = errors.New("warikan: member not found")
	ErrDanglingAttribution = errors.New("warikan: member still owns line items")

	// Ledger
	ErrInvalidQuantity      = errors.New("warikan: invalid quantity or price")
	ErrLineItemNotFound     = errors.New("warikan: line item not found")
	ErrAttributionMismatch  = errors.New("warikan: attribution kind mismatch")
	ErrCatalogEntryNotFound = errors.New("warikan: catalog entry not found")

	// Split engine
	ErrNoMembers     = errors.New("warikan: no members")
	ErrUnknownPolicy = errors.New("warikan: unknown split policy")

	// Finalizer
	ErrIncompleteOrder = errors.New("warikan: incomplete order")

	// Lookups
	ErrSessionNotFound = errors.New("warikan: session not found")
	ErrOrderNotFound   = errors.New("warikan: order not found")
)
