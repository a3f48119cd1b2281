// Package id generates the prefixed, time-ordered identifiers used for line
// items and orders. IDs are TypeIDs ("prefix_suffix") backed by UUIDv7, so
// they sort by creation time and are unique for the life of the process.
package id

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

// Prefix identifies the entity type encoded in an ID.
type Prefix string

const (
	PrefixLineItem Prefix = "li"  // Ledger line item
	PrefixOrder    Prefix = "ord" // Finalized order
)

// New generates a new ID with the given prefix.
// It panics if prefix is not a valid TypeID prefix (programming error).
func New(prefix Prefix) string {
	tid, err := typeid.Generate(string(prefix))
	if err != nil {
		panic(fmt.Sprintf("id: invalid prefix %q: %v", prefix, err))
	}
	return tid.String()
}

// NewLineItemID generates a new line item ID.
func NewLineItemID() string { return New(PrefixLineItem) }

// NewOrderID generates a new order ID.
func NewOrderID() string { return New(PrefixOrder) }

// Validate checks that s parses as a TypeID carrying the expected prefix.
func Validate(s string, expected Prefix) error {
	if s == "" {
		return fmt.Errorf("id: parse %q: empty string", s)
	}
	tid, err := typeid.Parse(s)
	if err != nil {
		return fmt.Errorf("id: parse %q: %w", s, err)
	}
	if Prefix(tid.Prefix()) != expected {
		return fmt.Errorf("id: expected prefix %q, got %q", expected, tid.Prefix())
	}
	return nil
}
