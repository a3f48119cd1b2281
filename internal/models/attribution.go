package models

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// AttributionKind tags which variant an Attribution holds.
type AttributionKind int

const (
	// AttributionSingleOrderer means exactly one member pays for the item.
	AttributionSingleOrderer AttributionKind = iota + 1

	// AttributionSharedSet means the item is split among zero or more members.
	AttributionSharedSet
)

// String returns the wire name of the kind.
func (k AttributionKind) String() string {
	switch k {
	case AttributionSingleOrderer:
		return "orderer"
	case AttributionSharedSet:
		return "shared"
	default:
		return fmt.Sprintf("AttributionKind(%d)", int(k))
	}
}

// Attribution decides who owes for a line item.
// Use SingleOrderer or SharedSet to build one; the zero value is invalid.
type Attribution struct {
	Kind AttributionKind

	// Orderer is set when Kind is AttributionSingleOrderer.
	Orderer int

	// Shared holds sorted, de-duplicated member IDs when Kind is AttributionSharedSet.
	Shared []int
}

// SingleOrderer attributes an item wholly to one member.
func SingleOrderer(memberID int) Attribution {
	return Attribution{Kind: AttributionSingleOrderer, Orderer: memberID}
}

// SharedSet attributes an item to a set of co-payers. An empty set is allowed
// but leaves the item unresolved.
func SharedSet(memberIDs ...int) Attribution {
	shared := slices.Clone(memberIDs)
	slices.Sort(shared)
	return Attribution{Kind: AttributionSharedSet, Shared: slices.Compact(shared)}
}

// IsShared reports whether the attribution is a SharedSet.
func (a Attribution) IsShared() bool { return a.Kind == AttributionSharedSet }

// Resolved reports whether at least one member is responsible for the item.
func (a Attribution) Resolved() bool {
	switch a.Kind {
	case AttributionSingleOrderer:
		return a.Orderer != 0
	case AttributionSharedSet:
		return len(a.Shared) > 0
	default:
		return false
	}
}

// Payers returns the member IDs responsible for the item.
// A SingleOrderer is a payer set of exactly one.
func (a Attribution) Payers() []int {
	switch a.Kind {
	case AttributionSingleOrderer:
		if a.Orderer == 0 {
			return nil
		}
		return []int{a.Orderer}
	case AttributionSharedSet:
		return slices.Clone(a.Shared)
	default:
		return nil
	}
}

// Includes reports whether memberID is one of the payers.
func (a Attribution) Includes(memberID int) bool {
	switch a.Kind {
	case AttributionSingleOrderer:
		return a.Orderer == memberID
	case AttributionSharedSet:
		_, found := slices.BinarySearch(a.Shared, memberID)
		return found
	default:
		return false
	}
}

// Key identifies the attribution for merge purposes: equal keys mean equal
// orderers, or equal sets regardless of insertion order.
func (a Attribution) Key() string {
	switch a.Kind {
	case AttributionSingleOrderer:
		return "o:" + strconv.Itoa(a.Orderer)
	case AttributionSharedSet:
		ids := make([]string, len(a.Shared))
		for i, id := range a.Shared {
			ids[i] = strconv.Itoa(id)
		}
		return "s:" + strings.Join(ids, ",")
	default:
		return ""
	}
}

// Toggle returns a copy with memberID added to or removed from the shared set.
func (a Attribution) Toggle(memberID int) Attribution {
	if a.Includes(memberID) {
		return a.Without(memberID)
	}
	return SharedSet(append(slices.Clone(a.Shared), memberID)...)
}

// Without returns a copy of a shared set that no longer contains memberID.
// SingleOrderer attributions are returned unchanged.
func (a Attribution) Without(memberID int) Attribution {
	if a.Kind != AttributionSharedSet {
		return a
	}
	shared := make([]int, 0, len(a.Shared))
	for _, id := range a.Shared {
		if id != memberID {
			shared = append(shared, id)
		}
	}
	return Attribution{Kind: AttributionSharedSet, Shared: shared}
}

// Clone returns a copy that shares no memory with a.
func (a Attribution) Clone() Attribution {
	a.Shared = slices.Clone(a.Shared)
	return a
}
