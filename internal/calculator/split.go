package calculator

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mmynk/warikan/internal/models"
)

// Policy selects how a bill is split.
type Policy string

const (
	// PolicyEqual divides the total evenly, ignoring who ordered what.
	PolicyEqual Policy = "equal"

	// PolicyByOrderer charges each member for the items they ordered alone.
	PolicyByOrderer Policy = "by_orderer"

	// PolicyPerItemShare splits every item evenly among its co-payers.
	PolicyPerItemShare Policy = "per_item"
)

// Policies lists every supported policy.
var Policies = []Policy{PolicyEqual, PolicyByOrderer, PolicyPerItemShare}

// ParsePolicy converts a wire name into a Policy.
func ParsePolicy(s string) (Policy, error) {
	p := Policy(s)
	if !slices.Contains(Policies, p) {
		return "", fmt.Errorf("%w: %q", models.ErrUnknownPolicy, s)
	}
	return p, nil
}

// Accepts reports whether items attributed with kind can be charged under p.
// Equal ignores attribution; ByOrderer needs a single orderer; PerItemShare
// treats an orderer as a co-payer set of one.
func (p Policy) Accepts(kind models.AttributionKind) bool {
	switch p {
	case PolicyEqual, PolicyPerItemShare:
		return kind == models.AttributionSingleOrderer || kind == models.AttributionSharedSet
	case PolicyByOrderer:
		return kind == models.AttributionSingleOrderer
	default:
		return false
	}
}

// Share is one member's part of a Breakdown.
type Share struct {
	Member models.Member

	// Exact is the share at full precision.
	Exact decimal.Decimal

	// AmountOwed is Exact rounded half-up to a whole currency unit.
	AmountOwed int64

	// Items are the line items charged to this member, in ledger order.
	// Empty under PolicyEqual.
	Items []models.LineItem
}

// Breakdown is the per-member result of Compute.
type Breakdown struct {
	Policy Policy

	// Total is the sum of every item's ExtendedPrice.
	Total int64

	// Shares holds one entry per member, in member order.
	Shares []Share

	// Incomplete is set when at least one item could not be charged to anyone.
	Incomplete bool

	// Unresolved lists the IDs of items that contributed nothing.
	Unresolved []string
}

// Share returns the share of memberID, if present.
func (b *Breakdown) Share(memberID int) (Share, bool) {
	for _, s := range b.Shares {
		if s.Member.ID == memberID {
			return s, true
		}
	}
	return Share{}, false
}

// RoundedTotal is the sum of every AmountOwed.
func (b *Breakdown) RoundedTotal() int64 {
	var sum int64
	for _, s := range b.Shares {
		sum += s.AmountOwed
	}
	return sum
}

// Discrepancy is RoundedTotal minus Total. Rounding is per member and
// independent, so for a complete breakdown its magnitude is at most
// len(Shares)-1; the remainder is never redistributed.
func (b *Breakdown) Discrepancy() int64 {
	return b.RoundedTotal() - b.Total
}

// Compute splits items among members under policy.
// It is a pure function: identical input always yields identical output.
//
// Items that cannot be charged under the policy (no single orderer for
// ByOrderer, no listed co-payer for PerItemShare) contribute zero and mark the
// breakdown incomplete instead of failing, so running totals keep working
// while the order is still being edited.
func Compute(policy Policy, items []models.LineItem, members []models.Member) (*Breakdown, error) {
	if !slices.Contains(Policies, policy) {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownPolicy, policy)
	}
	if len(members) == 0 {
		return nil, models.ErrNoMembers
	}

	b := &Breakdown{
		Policy: policy,
		Total:  models.SumExtended(items),
		Shares: make([]Share, len(members)),
	}

	index := make(map[int]int, len(members))
	for i, m := range members {
		index[m.ID] = i
		b.Shares[i] = Share{Member: m, Exact: decimal.Zero}
	}

	switch policy {
	case PolicyEqual:
		perMember := decimal.NewFromInt(b.Total).Div(decimal.NewFromInt(int64(len(members))))
		for i := range b.Shares {
			b.Shares[i].Exact = perMember
		}
	case PolicyByOrderer:
		for _, item := range items {
			i, ok := index[item.Attribution.Orderer]
			if !policy.Accepts(item.Attribution.Kind) || !ok {
				b.markUnresolved(item)
				continue
			}
			b.Shares[i].Exact = b.Shares[i].Exact.Add(decimal.NewFromInt(item.ExtendedPrice()))
			b.Shares[i].Items = append(b.Shares[i].Items, item.Clone())
		}
	case PolicyPerItemShare:
		for _, item := range items {
			var payers []int
			for _, id := range item.Attribution.Payers() {
				if i, ok := index[id]; ok {
					payers = append(payers, i)
				}
			}
			if !policy.Accepts(item.Attribution.Kind) || len(payers) == 0 {
				b.markUnresolved(item)
				continue
			}
			part := decimal.NewFromInt(item.ExtendedPrice()).Div(decimal.NewFromInt(int64(len(payers))))
			for _, i := range payers {
				b.Shares[i].Exact = b.Shares[i].Exact.Add(part)
				b.Shares[i].Items = append(b.Shares[i].Items, item.Clone())
			}
		}
	}

	for i := range b.Shares {
		b.Shares[i].AmountOwed = RoundHalfUp(b.Shares[i].Exact)
	}

	return b, nil
}

func (b *Breakdown) markUnresolved(item models.LineItem) {
	b.Incomplete = true
	b.Unresolved = append(b.Unresolved, item.ID)
}

// RoundHalfUp rounds d to the nearest whole currency unit, halves up.
func RoundHalfUp(d decimal.Decimal) int64 {
	// Round is half away from zero, which is half-up for the
	// non-negative amounts produced here.
	return d.Round(0).IntPart()
}
