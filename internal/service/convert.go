package service

import (
	"fmt"

	"github.com/mmynk/warikan/internal/calculator"
	"github.com/mmynk/warikan/internal/models"
	"github.com/mmynk/warikan/internal/session"
	"github.com/mmynk/warikan/pkg/api"
)

func toAPIMember(m models.Member) api.Member {
	return api.Member{ID: m.ID, Name: m.Name}
}

func toAPIMembers(members []models.Member) []api.Member {
	out := make([]api.Member, len(members))
	for i, m := range members {
		out[i] = toAPIMember(m)
	}
	return out
}

func toAPIAttribution(a models.Attribution) api.Attribution {
	if a.IsShared() {
		return api.Attribution{Kind: api.AttributionShared, MemberIDs: a.Payers()}
	}
	return api.Attribution{Kind: api.AttributionOrderer, OrdererID: a.Orderer}
}

func fromAPIAttribution(a api.Attribution) (models.Attribution, error) {
	switch a.Kind {
	case api.AttributionOrderer:
		return models.SingleOrderer(a.OrdererID), nil
	case api.AttributionShared:
		return models.SharedSet(a.MemberIDs...), nil
	default:
		return models.Attribution{}, fmt.Errorf("%w: %q", models.ErrAttributionMismatch, a.Kind)
	}
}

func toAPILineItem(item models.LineItem) api.LineItem {
	return api.LineItem{
		ID:            item.ID,
		CatalogID:     item.CatalogID,
		Name:          item.Name,
		UnitPrice:     item.UnitPrice,
		Quantity:      item.Quantity,
		ExtendedPrice: item.ExtendedPrice(),
		Attribution:   toAPIAttribution(item.Attribution),
	}
}

func toAPILineItems(items []models.LineItem) []api.LineItem {
	out := make([]api.LineItem, len(items))
	for i, item := range items {
		out[i] = toAPILineItem(item)
	}
	return out
}

func toAPISession(snap session.Snapshot) api.Session {
	var unresolved []string
	for _, item := range snap.Items {
		if !item.Attribution.Resolved() {
			unresolved = append(unresolved, item.ID)
		}
	}
	return api.Session{
		ID:         snap.ID,
		CreatedAt:  snap.CreatedAt,
		Members:    toAPIMembers(snap.Members),
		Items:      toAPILineItems(snap.Items),
		Total:      snap.Total,
		Unresolved: unresolved,
	}
}

func toAPIOrder(order *models.Order) api.Order {
	return api.Order{
		ID:        order.ID,
		SessionID: order.SessionID,
		Members:   toAPIMembers(order.Members),
		Items:     toAPILineItems(order.Items),
		Total:     order.Total,
		Timestamp: order.Timestamp,
	}
}

func toAPIBreakdown(b *calculator.Breakdown) api.Breakdown {
	shares := make([]api.Share, len(b.Shares))
	for i, share := range b.Shares {
		itemIDs := make([]string, len(share.Items))
		for j, item := range share.Items {
			itemIDs[j] = item.ID
		}
		shares[i] = api.Share{
			Member:     toAPIMember(share.Member),
			Exact:      share.Exact.String(),
			AmountOwed: share.AmountOwed,
			ItemIDs:    itemIDs,
		}
	}
	return api.Breakdown{
		Policy:       string(b.Policy),
		Total:        b.Total,
		Shares:       shares,
		RoundedTotal: b.RoundedTotal(),
		Discrepancy:  b.Discrepancy(),
		Incomplete:   b.Incomplete,
		Unresolved:   b.Unresolved,
	}
}

func toAPITransfers(transfers []calculator.Transfer) []api.Transfer {
	out := make([]api.Transfer, len(transfers))
	for i, t := range transfers {
		out[i] = api.Transfer{From: toAPIMember(t.From), To: toAPIMember(t.To), Amount: t.Amount}
	}
	return out
}

func toAPIMenu(entries []models.MenuEntry) []api.MenuEntry {
	out := make([]api.MenuEntry, len(entries))
	for i, e := range entries {
		out[i] = api.MenuEntry{
			ID:          e.ID,
			Name:        e.Name,
			Price:       e.UnitPrice,
			Description: e.Description,
			Image:       e.Image,
		}
	}
	return out
}

func toRemovalPolicy(req *api.RemoveMemberRequest) session.RemovalPolicy {
	switch req.OwnedItems {
	case api.OwnedItemsDrop:
		return session.RemovalPolicy{Owned: session.DropOwned}
	case api.OwnedItemsReassign:
		return session.RemovalPolicy{Owned: session.ReassignOwned, ReassignTo: req.ReassignTo}
	default:
		return session.RemovalPolicy{Owned: session.RejectOwned}
	}
}

// quantityOrDefault treats an omitted quantity as one unit.
func quantityOrDefault(q int) int {
	if q == 0 {
		return 1
	}
	return q
}
