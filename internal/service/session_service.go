package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/warikan/internal/calculator"
	"github.com/mmynk/warikan/internal/catalog"
	"github.com/mmynk/warikan/internal/id"
	"github.com/mmynk/warikan/internal/metrics"
	"github.com/mmynk/warikan/internal/models"
	"github.com/mmynk/warikan/internal/session"
	"github.com/mmynk/warikan/internal/storage"
	"github.com/mmynk/warikan/pkg/api"
)

// SessionService implements the Connect SessionService
type SessionService struct {
	api.UnimplementedSessionServiceHandler
	sessions *session.Manager
	menu     *catalog.Catalog
	store    storage.Store
	metrics  *metrics.Metrics
}

// NewSessionService creates a new SessionService.
// Finalized orders are archived in store.
func NewSessionService(sessions *session.Manager, menu *catalog.Catalog, store storage.Store, m *metrics.Metrics) *SessionService {
	return &SessionService{
		sessions: sessions,
		menu:     menu,
		store:    store,
		metrics:  m,
	}
}

func (s *SessionService) lookup(sessionID string) (*session.Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return sess, nil
}

// CreateSession starts a session with the given members.
func (s *SessionService) CreateSession(ctx context.Context, req *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.CreateSessionResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	slog.Info("CreateSession request received", "members", len(req.Msg.Names))

	sess, err := s.sessions.Create(req.Msg.Names)
	if err != nil {
		return nil, toConnectError(err)
	}
	s.metrics.SessionsActive.Set(float64(s.sessions.Len()))

	slog.Info("Session created", "session_id", sess.ID)
	return connect.NewResponse(&api.CreateSessionResponse{Session: toAPISession(sess.Snapshot())}), nil
}

// GetSession returns the current state of a session.
func (s *SessionService) GetSession(ctx context.Context, req *connect.Request[api.GetSessionRequest]) (*connect.Response[api.GetSessionResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	sess, err := s.lookup(req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetSessionResponse{Session: toAPISession(sess.Snapshot())}), nil
}

// DeleteSession discards a session. Orders already finalized stay archived.
func (s *SessionService) DeleteSession(ctx context.Context, req *connect.Request[api.DeleteSessionRequest]) (*connect.Response[api.DeleteSessionResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if err := s.sessions.Delete(req.Msg.SessionID); err != nil {
		return nil, toConnectError(err)
	}
	s.metrics.SessionsActive.Set(float64(s.sessions.Len()))

	slog.Info("Session deleted", "session_id", req.Msg.SessionID)
	return connect.NewResponse(&api.DeleteSessionResponse{}), nil
}

// AddMember adds a member to a session.
func (s *SessionService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	sess, err := s.lookup(req.Msg.SessionID)
	if err != nil {
		return nil, err
	}

	member, err := sess.AddMember(req.Msg.Name, req.Msg.JoinSharedItems)
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Debug("Member added", "session_id", sess.ID, "member_id", member.ID, "join_shared", req.Msg.JoinSharedItems)
	return connect.NewResponse(&api.AddMemberResponse{
		Member:  toAPIMember(member),
		Session: toAPISession(sess.Snapshot()),
	}), nil
}

// RemoveMember removes a member from a session, handling the items they own
// according to the requested policy.
func (s *SessionService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	sess, err := s.lookup(req.Msg.SessionID)
	if err != nil {
		return nil, err
	}

	if err := sess.RemoveMember(req.Msg.MemberID, toRemovalPolicy(req.Msg)); err != nil {
		return nil, toConnectError(err)
	}

	slog.Debug("Member removed", "session_id", sess.ID, "member_id", req.Msg.MemberID, "owned_items", req.Msg.OwnedItems)
	return connect.NewResponse(&api.RemoveMemberResponse{Session: toAPISession(sess.Snapshot())}), nil
}

// ListMenu returns the catalog.
func (s *SessionService) ListMenu(ctx context.Context, req *connect.Request[api.ListMenuRequest]) (*connect.Response[api.ListMenuResponse], error) {
	return connect.NewResponse(&api.ListMenuResponse{Entries: toAPIMenu(s.menu.Entries())}), nil
}

// AddItem adds a catalog entry to a session's ledger.
func (s *SessionService) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	sess, err := s.lookup(req.Msg.SessionID)
	if err != nil {
		return nil, err
	}

	entry, err := s.menu.Get(req.Msg.CatalogID)
	if err != nil {
		return nil, toConnectError(err)
	}
	attr, err := fromAPIAttribution(req.Msg.Attribution)
	if err != nil {
		return nil, toConnectError(err)
	}

	item, err := sess.AddItem(entry, attr, quantityOrDefault(req.Msg.Quantity))
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Debug("Item added",
		"session_id", sess.ID,
		"line_item_id", item.ID,
		"catalog_id", item.CatalogID,
		"quantity", item.Quantity,
		"attribution", item.Attribution.Key(),
	)
	return connect.NewResponse(&api.AddItemResponse{
		Item:    toAPILineItem(item),
		Session: toAPISession(sess.Snapshot()),
	}), nil
}

// AddCustomItem adds an off-menu item with its own name and price.
func (s *SessionService) AddCustomItem(ctx context.Context, req *connect.Request[api.AddCustomItemRequest]) (*connect.Response[api.AddCustomItemResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	sess, err := s.lookup(req.Msg.SessionID)
	if err != nil {
		return nil, err
	}

	attr, err := fromAPIAttribution(req.Msg.Attribution)
	if err != nil {
		return nil, toConnectError(err)
	}

	item, err := sess.AddCustomItem(req.Msg.Name, req.Msg.UnitPrice, quantityOrDefault(req.Msg.Quantity), attr)
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Debug("Custom item added", "session_id", sess.ID, "line_item_id", item.ID, "name", item.Name, "unit_price", item.UnitPrice)
	return connect.NewResponse(&api.AddCustomItemResponse{
		Item:    toAPILineItem(item),
		Session: toAPISession(sess.Snapshot()),
	}), nil
}

// UpdateQuantity changes an item's quantity by delta. Items reaching zero are removed.
func (s *SessionService) UpdateQuantity(ctx context.Context, req *connect.Request[api.UpdateQuantityRequest]) (*connect.Response[api.UpdateQuantityResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	sess, err := s.lookup(req.Msg.SessionID)
	if err != nil {
		return nil, err
	}

	if err := sess.UpdateQuantity(req.Msg.LineItemID, req.Msg.Delta); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.UpdateQuantityResponse{Session: toAPISession(sess.Snapshot())}), nil
}

// RemoveItem deletes an item. Removing an unknown item is a no-op.
func (s *SessionService) RemoveItem(ctx context.Context, req *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.RemoveItemResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	sess, err := s.lookup(req.Msg.SessionID)
	if err != nil {
		return nil, err
	}

	sess.RemoveItem(req.Msg.LineItemID)
	return connect.NewResponse(&api.RemoveItemResponse{Session: toAPISession(sess.Snapshot())}), nil
}

// ToggleSharedMember adds or removes a co-payer of a shared item.
func (s *SessionService) ToggleSharedMember(ctx context.Context, req *connect.Request[api.ToggleSharedMemberRequest]) (*connect.Response[api.ToggleSharedMemberResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	sess, err := s.lookup(req.Msg.SessionID)
	if err != nil {
		return nil, err
	}

	if err := sess.ToggleSharedMember(req.Msg.LineItemID, req.Msg.MemberID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ToggleSharedMemberResponse{Session: toAPISession(sess.Snapshot())}), nil
}

// ReattributeOrderer moves a single-orderer item to another member.
func (s *SessionService) ReattributeOrderer(ctx context.Context, req *connect.Request[api.ReattributeOrdererRequest]) (*connect.Response[api.ReattributeOrdererResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	sess, err := s.lookup(req.Msg.SessionID)
	if err != nil {
		return nil, err
	}

	if err := sess.ReattributeOrderer(req.Msg.LineItemID, req.Msg.MemberID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ReattributeOrdererResponse{Session: toAPISession(sess.Snapshot())}), nil
}

// CalculateSplit computes what each member owes under a policy.
// With a payer it also returns the transfers that settle the bill.
func (s *SessionService) CalculateSplit(ctx context.Context, req *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	sess, err := s.lookup(req.Msg.SessionID)
	if err != nil {
		return nil, err
	}

	policy, err := calculator.ParsePolicy(req.Msg.Policy)
	if err != nil {
		return nil, toConnectError(err)
	}

	breakdown, err := sess.Split(policy)
	if err != nil {
		slog.Error("CalculateSplit failed", "session_id", sess.ID, "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.ObserveSplit(string(policy), breakdown.Incomplete)

	for _, share := range breakdown.Shares {
		slog.Debug("Member share",
			"session_id", sess.ID,
			"member", share.Member.Name,
			"exact", share.Exact.String(),
			"amount_owed", share.AmountOwed,
			"items_count", len(share.Items),
		)
	}

	resp := &api.CalculateSplitResponse{Breakdown: toAPIBreakdown(breakdown)}
	if req.Msg.PayerID != 0 {
		if _, ok := breakdown.Share(req.Msg.PayerID); !ok {
			return nil, toConnectError(fmt.Errorf("payer: %w: %d", models.ErrMemberNotFound, req.Msg.PayerID))
		}
		if breakdown.Incomplete {
			return nil, toConnectError(fmt.Errorf("%w: cannot settle while %d item(s) are unresolved", models.ErrIncompleteOrder, len(breakdown.Unresolved)))
		}
		resp.Transfers = toAPITransfers(calculator.Settle(breakdown, calculator.SinglePayer(breakdown, req.Msg.PayerID)))
	}

	return connect.NewResponse(resp), nil
}

// FinalizeOrder snapshots the session into an order and archives it.
func (s *SessionService) FinalizeOrder(ctx context.Context, req *connect.Request[api.FinalizeOrderRequest]) (*connect.Response[api.FinalizeOrderResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	sess, err := s.lookup(req.Msg.SessionID)
	if err != nil {
		return nil, err
	}

	order, err := sess.Finalize(s.sessions.Now())
	if err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.SaveOrder(ctx, order); err != nil {
		slog.Error("Failed to archive order", "session_id", sess.ID, "order_id", order.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	s.metrics.ObserveOrder(order.Total)

	slog.Info("Order finalized", "session_id", sess.ID, "order_id", order.ID, "total", order.Total, "items", len(order.Items))
	return connect.NewResponse(&api.FinalizeOrderResponse{Order: toAPIOrder(order)}), nil
}

// GetOrder retrieves an archived order.
func (s *SessionService) GetOrder(ctx context.Context, req *connect.Request[api.GetOrderRequest]) (*connect.Response[api.GetOrderResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	if err := id.Validate(req.Msg.OrderID, id.PrefixOrder); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	order, err := s.store.GetOrder(ctx, req.Msg.OrderID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetOrderResponse{Order: toAPIOrder(order)}), nil
}

// ListOrders returns the archived orders of a session, oldest first.
// The session itself may already be deleted.
func (s *SessionService) ListOrders(ctx context.Context, req *connect.Request[api.ListOrdersRequest]) (*connect.Response[api.ListOrdersResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	orders, err := s.store.ListOrdersBySession(ctx, req.Msg.SessionID)
	if err != nil {
		slog.Error("Failed to list orders", "session_id", req.Msg.SessionID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]api.Order, len(orders))
	for i, order := range orders {
		out[i] = toAPIOrder(order)
	}
	return connect.NewResponse(&api.ListOrdersResponse{Orders: out}), nil
}
