package service

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/warikan/internal/catalog"
	"github.com/mmynk/warikan/internal/id"
	"github.com/mmynk/warikan/internal/metrics"
	"github.com/mmynk/warikan/internal/middleware"
	"github.com/mmynk/warikan/internal/models"
	"github.com/mmynk/warikan/internal/session"
	"github.com/mmynk/warikan/internal/storage/sqlite"
	"github.com/mmynk/warikan/pkg/api"
)

// setupTestServer creates a test server backed by a temporary SQLite archive.
func setupTestServer(t *testing.T) (api.SessionServiceClient, func()) {
	t.Helper()

	// Create temp database
	tmpFile, err := os.CreateTemp("", "warikan-test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	m := metrics.New()
	svc := NewSessionService(session.NewManager(), catalog.Default(), store, m)
	path, handler := api.NewSessionServiceHandler(svc,
		connect.WithInterceptors(middleware.MetricsInterceptor(m)),
	)

	mux := http.NewServeMux()
	mux.Handle(path, handler)

	server := httptest.NewServer(mux)

	client := api.NewSessionServiceClient(http.DefaultClient, server.URL)

	cleanup := func() {
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	}

	return client, cleanup
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Fatalf("expected code %v, got %v (%v)", want, got, err)
	}
}

func ref(sessionID string) api.SessionRef {
	return api.SessionRef{SessionID: sessionID}
}

func createSession(t *testing.T, client api.SessionServiceClient, names ...string) api.Session {
	t.Helper()
	resp, err := client.CreateSession(context.Background(), connect.NewRequest(&api.CreateSessionRequest{Names: names}))
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	return resp.Msg.Session
}

func orderedBy(memberID int) api.Attribution {
	return api.Attribution{Kind: api.AttributionOrderer, OrdererID: memberID}
}

func sharedBy(memberIDs ...int) api.Attribution {
	return api.Attribution{Kind: api.AttributionShared, MemberIDs: memberIDs}
}

func TestCreateSession_And_GetSession(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()

	created := createSession(t, client, "Alice", "  ", "Charlie")
	if created.ID == "" {
		t.Fatal("expected session ID to be generated")
	}
	if len(created.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(created.Members))
	}
	if created.Members[1].Name != "Participant2" {
		t.Errorf("expected placeholder name for blank entry, got %q", created.Members[1].Name)
	}

	got, err := client.GetSession(context.Background(), connect.NewRequest(&api.GetSessionRequest{SessionRef: ref(created.ID)}))
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.Msg.Session.ID != created.ID || len(got.Msg.Session.Members) != 3 {
		t.Errorf("GetSession = %+v", got.Msg.Session)
	}
}

func TestCreateSession_Errors(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()

	tests := []struct {
		name  string
		names []string
		code  connect.Code
	}{
		{name: "one member", names: []string{"Alice"}, code: connect.CodeFailedPrecondition},
		{name: "no members", names: nil, code: connect.CodeFailedPrecondition},
		{name: "duplicate names", names: []string{"Alice", "Alice"}, code: connect.CodeAlreadyExists},
		{name: "name too long", names: []string{"Alice", strings.Repeat("b", 65)}, code: connect.CodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.CreateSession(context.Background(), connect.NewRequest(&api.CreateSessionRequest{Names: tt.names}))
			assertCode(t, err, tt.code)
		})
	}
}

func TestGetSession_Errors(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()

	_, err := client.GetSession(context.Background(), connect.NewRequest(&api.GetSessionRequest{SessionRef: ref("nonexistent")}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = client.GetSession(context.Background(), connect.NewRequest(&api.GetSessionRequest{}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestListMenu(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()

	resp, err := client.ListMenu(context.Background(), connect.NewRequest(&api.ListMenuRequest{}))
	if err != nil {
		t.Fatalf("ListMenu failed: %v", err)
	}
	if len(resp.Msg.Entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(resp.Msg.Entries))
	}
	if resp.Msg.Entries[0].Name != "Margherita Pizza" || resp.Msg.Entries[0].Price != 1500 {
		t.Errorf("first entry = %+v", resp.Msg.Entries[0])
	}
}

func TestAddItem_MergesIdenticalEntries(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	sess := createSession(t, client, "Alice", "Bob")
	for i := 0; i < 2; i++ {
		_, err := client.AddItem(ctx, connect.NewRequest(&api.AddItemRequest{
			SessionRef:  ref(sess.ID),
			CatalogID:   "1",
			Attribution: orderedBy(1),
		}))
		if err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}
	}

	resp, err := client.AddItem(ctx, connect.NewRequest(&api.AddItemRequest{
		SessionRef:  ref(sess.ID),
		CatalogID:   "1",
		Quantity:    1,
		Attribution: orderedBy(2),
	}))
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	items := resp.Msg.Session.Items
	if len(items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(items))
	}
	if items[0].Quantity != 2 || items[0].ExtendedPrice != 3000 {
		t.Errorf("merged item = %+v", items[0])
	}
	if resp.Msg.Session.Total != 4500 {
		t.Errorf("expected total 4500, got %d", resp.Msg.Session.Total)
	}
}

func TestAddItem_Errors(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()

	sess := createSession(t, client, "Alice", "Bob")

	tests := []struct {
		name string
		req  *api.AddItemRequest
		code connect.Code
	}{
		{
			name: "unknown catalog entry",
			req:  &api.AddItemRequest{SessionRef: ref(sess.ID), CatalogID: "99", Attribution: orderedBy(1)},
			code: connect.CodeNotFound,
		},
		{
			name: "missing attribution",
			req:  &api.AddItemRequest{SessionRef: ref(sess.ID), CatalogID: "1"},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "negative quantity",
			req:  &api.AddItemRequest{SessionRef: ref(sess.ID), CatalogID: "1", Quantity: -1, Attribution: orderedBy(1)},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "unknown orderer",
			req:  &api.AddItemRequest{SessionRef: ref(sess.ID), CatalogID: "1", Attribution: orderedBy(9)},
			code: connect.CodeNotFound,
		},
		{
			name: "unknown session",
			req:  &api.AddItemRequest{SessionRef: ref("nonexistent"), CatalogID: "1", Attribution: orderedBy(1)},
			code: connect.CodeNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.AddItem(context.Background(), connect.NewRequest(tt.req))
			assertCode(t, err, tt.code)
		})
	}
}

func TestAddCustomItem(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	sess := createSession(t, client, "Alice", "Bob")
	resp, err := client.AddCustomItem(ctx, connect.NewRequest(&api.AddCustomItemRequest{
		SessionRef:  ref(sess.ID),
		Name:        "Corkage",
		UnitPrice:   1000,
		Attribution: sharedBy(1, 2),
	}))
	if err != nil {
		t.Fatalf("AddCustomItem failed: %v", err)
	}
	if resp.Msg.Item.CatalogID != "" || resp.Msg.Item.Quantity != 1 || resp.Msg.Item.Attribution.Kind != api.AttributionShared {
		t.Errorf("custom item = %+v", resp.Msg.Item)
	}

	_, err = client.AddCustomItem(ctx, connect.NewRequest(&api.AddCustomItemRequest{
		SessionRef:  ref(sess.ID),
		UnitPrice:   1000,
		Attribution: sharedBy(1),
	}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestAddCustomItem_RejectsOverflowingAmounts(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	sess := createSession(t, client, "Alice", "Bob")
	tests := []struct {
		name      string
		unitPrice int64
		quantity  int
	}{
		{name: "price near int64 limit", unitPrice: math.MaxInt64/2 + 1, quantity: 2},
		{name: "price above bound", unitPrice: models.MaxUnitPrice + 1, quantity: 1},
		{name: "quantity above bound", unitPrice: 100, quantity: models.MaxQuantity + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.AddCustomItem(ctx, connect.NewRequest(&api.AddCustomItemRequest{
				SessionRef:  ref(sess.ID),
				Name:        "Wine",
				UnitPrice:   tt.unitPrice,
				Quantity:    tt.quantity,
				Attribution: orderedBy(1),
			}))
			assertCode(t, err, connect.CodeInvalidArgument)
		})
	}

	got, err := client.GetSession(ctx, connect.NewRequest(&api.GetSessionRequest{SessionRef: ref(sess.ID)}))
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if len(got.Msg.Session.Items) != 0 || got.Msg.Session.Total != 0 {
		t.Errorf("rejected items reached the ledger: %+v", got.Msg.Session)
	}
}

func TestUpdateQuantity_And_RemoveItem(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	sess := createSession(t, client, "Alice", "Bob")
	added, err := client.AddItem(ctx, connect.NewRequest(&api.AddItemRequest{
		SessionRef:  ref(sess.ID),
		CatalogID:   "4",
		Quantity:    2,
		Attribution: orderedBy(2),
	}))
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	itemID := added.Msg.Item.ID

	updated, err := client.UpdateQuantity(ctx, connect.NewRequest(&api.UpdateQuantityRequest{
		SessionRef: ref(sess.ID), LineItemID: itemID, Delta: 3,
	}))
	if err != nil {
		t.Fatalf("UpdateQuantity failed: %v", err)
	}
	if updated.Msg.Session.Items[0].Quantity != 5 || updated.Msg.Session.Total != 1500 {
		t.Errorf("after +3: %+v", updated.Msg.Session)
	}

	updated, err = client.UpdateQuantity(ctx, connect.NewRequest(&api.UpdateQuantityRequest{
		SessionRef: ref(sess.ID), LineItemID: itemID, Delta: -5,
	}))
	if err != nil {
		t.Fatalf("UpdateQuantity failed: %v", err)
	}
	if len(updated.Msg.Session.Items) != 0 {
		t.Errorf("expected item to be removed at quantity 0, got %+v", updated.Msg.Session.Items)
	}

	_, err = client.UpdateQuantity(ctx, connect.NewRequest(&api.UpdateQuantityRequest{
		SessionRef: ref(sess.ID), LineItemID: itemID, Delta: 1,
	}))
	assertCode(t, err, connect.CodeNotFound)

	kept, err := client.AddItem(ctx, connect.NewRequest(&api.AddItemRequest{
		SessionRef: ref(sess.ID), CatalogID: "4", Attribution: orderedBy(1),
	}))
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	for _, delta := range []int{math.MaxInt, models.MaxQuantity} {
		_, err = client.UpdateQuantity(ctx, connect.NewRequest(&api.UpdateQuantityRequest{
			SessionRef: ref(sess.ID), LineItemID: kept.Msg.Item.ID, Delta: delta,
		}))
		assertCode(t, err, connect.CodeInvalidArgument)
	}
	got, err := client.GetSession(ctx, connect.NewRequest(&api.GetSessionRequest{SessionRef: ref(sess.ID)}))
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if len(got.Msg.Session.Items) != 1 || got.Msg.Session.Items[0].Quantity != 1 {
		t.Errorf("rejected increment changed the item: %+v", got.Msg.Session.Items)
	}

	if _, err := client.RemoveItem(ctx, connect.NewRequest(&api.RemoveItemRequest{
		SessionRef: ref(sess.ID), LineItemID: itemID,
	})); err != nil {
		t.Errorf("RemoveItem of a missing item should be a no-op, got %v", err)
	}
}

func TestCalculateSplit_MixedAttribution(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	sess := createSession(t, client, "A", "B", "C")
	if _, err := client.AddItem(ctx, connect.NewRequest(&api.AddItemRequest{
		SessionRef: ref(sess.ID), CatalogID: "1", Attribution: orderedBy(1),
	})); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	shared, err := client.AddCustomItem(ctx, connect.NewRequest(&api.AddCustomItemRequest{
		SessionRef: ref(sess.ID), Name: "Platter", UnitPrice: 900, Attribution: sharedBy(1, 2, 3),
	}))
	if err != nil {
		t.Fatalf("AddCustomItem failed: %v", err)
	}

	tests := []struct {
		policy     string
		want       []int64
		incomplete bool
	}{
		{policy: "equal", want: []int64{800, 800, 800}},
		{policy: "by_orderer", want: []int64{1500, 0, 0}, incomplete: true},
		{policy: "per_item", want: []int64{1800, 300, 300}},
	}
	for _, tt := range tests {
		t.Run(tt.policy, func(t *testing.T) {
			resp, err := client.CalculateSplit(ctx, connect.NewRequest(&api.CalculateSplitRequest{
				SessionRef: ref(sess.ID), Policy: tt.policy,
			}))
			if err != nil {
				t.Fatalf("CalculateSplit failed: %v", err)
			}
			b := resp.Msg.Breakdown
			if b.Total != 2400 {
				t.Errorf("expected total 2400, got %d", b.Total)
			}
			for i, share := range b.Shares {
				if share.AmountOwed != tt.want[i] {
					t.Errorf("%s owes %d, want %d", share.Member.Name, share.AmountOwed, tt.want[i])
				}
			}
			if b.Incomplete != tt.incomplete {
				t.Errorf("incomplete = %v, want %v", b.Incomplete, tt.incomplete)
			}
			if tt.incomplete && (len(b.Unresolved) != 1 || b.Unresolved[0] != shared.Msg.Item.ID) {
				t.Errorf("unresolved = %v, want [%s]", b.Unresolved, shared.Msg.Item.ID)
			}
		})
	}
}

func TestCalculateSplit_WithPayer(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	sess := createSession(t, client, "Alice", "Bob", "Charlie")
	if _, err := client.AddItem(ctx, connect.NewRequest(&api.AddItemRequest{
		SessionRef: ref(sess.ID), CatalogID: "3", Attribution: sharedBy(1, 2, 3), Quantity: 3,
	})); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	resp, err := client.CalculateSplit(ctx, connect.NewRequest(&api.CalculateSplitRequest{
		SessionRef: ref(sess.ID), Policy: "per_item", PayerID: 1,
	}))
	if err != nil {
		t.Fatalf("CalculateSplit failed: %v", err)
	}

	transfers := resp.Msg.Transfers
	if len(transfers) != 2 {
		t.Fatalf("expected 2 transfers, got %+v", transfers)
	}
	for _, tr := range transfers {
		if tr.To.ID != 1 || tr.Amount != 500 {
			t.Errorf("transfer = %+v, want 500 to Alice", tr)
		}
	}

	_, err = client.CalculateSplit(ctx, connect.NewRequest(&api.CalculateSplitRequest{
		SessionRef: ref(sess.ID), Policy: "per_item", PayerID: 7,
	}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = client.CalculateSplit(ctx, connect.NewRequest(&api.CalculateSplitRequest{
		SessionRef: ref(sess.ID), Policy: "random",
	}))
	assertCode(t, err, connect.CodeInvalidArgument)

	// A shared item is unresolved under by_orderer.
	_, err = client.CalculateSplit(ctx, connect.NewRequest(&api.CalculateSplitRequest{
		SessionRef: ref(sess.ID), Policy: "by_orderer", PayerID: 1,
	}))
	assertCode(t, err, connect.CodeFailedPrecondition)

	resp, err = client.CalculateSplit(ctx, connect.NewRequest(&api.CalculateSplitRequest{
		SessionRef: ref(sess.ID), Policy: "by_orderer",
	}))
	if err != nil {
		t.Fatalf("CalculateSplit without payer failed: %v", err)
	}
	if !resp.Msg.Breakdown.Incomplete || len(resp.Msg.Transfers) != 0 {
		t.Errorf("breakdown = %+v, transfers = %+v", resp.Msg.Breakdown, resp.Msg.Transfers)
	}
}

func TestRemoveMember(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	sess := createSession(t, client, "Alice", "Bob", "Charlie")
	if _, err := client.AddItem(ctx, connect.NewRequest(&api.AddItemRequest{
		SessionRef: ref(sess.ID), CatalogID: "2", Attribution: orderedBy(3),
	})); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	_, err := client.RemoveMember(ctx, connect.NewRequest(&api.RemoveMemberRequest{
		SessionRef: ref(sess.ID), MemberID: 3,
	}))
	assertCode(t, err, connect.CodeFailedPrecondition)

	_, err = client.RemoveMember(ctx, connect.NewRequest(&api.RemoveMemberRequest{
		SessionRef: ref(sess.ID), MemberID: 3, OwnedItems: api.OwnedItemsReassign,
	}))
	assertCode(t, err, connect.CodeInvalidArgument)

	resp, err := client.RemoveMember(ctx, connect.NewRequest(&api.RemoveMemberRequest{
		SessionRef: ref(sess.ID), MemberID: 3, OwnedItems: api.OwnedItemsReassign, ReassignTo: 2,
	}))
	if err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	if len(resp.Msg.Session.Members) != 2 {
		t.Errorf("expected 2 members, got %d", len(resp.Msg.Session.Members))
	}
	if got := resp.Msg.Session.Items[0].Attribution.OrdererID; got != 2 {
		t.Errorf("expected item reassigned to Bob, got orderer %d", got)
	}

	_, err = client.RemoveMember(ctx, connect.NewRequest(&api.RemoveMemberRequest{
		SessionRef: ref(sess.ID), MemberID: 1, OwnedItems: api.OwnedItemsDrop,
	}))
	assertCode(t, err, connect.CodeFailedPrecondition)
}

func TestAddMember_JoinsSharedItems(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	sess := createSession(t, client, "Alice", "Bob")
	if _, err := client.AddItem(ctx, connect.NewRequest(&api.AddItemRequest{
		SessionRef: ref(sess.ID), CatalogID: "3", Attribution: sharedBy(1, 2),
	})); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	resp, err := client.AddMember(ctx, connect.NewRequest(&api.AddMemberRequest{
		SessionRef: ref(sess.ID), Name: "Charlie", JoinSharedItems: true,
	}))
	if err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if resp.Msg.Member.ID != 3 {
		t.Errorf("expected member id 3, got %d", resp.Msg.Member.ID)
	}
	if ids := resp.Msg.Session.Items[0].Attribution.MemberIDs; len(ids) != 3 {
		t.Errorf("expected Charlie to join the shared item, got %v", ids)
	}

	_, err = client.AddMember(ctx, connect.NewRequest(&api.AddMemberRequest{SessionRef: ref(sess.ID), Name: "Bob"}))
	assertCode(t, err, connect.CodeAlreadyExists)

	_, err = client.AddMember(ctx, connect.NewRequest(&api.AddMemberRequest{SessionRef: ref(sess.ID)}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestReattributeOrderer_And_Toggle(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	sess := createSession(t, client, "Alice", "Bob")
	owned, err := client.AddItem(ctx, connect.NewRequest(&api.AddItemRequest{
		SessionRef: ref(sess.ID), CatalogID: "1", Attribution: orderedBy(1),
	}))
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	resp, err := client.ReattributeOrderer(ctx, connect.NewRequest(&api.ReattributeOrdererRequest{
		SessionRef: ref(sess.ID), LineItemID: owned.Msg.Item.ID, MemberID: 2,
	}))
	if err != nil {
		t.Fatalf("ReattributeOrderer failed: %v", err)
	}
	if resp.Msg.Session.Items[0].Attribution.OrdererID != 2 {
		t.Errorf("orderer = %d, want 2", resp.Msg.Session.Items[0].Attribution.OrdererID)
	}

	_, err = client.ToggleSharedMember(ctx, connect.NewRequest(&api.ToggleSharedMemberRequest{
		SessionRef: ref(sess.ID), LineItemID: owned.Msg.Item.ID, MemberID: 1,
	}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestFinalizeOrder(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	sess := createSession(t, client, "Alice", "Bob")

	_, err := client.FinalizeOrder(ctx, connect.NewRequest(&api.FinalizeOrderRequest{SessionRef: ref(sess.ID)}))
	assertCode(t, err, connect.CodeFailedPrecondition)

	if _, err := client.AddItem(ctx, connect.NewRequest(&api.AddItemRequest{
		SessionRef: ref(sess.ID), CatalogID: "1", Attribution: orderedBy(1),
	})); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	shared, err := client.AddItem(ctx, connect.NewRequest(&api.AddItemRequest{
		SessionRef: ref(sess.ID), CatalogID: "3", Attribution: sharedBy(),
	}))
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if len(shared.Msg.Session.Unresolved) != 1 {
		t.Errorf("expected 1 unresolved item, got %v", shared.Msg.Session.Unresolved)
	}

	_, err = client.FinalizeOrder(ctx, connect.NewRequest(&api.FinalizeOrderRequest{SessionRef: ref(sess.ID)}))
	assertCode(t, err, connect.CodeFailedPrecondition)

	if _, err := client.ToggleSharedMember(ctx, connect.NewRequest(&api.ToggleSharedMemberRequest{
		SessionRef: ref(sess.ID), LineItemID: shared.Msg.Item.ID, MemberID: 2,
	})); err != nil {
		t.Fatalf("ToggleSharedMember failed: %v", err)
	}

	finalized, err := client.FinalizeOrder(ctx, connect.NewRequest(&api.FinalizeOrderRequest{SessionRef: ref(sess.ID)}))
	if err != nil {
		t.Fatalf("FinalizeOrder failed: %v", err)
	}
	order := finalized.Msg.Order
	if order.Total != 2000 {
		t.Errorf("expected total 2000, got %d", order.Total)
	}
	var sum int64
	for _, item := range order.Items {
		sum += item.ExtendedPrice
	}
	if sum != order.Total {
		t.Errorf("order total %d does not match items %d", order.Total, sum)
	}

	got, err := client.GetOrder(ctx, connect.NewRequest(&api.GetOrderRequest{OrderID: order.ID}))
	if err != nil {
		t.Fatalf("GetOrder failed: %v", err)
	}
	if got.Msg.Order.Total != order.Total || len(got.Msg.Order.Items) != 2 || got.Msg.Order.SessionID != sess.ID {
		t.Errorf("archived order = %+v", got.Msg.Order)
	}

	// The archive outlives the session.
	if _, err := client.DeleteSession(ctx, connect.NewRequest(&api.DeleteSessionRequest{SessionRef: ref(sess.ID)})); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	_, err = client.GetSession(ctx, connect.NewRequest(&api.GetSessionRequest{SessionRef: ref(sess.ID)}))
	assertCode(t, err, connect.CodeNotFound)

	list, err := client.ListOrders(ctx, connect.NewRequest(&api.ListOrdersRequest{SessionRef: ref(sess.ID)}))
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if len(list.Msg.Orders) != 1 || list.Msg.Orders[0].ID != order.ID {
		t.Errorf("ListOrders = %+v", list.Msg.Orders)
	}
}

func TestGetOrder_Errors(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()

	tests := []struct {
		name    string
		orderID string
		code    connect.Code
	}{
		{name: "unknown order", orderID: id.NewOrderID(), code: connect.CodeNotFound},
		{name: "malformed id", orderID: "ord_missing", code: connect.CodeInvalidArgument},
		{name: "line item id", orderID: id.NewLineItemID(), code: connect.CodeInvalidArgument},
		{name: "empty id", orderID: "", code: connect.CodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.GetOrder(context.Background(), connect.NewRequest(&api.GetOrderRequest{OrderID: tt.orderID}))
			assertCode(t, err, tt.code)
		})
	}
}
