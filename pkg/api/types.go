// Package api defines the wire messages and Connect plumbing of the
// warikan.v1.SessionService RPC service.
package api

import "time"

// Attribution kinds on the wire.
const (
	AttributionOrderer = "orderer"
	AttributionShared  = "shared"
)

// Member removal policies on the wire.
const (
	OwnedItemsReject   = "reject"
	OwnedItemsDrop     = "drop"
	OwnedItemsReassign = "reassign"
)

// SessionRef is embedded by every request that targets a live session.
type SessionRef struct {
	SessionID string `json:"session_id" validate:"required"`
}

// GetSessionID returns the targeted session.
func (r SessionRef) GetSessionID() string { return r.SessionID }

type Member struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Attribution struct {
	Kind      string `json:"kind" validate:"required,oneof=orderer shared"`
	OrdererID int    `json:"orderer_id,omitempty"`
	MemberIDs []int  `json:"member_ids,omitempty"`
}

type LineItem struct {
	ID            string      `json:"id"`
	CatalogID     string      `json:"catalog_id,omitempty"`
	Name          string      `json:"name"`
	UnitPrice     int64       `json:"unit_price"`
	Quantity      int         `json:"quantity"`
	ExtendedPrice int64       `json:"extended_price"`
	Attribution   Attribution `json:"attribution"`
}

type MenuEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

// Session is a view of live session state.
type Session struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	Members   []Member   `json:"members"`
	Items     []LineItem `json:"items"`
	Total     int64      `json:"total"`

	// Unresolved lists items that nobody pays for yet. Finalizing fails while it is non-empty.
	Unresolved []string `json:"unresolved,omitempty"`
}

type Share struct {
	Member     Member   `json:"member"`
	Exact      string   `json:"exact"`
	AmountOwed int64    `json:"amount_owed"`
	ItemIDs    []string `json:"item_ids,omitempty"`
}

type Transfer struct {
	From   Member `json:"from"`
	To     Member `json:"to"`
	Amount int64  `json:"amount"`
}

type Breakdown struct {
	Policy       string   `json:"policy"`
	Total        int64    `json:"total"`
	Shares       []Share  `json:"shares"`
	RoundedTotal int64    `json:"rounded_total"`
	Discrepancy  int64    `json:"discrepancy"`
	Incomplete   bool     `json:"incomplete"`
	Unresolved   []string `json:"unresolved,omitempty"`
}

type Order struct {
	ID        string     `json:"id"`
	SessionID string     `json:"session_id"`
	Members   []Member   `json:"members"`
	Items     []LineItem `json:"items"`
	Total     int64      `json:"total"`
	Timestamp time.Time  `json:"timestamp"`
}

type CreateSessionRequest struct {
	// Names are the starting members. Blank names get a placeholder.
	Names []string `json:"names" validate:"dive,max=64"`
}

type CreateSessionResponse struct {
	Session Session `json:"session"`
}

type GetSessionRequest struct {
	SessionRef
}

type GetSessionResponse struct {
	Session Session `json:"session"`
}

type DeleteSessionRequest struct {
	SessionRef
}

type DeleteSessionResponse struct{}

type AddMemberRequest struct {
	SessionRef
	Name string `json:"name" validate:"max=64"`

	// JoinSharedItems adds the new member to every existing shared item.
	JoinSharedItems bool `json:"join_shared_items,omitempty"`
}

type AddMemberResponse struct {
	Member  Member  `json:"member"`
	Session Session `json:"session"`
}

type RemoveMemberRequest struct {
	SessionRef
	MemberID int `json:"member_id" validate:"required"`

	// OwnedItems decides what happens to items the member ordered alone.
	// Defaults to reject.
	OwnedItems string `json:"owned_items,omitempty" validate:"omitempty,oneof=reject drop reassign"`
	ReassignTo int    `json:"reassign_to,omitempty" validate:"required_if=OwnedItems reassign"`
}

type RemoveMemberResponse struct {
	Session Session `json:"session"`
}

type ListMenuRequest struct{}

type ListMenuResponse struct {
	Entries []MenuEntry `json:"entries"`
}

type AddItemRequest struct {
	SessionRef
	CatalogID string `json:"catalog_id" validate:"required"`

	// Quantity defaults to 1.
	Quantity    int         `json:"quantity,omitempty" validate:"min=0,max=9999"`
	Attribution Attribution `json:"attribution"`
}

type AddItemResponse struct {
	Item    LineItem `json:"item"`
	Session Session  `json:"session"`
}

type AddCustomItemRequest struct {
	SessionRef
	Name      string `json:"name" validate:"max=64"`
	UnitPrice int64  `json:"unit_price" validate:"max=1000000000"`

	// Quantity defaults to 1.
	Quantity    int         `json:"quantity,omitempty" validate:"min=0,max=9999"`
	Attribution Attribution `json:"attribution"`
}

type AddCustomItemResponse struct {
	Item    LineItem `json:"item"`
	Session Session  `json:"session"`
}

type UpdateQuantityRequest struct {
	SessionRef
	LineItemID string `json:"line_item_id" validate:"required"`
	Delta      int    `json:"delta" validate:"min=-9999,max=9999"`
}

type UpdateQuantityResponse struct {
	Session Session `json:"session"`
}

type RemoveItemRequest struct {
	SessionRef
	LineItemID string `json:"line_item_id" validate:"required"`
}

type RemoveItemResponse struct {
	Session Session `json:"session"`
}

type ToggleSharedMemberRequest struct {
	SessionRef
	LineItemID string `json:"line_item_id" validate:"required"`
	MemberID   int    `json:"member_id" validate:"required"`
}

type ToggleSharedMemberResponse struct {
	Session Session `json:"session"`
}

type ReattributeOrdererRequest struct {
	SessionRef
	LineItemID string `json:"line_item_id" validate:"required"`
	MemberID   int    `json:"member_id" validate:"required"`
}

type ReattributeOrdererResponse struct {
	Session Session `json:"session"`
}

type CalculateSplitRequest struct {
	SessionRef
	Policy string `json:"policy" validate:"required"`

	// PayerID, when set, names the member who paid the whole bill and
	// asks for the transfers that settle it.
	PayerID int `json:"payer_id,omitempty"`
}

type CalculateSplitResponse struct {
	Breakdown Breakdown  `json:"breakdown"`
	Transfers []Transfer `json:"transfers,omitempty"`
}

type FinalizeOrderRequest struct {
	SessionRef
}

type FinalizeOrderResponse struct {
	Order Order `json:"order"`
}

type GetOrderRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

type GetOrderResponse struct {
	Order Order `json:"order"`
}

type ListOrdersRequest struct {
	SessionRef
}

type ListOrdersResponse struct {
	Orders []Order `json:"orders"`
}
