package api

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// SessionServiceClient is a client for the warikan.v1.SessionService service.
type SessionServiceClient interface {
	CreateSession(context.Context, *connect.Request[CreateSessionRequest]) (*connect.Response[CreateSessionResponse], error)
	GetSession(context.Context, *connect.Request[GetSessionRequest]) (*connect.Response[GetSessionResponse], error)
	DeleteSession(context.Context, *connect.Request[DeleteSessionRequest]) (*connect.Response[DeleteSessionResponse], error)
	AddMember(context.Context, *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error)
	RemoveMember(context.Context, *connect.Request[RemoveMemberRequest]) (*connect.Response[RemoveMemberResponse], error)
	ListMenu(context.Context, *connect.Request[ListMenuRequest]) (*connect.Response[ListMenuResponse], error)
	AddItem(context.Context, *connect.Request[AddItemRequest]) (*connect.Response[AddItemResponse], error)
	AddCustomItem(context.Context, *connect.Request[AddCustomItemRequest]) (*connect.Response[AddCustomItemResponse], error)
	UpdateQuantity(context.Context, *connect.Request[UpdateQuantityRequest]) (*connect.Response[UpdateQuantityResponse], error)
	RemoveItem(context.Context, *connect.Request[RemoveItemRequest]) (*connect.Response[RemoveItemResponse], error)
	ToggleSharedMember(context.Context, *connect.Request[ToggleSharedMemberRequest]) (*connect.Response[ToggleSharedMemberResponse], error)
	ReattributeOrderer(context.Context, *connect.Request[ReattributeOrdererRequest]) (*connect.Response[ReattributeOrdererResponse], error)
	CalculateSplit(context.Context, *connect.Request[CalculateSplitRequest]) (*connect.Response[CalculateSplitResponse], error)
	FinalizeOrder(context.Context, *connect.Request[FinalizeOrderRequest]) (*connect.Response[FinalizeOrderResponse], error)
	GetOrder(context.Context, *connect.Request[GetOrderRequest]) (*connect.Response[GetOrderResponse], error)
	ListOrders(context.Context, *connect.Request[ListOrdersRequest]) (*connect.Response[ListOrdersResponse], error)
}

// NewSessionServiceClient constructs a client for the warikan.v1.SessionService service.
// It speaks the Connect protocol with JSONCodec; opts may add interceptors or
// switch protocol.
//
// The URL supplied here should be the base URL for the Connect server
// (for example, http://api.acme.com or https://acme.com/grpc).
func NewSessionServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SessionServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return &sessionServiceClient{
		createSession:      connect.NewClient[CreateSessionRequest, CreateSessionResponse](httpClient, baseURL+SessionServiceCreateSessionProcedure, opts...),
		getSession:         connect.NewClient[GetSessionRequest, GetSessionResponse](httpClient, baseURL+SessionServiceGetSessionProcedure, opts...),
		deleteSession:      connect.NewClient[DeleteSessionRequest, DeleteSessionResponse](httpClient, baseURL+SessionServiceDeleteSessionProcedure, opts...),
		addMember:          connect.NewClient[AddMemberRequest, AddMemberResponse](httpClient, baseURL+SessionServiceAddMemberProcedure, opts...),
		removeMember:       connect.NewClient[RemoveMemberRequest, RemoveMemberResponse](httpClient, baseURL+SessionServiceRemoveMemberProcedure, opts...),
		listMenu:           connect.NewClient[ListMenuRequest, ListMenuResponse](httpClient, baseURL+SessionServiceListMenuProcedure, opts...),
		addItem:            connect.NewClient[AddItemRequest, AddItemResponse](httpClient, baseURL+SessionServiceAddItemProcedure, opts...),
		addCustomItem:      connect.NewClient[AddCustomItemRequest, AddCustomItemResponse](httpClient, baseURL+SessionServiceAddCustomItemProcedure, opts...),
		updateQuantity:     connect.NewClient[UpdateQuantityRequest, UpdateQuantityResponse](httpClient, baseURL+SessionServiceUpdateQuantityProcedure, opts...),
		removeItem:         connect.NewClient[RemoveItemRequest, RemoveItemResponse](httpClient, baseURL+SessionServiceRemoveItemProcedure, opts...),
		toggleSharedMember: connect.NewClient[ToggleSharedMemberRequest, ToggleSharedMemberResponse](httpClient, baseURL+SessionServiceToggleSharedMemberProcedure, opts...),
		reattributeOrderer: connect.NewClient[ReattributeOrdererRequest, ReattributeOrdererResponse](httpClient, baseURL+SessionServiceReattributeOrdererProcedure, opts...),
		calculateSplit:     connect.NewClient[CalculateSplitRequest, CalculateSplitResponse](httpClient, baseURL+SessionServiceCalculateSplitProcedure, opts...),
		finalizeOrder:      connect.NewClient[FinalizeOrderRequest, FinalizeOrderResponse](httpClient, baseURL+SessionServiceFinalizeOrderProcedure, opts...),
		getOrder:           connect.NewClient[GetOrderRequest, GetOrderResponse](httpClient, baseURL+SessionServiceGetOrderProcedure, opts...),
		listOrders:         connect.NewClient[ListOrdersRequest, ListOrdersResponse](httpClient, baseURL+SessionServiceListOrdersProcedure, opts...),
	}
}

type sessionServiceClient struct {
	createSession      *connect.Client[CreateSessionRequest, CreateSessionResponse]
	getSession         *connect.Client[GetSessionRequest, GetSessionResponse]
	deleteSession      *connect.Client[DeleteSessionRequest, DeleteSessionResponse]
	addMember          *connect.Client[AddMemberRequest, AddMemberResponse]
	removeMember       *connect.Client[RemoveMemberRequest, RemoveMemberResponse]
	listMenu           *connect.Client[ListMenuRequest, ListMenuResponse]
	addItem            *connect.Client[AddItemRequest, AddItemResponse]
	addCustomItem      *connect.Client[AddCustomItemRequest, AddCustomItemResponse]
	updateQuantity     *connect.Client[UpdateQuantityRequest, UpdateQuantityResponse]
	removeItem         *connect.Client[RemoveItemRequest, RemoveItemResponse]
	toggleSharedMember *connect.Client[ToggleSharedMemberRequest, ToggleSharedMemberResponse]
	reattributeOrderer *connect.Client[ReattributeOrdererRequest, ReattributeOrdererResponse]
	calculateSplit     *connect.Client[CalculateSplitRequest, CalculateSplitResponse]
	finalizeOrder      *connect.Client[FinalizeOrderRequest, FinalizeOrderResponse]
	getOrder           *connect.Client[GetOrderRequest, GetOrderResponse]
	listOrders         *connect.Client[ListOrdersRequest, ListOrdersResponse]
}

func (c *sessionServiceClient) CreateSession(ctx context.Context, req *connect.Request[CreateSessionRequest]) (*connect.Response[CreateSessionResponse], error) {
	return c.createSession.CallUnary(ctx, req)
}

func (c *sessionServiceClient) GetSession(ctx context.Context, req *connect.Request[GetSessionRequest]) (*connect.Response[GetSessionResponse], error) {
	return c.getSession.CallUnary(ctx, req)
}

func (c *sessionServiceClient) DeleteSession(ctx context.Context, req *connect.Request[DeleteSessionRequest]) (*connect.Response[DeleteSessionResponse], error) {
	return c.deleteSession.CallUnary(ctx, req)
}

func (c *sessionServiceClient) AddMember(ctx context.Context, req *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *sessionServiceClient) RemoveMember(ctx context.Context, req *connect.Request[RemoveMemberRequest]) (*connect.Response[RemoveMemberResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}

func (c *sessionServiceClient) ListMenu(ctx context.Context, req *connect.Request[ListMenuRequest]) (*connect.Response[ListMenuResponse], error) {
	return c.listMenu.CallUnary(ctx, req)
}

func (c *sessionServiceClient) AddItem(ctx context.Context, req *connect.Request[AddItemRequest]) (*connect.Response[AddItemResponse], error) {
	return c.addItem.CallUnary(ctx, req)
}

func (c *sessionServiceClient) AddCustomItem(ctx context.Context, req *connect.Request[AddCustomItemRequest]) (*connect.Response[AddCustomItemResponse], error) {
	return c.addCustomItem.CallUnary(ctx, req)
}

func (c *sessionServiceClient) UpdateQuantity(ctx context.Context, req *connect.Request[UpdateQuantityRequest]) (*connect.Response[UpdateQuantityResponse], error) {
	return c.updateQuantity.CallUnary(ctx, req)
}

func (c *sessionServiceClient) RemoveItem(ctx context.Context, req *connect.Request[RemoveItemRequest]) (*connect.Response[RemoveItemResponse], error) {
	return c.removeItem.CallUnary(ctx, req)
}

func (c *sessionServiceClient) ToggleSharedMember(ctx context.Context, req *connect.Request[ToggleSharedMemberRequest]) (*connect.Response[ToggleSharedMemberResponse], error) {
	return c.toggleSharedMember.CallUnary(ctx, req)
}

func (c *sessionServiceClient) ReattributeOrderer(ctx context.Context, req *connect.Request[ReattributeOrdererRequest]) (*connect.Response[ReattributeOrdererResponse], error) {
	return c.reattributeOrderer.CallUnary(ctx, req)
}

func (c *sessionServiceClient) CalculateSplit(ctx context.Context, req *connect.Request[CalculateSplitRequest]) (*connect.Response[CalculateSplitResponse], error) {
	return c.calculateSplit.CallUnary(ctx, req)
}

func (c *sessionServiceClient) FinalizeOrder(ctx context.Context, req *connect.Request[FinalizeOrderRequest]) (*connect.Response[FinalizeOrderResponse], error) {
	return c.finalizeOrder.CallUnary(ctx, req)
}

func (c *sessionServiceClient) GetOrder(ctx context.Context, req *connect.Request[GetOrderRequest]) (*connect.Response[GetOrderResponse], error) {
	return c.getOrder.CallUnary(ctx, req)
}

func (c *sessionServiceClient) ListOrders(ctx context.Context, req *connect.Request[ListOrdersRequest]) (*connect.Response[ListOrdersResponse], error) {
	return c.listOrders.CallUnary(ctx, req)
}
