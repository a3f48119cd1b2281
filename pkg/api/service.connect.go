package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// SessionServiceName is the fully-qualified name of the SessionService service.
const SessionServiceName = "warikan.v1.SessionService"

// Fully-qualified procedure names, used as HTTP routes and in interceptors.
const (
	SessionServiceCreateSessionProcedure      = "/warikan.v1.SessionService/CreateSession"
	SessionServiceGetSessionProcedure         = "/warikan.v1.SessionService/GetSession"
	SessionServiceDeleteSessionProcedure      = "/warikan.v1.SessionService/DeleteSession"
	SessionServiceAddMemberProcedure          = "/warikan.v1.SessionService/AddMember"
	SessionServiceRemoveMemberProcedure       = "/warikan.v1.SessionService/RemoveMember"
	SessionServiceListMenuProcedure           = "/warikan.v1.SessionService/ListMenu"
	SessionServiceAddItemProcedure            = "/warikan.v1.SessionService/AddItem"
	SessionServiceAddCustomItemProcedure      = "/warikan.v1.SessionService/AddCustomItem"
	SessionServiceUpdateQuantityProcedure     = "/warikan.v1.SessionService/UpdateQuantity"
	SessionServiceRemoveItemProcedure         = "/warikan.v1.SessionService/RemoveItem"
	SessionServiceToggleSharedMemberProcedure = "/warikan.v1.SessionService/ToggleSharedMember"
	SessionServiceReattributeOrdererProcedure = "/warikan.v1.SessionService/ReattributeOrderer"
	SessionServiceCalculateSplitProcedure     = "/warikan.v1.SessionService/CalculateSplit"
	SessionServiceFinalizeOrderProcedure      = "/warikan.v1.SessionService/FinalizeOrder"
	SessionServiceGetOrderProcedure           = "/warikan.v1.SessionService/GetOrder"
	SessionServiceListOrdersProcedure         = "/warikan.v1.SessionService/ListOrders"
)

// SessionServiceHandler is implemented by the server.
type SessionServiceHandler interface {
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

// NewSessionServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
// Messages are encoded with JSONCodec.
func NewSessionServiceHandler(svc SessionServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)
	handlers := map[string]http.Handler{
		SessionServiceCreateSessionProcedure:      connect.NewUnaryHandler(SessionServiceCreateSessionProcedure, svc.CreateSession, opts...),
		SessionServiceGetSessionProcedure:         connect.NewUnaryHandler(SessionServiceGetSessionProcedure, svc.GetSession, opts...),
		SessionServiceDeleteSessionProcedure:      connect.NewUnaryHandler(SessionServiceDeleteSessionProcedure, svc.DeleteSession, opts...),
		SessionServiceAddMemberProcedure:          connect.NewUnaryHandler(SessionServiceAddMemberProcedure, svc.AddMember, opts...),
		SessionServiceRemoveMemberProcedure:       connect.NewUnaryHandler(SessionServiceRemoveMemberProcedure, svc.RemoveMember, opts...),
		SessionServiceListMenuProcedure:           connect.NewUnaryHandler(SessionServiceListMenuProcedure, svc.ListMenu, opts...),
		SessionServiceAddItemProcedure:            connect.NewUnaryHandler(SessionServiceAddItemProcedure, svc.AddItem, opts...),
		SessionServiceAddCustomItemProcedure:      connect.NewUnaryHandler(SessionServiceAddCustomItemProcedure, svc.AddCustomItem, opts...),
		SessionServiceUpdateQuantityProcedure:     connect.NewUnaryHandler(SessionServiceUpdateQuantityProcedure, svc.UpdateQuantity, opts...),
		SessionServiceRemoveItemProcedure:         connect.NewUnaryHandler(SessionServiceRemoveItemProcedure, svc.RemoveItem, opts...),
		SessionServiceToggleSharedMemberProcedure: connect.NewUnaryHandler(SessionServiceToggleSharedMemberProcedure, svc.ToggleSharedMember, opts...),
		SessionServiceReattributeOrdererProcedure: connect.NewUnaryHandler(SessionServiceReattributeOrdererProcedure, svc.ReattributeOrderer, opts...),
		SessionServiceCalculateSplitProcedure:     connect.NewUnaryHandler(SessionServiceCalculateSplitProcedure, svc.CalculateSplit, opts...),
		SessionServiceFinalizeOrderProcedure:      connect.NewUnaryHandler(SessionServiceFinalizeOrderProcedure, svc.FinalizeOrder, opts...),
		SessionServiceGetOrderProcedure:           connect.NewUnaryHandler(SessionServiceGetOrderProcedure, svc.GetOrder, opts...),
		SessionServiceListOrdersProcedure:         connect.NewUnaryHandler(SessionServiceListOrdersProcedure, svc.ListOrders, opts...),
	}
	return "/" + SessionServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// UnimplementedSessionServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedSessionServiceHandler struct{}

func unimplemented(procedure string) error {
	name := procedure[strings.LastIndex(procedure, "/")+1:]
	return connect.NewError(connect.CodeUnimplemented, fmt.Errorf("%s.%s is not implemented", SessionServiceName, name))
}

func (UnimplementedSessionServiceHandler) CreateSession(context.Context, *connect.Request[CreateSessionRequest]) (*connect.Response[CreateSessionResponse], error) {
	return nil, unimplemented(SessionServiceCreateSessionProcedure)
}

func (UnimplementedSessionServiceHandler) GetSession(context.Context, *connect.Request[GetSessionRequest]) (*connect.Response[GetSessionResponse], error) {
	return nil, unimplemented(SessionServiceGetSessionProcedure)
}

func (UnimplementedSessionServiceHandler) DeleteSession(context.Context, *connect.Request[DeleteSessionRequest]) (*connect.Response[DeleteSessionResponse], error) {
	return nil, unimplemented(SessionServiceDeleteSessionProcedure)
}

func (UnimplementedSessionServiceHandler) AddMember(context.Context, *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error) {
	return nil, unimplemented(SessionServiceAddMemberProcedure)
}

func (UnimplementedSessionServiceHandler) RemoveMember(context.Context, *connect.Request[RemoveMemberRequest]) (*connect.Response[RemoveMemberResponse], error) {
	return nil, unimplemented(SessionServiceRemoveMemberProcedure)
}

func (UnimplementedSessionServiceHandler) ListMenu(context.Context, *connect.Request[ListMenuRequest]) (*connect.Response[ListMenuResponse], error) {
	return nil, unimplemented(SessionServiceListMenuProcedure)
}

func (UnimplementedSessionServiceHandler) AddItem(context.Context, *connect.Request[AddItemRequest]) (*connect.Response[AddItemResponse], error) {
	return nil, unimplemented(SessionServiceAddItemProcedure)
}

func (UnimplementedSessionServiceHandler) AddCustomItem(context.Context, *connect.Request[AddCustomItemRequest]) (*connect.Response[AddCustomItemResponse], error) {
	return nil, unimplemented(SessionServiceAddCustomItemProcedure)
}

func (UnimplementedSessionServiceHandler) UpdateQuantity(context.Context, *connect.Request[UpdateQuantityRequest]) (*connect.Response[UpdateQuantityResponse], error) {
	return nil, unimplemented(SessionServiceUpdateQuantityProcedure)
}

func (UnimplementedSessionServiceHandler) RemoveItem(context.Context, *connect.Request[RemoveItemRequest]) (*connect.Response[RemoveItemResponse], error) {
	return nil, unimplemented(SessionServiceRemoveItemProcedure)
}

func (UnimplementedSessionServiceHandler) ToggleSharedMember(context.Context, *connect.Request[ToggleSharedMemberRequest]) (*connect.Response[ToggleSharedMemberResponse], error) {
	return nil, unimplemented(SessionServiceToggleSharedMemberProcedure)
}

func (UnimplementedSessionServiceHandler) ReattributeOrderer(context.Context, *connect.Request[ReattributeOrdererRequest]) (*connect.Response[ReattributeOrdererResponse], error) {
	return nil, unimplemented(SessionServiceReattributeOrdererProcedure)
}

func (UnimplementedSessionServiceHandler) CalculateSplit(context.Context, *connect.Request[CalculateSplitRequest]) (*connect.Response[CalculateSplitResponse], error) {
	return nil, unimplemented(SessionServiceCalculateSplitProcedure)
}

func (UnimplementedSessionServiceHandler) FinalizeOrder(context.Context, *connect.Request[FinalizeOrderRequest]) (*connect.Response[FinalizeOrderResponse], error) {
	return nil, unimplemented(SessionServiceFinalizeOrderProcedure)
}

func (UnimplementedSessionServiceHandler) GetOrder(context.Context, *connect.Request[GetOrderRequest]) (*connect.Response[GetOrderResponse], error) {
	return nil, unimplemented(SessionServiceGetOrderProcedure)
}

func (UnimplementedSessionServiceHandler) ListOrders(context.Context, *connect.Request[ListOrdersRequest]) (*connect.Response[ListOrdersResponse], error) {
	return nil, unimplemented(SessionServiceListOrdersProcedure)
}
