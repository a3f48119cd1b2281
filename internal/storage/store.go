// Package storage provides abstractions for the order archive.
package storage

import (
	"context"

	"github.com/mmynk/warikan/internal/models"
)

// Store archives finalized orders.
// Orders are immutable once saved; there is no update operation.
type Store interface {
	// SaveOrder persists a finalized order. The order must already carry an ID.
	SaveOrder(ctx context.Context, order *models.Order) error

	// GetOrder retrieves an order by its ID.
	// Returns an error wrapping models.ErrOrderNotFound if it does not exist.
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)

	// ListOrdersBySession returns every order finalized from a session,
	// oldest first.
	ListOrdersBySession(ctx context.Context, sessionID string) ([]*models.Order, error)

	// Close releases any resources held by the store.
	Close() error
}
