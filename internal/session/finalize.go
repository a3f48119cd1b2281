package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/warikan/internal/id"
	"github.com/mmynk/warikan/internal/models"
)

// Finalize turns the registry and ledger into an immutable Order.
//
// The ledger must be non-empty and every item must have at least one payer;
// otherwise ErrIncompleteOrder is returned and no Order is produced. The
// returned Order shares no memory with registry or ledger.
func Finalize(sessionID string, registry *Registry, ledger *Ledger, now time.Time) (*models.Order, error) {
	if ledger.Len() == 0 {
		return nil, fmt.Errorf("%w: ledger is empty", models.ErrIncompleteOrder)
	}
	if unresolved := ledger.Unresolved(); len(unresolved) > 0 {
		return nil, fmt.Errorf("%w: no payer for %s", models.ErrIncompleteOrder, strings.Join(unresolved, ", "))
	}

	items := ledger.Items()
	return &models.Order{
		ID:        id.NewOrderID(),
		SessionID: sessionID,
		Members:   registry.Members(),
		Items:     items,
		Total:     models.SumExtended(items),
		Timestamp: now.UTC(),
	}, nil
}
