package models

// MenuEntry is a read-only catalog item that line items are created from.
type MenuEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	UnitPrice   int64  `json:"price"`
	Description string `json:"description"`
	Image       string `json:"image"`
}
