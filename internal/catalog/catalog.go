// Package catalog provides the read-only menu that line items are created from.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mmynk/warikan/internal/models"
)

// Catalog is an immutable, ordered menu.
type Catalog struct {
	entries []models.MenuEntry
	byID    map[string]int
}

// Default returns the built-in menu.
func Default() *Catalog {
	c, err := New([]models.MenuEntry{
		{ID: "1", Name: "Margherita Pizza", UnitPrice: 1500, Description: "Tomato, mozzarella and basil", Image: "pizza.jpg"},
		{ID: "2", Name: "Caesar Salad", UnitPrice: 800, Description: "Romaine, parmesan and croutons", Image: "salad.jpg"},
		{ID: "3", Name: "French Fries", UnitPrice: 500, Description: "Crispy fries with sea salt", Image: "fries.jpg"},
		{ID: "4", Name: "Soda", UnitPrice: 300, Description: "Choice of cola or lemon", Image: "soda.jpg"},
	})
	if err != nil {
		panic(err)
	}
	return c
}

// New builds a catalog from entries. IDs must be unique and non-empty,
// names non-empty and prices positive.
func New(entries []models.MenuEntry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]models.MenuEntry, 0, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		switch {
		case e.ID == "":
			return nil, fmt.Errorf("catalog entry %q has no id", e.Name)
		case e.Name == "":
			return nil, fmt.Errorf("catalog entry %s: %w", e.ID, models.ErrEmptyName)
		case e.UnitPrice <= 0:
			return nil, fmt.Errorf("catalog entry %s: price must be positive, got %d", e.ID, e.UnitPrice)
		case e.UnitPrice > models.MaxUnitPrice:
			return nil, fmt.Errorf("catalog entry %s: price %d exceeds %d", e.ID, e.UnitPrice, models.MaxUnitPrice)
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("catalog entry %s is listed twice", e.ID)
		}
		c.byID[e.ID] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c, nil
}

// Load reads a JSON array of menu entries from path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var entries []models.MenuEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return New(entries)
}

// Entries returns a copy of the menu in declaration order.
func (c *Catalog) Entries() []models.MenuEntry {
	out := make([]models.MenuEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Get looks up an entry by ID.
func (c *Catalog) Get(id string) (models.MenuEntry, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.MenuEntry{}, fmt.Errorf("%w: %s", models.ErrCatalogEntryNotFound, id)
	}
	return c.entries[i], nil
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.entries) }
