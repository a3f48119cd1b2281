// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/warikan/internal/models"
	"github.com/mmynk/warikan/internal/storage"
)

// MemoryPath opens a private in-memory database that lives as long as the store.
const MemoryPath = ":memory:"

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// For file paths it creates the parent directories. Migrations run automatically.
func New(dbPath string) (*SQLiteStore, error) {
	inMemory := isMemory(dbPath)
	if !inMemory {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to :memory: is a separate database.
	if inMemory {
		db.SetMaxOpenConns(1)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func isMemory(dbPath string) bool {
	return dbPath == MemoryPath || strings.HasPrefix(dbPath, "file::memory:")
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveOrder persists a finalized order with its members, items and co-payers.
func (s *SQLiteStore) SaveOrder(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		return errors.New("order has no id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO orders (id, session_id, total, created_at) VALUES (?, ?, ?, ?)",
		order.ID, order.SessionID, order.Total, order.Timestamp.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i, m := range order.Members {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO order_members (order_id, member_id, name, position) VALUES (?, ?, ?, ?)",
			order.ID, m.ID, m.Name, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert member: %w", err)
		}
	}

	for i, item := range order.Items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, id, catalog_id, name, unit_price, quantity, attribution, orderer, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			order.ID, item.ID, item.CatalogID, item.Name, item.UnitPrice, item.Quantity,
			item.Attribution.Kind.String(), item.Attribution.Orderer, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}

		for _, memberID := range item.Attribution.Shared {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO order_item_shares (order_id, item_id, member_id) VALUES (?, ?, ?)",
				order.ID, item.ID, memberID,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item share: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetOrder retrieves an order by ID, including all members and items.
func (s *SQLiteStore) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	order := &models.Order{}
	var createdAt int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id, session_id, total, created_at FROM orders WHERE id = ?",
		orderID,
	).Scan(&order.ID, &order.SessionID, &order.Total, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", models.ErrOrderNotFound, orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	order.Timestamp = time.Unix(0, createdAt).UTC()

	if order.Members, err = s.getMembers(ctx, orderID); err != nil {
		return nil, err
	}
	if order.Items, err = s.getItems(ctx, orderID); err != nil {
		return nil, err
	}

	return order, nil
}

// ListOrdersBySession returns the orders finalized from sessionID, oldest first.
func (s *SQLiteStore) ListOrdersBySession(ctx context.Context, sessionID string) ([]*models.Order, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM orders WHERE session_id = ? ORDER BY created_at, id",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan order id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	// Rows must be closed before the next query: an in-memory store has one connection.
	orders := make([]*models.Order, 0, len(ids))
	for _, id := range ids {
		order, err := s.GetOrder(ctx, id)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (s *SQLiteStore) getMembers(ctx context.Context, orderID string) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT member_id, name FROM order_members WHERE order_id = ? ORDER BY position",
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

func (s *SQLiteStore) getItems(ctx context.Context, orderID string) ([]models.LineItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, catalog_id, name, unit_price, quantity, attribution, orderer
		 FROM order_items WHERE order_id = ? ORDER BY position`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}

	var items []models.LineItem
	for rows.Next() {
		var (
			item models.LineItem
			kind string
		)
		if err := rows.Scan(&item.ID, &item.CatalogID, &item.Name, &item.UnitPrice, &item.Quantity, &kind, &item.Attribution.Orderer); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		if item.Attribution.Kind, err = parseKind(kind); err != nil {
			rows.Close()
			return nil, err
		}
		items = append(items, item)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	shares, err := s.getShares(ctx, orderID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Attribution.IsShared() {
			items[i].Attribution = models.SharedSet(shares[items[i].ID]...)
		}
	}
	return items, nil
}

// getShares returns the co-payers of every shared item of an order, keyed by item ID.
func (s *SQLiteStore) getShares(ctx context.Context, orderID string) (map[string][]int, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT item_id, member_id FROM order_item_shares WHERE order_id = ? ORDER BY item_id, member_id",
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get item shares: %w", err)
	}
	defer rows.Close()

	shares := make(map[string][]int)
	for rows.Next() {
		var (
			itemID   string
			memberID int
		)
		if err := rows.Scan(&itemID, &memberID); err != nil {
			return nil, fmt.Errorf("failed to scan item share: %w", err)
		}
		shares[itemID] = append(shares[itemID], memberID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate item shares: %w", err)
	}
	return shares, nil
}

func parseKind(s string) (models.AttributionKind, error) {
	switch s {
	case models.AttributionSingleOrderer.String():
		return models.AttributionSingleOrderer, nil
	case models.AttributionSharedSet.String():
		return models.AttributionSharedSet, nil
	default:
		return 0, fmt.Errorf("unknown attribution %q", s)
	}
}
