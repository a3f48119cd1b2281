package sqlite

import "database/sql"

// schema holds the order archive tables.
// Members and items keep their position so an order reads back in the order it was written.
const schema = `
CREATE TABLE IF NOT EXISTS orders (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    total INTEGER NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS order_members (
    order_id TEXT NOT NULL,
    member_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (order_id, member_id),
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS order_items (
    order_id TEXT NOT NULL,
    id TEXT NOT NULL,
    catalog_id TEXT NOT NULL,
    name TEXT NOT NULL,
    unit_price INTEGER NOT NULL,
    quantity INTEGER NOT NULL,
    attribution TEXT NOT NULL,
    orderer INTEGER NOT NULL DEFAULT 0,
    position INTEGER NOT NULL,
    PRIMARY KEY (order_id, id),
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS order_item_shares (
    order_id TEXT NOT NULL,
    item_id TEXT NOT NULL,
    member_id INTEGER NOT NULL,
    PRIMARY KEY (order_id, item_id, member_id),
    FOREIGN KEY (order_id, item_id) REFERENCES order_items(order_id, id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_orders_session_id ON orders(session_id);
CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
CREATE INDEX IF NOT EXISTS idx_order_item_shares_order_id ON order_item_shares(order_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
