// Package models defines the core domain models for warikan.
//
// # Models
//
//   - Member: a diner taking part in the shared order (integer id + display name)
//   - MenuEntry: read-only catalog reference data
//   - LineItem: one purchased item with quantity and attribution
//   - Attribution: who pays for a line item (one orderer or a set of co-payers)
//   - Order: immutable snapshot taken at checkout
//
// # Design Principles
//
// 1. **Derived values are methods**: ExtendedPrice is computed, never stored.
// Order.Total is the one exception, fixed once at checkout.
// 2. **IDs over pointers**: line items reference members by integer ID.
// 3. **Integer money**: prices are int64 amounts in the smallest currency unit
// (yen have no minor unit, so 1500 is ¥1500).
// 4. **Snapshots copy**: Clone methods return values sharing no slices with the
// receiver, so a finalized Order never observes later edits.
package models
