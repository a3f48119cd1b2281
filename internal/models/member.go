package models

// Member is one participant of a shared order.
type Member struct {
	// ID is stable for the lifetime of the session and never reused.
	ID int

	// Name is trimmed, non-empty and unique among current members.
	Name string
}
