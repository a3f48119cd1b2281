package session

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mmynk/warikan/internal/models"
)

// MinMembers is the smallest membership a session may have.
const MinMembers = 2

// Registry is the canonical member list of a session.
// It is not safe for concurrent use; Session serializes access.
type Registry struct {
	members []models.Member
	nextID  int
}

// NewRegistry builds the initial member list.
// Blank names are replaced by a positional placeholder ("Participant3" for
// the third entry); duplicates left after trimming and filling are rejected.
func NewRegistry(names []string) (*Registry, error) {
	if len(names) < MinMembers {
		return nil, fmt.Errorf("%w: need at least %d members, got %d", models.ErrBelowMinimum, MinMembers, len(names))
	}

	r := &Registry{nextID: 1}
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			name = placeholderName(i + 1)
		}
		if _, err := r.Add(name); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func placeholderName(position int) string {
	return fmt.Sprintf("Participant%d", position)
}

// Add appends a member with the trimmed name.
func (r *Registry) Add(name string) (models.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Member{}, models.ErrEmptyName
	}
	for _, m := range r.members {
		if m.Name == name {
			return models.Member{}, fmt.Errorf("%w: %q", models.ErrDuplicateName, name)
		}
	}

	m := models.Member{ID: r.nextID, Name: name}
	r.nextID++
	r.members = append(r.members, m)
	return m, nil
}

// Members returns a copy of the member list in insertion order.
func (r *Registry) Members() []models.Member {
	return slices.Clone(r.members)
}

// Len returns the number of current members.
func (r *Registry) Len() int { return len(r.members) }

// Get looks up a member by ID.
func (r *Registry) Get(id int) (models.Member, bool) {
	for _, m := range r.members {
		if m.ID == id {
			return m, true
		}
	}
	return models.Member{}, false
}

// checkRemovable reports why id cannot be removed, if anything.
func (r *Registry) checkRemovable(id int) error {
	if _, ok := r.Get(id); !ok {
		return fmt.Errorf("%w: %d", models.ErrMemberNotFound, id)
	}
	if len(r.members)-1 < MinMembers {
		return fmt.Errorf("%w: at least %d members required", models.ErrBelowMinimum, MinMembers)
	}
	return nil
}

func (r *Registry) remove(id int) {
	r.members = slices.DeleteFunc(r.members, func(m models.Member) bool { return m.ID == id })
}
