// Package league resolves roster identifiers to human display names
// and maps franchise labels to the account aliases they have used over
// the years.
package league

import (
	"fmt"
	"sort"

	"github.com/praveen-a14/fantasy-trade-analyzer/internal/model"
)

// Directory joins one league-year's rosters and users for name lookup.
// Roster ids are only meaningful within the year the directory was
// built from.
type Directory struct {
	owners map[int]string
	names  map[string]string
}

// NewDirectory indexes rosters and users for one league-year.
func NewDirectory(rosters []model.Roster, users []model.User) *Directory {
	d := &Directory{
		owners: make(map[int]string, len(rosters)),
		names:  make(map[string]string, len(users)),
	}
	for _, r := range rosters {
		d.owners[r.RosterID] = r.OwnerID
	}
	for _, u := range users {
		if u.DisplayName != "" {
			d.names[u.UserID] = u.DisplayName
		}
	}
	return d
}

// OwnerID returns the owner account behind a roster.
func (d *Directory) OwnerID(rosterID int) (string, bool) {
	owner, ok := d.owners[rosterID]
	return owner, ok
}

// OwnerName returns the display name for an owner account, or the
// "Unknown User" placeholder when the account has no display name.
// Missing profile data never aborts log generation.
func (d *Directory) OwnerName(ownerID string) string {
	if name, ok := d.names[ownerID]; ok {
		return name
	}
	return fmt.Sprintf("Unknown User (%s)", ownerID)
}

// DisplayName resolves a roster id all the way to a display name. It
// is total: an unknown roster id yields a placeholder naming the
// roster id, a known roster with an unnamed owner yields one naming
// the owner id.
func (d *Directory) DisplayName(rosterID int) string {
	owner, ok := d.owners[rosterID]
	if !ok {
		return fmt.Sprintf("Unknown User (%d)", rosterID)
	}
	return d.OwnerName(owner)
}

// Franchises maps a stable franchise label to the historical account
// display names it has gone by. Team identity is stable even though
// account names changed over time.
type Franchises map[string][]string

// Labels returns the franchise labels in sorted order, for menus.
func (f Franchises) Labels() []string {
	labels := make([]string, 0, len(f))
	for label := range f {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Known reports whether a franchise label exists.
func (f Franchises) Known(label string) bool {
	_, ok := f[label]
	return ok
}

// Involved reports whether any of the franchise's aliases appears in
// the given display names.
func (f Franchises) Involved(label string, displayNames []string) bool {
	for _, alias := range f[label] {
		for _, name := range displayNames {
			if alias == name {
				return true
			}
		}
	}
	return false
}
