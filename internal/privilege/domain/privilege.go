// Package domain defines the privilege descriptors produced by action discovery.
package domain

import (
	"github.com/allisson/hivelvet/internal/action"
	"github.com/allisson/hivelvet/internal/errors"
)

// Privilege grants access to one gated action. Group and Name are the group and
// leaf segments of the action's qualified name.
type Privilege struct {
	Group string `json:"group" yaml:"group"`
	Name  string `json:"name"  yaml:"name"`
}

// FromActionID converts a parsed action name into a Privilege.
func FromActionID(id action.ID) Privilege {
	return Privilege{Group: id.Group, Name: id.Leaf}
}

// String returns the qualified action name guarded by the privilege.
func (p Privilege) String() string {
	return action.QualifiedName(p.Group, p.Name)
}

// Registry is the ordered list of discovered privileges.
type Registry []Privilege

// Contains reports whether p is in the registry.
func (r Registry) Contains(p Privilege) bool {
	for _, candidate := range r {
		if candidate == p {
			return true
		}
	}
	return false
}

// Grouped returns the privilege names keyed by group, preserving discovery order
// inside each group.
func (r Registry) Grouped() map[string][]string {
	grouped := make(map[string][]string)
	for _, p := range r {
		grouped[p.Group] = append(grouped[p.Group], p.Name)
	}
	return grouped
}

// Clone returns a copy that shares no backing array with r.
func (r Registry) Clone() Registry {
	if r == nil {
		return nil
	}
	out := make(Registry, len(r))
	copy(out, r)
	return out
}

var (
	// ErrDiscovery indicates the action catalog could not be enumerated.
	ErrDiscovery = errors.Wrap(errors.ErrUnavailable, "privilege discovery failed")

	// ErrReflection indicates a handler vanished between enumeration and inspection.
	ErrReflection = errors.Wrap(errors.ErrNotFound, "action handler could not be inspected")
)
