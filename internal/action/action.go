// Package action defines the catalog of request-handling actions served by the API.
//
// Every action carries a qualified name of the form "Actions.<Group>.<Leaf>". Actions
// that must be authorized implement PrivilegeGated, which gives them the
// RequirePrivilegeTrait marker inspected by privilege discovery.
package action

import (
	"regexp"
	"slices"

	"github.com/gin-gonic/gin"
)

// Namespace is the first segment of every qualified action name.
const Namespace = "Actions"

// Marker is a capability marker declared by an action.
type Marker string

// RequirePrivilege marks an action that needs a matching privilege to run. Markers
// are compared by exact name.
const RequirePrivilege Marker = "RequirePrivilegeTrait"

// namePattern accepts exactly three segments with alphabetic (or space) group and leaf.
var namePattern = regexp.MustCompile(`^Actions\.([A-Za-z ]+)\.([A-Za-z ]+)$`)

// Handler is a single HTTP action.
type Handler interface {
	// Name returns the qualified action name, e.g. "Actions.Roles.Create".
	Name() string
	Method() string
	Path() string
	Handle(c *gin.Context)
}

// PrivilegeGated is implemented by handlers that require the caller to hold the
// privilege derived from their qualified name.
type PrivilegeGated interface {
	Handler
	RequiresPrivilege()
}

// Marked is implemented by handlers that declare markers explicitly.
type Marked interface {
	Markers() []Marker
}

// ID is the group and leaf of a qualified action name.
type ID struct {
	Group string
	Leaf  string
}

// String returns the qualified name for the ID.
func (id ID) String() string {
	return QualifiedName(id.Group, id.Leaf)
}

// QualifiedName builds "Actions.<group>.<leaf>".
func QualifiedName(group, leaf string) string {
	return Namespace + "." + group + "." + leaf
}

// ParseName splits a qualified name into its group and leaf. It reports false
// for names outside the Actions namespace, names with missing or nested
// segments, and segments holding anything other than letters and spaces.
func ParseName(name string) (ID, bool) {
	m := namePattern.FindStringSubmatch(name)
	if m == nil {
		return ID{}, false
	}
	return ID{Group: m[1], Leaf: m[2]}, true
}

// Info is the inspected description of a registered handler.
type Info struct {
	Name    string
	Markers []Marker
}

// Has reports whether the handler declares marker.
func (i Info) Has(marker Marker) bool {
	return slices.Contains(i.Markers, marker)
}

// MarkersOf returns the markers carried by h through its type.
func MarkersOf(h Handler) []Marker {
	var markers []Marker
	if _, ok := h.(PrivilegeGated); ok {
		markers = append(markers, RequirePrivilege)
	}
	if m, ok := h.(Marked); ok {
		for _, marker := range m.Markers() {
			if !slices.Contains(markers, marker) {
				markers = append(markers, marker)
			}
		}
	}
	return markers
}

// funcHandler adapts a gin.HandlerFunc to Handler.
type funcHandler struct {
	name   string
	method string
	path   string
	fn     gin.HandlerFunc
}

func (h *funcHandler) Name() string          { return h.name }
func (h *funcHandler) Method() string        { return h.method }
func (h *funcHandler) Path() string          { return h.path }
func (h *funcHandler) Handle(c *gin.Context) { h.fn(c) }

// gatedHandler is a funcHandler that requires a privilege.
type gatedHandler struct {
	funcHandler
}

func (h *gatedHandler) RequiresPrivilege() {}

// New returns an ungated action.
func New(name, method, path string, fn gin.HandlerFunc) Handler {
	return &funcHandler{name: name, method: method, path: path, fn: fn}
}

// NewGated returns an action carrying the RequirePrivilege marker.
func NewGated(name, method, path string, fn gin.HandlerFunc) Handler {
	return &gatedHandler{funcHandler{name: name, method: method, path: path, fn: fn}}
}
