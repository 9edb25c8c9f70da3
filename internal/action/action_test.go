package action

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func noop(c *gin.Context) {}

type markedHandler struct {
	Handler
	markers []Marker
}

func (m *markedHandler) Markers() []Marker { return m.markers }

type gatedMarkedHandler struct {
	gatedHandler
	markers []Marker
}

func (m *gatedMarkedHandler) Markers() []Marker { return m.markers }

func TestParseName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ID
		ok       bool
	}{
		{"ThreeSegments", "Actions.Rooms.Create", ID{Group: "Rooms", Leaf: "Create"}, true},
		{"SpacesAllowed", "Actions.Recording Servers.Add Server", ID{"Recording Servers", "Add Server"}, true},
		{"NestedSegment", "Actions.Rooms.Sub.Create", ID{}, false},
		{"OtherNamespace", "OtherNamespace.Rooms.Create", ID{}, false},
		{"MissingLeaf", "Actions.Rooms", ID{}, false},
		{"EmptyLeaf", "Actions.Rooms.", ID{}, false},
		{"Digits", "Actions.Rooms2.Create", ID{}, false},
		{"Underscore", "Actions.Rooms.Create_All", ID{}, false},
		{"LeadingText", "xActions.Rooms.Create", ID{}, false},
		{"Empty", "", ID{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ParseName(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, id)
		})
	}
}

func TestQualifiedName(t *testing.T) {
	assert.Equal(t, "Actions.Roles.Create", QualifiedName("Roles", "Create"))
	assert.Equal(t, "Actions.Users.Get", ID{Group: "Users", Leaf: "Get"}.String())
}

func TestMarkersOf(t *testing.T) {
	t.Run("Ungated", func(t *testing.T) {
		h := New("Actions.Auth.Token", http.MethodPost, "/v1/token", noop)
		assert.Empty(t, MarkersOf(h))
	})

	t.Run("Gated", func(t *testing.T) {
		h := NewGated("Actions.Roles.Create", http.MethodPost, "/v1/roles", noop)
		assert.Equal(t, []Marker{RequirePrivilege}, MarkersOf(h))
	})

	t.Run("ExplicitMarkers", func(t *testing.T) {
		h := &markedHandler{
			Handler: New("Actions.Rooms.Create", http.MethodPost, "/v1/rooms", noop),
			markers: []Marker{"Audited", RequirePrivilege},
		}
		assert.Equal(t, []Marker{"Audited", RequirePrivilege}, MarkersOf(h))
	})

	t.Run("GatedAndMarkedNoDuplicates", func(t *testing.T) {
		h := &gatedMarkedHandler{
			gatedHandler: gatedHandler{funcHandler{name: "Actions.Rooms.Create", fn: noop}},
			markers:      []Marker{"Audited", RequirePrivilege},
		}
		assert.Equal(t, []Marker{RequirePrivilege, "Audited"}, MarkersOf(h))
	})

	t.Run("EmbeddedInterfaceHidesGate", func(t *testing.T) {
		h := &markedHandler{Handler: NewGated("Actions.Rooms.Create", http.MethodPost, "/v1/rooms", noop)}
		assert.Empty(t, MarkersOf(h))
	})
}

func TestInfo_Has(t *testing.T) {
	info := Info{Name: "Actions.Rooms.Create", Markers: []Marker{RequirePrivilege}}

	assert.True(t, info.Has(RequirePrivilege))
	assert.False(t, info.Has("Audited"))
	assert.False(t, Info{}.Has(RequirePrivilege))
}

func TestRequirePrivilege_MarkerName(t *testing.T) {
	assert.Equal(t, Marker("RequirePrivilegeTrait"), RequirePrivilege)
	assert.False(t, Info{Markers: []Marker{"RequirePrivilege"}}.Has(RequirePrivilege))
	assert.False(t, Info{Markers: []Marker{"RequirePrivilegeTraits"}}.Has(RequirePrivilege))
}

func TestNew(t *testing.T) {
	gin.SetMode(gin.TestMode)

	called := false
	h := New("Actions.Auth.Token", http.MethodPost, "/v1/token", func(c *gin.Context) { called = true })

	assert.Equal(t, "Actions.Auth.Token", h.Name())
	assert.Equal(t, http.MethodPost, h.Method())
	assert.Equal(t, "/v1/token", h.Path())

	h.Handle(&gin.Context{})
	assert.True(t, called)

	_, gated := h.(PrivilegeGated)
	assert.False(t, gated)

	_, gated = NewGated("Actions.Roles.List", http.MethodGet, "/v1/roles", noop).(PrivilegeGated)
	assert.True(t, gated)
}
