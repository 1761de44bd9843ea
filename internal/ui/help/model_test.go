package help

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/studentpro/internal/keys"
	"github.com/nhle/studentpro/internal/session"
)

func TestViewListsScreenKeys(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 160, 40)

	m.SetRoute(session.RouteTasks)
	out := m.View()
	assert.Contains(t, out, "Keyboard Shortcuts")
	assert.Contains(t, out, "new task")
	assert.Contains(t, out, "Commands:")
	assert.NotContains(t, out, "login/register")

	m.SetRoute(session.RouteLogin)
	out = m.View()
	assert.Contains(t, out, "login/register")
	assert.NotContains(t, out, "new task")
	assert.NotContains(t, out, "Commands:")
}
