package app

import (
	"context"
	"net/http"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/studentpro/internal/identity"
	"github.com/nhle/studentpro/internal/mockapi"
	"github.com/nhle/studentpro/internal/session"
	"github.com/nhle/studentpro/internal/ui/command"
	"github.com/nhle/studentpro/internal/view"
	"github.com/nhle/studentpro/tests/testutil"
)

const modulePath = "github.com/nhle/studentpro"

type harness struct {
	t       *testing.T
	srv     *mockapi.Server
	manager *session.Manager
	model   Model
}

func newHarness(t *testing.T, signedIn bool) *harness {
	t.Helper()

	srv, client := testutil.NewTestBackend(t)
	manager := session.NewManager(identity.NewMemoryStore(), client)
	if signedIn {
		_, err := manager.Register(context.Background(), session.RegisterInput{
			Name: "Ada", Email: "ada@example.com", Password: "secret1", Confirm: "secret1",
		})
		require.NoError(t, err)
	}

	h := &harness{t: t, srv: srv, manager: manager, model: New(manager, client, "")}
	h.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	h.run(h.model.Init())
	return h
}

// send feeds msg to the model and runs the resulting commands.
func (h *harness) send(msg tea.Msg) {
	h.t.Helper()
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	h.run(cmd)
}

// run executes cmd and feeds back every message defined in this module.
// Timer and cursor messages from the UI libraries are dropped.
func (h *harness) run(cmd tea.Cmd) {
	h.t.Helper()
	for _, msg := range execute(cmd) {
		if !ownMessage(msg) {
			continue
		}
		h.send(msg)
	}
}

func ownMessage(msg tea.Msg) bool {
	if msg == nil {
		return false
	}
	t := reflect.TypeOf(msg)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return strings.HasPrefix(t.PkgPath(), modulePath)
}

// execute runs cmd, expanding batches, and returns the messages produced
// within a short deadline.
func execute(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(2 * time.Second):
		return nil
	}

	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}

	results := make([]chan []tea.Msg, len(batch))
	for i, c := range batch {
		results[i] = make(chan []tea.Msg, 1)
		go func(c tea.Cmd, out chan []tea.Msg) { out <- execute(c) }(c, results[i])
	}
	var out []tea.Msg
	for _, r := range results {
		out = append(out, <-r...)
	}
	return out
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSignedOutStartsOnLogin(t *testing.T) {
	h := newHarness(t, false)

	assert.Equal(t, session.RouteLogin, h.model.Route())

	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	assert.Equal(t, session.RouteLogin, h.model.Route(), "number keys go to the form")

	h.send(command.CommandMsg("tasks"))
	assert.Equal(t, session.RouteLogin, h.model.Route(), "guard blocks protected routes")
	assert.Zero(t, h.srv.RouteRequests(mockapi.RouteListTasks))
}

func TestSignedInStartsOnDashboard(t *testing.T) {
	h := newHarness(t, true)

	assert.Equal(t, session.RouteDashboard, h.model.Route())
	assert.Equal(t, view.StatusLoaded, h.model.dashboardView.Status())
	assert.Equal(t, "Ada", h.model.headerRight())

	h.send(command.CommandMsg("login"))
	assert.Equal(t, session.RouteDashboard, h.model.Route(), "signed-in users skip login")
}

func TestNavigateAndAddTask(t *testing.T) {
	h := newHarness(t, true)

	h.send(keyPress("2"))
	require.Equal(t, session.RouteTasks, h.model.Route())
	require.Equal(t, view.StatusLoaded, h.model.tasksView.Status())

	h.send(keyPress("n"))
	assert.True(t, h.model.capturesInput())
	h.send(keyPress("Write essay"))
	h.send(keyPress("enter"))

	tasks := h.model.tasksView.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Write essay", tasks[0].Title)
	assert.False(t, tasks[0].Completed)
	assert.Equal(t, "task added", h.model.StatusText())

	h.send(keyPress("x"))
	assert.True(t, h.model.tasksView.Tasks()[0].Completed)

	h.send(keyPress("d"))
	assert.Empty(t, h.model.tasksView.Tasks())
}

func TestLogoutKey(t *testing.T) {
	h := newHarness(t, true)

	h.send(keyPress("3"))
	require.Equal(t, session.RoutePractice, h.model.Route())

	h.send(keyPress("L"))
	assert.Equal(t, session.RouteLogin, h.model.Route())
	assert.False(t, h.manager.IsAuthenticated(context.Background()))
	assert.Equal(t, "Signed out", h.model.StatusText())
}

func TestProfileFailureRedirectsToLogin(t *testing.T) {
	h := newHarness(t, true)
	h.srv.Fail(mockapi.RouteProfile, http.StatusNotFound)

	h.send(keyPress("4"))
	assert.Equal(t, session.RouteLogin, h.model.Route())
	assert.False(t, h.manager.IsAuthenticated(context.Background()))
}

func TestOverlays(t *testing.T) {
	h := newHarness(t, true)

	h.send(keyPress("?"))
	assert.Equal(t, OverlayHelp, h.model.Overlay())
	h.send(keyPress("esc"))
	assert.Equal(t, OverlayNone, h.model.Overlay())

	h.send(keyPress(":"))
	assert.Equal(t, OverlayCommand, h.model.Overlay())
	h.send(keyPress("storage"))
	h.send(keyPress("enter"))
	assert.Equal(t, OverlayNone, h.model.Overlay())
	assert.Equal(t, session.RouteStorage, h.model.Route())

	h.send(command.CommandMsg("bogus"))
	assert.Equal(t, "unknown command: bogus", h.model.StatusText())
}

func TestViewRenders(t *testing.T) {
	h := newHarness(t, true)

	out := h.model.View()
	assert.Contains(t, out, "StudentPro")
	assert.Contains(t, out, "Daily Tasks")
}
