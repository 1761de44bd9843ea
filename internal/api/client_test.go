package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/studentpro/internal/api"
	"github.com/nhle/studentpro/internal/mockapi"
	"github.com/nhle/studentpro/internal/model"
	"github.com/nhle/studentpro/tests/testutil"
)

func TestClientHeaders(t *testing.T) {
	var got http.Header
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	c := api.NewClient(ts.URL + "/")
	assert.Equal(t, ts.URL, c.BaseURL())

	require.NoError(t, c.Delete(context.Background(), "/tasks/abc", nil))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.NotEmpty(t, got.Get(api.RequestIDHeader))
}

func TestListNormalizesNonArrayBodies(t *testing.T) {
	bodies := map[string]string{
		"/tasks/u1":              `{"tasks":[]}`,
		"/practice/platforms/u1": `null`,
		"/storage/u1":            ``,
	}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(bodies[r.URL.Path]))
	}))
	defer ts.Close()

	c := api.NewClient(ts.URL)
	ctx := context.Background()

	tasks, err := c.ListTasks(ctx, "u1")
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)

	links, err := c.ListPlatforms(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, links)

	files, err := c.ListFiles(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestAuthResultNumericUserID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"userId":42}`))
	}))
	defer ts.Close()

	res, err := api.NewClient(ts.URL).Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "42", res.UserID)
	assert.Empty(t, res.Token)
}

func TestContextCancel(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := api.NewClient(ts.URL).ListTasks(ctx, "u1")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEndpointsAgainstMockBackend(t *testing.T) {
	srv, c := testutil.NewTestBackend(t)
	ctx := context.Background()

	userID := testutil.RegisterUser(t, c, "Ada", "ada@example.com", "secret1")

	login, err := c.Login(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, userID, login.UserID)
	assert.NotEmpty(t, login.Token)

	_, err = c.Login(ctx, "ada@example.com", "bad")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, api.StatusCode(err))
	assert.Equal(t, "Invalid email or password", api.ErrorMessage(err, "fallback"))

	due := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	created, err := c.CreateTask(ctx, userID, api.NewTask{Title: "Essay", CreatedAt: time.Now(), DueDateTime: &due})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	require.NotNil(t, created.DueDateTime)
	assert.True(t, created.DueDateTime.Equal(due))

	updated, err := c.UpdateTask(ctx, created.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Completed)

	tasks, err := c.ListTasks(ctx, userID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, created.ID, tasks[0].ID)

	profile, err := c.GetUserProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.Name)
	assert.Equal(t, 1, profile.TasksCompleted)

	require.NoError(t, c.DeleteTask(ctx, created.ID))
	err = c.DeleteTask(ctx, created.ID)
	assert.Equal(t, http.StatusNotFound, api.StatusCode(err))

	srv.AddFile(userID, model.StorageFile{Name: "notes.pdf", Type: "application/pdf", Size: 2048})
	files, err := c.ListFiles(ctx, userID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, int64(2048), files[0].Size)

	srv.Fail(mockapi.RoutePlatforms, http.StatusServiceUnavailable)
	_, err = c.ListPlatforms(ctx, userID)
	assert.Equal(t, http.StatusServiceUnavailable, api.StatusCode(err))
}
