package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/nhle/studentpro/internal/model"
)

// AuthResult is the body returned by /auth/login and /auth/register.
// Register may omit UserID when the backend does not sign the user in.
type AuthResult struct {
	UserID string `json:"userId"`
	Token  string `json:"token,omitempty"`
}

// UnmarshalJSON tolerates a numeric userId.
func (a *AuthResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		UserID json.RawMessage `json:"userId"`
		Token  string          `json:"token"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.Token = raw.Token
	a.UserID = ""
	if len(raw.UserID) == 0 || string(raw.UserID) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw.UserID, &s); err == nil {
		a.UserID = s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(raw.UserID, &n); err != nil {
		return fmt.Errorf("decoding userId: %w", err)
	}
	a.UserID = n.String()
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewTask is the creation payload for POST /tasks/{userId}.
type NewTask struct {
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	DueDateTime *time.Time `json:"dueDateTime"`
}

type taskUpdate struct {
	Completed bool `json:"completed"`
}

// Login exchanges credentials for a user id and optional token.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	var res AuthResult
	err := c.Post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &res)
	return res, err
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, name, email, password string) (AuthResult, error) {
	var res AuthResult
	err := c.Post(ctx, "/auth/register", registerRequest{Name: name, Email: email, Password: password}, &res)
	return res, err
}

// GetUserProfile fetches the dashboard summary for userID.
func (c *Client) GetUserProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	var p model.UserProfile
	if err := c.Get(ctx, "/dashboard/user/"+url.PathEscape(userID), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListTasks fetches the user's tasks.
func (c *Client) ListTasks(ctx context.Context, userID string) ([]model.Task, error) {
	return getList[model.Task](ctx, c, "/tasks/"+url.PathEscape(userID))
}

// CreateTask creates a task and returns the server's record.
func (c *Client) CreateTask(ctx context.Context, userID string, t NewTask) (model.Task, error) {
	var created model.Task
	err := c.Post(ctx, "/tasks/"+url.PathEscape(userID), t, &created)
	return created, err
}

// UpdateTask sets the completion flag and returns the server's record.
func (c *Client) UpdateTask(ctx context.Context, taskID string, completed bool) (model.Task, error) {
	var updated model.Task
	err := c.Put(ctx, "/tasks/"+url.PathEscape(taskID), taskUpdate{Completed: completed}, &updated)
	return updated, err
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	return c.Delete(ctx, "/tasks/"+url.PathEscape(taskID), nil)
}

// ListPlatforms fetches the user's practice platform links.
func (c *Client) ListPlatforms(ctx context.Context, userID string) ([]model.PracticeLink, error) {
	return getList[model.PracticeLink](ctx, c, "/practice/platforms/"+url.PathEscape(userID))
}

// ListFiles fetches the user's stored files.
func (c *Client) ListFiles(ctx context.Context, userID string) ([]model.StorageFile, error) {
	return getList[model.StorageFile](ctx, c, "/storage/"+url.PathEscape(userID))
}

// getList fetches a collection. A missing, null, or non-array body yields
// an empty slice.
func getList[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var raw json.RawMessage
	if err := c.Get(ctx, path, &raw); err != nil {
		return nil, err
	}

	items := []T{}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return items, nil
	}

	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return items, nil
}
