package view

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/nhle/studentpro/internal/api"
	apperrors "github.com/nhle/studentpro/internal/errors"
	"github.com/nhle/studentpro/internal/model"
)

// TaskAPI adds the task mutations to API.
type TaskAPI interface {
	API
	CreateTask(ctx context.Context, userID string, t api.NewTask) (model.Task, error)
	UpdateTask(ctx context.Context, taskID string, completed bool) (model.Task, error)
	DeleteTask(ctx context.Context, taskID string) error
}

// Tasks is the task list with create, toggle and delete.
type Tasks struct {
	state
	client TaskAPI
	now    func() time.Time

	tasks []model.Task
}

// NewTasks creates an idle task view. client is used for the mutations
// and, through deps.API, for loading.
func NewTasks(deps Deps, client TaskAPI) *Tasks {
	if deps.API == nil {
		deps.API = client
	}
	return &Tasks{state: state{deps: deps}, client: client, now: time.Now}
}

// Load fetches the profile and the tasks together.
func (v *Tasks) Load(ctx context.Context) error {
	ctx, gen, sess, ok := v.begin(ctx)
	if !ok {
		return nil
	}

	res := fetchJoined(ctx, v.deps.API, sess.UserID, v.deps.API.ListTasks)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.stale(ctx, gen); err != nil {
		return err
	}
	if err := v.finishProfile(ctx, res.profile, res.profileErr); err != nil {
		v.tasks = nil
		return err
	}
	if res.itemsErr != nil {
		log.Printf("view: loading tasks: %v", res.itemsErr)
		v.err = apperrors.NewFetchError("tasks", "Failed to load tasks", res.itemsErr)
		return nil
	}
	v.tasks = res.items
	return nil
}

// Tasks returns a copy of the loaded tasks, newest first.
func (v *Tasks) Tasks() []model.Task {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]model.Task(nil), v.tasks...)
}

// Filter returns the tasks whose title contains query.
func (v *Tasks) Filter(query string) []model.Task {
	return FilterByName(v.Tasks(), query)
}

// ValidateTitle trims title and checks it is non-blank and short enough.
func ValidateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apperrors.NewValidationError("title", "Task title is required")
	}
	if len([]rune(title)) > model.MaxTaskTitleLength {
		return "", apperrors.NewValidationError("title", "Task title must be at most 200 characters")
	}
	return title, nil
}

// Create adds a task and prepends the server's record. A blank title
// sends no request.
func (v *Tasks) Create(ctx context.Context, title string, due *time.Time) (model.Task, error) {
	title, err := ValidateTitle(title)
	if err != nil {
		return model.Task{}, err
	}

	sess, ok := v.deps.Guard.Check(ctx)
	if !ok {
		return model.Task{}, apperrors.NewSessionExpiredError(nil)
	}

	created, err := v.client.CreateTask(ctx, sess.UserID, api.NewTask{
		Title:       title,
		Completed:   false,
		CreatedAt:   v.now(),
		DueDateTime: due,
	})
	if err != nil {
		log.Printf("view: creating task: %v", err)
		return model.Task{}, apperrors.NewMutationError("create", "task", err)
	}

	v.mu.Lock()
	v.tasks = append([]model.Task{created}, v.tasks...)
	v.mu.Unlock()
	return created, nil
}

// Toggle flips the completion flag of id and replaces the entry with the
// server's record.
func (v *Tasks) Toggle(ctx context.Context, id string) (model.Task, error) {
	v.mu.RLock()
	idx := v.indexOf(id)
	var current model.Task
	if idx >= 0 {
		current = v.tasks[idx]
	}
	v.mu.RUnlock()

	if idx < 0 {
		return model.Task{}, apperrors.NewValidationError("id", "Task not found")
	}

	updated, err := v.client.UpdateTask(ctx, id, !current.Completed)
	if err != nil {
		log.Printf("view: updating task %s: %v", id, err)
		return model.Task{}, apperrors.NewMutationError("update", "task", err)
	}
	if updated.ID == "" {
		updated.ID = id
	}

	v.mu.Lock()
	if i := v.indexOf(id); i >= 0 {
		v.tasks[i] = updated
	}
	v.mu.Unlock()
	return updated, nil
}

// Delete removes id on the server, then locally.
func (v *Tasks) Delete(ctx context.Context, id string) error {
	if err := v.client.DeleteTask(ctx, id); err != nil {
		log.Printf("view: deleting task %s: %v", id, err)
		return apperrors.NewMutationError("delete", "task", err)
	}

	v.mu.Lock()
	if i := v.indexOf(id); i >= 0 {
		v.tasks = append(v.tasks[:i:i], v.tasks[i+1:]...)
	}
	v.mu.Unlock()
	return nil
}

// indexOf must be called with v.mu held.
func (v *Tasks) indexOf(id string) int {
	for i, t := range v.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
