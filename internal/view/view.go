// Package view holds the UI-agnostic controllers behind each protected
// screen. A controller gates its load on the stored identity, fetches the
// profile and its collection together, and patches local state only from
// server responses.
package view

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sourcegraph/conc"

	"github.com/nhle/studentpro/internal/model"
	"github.com/nhle/studentpro/internal/session"
)

// ErrStale is returned by Load when a newer load or Unmount superseded it.
// Its results were discarded.
var ErrStale = errors.New("view: load superseded")

// Status is the lifecycle state of a view.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusRedirected
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusRedirected:
		return "redirected"
	default:
		return "unknown"
	}
}

// API is the subset of the REST client used by views. *api.Client
// satisfies it.
type API interface {
	GetUserProfile(ctx context.Context, userID string) (*model.UserProfile, error)
	ListTasks(ctx context.Context, userID string) ([]model.Task, error)
	ListPlatforms(ctx context.Context, userID string) ([]model.PracticeLink, error)
	ListFiles(ctx context.Context, userID string) ([]model.StorageFile, error)
}

// Deps are the collaborators shared by every view.
type Deps struct {
	Manager *session.Manager
	Guard   *session.Guard
	API     API
}

// Scope ties in-flight loads to a generation. Starting a new load or
// unmounting cancels the previous context, and results carrying an old
// generation are dropped.
type Scope struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// Begin cancels any running load and returns a child of parent bound to a
// new generation.
func (s *Scope) Begin(parent context.Context) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	s.gen++
	s.cancel = cancel
	return ctx, s.gen
}

// Current reports whether gen is still the live generation.
func (s *Scope) Current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil && s.gen == gen
}

// Unmount cancels the running load. Anything it returns afterwards is
// discarded.
func (s *Scope) Unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
}

// Named is anything FilterByName can match.
type Named interface {
	model.Task | model.StorageFile | model.PracticeLink
}

func nameOf[T Named](item T) string {
	switch v := any(item).(type) {
	case model.Task:
		return v.Title
	case model.StorageFile:
		return v.Name
	case model.PracticeLink:
		return v.Name
	}
	return ""
}

// FilterByName returns the items whose name contains query, ignoring case.
// An empty query returns every item.
func FilterByName[T Named](items []T, query string) []T {
	query = strings.ToLower(query)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if query == "" || strings.Contains(strings.ToLower(nameOf(item)), query) {
			out = append(out, item)
		}
	}
	return out
}

// state is the part shared by every view.
type state struct {
	deps  Deps
	scope Scope

	mu      sync.RWMutex
	status  Status
	profile *model.UserProfile
	err     error
}

func (s *state) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Profile returns the last fetched profile, or nil.
func (s *state) Profile() *model.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// DisplayName is the profile name or the default.
func (s *state) DisplayName() string {
	return s.Profile().DisplayName()
}

// Err is the retryable error from the last load, if any.
func (s *state) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Unmount cancels the in-flight load.
func (s *state) Unmount() {
	s.scope.Unmount()
}

// begin runs the view-level guard and starts a new generation. ok is
// false when there is no identity; the view is then redirected.
func (s *state) begin(ctx context.Context) (context.Context, uint64, session.Session, bool) {
	sess, ok := s.deps.Guard.Check(ctx)
	if !ok {
		s.scope.Unmount()
		s.mu.Lock()
		s.status = StatusRedirected
		s.mu.Unlock()
		return ctx, 0, sess, false
	}

	ctx, gen := s.scope.Begin(ctx)
	s.mu.Lock()
	s.status = StatusLoading
	s.err = nil
	s.mu.Unlock()
	return ctx, gen, sess, true
}

// stale reports why the results of generation gen must be dropped, or nil
// when they apply. A load whose context ended is dropped as well, so a
// cancelled request never reaches finishProfile. The caller must hold s.mu.
func (s *state) stale(ctx context.Context, gen uint64) error {
	if !s.scope.Current(gen) {
		return ErrStale
	}
	if err := ctx.Err(); err != nil {
		s.status = StatusIdle
		return fmt.Errorf("%w: %w", ErrStale, err)
	}
	return nil
}

// finishProfile applies the profile result of generation gen. The caller
// must hold s.mu. A profile failure clears the identity and redirects.
func (s *state) finishProfile(ctx context.Context, profile *model.UserProfile, err error) error {
	if err != nil {
		s.status = StatusRedirected
		s.profile = nil
		return s.deps.Manager.Invalidate(context.WithoutCancel(ctx), err)
	}
	s.profile = profile
	s.status = StatusLoaded
	return nil
}

// joined holds the results of a profile fetch and a collection fetch run
// together.
type joined[T any] struct {
	profile    *model.UserProfile
	profileErr error
	items      []T
	itemsErr   error
}

func fetchJoined[T any](ctx context.Context, client API, userID string, list func(context.Context, string) ([]T, error)) joined[T] {
	var res joined[T]
	var wg conc.WaitGroup
	wg.Go(func() {
		res.profile, res.profileErr = client.GetUserProfile(ctx, userID)
	})
	wg.Go(func() {
		res.items, res.itemsErr = list(ctx, userID)
	})
	wg.Wait()
	return res
}
