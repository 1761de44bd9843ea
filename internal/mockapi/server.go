// Package mockapi is an in-memory implementation of the StudentPro REST
// contract for local development and tests.
package mockapi

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/nhle/studentpro/internal/model"
)

// Route names, usable with Server.Fail.
const (
	RouteLogin      = "login"
	RouteRegister   = "register"
	RouteProfile    = "profile"
	RouteListTasks  = "list-tasks"
	RouteCreateTask = "create-task"
	RouteUpdateTask = "update-task"
	RouteDeleteTask = "delete-task"
	RoutePlatforms  = "platforms"
	RouteStorage    = "storage"
)

type user struct {
	id           string
	name         string
	email        string
	passwordHash []byte
	token        string
	streak       int
	hoursToday   float64
}

// Server holds all users and their collections in memory.
type Server struct {
	mu        sync.RWMutex
	users     map[string]*user
	byEmail   map[string]string
	tasks     map[string][]*model.Task // userID -> tasks, newest first
	taskOwner map[string]string        // taskID -> userID
	files     map[string][]model.StorageFile
	platforms map[string][]model.PracticeLink
	failures  map[string]int

	bcryptCost  int
	autoLogin   bool
	seedFiles   bool
	now         func() time.Time
	requests    atomic.Int64
	routeCounts sync.Map // route name -> *atomic.Int64
}

// Option configures a Server.
type Option func(*Server)

// WithBcryptCost sets the password hashing cost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *Server) { s.bcryptCost = cost }
}

// WithoutAutoLogin makes /auth/register return no userId, so clients have
// to sign in afterwards.
func WithoutAutoLogin() Option {
	return func(s *Server) { s.autoLogin = false }
}

// WithDemoFiles seeds a few storage files for every registered user.
func WithDemoFiles() Option {
	return func(s *Server) { s.seedFiles = true }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates an empty Server.
func New(opts ...Option) *Server {
	s := &Server{
		users:      make(map[string]*user),
		byEmail:    make(map[string]string),
		tasks:      make(map[string][]*model.Task),
		taskOwner:  make(map[string]string),
		files:      make(map[string][]model.StorageFile),
		platforms:  make(map[string][]model.PracticeLink),
		failures:   make(map[string]int),
		bcryptCost: bcrypt.DefaultCost,
		autoLogin:  true,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP router for the API.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.countAndFail)

	r.HandleFunc("/auth/login", s.handleLogin).Methods("POST").Name(RouteLogin)
	r.HandleFunc("/auth/register", s.handleRegister).Methods("POST").Name(RouteRegister)
	r.HandleFunc("/dashboard/user/{userId}", s.handleProfile).Methods("GET").Name(RouteProfile)
	r.HandleFunc("/tasks/{userId}", s.handleListTasks).Methods("GET").Name(RouteListTasks)
	r.HandleFunc("/tasks/{userId}", s.handleCreateTask).Methods("POST").Name(RouteCreateTask)
	r.HandleFunc("/tasks/{id}", s.handleUpdateTask).Methods("PUT").Name(RouteUpdateTask)
	r.HandleFunc("/tasks/{id}", s.handleDeleteTask).Methods("DELETE").Name(RouteDeleteTask)
	r.HandleFunc("/practice/platforms/{userId}", s.handlePlatforms).Methods("GET").Name(RoutePlatforms)
	r.HandleFunc("/storage/{userId}", s.handleStorage).Methods("GET").Name(RouteStorage)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})

	return r
}

// Fail makes every request to the named route answer with status until
// Recover is called.
func (s *Server) Fail(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = status
}

// Recover clears a failure installed by Fail.
func (s *Server) Recover(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

// Requests returns how many requests reached the router.
func (s *Server) Requests() int64 {
	return s.requests.Load()
}

// RouteRequests returns how many requests hit the named route.
func (s *Server) RouteRequests(route string) int64 {
	v, ok := s.routeCounts.Load(route)
	if !ok {
		return 0
	}
	return v.(*atomic.Int64).Load()
}

func (s *Server) countAndFail(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)

		name := ""
		if route := mux.CurrentRoute(r); route != nil {
			name = route.GetName()
		}
		if name != "" {
			v, _ := s.routeCounts.LoadOrStore(name, new(atomic.Int64))
			v.(*atomic.Int64).Add(1)
		}

		s.mu.RLock()
		status, failing := s.failures[name]
		s.mu.RUnlock()
		if failing {
			writeDetail(w, status, http.StatusText(status))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("mockapi: encoding response: %v", err)
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// fieldError mirrors a FastAPI validation entry.
type fieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func writeValidation(w http.ResponseWriter, errs []fieldError) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"detail": errs})
}
