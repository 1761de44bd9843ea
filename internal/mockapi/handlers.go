package mockapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/nhle/studentpro/internal/model"
)

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	UserID string `json:"userId,omitempty"`
	Token  string `json:"token,omitempty"`
	Name   string `json:"name,omitempty"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.RLock()
	id, ok := s.byEmail[normalizeEmail(req.Email)]
	var u *user
	if ok {
		u = s.users[id]
	}
	s.mu.RUnlock()

	if u == nil || bcrypt.CompareHashAndPassword(u.passwordHash, []byte(req.Password)) != nil {
		writeDetail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{UserID: u.id, Token: u.token, Name: u.name})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs []fieldError
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, fieldError{Loc: []string{"body", "name"}, Msg: "Name is required", Type: "value_error"})
	}
	if !strings.Contains(req.Email, "@") {
		errs = append(errs, fieldError{Loc: []string{"body", "email"}, Msg: "value is not a valid email address", Type: "value_error"})
	}
	if len(req.Password) < 6 {
		errs = append(errs, fieldError{Loc: []string{"body", "password"}, Msg: "Password must be at least 6 characters", Type: "value_error"})
	}
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "could not hash password")
		return
	}

	email := normalizeEmail(req.Email)
	u := &user{
		id:           uuid.NewString(),
		name:         strings.TrimSpace(req.Name),
		email:        email,
		passwordHash: hash,
		token:        uuid.NewString(),
	}

	s.mu.Lock()
	if _, exists := s.byEmail[email]; exists {
		s.mu.Unlock()
		writeDetail(w, http.StatusBadRequest, "Email already registered")
		return
	}
	s.users[u.id] = u
	s.byEmail[email] = u.id
	if s.seedFiles {
		s.files[u.id] = demoFiles(s.now())
	}
	s.mu.Unlock()

	if !s.autoLogin {
		writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{UserID: u.id, Token: u.token, Name: u.name})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		writeDetail(w, http.StatusNotFound, "User not found")
		return
	}

	tasks := s.tasks[userID]
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	progress := 0.0
	if len(tasks) > 0 {
		progress = float64(done) * 100 / float64(len(tasks))
	}

	writeJSON(w, http.StatusOK, model.UserProfile{
		Name:           u.name,
		Email:          u.email,
		TasksCompleted: done,
		Streak:         u.streak,
		HoursToday:     u.hoursToday,
		Progress:       progress,
	})
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.users[userID]; !ok {
		writeDetail(w, http.StatusNotFound, "User not found")
		return
	}

	out := make([]model.Task, 0, len(s.tasks[userID]))
	for _, t := range s.tasks[userID] {
		out = append(out, *t)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var task model.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		writeValidation(w, []fieldError{{Loc: []string{"body", "title"}, Msg: "Title is required", Type: "value_error"}})
		return
	}
	if len([]rune(task.Title)) > model.MaxTaskTitleLength {
		writeValidation(w, []fieldError{{Loc: []string{"body", "title"}, Msg: "Title is too long", Type: "value_error"}})
		return
	}

	task.ID = uuid.NewString()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		writeDetail(w, http.StatusNotFound, "User not found")
		return
	}

	stored := task
	s.tasks[userID] = append([]*model.Task{&stored}, s.tasks[userID]...)
	s.taskOwner[task.ID] = userID

	writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		Completed *bool `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Completed == nil {
		writeDetail(w, http.StatusBadRequest, "completed is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.findTask(id)
	if task == nil {
		writeDetail(w, http.StatusNotFound, "Task not found")
		return
	}
	task.Completed = *req.Completed

	writeJSON(w, http.StatusOK, *task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok := s.taskOwner[id]
	if !ok {
		writeDetail(w, http.StatusNotFound, "Task not found")
		return
	}

	list := s.tasks[owner]
	for i, t := range list {
		if t.ID == id {
			s.tasks[owner] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	delete(s.taskOwner, id)

	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted"})
}

func (s *Server) handlePlatforms(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	s.mu.RLock()
	defer s.mu.RUnlock()

	links := s.platforms[userID]
	if links == nil {
		links = []model.PracticeLink{}
	}
	writeJSON(w, http.StatusOK, links)
}

func (s *Server) handleStorage(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	s.mu.RLock()
	defer s.mu.RUnlock()

	files := s.files[userID]
	if files == nil {
		files = []model.StorageFile{}
	}
	writeJSON(w, http.StatusOK, files)
}

// findTask must be called with s.mu held.
func (s *Server) findTask(id string) *model.Task {
	owner, ok := s.taskOwner[id]
	if !ok {
		return nil
	}
	for _, t := range s.tasks[owner] {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
