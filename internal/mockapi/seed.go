package mockapi

import (
	"time"

	"github.com/google/uuid"

	"github.com/nhle/studentpro/internal/model"
)

// SetPlatforms replaces the practice links served for userID.
func (s *Server) SetPlatforms(userID string, links []model.PracticeLink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.platforms[userID] = append([]model.PracticeLink(nil), links...)
}

// AddFile appends a storage file for userID, assigning an id when empty.
func (s *Server) AddFile(userID string, f model.StorageFile) model.StorageFile {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[userID] = append(s.files[userID], f)
	return f
}

// SetStats sets the streak and study hours reported on the dashboard.
func (s *Server) SetStats(userID string, streak int, hoursToday float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[userID]; ok {
		u.streak = streak
		u.hoursToday = hoursToday
	}
}

// TaskCount returns the number of stored tasks for userID.
func (s *Server) TaskCount(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks[userID])
}

func demoFiles(now time.Time) []model.StorageFile {
	return []model.StorageFile{
		{
			ID:        uuid.NewString(),
			Name:      "Lecture-Notes-Week1.pdf",
			Type:      "application/pdf",
			Size:      482_133,
			URL:       "https://example.com/files/lecture-notes-week1.pdf",
			CreatedAt: now.Add(-72 * time.Hour),
		},
		{
			ID:        uuid.NewString(),
			Name:      "project-diagram.png",
			Type:      "image/png",
			Size:      1_204_551,
			URL:       "https://example.com/files/project-diagram.png",
			CreatedAt: now.Add(-24 * time.Hour),
		},
		{
			ID:        uuid.NewString(),
			Name:      "draft-essay.docx",
			Type:      "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			Size:      38_912,
			CreatedAt: now.Add(-2 * time.Hour),
		},
	}
}
