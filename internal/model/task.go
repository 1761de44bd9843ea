package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// MaxTaskTitleLength is the longest title the task form accepts.
const MaxTaskTitleLength = 200

// Task is a server-owned to-do item scoped to one user.
type Task struct {
	// ID is the server identifier (serialized as "_id").
	ID string `json:"_id"`

	// Title is the user-entered summary.
	Title string `json:"title"`

	// Completed toggles independently of Title.
	Completed bool `json:"completed"`

	// CreatedAt is the client timestamp sent on creation.
	CreatedAt time.Time `json:"createdAt"`

	// DueDateTime is the optional deadline.
	DueDateTime *time.Time `json:"dueDateTime,omitempty"`
}

// IsOverdue reports whether an open task is past its deadline.
func (t Task) IsOverdue(now time.Time) bool {
	return !t.Completed && t.DueDateTime != nil && t.DueDateTime.Before(now)
}

// UnmarshalJSON accepts "_id" or "id" and the timestamp layouts the API
// echoes back, including browser datetime-local values without a zone.
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw struct {
		UnderscoreID string  `json:"_id"`
		ID           string  `json:"id"`
		Title        string  `json:"title"`
		Completed    bool    `json:"completed"`
		CreatedAt    string  `json:"createdAt"`
		DueDateTime  *string `json:"dueDateTime"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	t.ID = raw.UnderscoreID
	if t.ID == "" {
		t.ID = raw.ID
	}
	t.Title = raw.Title
	t.Completed = raw.Completed

	t.CreatedAt = time.Time{}
	if raw.CreatedAt != "" {
		ts, err := ParseTimestamp(raw.CreatedAt)
		if err != nil {
			return fmt.Errorf("task %s createdAt: %w", t.ID, err)
		}
		t.CreatedAt = ts
	}

	t.DueDateTime = nil
	if raw.DueDateTime != nil && *raw.DueDateTime != "" {
		ts, err := ParseTimestamp(*raw.DueDateTime)
		if err != nil {
			return fmt.Errorf("task %s dueDateTime: %w", t.ID, err)
		}
		t.DueDateTime = &ts
	}

	return nil
}

// timestampLayouts are tried in order by ParseTimestamp.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses ISO-8601 style timestamps. Values without a zone
// are interpreted in local time.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for i, layout := range timestampLayouts {
		var (
			ts  time.Time
			err error
		)
		if i == 0 {
			ts, err = time.Parse(layout, s)
		} else {
			ts, err = time.ParseInLocation(layout, s, time.Local)
		}
		if err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
