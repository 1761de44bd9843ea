package model

// DefaultDisplayName is shown when the profile carries no name.
const DefaultDisplayName = "Student"

// UserProfile is the dashboard summary returned for a user.
type UserProfile struct {
	Name           string  `json:"name"`
	Email          string  `json:"email,omitempty"`
	TasksCompleted int     `json:"tasksCompleted"`
	Streak         int     `json:"streak"`
	HoursToday     float64 `json:"hoursToday"`
	Progress       float64 `json:"progress"`
}

// DisplayName returns Name or DefaultDisplayName.
func (p *UserProfile) DisplayName() string {
	if p == nil || p.Name == "" {
		return DefaultDisplayName
	}
	return p.Name
}
