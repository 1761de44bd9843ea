package view

import (
	"context"
	"strconv"
	"time"

	"github.com/nhle/studentpro/internal/model"
	"github.com/nhle/studentpro/internal/session"
)

// Card is one dashboard tile. Route is empty for tiles without a screen.
type Card struct {
	Title       string
	Description string
	Route       session.Route
	Action      string
	Stat        string
	StatLabel   string
}

// Dashboard shows the profile summary.
type Dashboard struct {
	state
}

// NewDashboard creates an idle dashboard.
func NewDashboard(deps Deps) *Dashboard {
	return &Dashboard{state: state{deps: deps}}
}

// Load fetches the profile. Without an identity no request is sent.
func (d *Dashboard) Load(ctx context.Context) error {
	ctx, gen, sess, ok := d.begin(ctx)
	if !ok {
		return nil
	}

	profile, err := d.deps.API.GetUserProfile(ctx, sess.UserID)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.stale(ctx, gen); err != nil {
		return err
	}
	return d.finishProfile(ctx, profile, err)
}

// Cards returns the dashboard tiles for the loaded profile.
func (d *Dashboard) Cards() []Card {
	completed := 0
	if p := d.Profile(); p != nil {
		completed = p.TasksCompleted
	}

	return []Card{
		{
			Title:       "Daily Tasks",
			Description: "Track and manage your learning goals daily.",
			Route:       session.RouteTasks,
			Action:      "Open Tasks",
			Stat:        strconv.Itoa(completed),
			StatLabel:   "tasks completed",
		},
		{
			Title:       "Practice Platforms",
			Description: "Improve skills through coding and cybersecurity platforms.",
			Route:       session.RoutePractice,
			Action:      "Explore Platforms",
			Stat:        strconv.Itoa(len(model.DefaultPlatforms())),
			StatLabel:   "platforms available",
		},
		{
			Title:       "Student Storage",
			Description: "Access your stored files, notes and resources.",
			Route:       session.RouteStorage,
			Action:      "Open Storage",
		},
		{
			Title:       "Study Resources",
			Description: "Curated study materials and reference guides.",
			Action:      "Coming soon",
		},
	}
}

// Greeting returns the salutation for the hour of now.
func Greeting(now time.Time) string {
	switch h := now.Hour(); {
	case h < 12:
		return "Good Morning"
	case h < 17:
		return "Good Afternoon"
	default:
		return "Good Evening"
	}
}
