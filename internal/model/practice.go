package model

import (
	"net/url"
)

// DefaultLinkColor is used when a link carries no color hint.
const DefaultLinkColor = "from-primary to-navy-dark"

// PracticeLink is an external coding/security practice platform.
type PracticeLink struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`

	// Color is a display hint; the terminal maps it to a palette color.
	Color string `json:"color,omitempty"`
}

// Valid reports whether the link has a name and an absolute http(s) URL.
func (p PracticeLink) Valid() bool {
	if p.Name == "" {
		return false
	}
	u, err := url.Parse(p.URL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ColorHint returns Color or DefaultLinkColor.
func (p PracticeLink) ColorHint() string {
	if p.Color == "" {
		return DefaultLinkColor
	}
	return p.Color
}

// DefaultPlatforms returns the built-in practice platform set. A fresh slice
// is returned on every call.
func DefaultPlatforms() []PracticeLink {
	return []PracticeLink{
		{
			Name:        "LeetCode",
			URL:         "https://leetcode.com",
			Description: "Practice coding problems & algorithms",
			Color:       "from-amber-500 to-orange-600",
		},
		{
			Name:        "HackerRank",
			URL:         "https://hackerrank.com",
			Description: "Coding challenges & competitions",
			Color:       "from-emerald-500 to-green-600",
		},
		{
			Name:        "TryHackMe",
			URL:         "https://tryhackme.com",
			Description: "Learn cybersecurity through hands-on labs",
			Color:       "from-red-500 to-rose-600",
		},
		{
			Name:        "CodeChef",
			URL:         "https://codechef.com",
			Description: "Competitive programming contests",
			Color:       "from-blue-500 to-indigo-600",
		},
		{
			Name:        "GitHub",
			URL:         "https://github.com",
			Description: "Host and review code, manage projects",
			Color:       "from-gray-600 to-gray-800",
		},
		{
			Name:        "Codeforces",
			URL:         "https://codeforces.com",
			Description: "Competitive programming platform",
			Color:       "from-sky-500 to-blue-600",
		},
	}
}
