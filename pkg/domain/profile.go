package domain

import (
	"math"
	"strings"
	"time"
)

// Profile is the public account record for a GitHub user.
type Profile struct {
	Login       string    `json:"login"`
	Name        string    `json:"name,omitempty"`
	AvatarURL   string    `json:"avatar_url"`
	Bio         string    `json:"bio,omitempty"`
	Location    string    `json:"location,omitempty"`
	Blog        string    `json:"blog,omitempty"`
	Twitter     string    `json:"twitter_username,omitempty"`
	Company     string    `json:"company,omitempty"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	PublicRepos int       `json:"public_repos"`
	PublicGists int       `json:"public_gists"`
	CreatedAt   time.Time `json:"created_at"`
}

// Bar scale maximums. A value at or above the maximum fills its bar.
const (
	reposBarMax = 50
	gistsBarMax = 20
	ageBarMax   = 3650 // 10 years
)

// maxBlogLabel is the number of characters of a blog URL shown before truncation.
const maxBlogLabel = 30

// DisplayName returns the profile name, falling back to the login.
func (p Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Login
}

// AccountAgeDays returns the whole days since account creation, rounded up.
func (p Profile) AccountAgeDays(now time.Time) int {
	d := now.Sub(p.CreatedAt)
	if d < 0 {
		d = -d
	}
	return int(math.Ceil(d.Hours() / 24))
}

// BlogURL returns a navigable URL for the blog field, or "" when unset.
func (p Profile) BlogURL() string {
	if p.Blog == "" {
		return ""
	}
	if strings.HasPrefix(p.Blog, "http") {
		return p.Blog
	}
	return "https://" + p.Blog
}

// BlogLabel returns the blog text shortened for display.
func (p Profile) BlogLabel() string {
	runes := []rune(p.Blog)
	if len(runes) > maxBlogLabel {
		return string(runes[:maxBlogLabel]) + "..."
	}
	return p.Blog
}

// RepoRatio is the fill ratio of the repositories bar.
func (p Profile) RepoRatio() float64 {
	return capRatio(float64(p.PublicRepos) / reposBarMax)
}

// GistRatio is the fill ratio of the gists bar.
func (p Profile) GistRatio() float64 {
	return capRatio(float64(p.PublicGists) / gistsBarMax)
}

// AgeRatio is the fill ratio of the account age bar.
func (p Profile) AgeRatio(now time.Time) float64 {
	return capRatio(float64(p.AccountAgeDays(now)) / ageBarMax)
}

func capRatio(r float64) float64 {
	if r > 1 {
		return 1
	}
	if r < 0 {
		return 0
	}
	return r
}
