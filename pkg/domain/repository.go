package domain

import "time"

// Repository is a snapshot of one public repository as listed by the API.
type Repository struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Language    string    `json:"language,omitempty"` // empty when GitHub detected none
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	Watchers    int       `json:"watchers_count"`
	Fork        bool      `json:"fork"`
	Private     bool      `json:"private"`
	UpdatedAt   time.Time `json:"updated_at"`
	HTMLURL     string    `json:"html_url"`
}

// Skill is a language and the number of repositories using it.
type Skill struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// ProfileResult is the output of one successful profile lookup.
type ProfileResult struct {
	Profile      Profile      `json:"profile"`
	Repositories []Repository `json:"repositories"`
}
