package models

import "strings"

// Project represents one case study in the portfolio
type Project struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Title    string   `json:"title"`
	Concept  string   `json:"concept"`
	Image    string   `json:"image"`
	Gallery  []string `json:"gallery,omitempty"`
	Details  []string `json:"details"`
}

// ProjectList wraps the array of projects
type ProjectList struct {
	Projects []Project `json:"projects"`
}

// TitleLines splits the title on the first ':' into at most two trimmed lines.
func (p Project) TitleLines() []string {
	head, tail, found := strings.Cut(p.Title, ":")
	if !found {
		return []string{strings.TrimSpace(p.Title)}
	}
	return []string{strings.TrimSpace(head), strings.TrimSpace(tail)}
}

// Clone returns a deep copy so callers can't alias catalog slices.
func (p Project) Clone() Project {
	c := p
	c.Gallery = append([]string(nil), p.Gallery...)
	c.Details = append([]string(nil), p.Details...)
	return c
}
