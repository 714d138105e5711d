package services

import (
	"avaro.dev/internal/catalog"
	"avaro.dev/internal/media"
	"avaro.dev/internal/models"
)

// ProjectSummary is a project as the API exposes it: media links resolved
// and the accent color attached
type ProjectSummary struct {
	models.Project
	Accent string `json:"accent"`
}

// ProjectService handles project-related operations
type ProjectService struct {
	catalog *catalog.Catalog
}

// NewProjectService creates a new ProjectService
func NewProjectService(c *catalog.Catalog) *ProjectService {
	return &ProjectService{catalog: c}
}

// GetAll returns all projects in display order
func (s *ProjectService) GetAll() []ProjectSummary {
	projects := s.catalog.Projects()
	out := make([]ProjectSummary, len(projects))
	for i, p := range projects {
		out[i] = s.summarize(p)
	}
	return out
}

// GetByID returns a specific project by ID
func (s *ProjectService) GetByID(id string) (*ProjectSummary, error) {
	p, err := s.catalog.Project(id)
	if err != nil {
		return nil, err
	}
	summary := s.summarize(p)
	return &summary, nil
}

func (s *ProjectService) summarize(p models.Project) ProjectSummary {
	p.Image = media.DirectLink(p.Image)
	p.Gallery = media.Gallery(p.Gallery)
	return ProjectSummary{Project: p, Accent: s.catalog.Accent(p.ID)}
}
