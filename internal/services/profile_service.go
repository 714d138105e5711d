package services

import (
	"avaro.dev/internal/catalog"
	"avaro.dev/internal/models"
)

// ContactInfo is the outbound contact link and the message it carries
type ContactInfo struct {
	Link    string `json:"link"`
	Message string `json:"message"`
}

// ProfileService serves the designer's skills and contact details
type ProfileService struct {
	catalog *catalog.Catalog
}

// NewProfileService creates a new ProfileService
func NewProfileService(c *catalog.Catalog) *ProfileService {
	return &ProfileService{catalog: c}
}

// Skills returns the skill groups in display order
func (s *ProfileService) Skills() []models.SkillGroup {
	return s.catalog.Skills()
}

// Contact returns the contact link with the default message
func (s *ProfileService) Contact() ContactInfo {
	return ContactInfo{
		Link:    s.catalog.ContactLink(),
		Message: s.catalog.Contact().Message,
	}
}
