package handlers

import (
	"net/http"

	"avaro.dev/internal/services"
)

// ProfileHandler handles skills and contact endpoints
type ProfileHandler struct {
	profileService *services.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(ps *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: ps}
}

// ListSkills handles GET /api/skills
func (h *ProfileHandler) ListSkills(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.profileService.Skills())
}

// GetContact handles GET /api/contact
func (h *ProfileHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.profileService.Contact())
}
