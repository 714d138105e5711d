package ui

import (
	"avaro.dev/internal/media"
	"avaro.dev/internal/models"
)

const (
	excerptRunes = 160
	ctaLabel     = "Explorar Caso de Estudio →"
)

// Card is the compact, clickable summary of one project. It never holds
// selection state: activation is reported to onOpen.
type Card struct {
	project models.Project
	accent  string
	onOpen  func(models.Project)
	hovered bool
}

// CardView is what a rendering surface needs to draw a card
type CardView struct {
	ID        string
	Category  string
	Title     string
	Concept   string
	Excerpt   string
	Thumbnail string
	Accent    string
	CTALabel  string
	CTAColor  string
	Hovered   bool
}

// NewCard creates a card that reports activation to onOpen.
func NewCard(p models.Project, accent string, onOpen func(models.Project)) *Card {
	return &Card{project: p.Clone(), accent: accent, onOpen: onOpen}
}

// Project returns the card's project.
func (c *Card) Project() models.Project { return c.project.Clone() }

// Activate reports the card's project to the caller.
func (c *Card) Activate() {
	if c.onOpen != nil {
		c.onOpen(c.project.Clone())
	}
}

// PointerEnter sets the hover flag; it returns whether the flag changed.
func (c *Card) PointerEnter() bool {
	changed := !c.hovered
	c.hovered = true
	return changed
}

// PointerLeave clears the hover flag; it returns whether the flag changed.
func (c *Card) PointerLeave() bool {
	changed := c.hovered
	c.hovered = false
	return changed
}

// Hovered reports the hover flag.
func (c *Card) Hovered() bool { return c.hovered }

// CTAColor is the call-to-action color for the current hover state.
func (c *Card) CTAColor() string {
	if c.hovered {
		return c.accent
	}
	return "inherit"
}

// View builds the card view model.
func (c *Card) View() CardView {
	return CardView{
		ID:        c.project.ID,
		Category:  c.project.Category,
		Title:     c.project.Title,
		Concept:   c.project.Concept,
		Excerpt:   Excerpt(c.project.Concept, excerptRunes),
		Thumbnail: media.DirectLink(c.project.Image),
		Accent:    c.accent,
		CTALabel:  ctaLabel,
		CTAColor:  c.CTAColor(),
		Hovered:   c.hovered,
	}
}

// Excerpt cuts s to at most n runes, ending with an ellipsis when cut.
func Excerpt(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
