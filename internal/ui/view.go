package ui

import (
	"avaro.dev/internal/glyph"
	"avaro.dev/internal/models"
)

// PageView is the whole page as a rendering surface sees it
type PageView struct {
	Titles      []TitleView
	ShortName   string
	Cards       []CardView
	Skills      []models.SkillGroup
	ContactLink string
	Accent      string
	Overlay     *OverlayView
}

// TitleView is one interactive header line
type TitleView struct {
	Index int
	Text  string
	Units []UnitView
}

// UnitView is one character of a title
type UnitView struct {
	Index       int
	Char        string
	Kind        string
	Interactive bool
	Style       glyph.Style
}

// View builds the page view model for the current state.
func (r *Root) View() PageView {
	v := PageView{
		ShortName:   HeaderName(true),
		Skills:      r.catalog.Skills(),
		ContactLink: r.catalog.ContactLink(),
		Accent:      r.catalog.DefaultAccent(),
	}
	for i, t := range r.titles {
		v.Titles = append(v.Titles, NewTitleView(i, t))
	}
	for _, c := range r.cards {
		v.Cards = append(v.Cards, c.View())
	}
	if r.overlay != nil {
		ov := r.overlay.View()
		v.Overlay = &ov
	}
	return v
}

// NewTitleView snapshots a title for rendering.
func NewTitleView(index int, t *glyph.Title) TitleView {
	tv := TitleView{Index: index, Text: t.Text()}
	for _, u := range t.Units() {
		tv.Units = append(tv.Units, UnitView{
			Index:       u.Index,
			Char:        string(u.Char),
			Kind:        u.Kind.String(),
			Interactive: u.Interactive(),
			Style:       t.Style(u.Index),
		})
	}
	return tv
}
