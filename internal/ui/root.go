package ui

import (
	"errors"
	"fmt"

	"avaro.dev/internal/catalog"
	"avaro.dev/internal/glyph"
	"avaro.dev/internal/models"
)

var (
	ErrOverlayOpen    = errors.New("an overlay is already open")
	ErrNoOverlay      = errors.New("no overlay is open")
	ErrUnknownProject = errors.New("unknown project")
	ErrUnknownTitle   = errors.New("unknown title")
)

// State is the root's selection state
type State int

const (
	Idle State = iota
	Viewing
)

func (s State) String() string {
	if s == Viewing {
		return "viewing"
	}
	return "idle"
}

var (
	headerLines = []string{"SEBASTIAN", "AVARO."}
	shortName   = "S. AVARO."
)

// HeaderName picks the header wording for a viewport class.
func HeaderName(narrow bool) string {
	if narrow {
		return shortName
	}
	return headerLines[0] + " " + headerLines[1]
}

// Root owns the only shared state of the page: which project, if any, is
// open. The overlay exists exactly while the state is Viewing.
type Root struct {
	catalog *catalog.Catalog
	host    Host

	titles []*glyph.Title
	cards  []*Card

	state    State
	selected models.Project
	overlay  *Overlay

	openErr  error
	closeErr error
}

// NewRoot builds the page tree in the Idle state.
func NewRoot(c *catalog.Catalog, host Host) *Root {
	r := &Root{catalog: c, host: host}
	for _, line := range headerLines {
		r.titles = append(r.titles, glyph.NewTitle(line, c.DefaultAccent()))
	}
	for _, p := range c.Projects() {
		r.cards = append(r.cards, NewCard(p, c.Accent(p.ID), func(p models.Project) {
			r.openErr = r.Open(p)
		}))
	}
	return r
}

// State returns the current selection state.
func (r *Root) State() State { return r.state }

// Selected returns the open project; ok is false while Idle.
func (r *Root) Selected() (models.Project, bool) {
	if r.state != Viewing {
		return models.Project{}, false
	}
	return r.selected.Clone(), true
}

// Overlay returns the mounted overlay, or nil while Idle.
func (r *Root) Overlay() *Overlay { return r.overlay }

// Open moves Idle -> Viewing(p) and mounts the overlay. Opening while
// another project is open is rejected.
func (r *Root) Open(p models.Project) error {
	if r.state == Viewing {
		return fmt.Errorf("open %s: %w", p.ID, ErrOverlayOpen)
	}
	r.state = Viewing
	r.selected = p.Clone()
	r.overlay = NewOverlay(p, r.catalog.Accent(p.ID), r.host, func() {
		r.closeErr = r.Close()
	})
	r.overlay.Mount()
	return nil
}

// Close moves Viewing -> Idle and unmounts the overlay.
func (r *Root) Close() error {
	if r.state != Viewing {
		return ErrNoOverlay
	}
	ov := r.overlay
	r.state = Idle
	r.selected = models.Project{}
	r.overlay = nil
	ov.Unmount()
	return nil
}

// Teardown releases everything the tree holds, whatever its state. It is
// meant to be deferred by whoever owns the root.
func (r *Root) Teardown() {
	if r.state == Viewing {
		_ = r.Close()
	}
	for _, c := range r.cards {
		c.PointerLeave()
	}
}

// Card returns the card for a project id.
func (r *Root) Card(id string) (*Card, error) {
	for _, c := range r.cards {
		if c.project.ID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownProject, id)
}

// Cards returns the cards in catalog order.
func (r *Root) Cards() []*Card {
	return append([]*Card(nil), r.cards...)
}

// ActivateCard activates the card of a project, as a click would.
func (r *Root) ActivateCard(id string) error {
	c, err := r.Card(id)
	if err != nil {
		return err
	}
	r.openErr = nil
	c.Activate()
	return r.openErr
}

// CloseFrom dismisses the overlay through one of its two buttons.
func (r *Root) CloseFrom(footer bool) error {
	if r.overlay == nil {
		return ErrNoOverlay
	}
	r.closeErr = nil
	if footer {
		r.overlay.CloseFromFooter()
	} else {
		r.overlay.CloseFromHeader()
	}
	return r.closeErr
}

// Title returns the header title at i.
func (r *Root) Title(i int) (*glyph.Title, error) {
	if i < 0 || i >= len(r.titles) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTitle, i)
	}
	return r.titles[i], nil
}

// Titles returns the header titles.
func (r *Root) Titles() []*glyph.Title {
	return append([]*glyph.Title(nil), r.titles...)
}
