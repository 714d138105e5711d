package ui

import (
	"fmt"

	"avaro.dev/internal/media"
	"avaro.dev/internal/models"
)

const plainHeading = "white"

// Overlay is the full-screen view of one project. While mounted it owns the
// host scroll lock and the Escape binding.
type Overlay struct {
	project models.Project
	accent  string
	host    Host
	onClose func()

	mounted     bool
	releases    []func()
	footerHover bool
}

// OverlayView is what a rendering surface needs to draw the overlay
type OverlayView struct {
	ID          string
	Title       string
	TitleLines  []TitleLine
	Concept     string
	Accent      string
	Details     []Detail
	Gallery     []GalleryImage
	FooterColor string
}

// TitleLine is one line of the split heading
type TitleLine struct {
	Text  string
	Color string
}

// Detail is one numbered data-sheet entry
type Detail struct {
	Label string
	Text  string
}

// GalleryImage is one full-width image of the gallery
type GalleryImage struct {
	Src     string
	Alt     string
	Caption string
}

// NewOverlay creates an unmounted overlay.
func NewOverlay(p models.Project, accent string, host Host, onClose func()) *Overlay {
	return &Overlay{project: p.Clone(), accent: accent, host: host, onClose: onClose}
}

// Project returns the displayed project.
func (o *Overlay) Project() models.Project { return o.project.Clone() }

// Mounted reports whether Mount has run without a matching Unmount.
func (o *Overlay) Mounted() bool { return o.mounted }

// Mount scrolls to the top, locks page scrolling and binds Escape to close.
func (o *Overlay) Mount() {
	if o.mounted {
		return
	}
	o.mounted = true
	if o.host == nil {
		return
	}
	o.host.ScrollToTop()
	o.releases = append(o.releases, o.host.LockScroll())
	o.releases = append(o.releases, o.host.BindKey(KeyEscape, o.close))
}

// Unmount undoes everything Mount acquired, in reverse order. It is safe to
// call on every exit path.
func (o *Overlay) Unmount() {
	if !o.mounted {
		return
	}
	o.mounted = false
	for i := len(o.releases) - 1; i >= 0; i-- {
		if release := o.releases[i]; release != nil {
			release()
		}
	}
	o.releases = nil
	o.footerHover = false
}

// CloseFromHeader is the "Cerrar [ESC]" button.
func (o *Overlay) CloseFromHeader() { o.close() }

// CloseFromFooter is the "Volver al Índice" button.
func (o *Overlay) CloseFromFooter() { o.close() }

func (o *Overlay) close() {
	if o.onClose != nil {
		o.onClose()
	}
}

// FooterEnter highlights the footer button; it returns whether that changed.
func (o *Overlay) FooterEnter() bool {
	changed := !o.footerHover
	o.footerHover = true
	return changed
}

// FooterLeave restores the footer button; it returns whether that changed.
func (o *Overlay) FooterLeave() bool {
	changed := o.footerHover
	o.footerHover = false
	return changed
}

// FooterColor is the footer button's color and border color.
func (o *Overlay) FooterColor() string {
	if o.footerHover {
		return o.accent
	}
	return plainHeading
}

// View builds the overlay view model.
func (o *Overlay) View() OverlayView {
	return OverlayView{
		ID:          o.project.ID,
		Title:       o.project.Title,
		TitleLines:  SplitTitle(o.project, o.accent),
		Concept:     o.project.Concept,
		Accent:      o.accent,
		Details:     details(o.project.Details),
		Gallery:     gallery(o.project),
		FooterColor: o.FooterColor(),
	}
}

// SplitTitle splits a title on ':'. The first line is plain and the second,
// when present, takes the accent.
func SplitTitle(p models.Project, accent string) []TitleLine {
	lines := p.TitleLines()
	out := make([]TitleLine, len(lines))
	for i, text := range lines {
		color := plainHeading
		if i == 1 {
			color = accent
		}
		out[i] = TitleLine{Text: text, Color: color}
	}
	return out
}

func details(in []string) []Detail {
	out := make([]Detail, len(in))
	for i, text := range in {
		out[i] = Detail{Label: fmt.Sprintf("Especificación 0%d", i+1), Text: text}
	}
	return out
}

func gallery(p models.Project) []GalleryImage {
	srcs := media.Gallery(p.Gallery)
	out := make([]GalleryImage, len(srcs))
	for i, src := range srcs {
		out[i] = GalleryImage{
			Src:     src,
			Alt:     fmt.Sprintf("%s view %d", p.Title, i),
			Caption: fmt.Sprintf("Asset_Capture_0%d.png", i+1),
		}
	}
	return out
}
