// Package live runs one page session per websocket: browser events go in,
// DOM patches come out.
package live

import "avaro.dev/internal/glyph"

// Event types sent by the browser
const (
	EventGlyphEnter   = "glyph_enter"
	EventGlyphLeave   = "glyph_leave"
	EventCardEnter    = "card_enter"
	EventCardLeave    = "card_leave"
	EventCardActivate = "card_activate"
	EventClose        = "close"
	EventCloseEnter   = "close_enter"
	EventCloseLeave   = "close_leave"
	EventKey          = "key"
)

// Patch ops sent to the browser
const (
	OpGlyph          = "glyph"
	OpCard           = "card"
	OpMountOverlay   = "mount_overlay"
	OpUnmountOverlay = "unmount_overlay"
	OpScroll         = "scroll"
	OpBindKey        = "bind_key"
	OpUnbindKey      = "unbind_key"
	OpCloseStyle     = "close_style"
	OpError          = "error"
)

// Event is one UI event from the browser
type Event struct {
	Type    string `json:"type"`
	Title   int    `json:"title,omitempty"`
	Index   int    `json:"index,omitempty"`
	Project string `json:"project,omitempty"`
	Key     string `json:"key,omitempty"`
	Source  string `json:"source,omitempty"`
}

// Patch is one DOM update for the browser
type Patch struct {
	Op      string       `json:"op"`
	Title   *int         `json:"title,omitempty"`
	Index   *int         `json:"index,omitempty"`
	Style   *glyph.Style `json:"style,omitempty"`
	Project string       `json:"project,omitempty"`
	Color   string       `json:"color,omitempty"`
	HTML    string       `json:"html,omitempty"`
	Enabled *bool        `json:"enabled,omitempty"`
	Top     bool         `json:"top,omitempty"`
	Key     string       `json:"key,omitempty"`
	Message string       `json:"message,omitempty"`
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }
