// Package ui holds the page's component tree: cards, titles, the detail
// overlay, and the root that decides which of them are mounted.
package ui

// Host is what the component tree needs from the environment it runs in.
type Host interface {
	// ScrollToTop moves the page to the top.
	ScrollToTop()
	// LockScroll disables page scrolling until the returned release is
	// called. Release must be safe to call more than once.
	LockScroll() (release func())
	// BindKey calls fn whenever key is pressed, until unbind is called.
	BindKey(key string, fn func()) (unbind func())
}

// KeyEscape is the key that dismisses the overlay.
const KeyEscape = "Escape"
