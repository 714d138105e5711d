// Package glyph breaks a display string into individually hoverable letters.
package glyph

import "strings"

// Kind classifies a unit of a decomposed string
type Kind int

const (
	Letter Kind = iota // interactive
	Space              // non-interactive whitespace
	Break              // hard line break
)

func (k Kind) String() string {
	switch k {
	case Letter:
		return "letter"
	case Space:
		return "space"
	case Break:
		return "break"
	}
	return "unknown"
}

// Unit is one character position of a title
type Unit struct {
	Index int
	Char  rune
	Kind  Kind
}

// Interactive reports whether the unit reacts to the pointer.
func (u Unit) Interactive() bool {
	return u.Kind == Letter
}

// Decompose splits text into runes, in order.
func Decompose(text string) []Unit {
	units := make([]Unit, 0, len(text))
	i := 0
	for _, r := range text {
		kind := Letter
		switch r {
		case '\n':
			kind = Break
		case ' ':
			kind = Space
		}
		units = append(units, Unit{Index: i, Char: r, Kind: kind})
		i++
	}
	return units
}

// Join rebuilds the source text from its units.
func Join(units []Unit) string {
	var b strings.Builder
	for _, u := range units {
		b.WriteRune(u.Char)
	}
	return b.String()
}
