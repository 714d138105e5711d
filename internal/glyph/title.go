package glyph

import "fmt"

// Style is the inline presentation of a single letter
type Style struct {
	Color      string `json:"color"`
	Transform  string `json:"transform"`
	TextShadow string `json:"text_shadow"`
}

var restingStyle = Style{
	Color:      "inherit",
	Transform:  "translateY(0)",
	TextShadow: "none",
}

// Title holds the units of one text and the engaged flag of every letter.
// Engaging a letter never changes another letter.
type Title struct {
	text      string
	highlight string
	units     []Unit
	engaged   []bool
}

// NewTitle decomposes text; highlight is the color letters take while engaged.
func NewTitle(text, highlight string) *Title {
	t := &Title{highlight: highlight}
	t.reset(text)
	return t
}

func (t *Title) reset(text string) {
	t.text = text
	t.units = Decompose(text)
	t.engaged = make([]bool, len(t.units))
}

// SetText replaces the text. A different text starts every position fresh;
// the same text keeps the current state.
func (t *Title) SetText(text string) {
	if text == t.text {
		return
	}
	t.reset(text)
}

// Text returns the source text.
func (t *Title) Text() string { return t.text }

// Highlight returns the engaged color.
func (t *Title) Highlight() string { return t.highlight }

// Units returns a copy of the units.
func (t *Title) Units() []Unit {
	return append([]Unit(nil), t.units...)
}

// Len returns the number of units.
func (t *Title) Len() int { return len(t.units) }

// Engage marks the letter at i as under the pointer. It returns false when
// nothing changed: already engaged, not a letter, or out of range.
func (t *Title) Engage(i int) bool {
	return t.set(i, true)
}

// Release clears the letter at i. Same return contract as Engage.
func (t *Title) Release(i int) bool {
	return t.set(i, false)
}

func (t *Title) set(i int, v bool) bool {
	if i < 0 || i >= len(t.units) || !t.units[i].Interactive() {
		return false
	}
	if t.engaged[i] == v {
		return false
	}
	t.engaged[i] = v
	return true
}

// Engaged reports whether the letter at i is engaged.
func (t *Title) Engaged(i int) bool {
	if i < 0 || i >= len(t.engaged) {
		return false
	}
	return t.engaged[i]
}

// Style returns the presentation of the unit at i.
func (t *Title) Style(i int) Style {
	if !t.Engaged(i) {
		return restingStyle
	}
	return Style{
		Color:      t.highlight,
		Transform:  "translateY(-2px)",
		TextShadow: fmt.Sprintf("0 0 20px %s", t.highlight),
	}
}
