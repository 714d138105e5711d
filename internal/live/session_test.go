package live

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avaro.dev/internal/catalog"
	"avaro.dev/internal/render"
	"avaro.dev/internal/ui"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	r, err := render.New()
	require.NoError(t, err)
	return NewSession("test", catalog.MustDefault(), r)
}

func ops(patches []Patch) []string {
	return lo.Map(patches, func(p Patch, _ int) string { return p.Op })
}

func TestGlyphHover(t *testing.T) {
	s := newTestSession(t)

	patches := s.Handle(Event{Type: EventGlyphEnter, Title: 0, Index: 2})
	require.Len(t, patches, 1)
	p := patches[0]
	assert.Equal(t, OpGlyph, p.Op)
	require.NotNil(t, p.Title)
	require.NotNil(t, p.Index)
	assert.Equal(t, 0, *p.Title)
	assert.Equal(t, 2, *p.Index)
	require.NotNil(t, p.Style)
	assert.Equal(t, "#0061FF", p.Style.Color)
	assert.Equal(t, "translateY(-2px)", p.Style.Transform)

	assert.Empty(t, s.Handle(Event{Type: EventGlyphEnter, Title: 0, Index: 2}), "already engaged")

	patches = s.Handle(Event{Type: EventGlyphLeave, Title: 0, Index: 2})
	require.Len(t, patches, 1)
	assert.Equal(t, "inherit", patches[0].Style.Color)
	assert.Equal(t, "none", patches[0].Style.TextShadow)
}

func TestGlyphHoverOutOfRange(t *testing.T) {
	s := newTestSession(t)

	assert.Empty(t, s.Handle(Event{Type: EventGlyphEnter, Title: 1, Index: 99}))

	patches := s.Handle(Event{Type: EventGlyphEnter, Title: 7, Index: 0})
	assert.Equal(t, []string{OpError}, ops(patches))
	assert.Contains(t, patches[0].Message, ui.ErrUnknownTitle.Error())
}

func TestCardHover(t *testing.T) {
	s := newTestSession(t)

	patches := s.Handle(Event{Type: EventCardEnter, Project: "youtube-ctr"})
	require.Len(t, patches, 1)
	assert.Equal(t, OpCard, patches[0].Op)
	assert.Equal(t, "youtube-ctr", patches[0].Project)
	assert.Equal(t, "#FFCC00", patches[0].Color)

	patches = s.Handle(Event{Type: EventCardLeave, Project: "youtube-ctr"})
	require.Len(t, patches, 1)
	assert.Equal(t, "inherit", patches[0].Color)

	patches = s.Handle(Event{Type: EventCardEnter, Project: "nope"})
	assert.Equal(t, []string{OpError}, ops(patches))
}

func TestActivateMountsOverlay(t *testing.T) {
	s := newTestSession(t)

	patches := s.Handle(Event{Type: EventCardActivate, Project: "rar-automotores"})
	assert.Equal(t, []string{OpMountOverlay, OpScroll, OpScroll, OpBindKey}, ops(patches))

	mount := patches[0]
	assert.Equal(t, "rar-automotores", mount.Project)
	assert.Contains(t, mount.HTML, "RAR Automotores")
	assert.Contains(t, mount.HTML, "Ingeniería Visual")
	assert.Contains(t, mount.HTML, "Asset_Capture_04.png")

	assert.True(t, patches[1].Top)
	require.NotNil(t, patches[2].Enabled)
	assert.False(t, *patches[2].Enabled)
	assert.Equal(t, ui.KeyEscape, patches[3].Key)

	assert.Equal(t, ui.Viewing, s.Root().State())
	assert.True(t, s.ScrollLocked())
	assert.True(t, s.Bound(ui.KeyEscape))
}

func TestEscapeUnmountsOverlay(t *testing.T) {
	s := newTestSession(t)
	s.Handle(Event{Type: EventCardActivate, Project: "breaking-news"})

	patches := s.Handle(Event{Type: EventKey, Key: ui.KeyEscape})
	assert.Equal(t, []string{OpUnmountOverlay, OpUnbindKey, OpScroll}, ops(patches))
	require.NotNil(t, patches[2].Enabled)
	assert.True(t, *patches[2].Enabled)

	assert.Equal(t, ui.Idle, s.Root().State())
	assert.False(t, s.ScrollLocked())
	assert.False(t, s.Bound(ui.KeyEscape))

	assert.Empty(t, s.Handle(Event{Type: EventKey, Key: ui.KeyEscape}), "unbound key is ignored")
}

func TestCloseButtons(t *testing.T) {
	for _, source := range []string{"header", "footer", ""} {
		t.Run("source="+source, func(t *testing.T) {
			s := newTestSession(t)
			s.Handle(Event{Type: EventCardActivate, Project: "youtube-ctr"})

			patches := s.Handle(Event{Type: EventClose, Source: source})
			assert.Equal(t, OpUnmountOverlay, patches[0].Op)
			assert.Equal(t, ui.Idle, s.Root().State())
			assert.False(t, s.ScrollLocked())
		})
	}
}

func TestCloseRejections(t *testing.T) {
	s := newTestSession(t)

	patches := s.Handle(Event{Type: EventClose, Source: "header"})
	assert.Equal(t, []string{OpError}, ops(patches))
	assert.Equal(t, ui.ErrNoOverlay.Error(), patches[0].Message)

	s.Handle(Event{Type: EventCardActivate, Project: "youtube-ctr"})
	patches = s.Handle(Event{Type: EventClose, Source: "sidebar"})
	assert.Equal(t, []string{OpError}, ops(patches))
	assert.Equal(t, ui.Viewing, s.Root().State())
}

func TestSecondActivateIsRejected(t *testing.T) {
	s := newTestSession(t)
	s.Handle(Event{Type: EventCardActivate, Project: "youtube-ctr"})

	patches := s.Handle(Event{Type: EventCardActivate, Project: "breaking-news"})
	assert.Equal(t, []string{OpError}, ops(patches))

	p, ok := s.Root().Selected()
	require.True(t, ok)
	assert.Equal(t, "youtube-ctr", p.ID)
	assert.True(t, s.ScrollLocked())
}

func TestFooterHover(t *testing.T) {
	s := newTestSession(t)

	assert.Equal(t, []string{OpError}, ops(s.Handle(Event{Type: EventCloseEnter})))

	s.Handle(Event{Type: EventCardActivate, Project: "breaking-news"})
	patches := s.Handle(Event{Type: EventCloseEnter})
	require.Len(t, patches, 1)
	assert.Equal(t, OpCloseStyle, patches[0].Op)
	assert.Equal(t, "#FF0000", patches[0].Color)

	patches = s.Handle(Event{Type: EventCloseLeave})
	require.Len(t, patches, 1)
	assert.Equal(t, "white", patches[0].Color)
}

func TestUnknownEvent(t *testing.T) {
	s := newTestSession(t)

	patches := s.Handle(Event{Type: "scroll"})
	assert.Equal(t, []string{OpError}, ops(patches))
	assert.Contains(t, patches[0].Message, "unknown event type")
}

func TestScrollLockIsCounted(t *testing.T) {
	s := newTestSession(t)

	first := s.LockScroll()
	second := s.LockScroll()
	assert.Equal(t, []string{OpScroll}, ops(s.queue))

	first()
	first()
	assert.True(t, s.ScrollLocked())

	second()
	assert.False(t, s.ScrollLocked())
	assert.Equal(t, []string{OpScroll, OpScroll}, ops(s.queue))
}

func TestBindKeyStack(t *testing.T) {
	s := newTestSession(t)
	var calls []string

	unbindA := s.BindKey("x", func() { calls = append(calls, "a") })
	unbindB := s.BindKey("x", func() { calls = append(calls, "b") })
	assert.Equal(t, []string{OpBindKey}, ops(s.queue))

	s.press("x")
	assert.Equal(t, []string{"a", "b"}, calls)

	unbindA()
	unbindA()
	assert.True(t, s.Bound("x"))
	unbindB()
	assert.False(t, s.Bound("x"))
	assert.Equal(t, []string{OpBindKey, OpUnbindKey}, ops(s.queue))
}

func TestEventSequencesNeverStackOverlays(t *testing.T) {
	s := newTestSession(t)
	events := []Event{
		{Type: EventCardActivate, Project: "youtube-ctr"},
		{Type: EventCardActivate, Project: "breaking-news"},
		{Type: EventKey, Key: ui.KeyEscape},
		{Type: EventKey, Key: ui.KeyEscape},
		{Type: EventCardActivate, Project: "breaking-news"},
		{Type: EventClose, Source: "footer"},
		{Type: EventClose, Source: "header"},
		{Type: EventCardActivate, Project: "rar-automotores"},
	}

	mounted := 0
	for _, ev := range events {
		for _, p := range s.Handle(ev) {
			switch p.Op {
			case OpMountOverlay:
				mounted++
			case OpUnmountOverlay:
				mounted--
			}
			require.LessOrEqual(t, mounted, 1)
			require.GreaterOrEqual(t, mounted, 0)
		}
	}
	assert.Equal(t, 1, mounted)
	assert.Equal(t, ui.Viewing, s.Root().State())
}
