// Package preview draws the page in a terminal.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"avaro.dev/internal/catalog"
	"avaro.dev/internal/ui"
)

// narrowWidth is the terminal width below which the short header is used.
const narrowWidth = 60

// Options controls the preview layout
type Options struct {
	Width int
	// Project, when set, renders that project's overlay instead of the index.
	Project string
}

// Render draws the Idle page, or one project's overlay.
func Render(c *catalog.Catalog, opts Options) (string, error) {
	if opts.Width <= 0 {
		opts.Width = 80
	}
	root := ui.NewRoot(c, nil)
	if opts.Project != "" {
		if err := root.ActivateCard(opts.Project); err != nil {
			return "", err
		}
		v := root.Overlay().View()
		return renderOverlay(v, opts.Width), nil
	}
	return renderPage(root.View(), opts.Width), nil
}

func renderPage(v ui.PageView, width int) string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	accent := lipgloss.NewStyle().Foreground(color(v.Accent))
	heading := lipgloss.NewStyle().Bold(true)

	var lines []string
	lines = append(lines, heading.Foreground(color(v.Accent)).Render(ui.HeaderName(width < narrowWidth)), "")

	lines = append(lines, heading.Render("CASOS DE ESTUDIO"), "")
	for _, card := range v.Cards {
		lines = append(lines, renderCard(card, width), "")
	}

	lines = append(lines, heading.Render("ARSENAL TÉCNICO"))
	for _, group := range v.Skills {
		lines = append(lines, accent.Render(strings.ToUpper(group.Category)))
		for _, item := range group.Items {
			lines = append(lines, dim.Render("  ─ ")+item)
		}
	}

	lines = append(lines, "", heading.Render("CONTACTO"), v.ContactLink)
	return strings.Join(lines, "\n") + "\n"
}

func renderCard(v ui.CardView, width int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color(v.Accent)).
		Padding(0, 1).
		Width(width - 2)
	tag := lipgloss.NewStyle().Foreground(color(v.Accent)).Render("● " + strings.ToUpper(v.Category))
	title := lipgloss.NewStyle().Bold(true).Render(v.Title)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	body := strings.Join([]string{
		tag,
		title,
		v.Excerpt,
		dim.Render(v.Thumbnail),
		dim.Render(v.CTALabel),
	}, "\n")
	return box.Render(body)
}

func renderOverlay(v ui.OverlayView, width int) string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	label := lipgloss.NewStyle().Foreground(color(v.Accent))

	var lines []string
	lines = append(lines, dim.Render("Proyecto / ")+label.Render(v.Title), "")
	for _, line := range v.TitleLines {
		lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(color(line.Color)).Render(strings.ToUpper(line.Text)))
	}

	concept := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(color(v.Accent)).
		PaddingLeft(2).
		Width(width - 4)
	lines = append(lines, "", concept.Render(v.Concept), "")

	for _, d := range v.Details {
		lines = append(lines, label.Render(d.Label), "  "+d.Text)
	}
	if len(v.Gallery) > 0 {
		lines = append(lines, "")
		for _, img := range v.Gallery {
			lines = append(lines, fmt.Sprintf("%s  %s", dim.Render(img.Caption), img.Src))
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

// color maps CSS colors used by the views to terminal colors.
func color(c string) lipgloss.TerminalColor {
	switch c {
	case "", "inherit":
		return lipgloss.NoColor{}
	case "white":
		return lipgloss.Color("#FFFFFF")
	default:
		return lipgloss.Color(c)
	}
}
