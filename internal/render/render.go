// Package render turns ui view models into HTML.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"regexp"

	"github.com/yuin/goldmark"

	"avaro.dev/internal/glyph"
	"avaro.dev/internal/ui"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var safeColor = regexp.MustCompile(`^(#[0-9A-Fa-f]{3,8}|[a-zA-Z]+)$`)

// Renderer executes the embedded templates
type Renderer struct {
	tmpl *template.Template
	md   goldmark.Markdown
}

type sectionHeader struct {
	Title    string
	Subtitle string
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	r := &Renderer{md: goldmark.New()}

	tmpl, err := template.New("site").Funcs(template.FuncMap{
		"color":      func(c string) template.CSS { return css("color: %s;", c) },
		"border":     func(c string) template.CSS { return css("border-color: %s;", c) },
		"outline":    func(c string) template.CSS { return css("color: %[1]s; border-color: %[1]s;", c) },
		"glow":       func(c string) template.CSS { return css("background-color: %[1]s; box-shadow: 0 0 12px %[1]s;", c) },
		"glyphStyle": GlyphCSS,
		"markdown":   r.markdown,
		"sectionHeader": func(title, subtitle string) sectionHeader {
			return sectionHeader{Title: title, Subtitle: subtitle}
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// Page renders the full page.
func (r *Renderer) Page(w io.Writer, v ui.PageView) error {
	return r.tmpl.ExecuteTemplate(w, "page", v)
}

// Overlay renders the overlay fragment.
func (r *Renderer) Overlay(w io.Writer, v ui.OverlayView) error {
	return r.tmpl.ExecuteTemplate(w, "overlay", v)
}

// OverlayHTML renders the overlay fragment to a string.
func (r *Renderer) OverlayHTML(v ui.OverlayView) (string, error) {
	var buf bytes.Buffer
	if err := r.Overlay(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Static returns the embedded CSS and JS assets, rooted at the asset dir.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("static assets missing: " + err.Error())
	}
	return sub
}

// GlyphCSS renders a letter style as an inline style attribute.
func GlyphCSS(s glyph.Style) template.CSS {
	color := s.Color
	if !safeColor.MatchString(color) {
		color = "inherit"
	}
	return template.CSS(fmt.Sprintf("color: %s; transform: %s; text-shadow: %s;",
		color, transform(s.Transform), shadow(s.TextShadow, color)))
}

func transform(t string) string {
	if t == "translateY(-2px)" {
		return t
	}
	return "translateY(0)"
}

func shadow(s, color string) string {
	if s == "none" || color == "inherit" {
		return "none"
	}
	return "0 0 20px " + color
}

// css fills format with c when c is a plain color, and with "inherit"
// otherwise, so content files can't inject arbitrary CSS.
func css(format, c string) template.CSS {
	if !safeColor.MatchString(c) {
		c = "inherit"
	}
	return template.CSS(fmt.Sprintf(format, c))
}

func (r *Renderer) markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
