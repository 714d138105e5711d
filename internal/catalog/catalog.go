// Package catalog holds the read-only site content: projects, skill groups,
// accent colors and the contact template. A Catalog is built once at start
// and never mutated.
package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"avaro.dev/internal/models"
)

// DefaultAccent is used for any project without an entry in the theme.
const DefaultAccent = "#0061FF"

var (
	ErrDuplicateID     = errors.New("duplicate project id")
	ErrEmptyID         = errors.New("project id is empty")
	ErrProjectNotFound = errors.New("project not found")
)

//go:embed data/*.json
var embedded embed.FS

// Theme maps project ids to accent colors
type Theme struct {
	DefaultAccent string            `json:"default_accent"`
	Accents       map[string]string `json:"accents"`
}

// Contact holds the messaging link template
type Contact struct {
	BaseURL string `json:"base_url"`
	Message string `json:"message"`
}

type siteFile struct {
	Theme   Theme   `json:"theme"`
	Contact Contact `json:"contact"`
}

// Catalog is the immutable content of the site
type Catalog struct {
	projects []models.Project
	skills   []models.SkillGroup
	theme    Theme
	contact  Contact
}

// Default loads the content embedded in the binary.
func Default() (*Catalog, error) {
	return Load("")
}

// MustDefault is Default for package-level initialization and tests.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic("failed to load embedded catalog: " + err.Error())
	}
	return c
}

// Load reads projects.json, skills.json and site.json. Files present in dir
// override the embedded ones; an empty dir uses only the embedded content.
func Load(dir string) (*Catalog, error) {
	var projects models.ProjectList
	if err := readJSON(dir, "projects.json", &projects); err != nil {
		return nil, err
	}

	var skills models.SkillList
	if err := readJSON(dir, "skills.json", &skills); err != nil {
		return nil, err
	}

	var site siteFile
	if err := readJSON(dir, "site.json", &site); err != nil {
		return nil, err
	}

	return New(projects.Projects, skills.Skills, site.Theme, site.Contact)
}

// New builds a catalog from already-decoded content, validating project ids.
func New(projects []models.Project, skills []models.SkillGroup, theme Theme, contact Contact) (*Catalog, error) {
	seen := make(map[string]struct{}, len(projects))
	for _, p := range projects {
		if strings.TrimSpace(p.ID) == "" {
			return nil, fmt.Errorf("project %q: %w", p.Title, ErrEmptyID)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	if theme.DefaultAccent == "" {
		theme.DefaultAccent = DefaultAccent
	}
	accents := make(map[string]string, len(theme.Accents))
	for id, color := range theme.Accents {
		accents[id] = color
	}
	theme.Accents = accents

	return &Catalog{
		projects: lo.Map(projects, func(p models.Project, _ int) models.Project { return p.Clone() }),
		skills: lo.Map(skills, func(s models.SkillGroup, _ int) models.SkillGroup {
			return models.SkillGroup{Category: s.Category, Items: append([]string(nil), s.Items...)}
		}),
		theme:   theme,
		contact: contact,
	}, nil
}

// Projects returns a copy of the projects in display order.
func (c *Catalog) Projects() []models.Project {
	return lo.Map(c.projects, func(p models.Project, _ int) models.Project { return p.Clone() })
}

// Project returns the project with the given id.
func (c *Catalog) Project(id string) (models.Project, error) {
	p, ok := lo.Find(c.projects, func(p models.Project) bool { return p.ID == id })
	if !ok {
		return models.Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	return p.Clone(), nil
}

// Skills returns a copy of the skill groups in display order.
func (c *Catalog) Skills() []models.SkillGroup {
	return lo.Map(c.skills, func(s models.SkillGroup, _ int) models.SkillGroup {
		return models.SkillGroup{Category: s.Category, Items: append([]string(nil), s.Items...)}
	})
}

// Accent returns the project's accent color, or the default accent for an
// unknown id.
func (c *Catalog) Accent(id string) string {
	if color, ok := c.theme.Accents[id]; ok && color != "" {
		return color
	}
	return c.theme.DefaultAccent
}

// DefaultAccent returns the shared fallback accent.
func (c *Catalog) DefaultAccent() string {
	return c.theme.DefaultAccent
}

// Contact returns the contact template.
func (c *Catalog) Contact() Contact {
	return c.contact
}

// ContactLink builds the outbound messaging link with the default message.
func (c *Catalog) ContactLink() string {
	return c.contact.Link()
}

// Link returns "<base>?text=<message>" with the message escaped like
// encodeURIComponent, so spaces are %20 rather than '+'.
func (ct Contact) Link() string {
	return ct.BaseURL + "?text=" + EscapeComponent(ct.Message)
}

// EscapeComponent escapes s for use as a single URL query component.
func EscapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func readJSON(dir, name string, v any) error {
	data, err := readFile(dir, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func readFile(dir, name string) ([]byte, error) {
	if dir != "" {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
	}

	data, err := embedded.ReadFile("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded %s: %w", name, err)
	}
	return data, nil
}
