// Package export writes a static snapshot of the site to disk.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"avaro.dev/internal/catalog"
	"avaro.dev/internal/render"
	"avaro.dev/internal/services"
	"avaro.dev/internal/ui"
)

// Site writes the Idle page, one overlay fragment per project, the JSON
// API documents and the static assets under dir. Progress lines go to out.
func Site(dir string, c *catalog.Catalog, r *render.Renderer, out io.Writer) error {
	for _, sub := range []string{"overlays", "api", "static"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	var page bytes.Buffer
	if err := r.Page(&page, ui.NewRoot(c, nil).View()); err != nil {
		return fmt.Errorf("rendering index: %w", err)
	}
	if err := write(dir, "index.html", page.Bytes(), out); err != nil {
		return err
	}

	for _, p := range c.Projects() {
		ov := ui.NewOverlay(p, c.Accent(p.ID), nil, nil)
		html, err := r.OverlayHTML(ov.View())
		if err != nil {
			return fmt.Errorf("rendering overlay %s: %w", p.ID, err)
		}
		if err := write(dir, filepath.Join("overlays", p.ID+".html"), []byte(html), out); err != nil {
			return err
		}
	}

	profile := services.NewProfileService(c)
	docs := map[string]any{
		"projects.json": services.NewProjectService(c).GetAll(),
		"skills.json":   profile.Skills(),
		"contact.json":  profile.Contact(),
	}
	for name, v := range docs {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling %s: %w", name, err)
		}
		if err := write(dir, filepath.Join("api", name), data, out); err != nil {
			return err
		}
	}

	static := render.Static()
	return fs.WalkDir(static, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(static, path)
		if err != nil {
			return err
		}
		return write(dir, filepath.Join("static", path), data, out)
	})
}

func write(dir, name string, data []byte, out io.Writer) error {
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	fmt.Fprintf(out, "  Created %s (%d bytes)\n", name, len(data))
	return nil
}
