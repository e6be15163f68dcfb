// Package pyproject loads manifests from the [project] table of pyproject.toml.
package pyproject

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/git-pkgs/manifests/internal/core"
)

const (
	formatName      = "pyproject"
	DefaultFilename = "pyproject.toml"
)

func init() {
	core.Register(formatName, DefaultFilename, func() core.Format {
		return New()
	})
}

// Loader parses PEP 621 project metadata.
type Loader struct{}

func New() *Loader {
	return &Loader{}
}

func (l *Loader) Name() string {
	return formatName
}

type document struct {
	Project projectTable `toml:"project"`
}

type projectTable struct {
	Name            string              `toml:"name"`
	Version         string              `toml:"version"`
	Description     string              `toml:"description"`
	Readme          any                 `toml:"readme"` // string path or {file|text, content-type} table
	License         any                 `toml:"license"`
	RequiresPython  string              `toml:"requires-python"`
	Authors         []person            `toml:"authors"`
	Maintainers     []person            `toml:"maintainers"`
	Keywords        []string            `toml:"keywords"`
	Classifiers     []string            `toml:"classifiers"`
	URLs            map[string]string   `toml:"urls"`
	Scripts         map[string]string   `toml:"scripts"`
	Dependencies    []string            `toml:"dependencies"`
	OptionalDeps    map[string][]string `toml:"optional-dependencies"`
}

type person struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// Parse reads a pyproject.toml document from r. A readme given as a file
// reference is read from disk; a missing readme file fails the parse.
func (l *Loader) Parse(r io.Reader) (*core.Manifest, error) {
	var doc document
	if err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding pyproject.toml: %w", err)
	}

	p := doc.Project
	if p.Name == "" {
		return nil, &core.FieldError{Field: "project.name", Reason: "required"}
	}

	m := &core.Manifest{
		Name:           p.Name,
		Version:        p.Version,
		Description:    p.Description,
		RequiresPython: p.RequiresPython,
		Keywords:       p.Keywords,
		Classifiers:    p.Classifiers,
		ProjectURLs:    p.URLs,
	}

	if len(p.Authors) > 0 {
		m.Author = core.Author{Name: p.Authors[0].Name, Email: p.Authors[0].Email}
	}
	if len(p.Maintainers) > 0 {
		m.Maintainer = core.Author{Name: p.Maintainers[0].Name, Email: p.Maintainers[0].Email}
	}

	if url, ok := p.URLs["Homepage"]; ok {
		m.URL = url
	} else if url, ok := p.URLs["Home"]; ok {
		m.URL = url
	}

	if err := applyReadme(m, p.Readme); err != nil {
		return nil, err
	}
	applyLicense(m, p.License)

	// Script names in declaration order is meaningless for a map; sort for
	// deterministic output.
	if len(p.Scripts) > 0 {
		names := make([]string, 0, len(p.Scripts))
		for name := range p.Scripts {
			names = append(names, name)
		}
		sort.Strings(names)
		m.Scripts = names
	}

	for _, dep := range p.Dependencies {
		m.Dependencies = append(m.Dependencies, core.ParseRequirement(dep))
	}

	extras := make([]string, 0, len(p.OptionalDeps))
	for extra := range p.OptionalDeps {
		extras = append(extras, extra)
	}
	sort.Strings(extras)
	for _, extra := range extras {
		for _, dep := range p.OptionalDeps[extra] {
			d := core.ParseRequirement(dep)
			d.Scope = core.Optional
			d.Optional = true
			if d.Marker == "" {
				d.Marker = fmt.Sprintf("extra == %q", extra)
			}
			m.Dependencies = append(m.Dependencies, d)
		}
	}

	return m, nil
}

// applyReadme handles both readme forms: a bare path string, or a table with
// either a file reference or inline text plus an explicit content type.
func applyReadme(m *core.Manifest, readme any) error {
	switch v := readme.(type) {
	case nil:
		return nil

	case string:
		return readDescriptionFile(m, v, "")

	case map[string]any:
		contentType, _ := v["content-type"].(string)
		if file, ok := v["file"].(string); ok {
			return readDescriptionFile(m, file, contentType)
		}
		if text, ok := v["text"].(string); ok {
			m.LongDescription = text
			if contentType == "" {
				contentType = core.ContentTypePlain
			}
			m.LongDescriptionContentType = contentType
			return nil
		}
		return &core.FieldError{Field: "project.readme", Reason: "table needs file or text"}

	default:
		return &core.FieldError{Field: "project.readme", Reason: "must be a string or table"}
	}
}

func readDescriptionFile(m *core.Manifest, path, contentType string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading readme: %w", err)
	}
	m.LongDescription = string(data)
	if contentType == "" {
		contentType = core.ContentTypeForPath(path)
	}
	m.LongDescriptionContentType = contentType
	return nil
}

func applyLicense(m *core.Manifest, license any) {
	switch v := license.(type) {
	case string:
		m.License = v
	case map[string]any:
		if text, ok := v["text"].(string); ok {
			m.License = text
		} else if file, ok := v["file"].(string); ok {
			// License files ship in the distribution; record the reference.
			if m.Metadata == nil {
				m.Metadata = make(map[string]any)
			}
			m.Metadata["license_file"] = file
		}
	}
}
