package core

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/git-pkgs/manifests/classifiers"
)

var (
	// Distribution name rules: ASCII alphanumerics separated by ., _, -.
	nameRegex = regexp.MustCompile(`^([A-Za-z0-9]|[A-Za-z0-9][A-Za-z0-9._-]*[A-Za-z0-9])$`)

	// PEP 440 public version shape, without local version oddities.
	versionRegex = regexp.MustCompile(`^v?(\d+!)?\d+(\.\d+)*((a|b|rc)\d+)?(\.post\d+)?(\.dev\d+)?$`)
)

// NormalizeName lowercases a distribution name and collapses separators,
// matching how package indexes compare names.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "_", "-")
	name = strings.ReplaceAll(name, ".", "-")
	return name
}

// ContentTypeForPath infers a long-description content type from a file extension.
func ContentTypeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return ContentTypeMarkdown
	case ".rst":
		return ContentTypeRST
	default:
		return ContentTypePlain
	}
}

// Builder assembles a Manifest field by field.
//
// The zero-cost setters collect values; Build performs the long-description
// file read, normalization, and validation in one step. A configured
// description file that cannot be read fails the build; empty content is
// never substituted.
type Builder struct {
	m        Manifest
	descFile string
}

// NewBuilder starts a manifest for the given distribution name and version.
func NewBuilder(name, version string) *Builder {
	return &Builder{m: Manifest{Name: name, Version: version}}
}

// Description sets the one-line summary.
func (b *Builder) Description(s string) *Builder {
	b.m.Description = s
	return b
}

// LongDescription sets the long description from an in-memory string.
func (b *Builder) LongDescription(text, contentType string) *Builder {
	b.m.LongDescription = text
	b.m.LongDescriptionContentType = contentType
	b.descFile = ""
	return b
}

// LongDescriptionFile defers reading the long description to Build.
// The content type is inferred from the file extension unless set explicitly.
func (b *Builder) LongDescriptionFile(path string) *Builder {
	b.descFile = path
	return b
}

// Author sets the author name and email.
func (b *Builder) Author(name, email string) *Builder {
	b.m.Author = Author{Name: name, Email: email}
	return b
}

// Maintainer sets the maintainer name and email.
func (b *Builder) Maintainer(name, email string) *Builder {
	b.m.Maintainer = Author{Name: name, Email: email}
	return b
}

// License sets the license expression or text.
func (b *Builder) License(s string) *Builder {
	b.m.License = s
	return b
}

// URL sets the primary project URL.
func (b *Builder) URL(s string) *Builder {
	b.m.URL = s
	return b
}

// ProjectURL adds a named project URL.
func (b *Builder) ProjectURL(label, u string) *Builder {
	if b.m.ProjectURLs == nil {
		b.m.ProjectURLs = make(map[string]string)
	}
	b.m.ProjectURLs[label] = u
	return b
}

// Scripts sets the entry-point script paths.
func (b *Builder) Scripts(paths ...string) *Builder {
	b.m.Scripts = paths
	return b
}

// Packages sets the importable sub-package names.
func (b *Builder) Packages(names ...string) *Builder {
	b.m.Packages = names
	return b
}

// Keywords sets the keyword list.
func (b *Builder) Keywords(words ...string) *Builder {
	b.m.Keywords = words
	return b
}

// Classifiers sets the classifier strings.
func (b *Builder) Classifiers(cs ...string) *Builder {
	b.m.Classifiers = cs
	return b
}

// RequiresPython sets the interpreter version constraint.
func (b *Builder) RequiresPython(spec string) *Builder {
	b.m.RequiresPython = spec
	return b
}

// Dependency adds a dependency from a PEP 508 requirement string.
func (b *Builder) Dependency(requirement string) *Builder {
	b.m.Dependencies = append(b.m.Dependencies, ParseRequirement(requirement))
	return b
}

// Build reads the long-description file (if configured), fills derived
// fields, validates, and returns the finished manifest.
func (b *Builder) Build() (*Manifest, error) {
	m := b.m

	if b.descFile != "" {
		data, err := os.ReadFile(b.descFile)
		if err != nil {
			return nil, fmt.Errorf("reading long description: %w", err)
		}
		m.LongDescription = string(data)
		if m.LongDescriptionContentType == "" {
			m.LongDescriptionContentType = ContentTypeForPath(b.descFile)
		}
	}

	if m.LongDescription != "" && m.LongDescriptionContentType == "" {
		m.LongDescriptionContentType = ContentTypePlain
	}

	if m.License == "" {
		m.License = classifiers.License(m.Classifiers)
	}

	if err := Validate(&m); err != nil {
		return nil, err
	}

	return &m, nil
}

// Validate checks a manifest against index requirements.
func Validate(m *Manifest) error {
	var fields []*FieldError

	switch {
	case m.Name == "":
		fields = append(fields, &FieldError{Field: "name", Reason: "required"})
	case !nameRegex.MatchString(m.Name):
		fields = append(fields, &FieldError{
			Field: "name", Value: m.Name,
			Reason: "must be ASCII letters, digits, and ._- separators",
		})
	}

	switch {
	case m.Version == "":
		fields = append(fields, &FieldError{Field: "version", Reason: "required"})
	case !versionRegex.MatchString(m.Version):
		fields = append(fields, &FieldError{
			Field: "version", Value: m.Version,
			Reason: "not a valid version identifier",
		})
	}

	if m.Author.Email != "" && !validEmail(m.Author.Email) {
		fields = append(fields, &FieldError{
			Field: "author_email", Value: m.Author.Email,
			Reason: "not a valid email address",
		})
	}
	if m.Maintainer.Email != "" && !validEmail(m.Maintainer.Email) {
		fields = append(fields, &FieldError{
			Field: "maintainer_email", Value: m.Maintainer.Email,
			Reason: "not a valid email address",
		})
	}

	if m.URL != "" && !validURL(m.URL) {
		fields = append(fields, &FieldError{
			Field: "url", Value: m.URL,
			Reason: "must be an absolute http(s) URL",
		})
	}
	for label, u := range m.ProjectURLs {
		if !validURL(u) {
			fields = append(fields, &FieldError{
				Field: "project_urls." + label, Value: u,
				Reason: "must be an absolute http(s) URL",
			})
		}
	}

	for _, unknown := range classifiers.Validate(m.Classifiers) {
		fields = append(fields, &FieldError{
			Field: "classifiers", Value: unknown,
			Reason: "not a known classifier",
		})
	}

	switch m.LongDescriptionContentType {
	case "", ContentTypeMarkdown, ContentTypeRST, ContentTypePlain:
	default:
		fields = append(fields, &FieldError{
			Field: "long_description_content_type", Value: m.LongDescriptionContentType,
			Reason: "unsupported content type",
		})
	}

	if len(fields) > 0 {
		return &ValidationError{Name: m.Name, Fields: fields}
	}
	return nil
}

func validEmail(s string) bool {
	at := strings.Index(s, "@")
	return at > 0 && at < len(s)-1 && !strings.ContainsAny(s, " \t")
}

func validURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
