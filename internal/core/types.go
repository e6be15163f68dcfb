// Package core provides shared types, the manifest builder, and the format system.
package core

// Manifest is the metadata record for a package distribution.
//
// The field set matches what a packaging backend needs to describe one
// release: identity, people, descriptions, URLs, entry scripts, classifiers,
// and dependency declarations.
type Manifest struct {
	Name                       string
	Version                    string
	Description                string
	LongDescription            string
	LongDescriptionContentType string // "text/markdown", "text/x-rst", "text/plain"
	Author                     Author
	Maintainer                 Author
	License                    string // SPDX expression or free-form license text
	URL                        string // primary project URL
	ProjectURLs                map[string]string
	Scripts                    []string // entry-point script paths shipped with the distribution
	Packages                   []string // importable sub-package names
	Keywords                   []string
	Classifiers                []string
	RequiresPython             string
	Dependencies               []Dependency
	Metadata                   map[string]any // format-specific leftovers
}

// Author identifies a package author or maintainer.
type Author struct {
	Name  string
	Email string
}

// String renders the author in "Name <email>" form.
func (a Author) String() string {
	if a.Name == "" {
		return a.Email
	}
	if a.Email == "" {
		return a.Name
	}
	return a.Name + " <" + a.Email + ">"
}

// Dependency represents a declared package dependency.
type Dependency struct {
	Name         string
	Extras       []string
	Requirements string // version constraint, "*" when unconstrained
	Scope        Scope
	Marker       string // environment marker, empty when unconditional
	Optional     bool
}

// Scope indicates when a dependency is required.
// Aligns with github.com/git-pkgs/registries core.Scope.
type Scope string

const (
	Runtime     Scope = "runtime"
	Development Scope = "development"
	Test        Scope = "test"
	Build       Scope = "build"
	Optional    Scope = "optional"
)

// Long description content types accepted by package indexes.
const (
	ContentTypeMarkdown = "text/markdown"
	ContentTypeRST      = "text/x-rst"
	ContentTypePlain    = "text/plain"
)

// NormalizedName returns the index-normalized form of the package name.
func (m *Manifest) NormalizedName() string {
	return NormalizeName(m.Name)
}
