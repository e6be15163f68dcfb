// Package manifests builds, loads, validates, and publishes package
// distribution manifests.
//
// A manifest is the metadata record for one release: name, version, author,
// descriptions, URLs, scripts, classifiers, and dependency declarations.
// Manifests can be assembled programmatically with a Builder or loaded from
// on-disk formats (pyproject.toml, PKG-INFO).
//
// Basic usage:
//
//	import (
//		"github.com/git-pkgs/manifests"
//	)
//
//	m, err := manifests.New("px-totp", "0.0.1").
//		Description("Time-based One-Time Password Generator").
//		LongDescriptionFile("README.md").
//		Author("P. H.", "px-totp@example.org").
//		URL("https://example.org/px-totp").
//		Classifiers(
//			"Programming Language :: Python :: 3",
//			"License :: OSI Approved :: BSD License",
//			"Operating System :: OS Independent",
//		).
//		Build()
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(m.Name, m.PURL())
//
// To load manifests from files, import the format packages:
//
//	import (
//		"github.com/git-pkgs/manifests"
//		_ "github.com/git-pkgs/manifests/all"
//	)
//
//	m, err := manifests.Open("pyproject", "pyproject.toml")
package manifests

import (
	"github.com/git-pkgs/purl"

	"github.com/git-pkgs/manifests/client"
	"github.com/git-pkgs/manifests/internal/core"
)

// Re-export types from internal/core
type (
	// Manifest is the metadata record for a package distribution.
	Manifest = core.Manifest

	// Author identifies a package author or maintainer.
	Author = core.Author

	// Dependency represents a declared package dependency.
	Dependency = core.Dependency

	// Scope indicates when a dependency is required.
	Scope = core.Scope

	// Builder assembles a Manifest field by field.
	Builder = core.Builder

	// Format is the interface implemented by all manifest format loaders.
	Format = core.Format
)

// Re-export types from client
type (
	// Client is an HTTP client for package index APIs with retry logic.
	Client = client.Client

	// IndexURLs constructs the endpoints of a package index.
	IndexURLs = client.IndexURLs
)

// Re-export constants
const (
	Runtime     = core.Runtime
	Development = core.Development
	Test        = core.Test
	Build       = core.Build
	Optional    = core.Optional

	ContentTypeMarkdown = core.ContentTypeMarkdown
	ContentTypeRST      = core.ContentTypeRST
	ContentTypePlain    = core.ContentTypePlain
)

// Re-export errors
var (
	ErrInvalid  = core.ErrInvalid
	ErrNotFound = client.ErrNotFound
)

// Error types
type (
	ValidationError    = core.ValidationError
	FieldError         = core.FieldError
	UnknownFormatError = core.UnknownFormatError
	HTTPError          = client.HTTPError
)

// New starts a manifest builder for the given distribution name and version.
// Build performs the long-description file read, normalization, and
// validation; a configured description file that cannot be read fails the
// build rather than producing empty content.
func New(name, version string) *Builder {
	return core.NewBuilder(name, version)
}

// Open loads a manifest file in the given format.
// If path is empty, the format's conventional file name is used.
//
// Supported formats: "pyproject", "pkg-info". Formats must be imported to be
// registered; import the all subpackage to register every format.
func Open(format string, path string) (*Manifest, error) {
	return core.Open(format, path)
}

// NewFormat creates a loader for the given format.
func NewFormat(format string) (Format, error) {
	return core.NewFormat(format)
}

// SupportedFormats returns all registered format identifiers.
// Note: formats must be imported to be registered.
func SupportedFormats() []string {
	return core.SupportedFormats()
}

// DefaultFilename returns the conventional file name for a format.
func DefaultFilename(format string) string {
	return core.DefaultFilename(format)
}

// Validate checks a manifest against index requirements.
func Validate(m *Manifest) error {
	return core.Validate(m)
}

// NormalizeName lowercases a distribution name and collapses separators,
// matching how package indexes compare names.
func NormalizeName(name string) string {
	return core.NormalizeName(name)
}

// PURL represents a parsed Package URL.
type PURL = purl.PURL

// ParsePURL parses a Package URL string into its components.
// Supports both package PURLs (pkg:pypi/px-totp) and version PURLs
// (pkg:pypi/px-totp@0.0.1).
func ParsePURL(purlStr string) (*PURL, error) {
	return purl.Parse(purlStr)
}

// FromPURL seeds a manifest with the name and version carried by a PURL.
func FromPURL(purlStr string) (*Manifest, error) {
	return core.ManifestFromPURL(purlStr)
}

// DefaultClient returns a client with sensible defaults:
// - 30s timeout
// - 5 retries with exponential backoff
// - Retry on 429 and 5xx responses
func DefaultClient() *Client {
	return client.DefaultClient()
}

// NewClient creates a new client with the given options.
func NewClient(opts ...Option) *Client {
	return client.NewClient(opts...)
}

// Option configures a Client.
type Option = client.Option

// WithTimeout sets the HTTP client timeout.
var WithTimeout = client.WithTimeout

// WithMaxRetries sets the maximum number of retries.
var WithMaxRetries = client.WithMaxRetries

// WithUserAgent sets the User-Agent header.
var WithUserAgent = client.WithUserAgent
