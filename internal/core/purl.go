package core

import (
	"fmt"

	packageurl "github.com/package-url/packageurl-go"
)

// PURL wraps packageurl.PackageURL with manifest-specific helpers.
type PURL struct {
	packageurl.PackageURL
}

// PURL returns the Package URL for a manifest, e.g. "pkg:pypi/px-totp@0.0.1".
// The name is normalized the way the index compares it.
func (m *Manifest) PURL() string {
	name := m.NormalizedName()
	if m.Version == "" {
		return fmt.Sprintf("pkg:pypi/%s", name)
	}
	return fmt.Sprintf("pkg:pypi/%s@%s", name, m.Version)
}

// ParsePURL parses a Package URL string into its components.
// Supports both package PURLs (pkg:pypi/px-totp) and version PURLs
// (pkg:pypi/px-totp@0.0.1).
func ParsePURL(purl string) (*PURL, error) {
	p, err := packageurl.FromString(purl)
	if err != nil {
		return nil, err
	}
	return &PURL{p}, nil
}

// ManifestFromPURL seeds a manifest with the name and version carried by a
// PURL. Only pypi-typed PURLs are accepted.
func ManifestFromPURL(purl string) (*Manifest, error) {
	p, err := ParsePURL(purl)
	if err != nil {
		return nil, err
	}
	if p.Type != "pypi" {
		return nil, fmt.Errorf("unsupported PURL type: %s", p.Type)
	}
	return &Manifest{Name: p.Name, Version: p.Version}, nil
}
