// Package client provides the HTTP layer for talking to a package index.
package client

import (
	"fmt"
	"strings"
)

// IndexURLs constructs the endpoints of a package index for a given
// distribution name and version.
type IndexURLs struct {
	baseURL string
}

// DefaultIndexURL is the canonical public index.
const DefaultIndexURL = "https://pypi.org"

// NewIndexURLs creates a URL builder for an index.
// If baseURL is empty, DefaultIndexURL is used.
func NewIndexURLs(baseURL string) *IndexURLs {
	if baseURL == "" {
		baseURL = DefaultIndexURL
	}
	return &IndexURLs{baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Base returns the index base URL.
func (u *IndexURLs) Base() string {
	return u.baseURL
}

// Project returns the human-facing project page.
func (u *IndexURLs) Project(name, version string) string {
	if version != "" {
		return fmt.Sprintf("%s/project/%s/%s/", u.baseURL, name, version)
	}
	return fmt.Sprintf("%s/project/%s/", u.baseURL, name)
}

// JSON returns the JSON API endpoint for a project or release.
func (u *IndexURLs) JSON(name, version string) string {
	if version != "" {
		return fmt.Sprintf("%s/pypi/%s/%s/json", u.baseURL, name, version)
	}
	return fmt.Sprintf("%s/pypi/%s/json", u.baseURL, name)
}

// Simple returns the simple-index page for a project.
func (u *IndexURLs) Simple(name string) string {
	return fmt.Sprintf("%s/simple/%s/", u.baseURL, name)
}

// Upload returns the legacy upload endpoint.
func (u *IndexURLs) Upload() string {
	return u.baseURL + "/legacy/"
}
