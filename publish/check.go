package publish

import (
	"context"
	"errors"
	"fmt"

	"github.com/git-pkgs/manifests/client"
	"github.com/git-pkgs/manifests/internal/core"
)

// Availability describes what the index already holds for a project.
type Availability struct {
	Name          string
	NameTaken     bool
	VersionTaken  bool
	LatestVersion string
	Versions      []string
}

type projectResponse struct {
	Info struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"info"`
	Releases map[string][]struct {
		Yanked bool `json:"yanked"`
	} `json:"releases"`
}

// Check probes the index JSON API before an upload: whether the project name
// is taken at all, and whether the exact version already has a release.
// An unknown name is availability, not an error.
func (p *Publisher) Check(ctx context.Context, name, version string) (*Availability, error) {
	normalized := core.NormalizeName(name)
	url := p.urls.JSON(normalized, "")

	var resp projectResponse
	if err := p.client.GetJSON(ctx, url, &resp); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return &Availability{Name: normalized}, nil
		}
		return nil, fmt.Errorf("checking %s: %w", normalized, err)
	}

	avail := &Availability{
		Name:          normalized,
		NameTaken:     true,
		LatestVersion: resp.Info.Version,
	}
	for num := range resp.Releases {
		avail.Versions = append(avail.Versions, num)
		if version != "" && num == version {
			avail.VersionTaken = true
		}
	}
	return avail, nil
}

// CheckManifest runs Check for a manifest's own name and version.
func (p *Publisher) CheckManifest(ctx context.Context, m *core.Manifest) (*Availability, error) {
	return p.Check(ctx, m.Name, m.Version)
}
