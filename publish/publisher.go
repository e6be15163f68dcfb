// Package publish uploads built distributions to a package index, with
// pre-upload availability checks and per-index circuit breaking.
package publish

import (
	"bytes"
	"context"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/git-pkgs/manifests/client"
	"github.com/git-pkgs/manifests/internal/core"
	"github.com/git-pkgs/manifests/internal/pkginfo"
)

var (
	ErrAlreadyExists = errors.New("file already exists on index")
	ErrUnauthorized  = errors.New("index rejected credentials")
)

// PublisherInterface defines the operations of an index publisher.
type PublisherInterface interface {
	Upload(ctx context.Context, m *core.Manifest, distPath string) error
	Check(ctx context.Context, name, version string) (*Availability, error)
}

// Publisher uploads distributions to one package index.
type Publisher struct {
	client   *client.Client
	urls     *client.IndexURLs
	username string
	password string
	filetype string
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithClient sets the HTTP client.
func WithClient(c *client.Client) Option {
	return func(p *Publisher) {
		p.client = c
	}
}

// WithToken authenticates with an index API token.
func WithToken(token string) Option {
	return func(p *Publisher) {
		p.username = "__token__"
		p.password = token
	}
}

// WithCredentials authenticates with a username and password.
func WithCredentials(username, password string) Option {
	return func(p *Publisher) {
		p.username = username
		p.password = password
	}
}

// WithFiletype sets the distribution file type (default "sdist").
func WithFiletype(ft string) Option {
	return func(p *Publisher) {
		p.filetype = ft
	}
}

// NewPublisher creates a publisher for the index at baseURL.
// If baseURL is empty, the canonical public index is used.
func NewPublisher(baseURL string, opts ...Option) *Publisher {
	p := &Publisher{
		urls:     client.NewIndexURLs(baseURL),
		filetype: "sdist",
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.client == nil {
		p.client = client.DefaultClient()
	}
	return p
}

// URLs returns the URL builder for the target index.
func (p *Publisher) URLs() *client.IndexURLs {
	return p.urls
}

// Upload sends a distribution file and its manifest metadata to the index
// using the legacy file_upload protocol. The manifest must already be
// validated; Upload validates again as a final gate.
func (p *Publisher) Upload(ctx context.Context, m *core.Manifest, distPath string) error {
	if err := core.Validate(m); err != nil {
		return err
	}

	dist, err := os.ReadFile(distPath)
	if err != nil {
		return fmt.Errorf("reading distribution: %w", err)
	}

	body, contentType, err := buildUploadForm(m, filepath.Base(distPath), dist, p.filetype)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.urls.Upload(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}
	if p.username != "" {
		req.SetBasicAuth(p.username, p.password)
	}

	resp, err := p.client.Do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return nil

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized

	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusConflict:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		if strings.Contains(strings.ToLower(string(msg)), "already exists") ||
			resp.StatusCode == http.StatusConflict {
			return fmt.Errorf("%s %s: %w", m.Name, m.Version, ErrAlreadyExists)
		}
		return &client.HTTPError{StatusCode: resp.StatusCode, URL: p.urls.Upload(), Body: string(msg)}

	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &client.HTTPError{StatusCode: resp.StatusCode, URL: p.urls.Upload(), Body: string(msg)}
	}
}

// buildUploadForm assembles the multipart form the legacy upload endpoint
// expects: protocol fields, every metadata field, digests, then the file.
func buildUploadForm(m *core.Manifest, filename string, dist []byte, filetype string) (body []byte, contentType string, err error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	sha := sha256.Sum256(dist)
	sum := md5.Sum(dist)

	fields := [][2]string{
		{":action", "file_upload"},
		{"protocol_version", "1"},
		{"metadata_version", pkginfo.MetadataVersion},
		{"name", m.Name},
		{"version", m.Version},
		{"filetype", filetype},
		{"pyversion", "source"},
		{"summary", m.Description},
		{"description", m.LongDescription},
		{"description_content_type", m.LongDescriptionContentType},
		{"author", m.Author.Name},
		{"author_email", m.Author.Email},
		{"maintainer", m.Maintainer.Name},
		{"maintainer_email", m.Maintainer.Email},
		{"license", m.License},
		{"home_page", m.URL},
		{"keywords", strings.Join(m.Keywords, ",")},
		{"requires_python", m.RequiresPython},
		{"sha256_digest", hex.EncodeToString(sha[:])},
		{"md5_digest", hex.EncodeToString(sum[:])},
	}
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("writing form field %s: %w", f[0], err)
		}
	}

	for _, c := range m.Classifiers {
		if err := w.WriteField("classifiers", c); err != nil {
			return nil, "", fmt.Errorf("writing classifier: %w", err)
		}
	}
	for _, d := range m.Dependencies {
		if err := w.WriteField("requires_dist", core.FormatRequirement(d)); err != nil {
			return nil, "", fmt.Errorf("writing requires_dist: %w", err)
		}
	}
	for label, u := range m.ProjectURLs {
		if err := w.WriteField("project_urls", label+", "+u); err != nil {
			return nil, "", fmt.Errorf("writing project_urls: %w", err)
		}
	}

	part, err := w.CreateFormFile("content", filename)
	if err != nil {
		return nil, "", fmt.Errorf("creating file part: %w", err)
	}
	if _, err := part.Write(dist); err != nil {
		return nil, "", fmt.Errorf("writing file part: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing form: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
