// Package pkginfo reads and writes core-metadata files (PKG-INFO, METADATA).
package pkginfo

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/git-pkgs/manifests/internal/core"
)

const (
	formatName      = "pkg-info"
	DefaultFilename = "PKG-INFO"

	// MetadataVersion is the core-metadata revision written by this package.
	MetadataVersion = "2.1"
)

func init() {
	core.Register(formatName, DefaultFilename, func() core.Format {
		return New()
	})
}

// Loader parses core-metadata documents.
type Loader struct{}

func New() *Loader {
	return &Loader{}
}

func (l *Loader) Name() string {
	return formatName
}

// Write renders a manifest as a core-metadata document. Header order is
// fixed so output is deterministic; the long description forms the body.
func Write(w io.Writer, m *core.Manifest) error {
	bw := bufio.NewWriter(w)

	writeField(bw, "Metadata-Version", MetadataVersion)
	writeField(bw, "Name", m.Name)
	writeField(bw, "Version", m.Version)
	writeField(bw, "Summary", m.Description)
	writeField(bw, "Home-page", m.URL)
	writeField(bw, "Author", m.Author.Name)
	writeField(bw, "Author-email", m.Author.Email)
	writeField(bw, "Maintainer", m.Maintainer.Name)
	writeField(bw, "Maintainer-email", m.Maintainer.Email)
	writeField(bw, "License", m.License)

	labels := make([]string, 0, len(m.ProjectURLs))
	for label := range m.ProjectURLs {
		labels = append(labels, label)
	}
	// Map order is random; sort for stable output.
	sort.Strings(labels)
	for _, label := range labels {
		writeField(bw, "Project-URL", label+", "+m.ProjectURLs[label])
	}

	if len(m.Keywords) > 0 {
		writeField(bw, "Keywords", strings.Join(m.Keywords, ","))
	}
	for _, c := range m.Classifiers {
		writeField(bw, "Classifier", c)
	}
	writeField(bw, "Requires-Python", m.RequiresPython)
	for _, d := range m.Dependencies {
		writeField(bw, "Requires-Dist", core.FormatRequirement(d))
	}
	writeField(bw, "Description-Content-Type", m.LongDescriptionContentType)

	if m.LongDescription != "" {
		fmt.Fprintf(bw, "\n%s", m.LongDescription)
	}

	return bw.Flush()
}

func writeField(w *bufio.Writer, key, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(w, "%s: %s\n", key, value)
}

// Parse reads a core-metadata document back into a Manifest.
func (l *Loader) Parse(r io.Reader) (*core.Manifest, error) {
	m := &core.Manifest{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var body strings.Builder
	inBody := false
	for scanner.Scan() {
		line := scanner.Text()

		if inBody {
			body.WriteString(line)
			body.WriteString("\n")
			continue
		}
		if line == "" {
			inBody = true
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("malformed metadata line: %q", line)
		}
		value = strings.TrimSpace(value)

		switch key {
		case "Metadata-Version":
			// Accepted as-is; all revisions this package reads share the
			// header subset below.
		case "Name":
			m.Name = value
		case "Version":
			m.Version = value
		case "Summary":
			m.Description = value
		case "Home-page":
			m.URL = value
		case "Author":
			m.Author.Name = value
		case "Author-email":
			m.Author.Email = value
		case "Maintainer":
			m.Maintainer.Name = value
		case "Maintainer-email":
			m.Maintainer.Email = value
		case "License":
			m.License = value
		case "Project-URL":
			label, url, ok := strings.Cut(value, ",")
			if ok {
				if m.ProjectURLs == nil {
					m.ProjectURLs = make(map[string]string)
				}
				m.ProjectURLs[strings.TrimSpace(label)] = strings.TrimSpace(url)
			}
		case "Keywords":
			for _, k := range strings.Split(value, ",") {
				if k = strings.TrimSpace(k); k != "" {
					m.Keywords = append(m.Keywords, k)
				}
			}
		case "Classifier":
			m.Classifiers = append(m.Classifiers, value)
		case "Requires-Python":
			m.RequiresPython = value
		case "Requires-Dist":
			m.Dependencies = append(m.Dependencies, core.ParseRequirement(value))
		case "Description-Content-Type":
			m.LongDescriptionContentType = value
		default:
			// Unknown headers are preserved rather than rejected; newer
			// metadata revisions add fields.
			if m.Metadata == nil {
				m.Metadata = make(map[string]any)
			}
			m.Metadata[key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading metadata: %w", err)
	}

	if body.Len() > 0 {
		m.LongDescription = strings.TrimSuffix(body.String(), "\n")
	}

	if m.Name == "" {
		return nil, &core.FieldError{Field: "Name", Reason: "required"}
	}

	return m, nil
}
