package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeDescription(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestBuildFromLiterals(t *testing.T) {
	readme := writeDescription(t, "README.md", "# px-totp\n\nA one-time-password generator.\n")

	m, err := NewBuilder("px-totp", "0.0.1").
		Scripts("px-totp").
		Author("P. H.", "px-totp@example.org").
		Description("Time-based One-Time Password Generator").
		LongDescriptionFile(readme).
		URL("https://github.com/perfide/px-totp").
		Classifiers(
			"Programming Language :: Python :: 3",
			"License :: OSI Approved :: BSD License",
			"Operating System :: OS Independent",
		).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if m.Name != "px-totp" {
		t.Errorf("expected name 'px-totp', got %q", m.Name)
	}
	if m.Version != "0.0.1" {
		t.Errorf("expected version '0.0.1', got %q", m.Version)
	}
	if m.Description != "Time-based One-Time Password Generator" {
		t.Errorf("unexpected description: %q", m.Description)
	}
	if m.LongDescription != "# px-totp\n\nA one-time-password generator.\n" {
		t.Errorf("unexpected long description: %q", m.LongDescription)
	}
	if m.LongDescriptionContentType != ContentTypeMarkdown {
		t.Errorf("expected markdown content type, got %q", m.LongDescriptionContentType)
	}
	if m.URL != "https://github.com/perfide/px-totp" {
		t.Errorf("unexpected URL: %q", m.URL)
	}
	if len(m.Scripts) != 1 || m.Scripts[0] != "px-totp" {
		t.Errorf("unexpected scripts: %v", m.Scripts)
	}
	if len(m.Classifiers) != 3 {
		t.Errorf("expected 3 classifiers, got %d", len(m.Classifiers))
	}
	if m.Author.String() != "P. H. <px-totp@example.org>" {
		t.Errorf("unexpected author: %q", m.Author.String())
	}
	// License derived from the BSD classifier
	if m.License != "BSD-2-Clause" {
		t.Errorf("expected license BSD-2-Clause, got %q", m.License)
	}
}

func TestBuildMissingDescriptionFile(t *testing.T) {
	_, err := NewBuilder("px-totp", "0.0.1").
		LongDescriptionFile(filepath.Join(t.TempDir(), "README.md")).
		Build()
	if err == nil {
		t.Fatal("expected error for missing description file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped fs error, got %v", err)
	}
}

func TestBuildInlineDescription(t *testing.T) {
	m, err := NewBuilder("pkg", "1.0").
		LongDescription("plain words", "").
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if m.LongDescriptionContentType != ContentTypePlain {
		t.Errorf("expected plain content type default, got %q", m.LongDescriptionContentType)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		manifest Manifest
		wantErr  bool
		field    string
	}{
		{
			name:     "valid minimal",
			manifest: Manifest{Name: "pkg", Version: "1.0.0"},
		},
		{
			name:     "missing name",
			manifest: Manifest{Version: "1.0.0"},
			wantErr:  true,
			field:    "name",
		},
		{
			name:     "missing version",
			manifest: Manifest{Name: "pkg"},
			wantErr:  true,
			field:    "version",
		},
		{
			name:     "bad name charset",
			manifest: Manifest{Name: "pkg name", Version: "1.0.0"},
			wantErr:  true,
			field:    "name",
		},
		{
			name:     "name ends with separator",
			manifest: Manifest{Name: "pkg-", Version: "1.0.0"},
			wantErr:  true,
			field:    "name",
		},
		{
			name:     "bad version",
			manifest: Manifest{Name: "pkg", Version: "not.a.version"},
			wantErr:  true,
			field:    "version",
		},
		{
			name:     "prerelease version",
			manifest: Manifest{Name: "pkg", Version: "1.2.0rc1"},
		},
		{
			name:     "dev version",
			manifest: Manifest{Name: "pkg", Version: "0.1.dev3"},
		},
		{
			name:     "bad email",
			manifest: Manifest{Name: "pkg", Version: "1.0", Author: Author{Email: "nope"}},
			wantErr:  true,
			field:    "author_email",
		},
		{
			name:     "bad url",
			manifest: Manifest{Name: "pkg", Version: "1.0", URL: "ftp://example.org/pkg"},
			wantErr:  true,
			field:    "url",
		},
		{
			name:     "unknown classifier",
			manifest: Manifest{Name: "pkg", Version: "1.0", Classifiers: []string{"Made Up :: Nonsense"}},
			wantErr:  true,
			field:    "classifiers",
		},
		{
			name: "bad content type",
			manifest: Manifest{
				Name: "pkg", Version: "1.0",
				LongDescriptionContentType: "text/html",
			},
			wantErr: true,
			field:   "long_description_content_type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.manifest)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			found := false
			for _, f := range verr.Fields {
				if f.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on field %q, got %v", tt.field, verr)
			}
		})
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"px-totp", "px-totp"},
		{"Px_TOTP", "px-totp"},
		{"a.b_c", "a-b-c"},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestContentTypeForPath(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"README.md", ContentTypeMarkdown},
		{"readme.markdown", ContentTypeMarkdown},
		{"README.rst", ContentTypeRST},
		{"README.txt", ContentTypePlain},
		{"README", ContentTypePlain},
	}
	for _, tt := range tests {
		if got := ContentTypeForPath(tt.path); got != tt.want {
			t.Errorf("ContentTypeForPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
