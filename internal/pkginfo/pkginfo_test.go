package pkginfo

import (
	"bytes"
	"strings"
	"testing"

	"github.com/git-pkgs/manifests/internal/core"
)

func sampleManifest() *core.Manifest {
	return &core.Manifest{
		Name:                       "px-totp",
		Version:                    "0.0.1",
		Description:                "Time-based One-Time Password Generator",
		LongDescription:            "# px-totp\n\nA one-time-password generator.",
		LongDescriptionContentType: core.ContentTypeMarkdown,
		Author:                     core.Author{Name: "P. H.", Email: "px-totp@example.org"},
		License:                    "BSD-2-Clause",
		URL:                        "https://github.com/perfide/px-totp",
		ProjectURLs: map[string]string{
			"Issues":   "https://github.com/perfide/px-totp/issues",
			"Homepage": "https://github.com/perfide/px-totp",
		},
		Keywords: []string{"totp", "cli"},
		Classifiers: []string{
			"Programming Language :: Python :: 3",
			"License :: OSI Approved :: BSD License",
			"Operating System :: OS Independent",
		},
		RequiresPython: ">=3.8",
		Dependencies: []core.Dependency{
			{Name: "click", Requirements: ">=8.0", Scope: core.Runtime},
		},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleManifest()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()

	wantLines := []string{
		"Metadata-Version: 2.1",
		"Name: px-totp",
		"Version: 0.0.1",
		"Summary: Time-based One-Time Password Generator",
		"Home-page: https://github.com/perfide/px-totp",
		"Author: P. H.",
		"Author-email: px-totp@example.org",
		"License: BSD-2-Clause",
		"Project-URL: Homepage, https://github.com/perfide/px-totp",
		"Project-URL: Issues, https://github.com/perfide/px-totp/issues",
		"Keywords: totp,cli",
		"Classifier: Programming Language :: Python :: 3",
		"Classifier: License :: OSI Approved :: BSD License",
		"Classifier: Operating System :: OS Independent",
		"Requires-Python: >=3.8",
		"Requires-Dist: click >=8.0",
		"Description-Content-Type: text/markdown",
	}
	for _, line := range wantLines {
		if !strings.Contains(out, line+"\n") {
			t.Errorf("output missing line %q\n%s", line, out)
		}
	}

	if !strings.HasPrefix(out, "Metadata-Version: 2.1\nName: px-totp\n") {
		t.Errorf("unexpected header order:\n%s", out)
	}
	if !strings.HasSuffix(out, "\n\n# px-totp\n\nA one-time-password generator.") {
		t.Errorf("expected body after blank line:\n%s", out)
	}

	// Project-URL labels sort for deterministic output
	if strings.Index(out, "Project-URL: Homepage") > strings.Index(out, "Project-URL: Issues") {
		t.Error("expected Project-URL headers in sorted label order")
	}
}

func TestWriteSkipsEmptyFields(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, &core.Manifest{Name: "pkg", Version: "1.0"})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "Summary:") || strings.Contains(out, "Author:") {
		t.Errorf("expected empty fields omitted:\n%s", out)
	}
}

func TestRoundTrip(t *testing.T) {
	want := sampleManifest()

	var buf bytes.Buffer
	if err := Write(&buf, want); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := New().Parse(&buf)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if got.Name != want.Name || got.Version != want.Version {
		t.Errorf("identity mismatch: got %s %s", got.Name, got.Version)
	}
	if got.Description != want.Description {
		t.Errorf("unexpected summary: %q", got.Description)
	}
	if got.LongDescription != want.LongDescription {
		t.Errorf("body mismatch:\n%q\nwant\n%q", got.LongDescription, want.LongDescription)
	}
	if got.Author != want.Author {
		t.Errorf("unexpected author: %+v", got.Author)
	}
	if len(got.Classifiers) != 3 {
		t.Errorf("expected 3 classifiers, got %v", got.Classifiers)
	}
	if len(got.Dependencies) != 1 || got.Dependencies[0].Name != "click" {
		t.Errorf("unexpected dependencies: %v", got.Dependencies)
	}
	if got.ProjectURLs["Issues"] != want.ProjectURLs["Issues"] {
		t.Errorf("unexpected project urls: %v", got.ProjectURLs)
	}
}

func TestParseUnknownHeaderPreserved(t *testing.T) {
	doc := "Metadata-Version: 2.1\nName: pkg\nVersion: 1.0\nProvides-Extra: test\n"
	m, err := New().Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if m.Metadata["Provides-Extra"] != "test" {
		t.Errorf("expected unknown header preserved, got %v", m.Metadata)
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := New().Parse(strings.NewReader("Name pkg without colon\n"))
	if err == nil {
		t.Fatal("expected error for malformed header line")
	}
}

func TestParseMissingName(t *testing.T) {
	_, err := New().Parse(strings.NewReader("Metadata-Version: 2.1\nVersion: 1.0\n"))
	if err == nil {
		t.Fatal("expected error for missing Name")
	}
}
