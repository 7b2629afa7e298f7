package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"trustdebt/internal/errors"
)

func writeCatalogFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCatalogYAML(t *testing.T) {
	path := writeCatalogFile(t, "categories.yaml", `
version: 1
categories:
  - id: performance
    name: Performance
    keywords: [latency, throughput, cache]
    weight: 1.5
  - id: caching
    parent: performance
    keywords: [cache, eviction]
    weight: 1.0
`)

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(catalog.Categories) != 2 {
		t.Fatalf("categories = %d, want 2", len(catalog.Categories))
	}

	perf := catalog.ByID("performance")
	if perf == nil || perf.Weight != 1.5 || perf.Depth != 0 {
		t.Errorf("performance = %+v, want weight 1.5 depth 0", perf)
	}

	caching := catalog.ByID("caching")
	if caching == nil || caching.Depth != 1 {
		t.Errorf("caching depth = %+v, want 1", caching)
	}
	if caching.Name != "caching" {
		t.Errorf("missing name should default to id, got %q", caching.Name)
	}
}

func TestLoadCatalogTOML(t *testing.T) {
	path := writeCatalogFile(t, "categories.toml", `
version = 1

[[categories]]
id = "security"
name = "Security"
keywords = ["auth", "token", "encryption"]
weight = 2.0
`)

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if got := catalog.ByID("security"); got == nil || got.Weight != 2.0 {
		t.Errorf("security = %+v, want weight 2.0", got)
	}
}

func TestLoadCatalogRejections(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantCode errors.ErrorCode
	}{
		{
			name:     "unsupported extension",
			file:     "categories.ini",
			content:  "whatever",
			wantCode: errors.ConfigInvalid,
		},
		{
			name:     "invalid yaml",
			file:     "categories.yaml",
			content:  "categories: [unclosed",
			wantCode: errors.ConfigInvalid,
		},
		{
			name:     "no categories",
			file:     "categories.yaml",
			content:  "version: 1\ncategories: []\n",
			wantCode: errors.ConfigInvalid,
		},
		{
			name: "missing id",
			file: "categories.yaml",
			content: `categories:
  - name: Nameless
    keywords: [x]
    weight: 1
`,
			wantCode: errors.CategoryInvalid,
		},
		{
			name: "duplicate id",
			file: "categories.yaml",
			content: `categories:
  - {id: a, keywords: [x], weight: 1}
  - {id: a, keywords: [y], weight: 1}
`,
			wantCode: errors.CategoryInvalid,
		},
		{
			name: "empty keywords",
			file: "categories.yaml",
			content: `categories:
  - {id: a, keywords: [], weight: 1}
`,
			wantCode: errors.CategoryInvalid,
		},
		{
			name: "non-positive weight",
			file: "categories.yaml",
			content: `categories:
  - {id: a, keywords: [x], weight: 0}
`,
			wantCode: errors.CategoryInvalid,
		},
		{
			name: "unknown parent",
			file: "categories.yaml",
			content: `categories:
  - {id: a, parent: ghost, keywords: [x], weight: 1}
`,
			wantCode: errors.CategoryInvalid,
		},
		{
			name: "parent cycle",
			file: "categories.yaml",
			content: `categories:
  - {id: a, parent: b, keywords: [x], weight: 1}
  - {id: b, parent: a, keywords: [y], weight: 1}
`,
			wantCode: errors.CategoryInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCatalogFile(t, tt.file, tt.content)
			_, err := LoadCatalog(path)
			if err == nil {
				t.Fatal("LoadCatalog should fail")
			}
			if got := errors.CodeOf(err); got != tt.wantCode {
				t.Errorf("error code = %v, want %v", got, tt.wantCode)
			}
		})
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("missing file should fail")
	}
	if errors.CodeOf(err) != errors.ConfigInvalid {
		t.Errorf("error code = %v, want ConfigInvalid", errors.CodeOf(err))
	}
}
