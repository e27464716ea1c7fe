package manifest

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

const testdataDir = "testdata"

func testPath(name string) string {
	return filepath.Join(testdataDir, name)
}

func TestLoad_YAML(t *testing.T) {
	c, err := Load(testPath("valid-catalog.yaml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if c.Version != "1.2.0" {
		t.Errorf("Version = %q, want %q", c.Version, "1.2.0")
	}
	if len(c.Categories) != 1 {
		t.Fatalf("Categories len = %d, want 1", len(c.Categories))
	}
	if got := c.Categories[0].Examples; len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Categories[0].Examples = %v, want [a b]", got)
	}
	if len(c.Examples) != 2 {
		t.Fatalf("Examples len = %d, want 2", len(c.Examples))
	}
	a := c.Examples[0]
	if a.Contract != "contracts/A.sol" {
		t.Errorf("Contract = %q, want %q", a.Contract, "contracts/A.sol")
	}
	if len(a.LearningObjectives) != 1 || a.LearningObjectives[0] != "Learn A" {
		t.Errorf("LearningObjectives = %v, want [Learn A]", a.LearningObjectives)
	}
	if c.Examples[1].Test != "" {
		t.Errorf("Examples[1].Test = %q, want empty", c.Examples[1].Test)
	}
}

func TestLoad_TOML(t *testing.T) {
	c, err := Load(testPath("valid-catalog.toml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(c.Examples) != 2 {
		t.Fatalf("Examples len = %d, want 2", len(c.Examples))
	}
	if c.Examples[0].Test != "test/A.ts" {
		t.Errorf("Examples[0].Test = %q, want %q", c.Examples[0].Test, "test/A.ts")
	}
	if got := c.Examples[1].Prerequisites; len(got) != 1 || got[0] != "a" {
		t.Errorf("Examples[1].Prerequisites = %v, want [a]", got)
	}
	if c.Categories[0].Difficulty != "beginner" {
		t.Errorf("Categories[0].Difficulty = %q, want beginner", c.Categories[0].Difficulty)
	}
}

func TestLoad_SchemaErrors(t *testing.T) {
	tests := []struct {
		file string
		path string // expected instance location in at least one issue
	}{
		{"invalid-bad-difficulty.yaml", "/examples/0/difficulty"},
		{"invalid-missing-contract.yaml", "/examples/0"},
		{"invalid-unknown-field.yaml", "/categories/0"},
		{"invalid-bad-name-pattern.yaml", "/examples/0/name"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			_, err := Load(testPath(tt.file))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected *SchemaError, got %T: %v", err, err)
			}
			found := false
			for _, issue := range schemaErr.Issues {
				if issue.Path == tt.path {
					found = true
				}
			}
			if !found {
				t.Errorf("no issue at %s in %+v", tt.path, schemaErr.Issues)
			}
		})
	}
}

func TestLoad_UnsupportedVersion(t *testing.T) {
	_, err := Load(testPath("unsupported-version.yaml"))
	if err == nil {
		t.Fatal("expected error for version 2.0.0")
	}
	if !strings.Contains(err.Error(), "not supported") {
		t.Errorf("error = %v, want mention of unsupported version", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	if _, err := Load(testPath("invalid-not-yaml.yaml")); err == nil {
		t.Fatal("expected error for invalid YAML, got nil")
	}
}

func TestLoad_NotFound(t *testing.T) {
	if _, err := Load(testPath("nonexistent.yaml")); err == nil {
		t.Fatal("expected error for nonexistent file, got nil")
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	_, err := Load(testPath("catalog.json"))
	if err == nil {
		t.Fatal("expected error for .json catalog")
	}
	if !strings.Contains(err.Error(), "unsupported catalog extension") {
		t.Errorf("error = %v", err)
	}
}

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	if len(c.Categories) == 0 || len(c.Examples) == 0 {
		t.Fatalf("default catalog is empty: %d categories, %d examples", len(c.Categories), len(c.Examples))
	}

	// Every category member of the shipped catalog must be a declared example.
	names := make(map[string]bool, len(c.Examples))
	for _, e := range c.Examples {
		names[e.Name] = true
	}
	for _, cat := range c.Categories {
		for _, member := range cat.Examples {
			if !names[member] {
				t.Errorf("category %s lists unknown example %s", cat.Name, member)
			}
		}
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"catalog.yaml", FormatYAML, false},
		{"catalog.YML", FormatYAML, false},
		{"dir/catalog.toml", FormatTOML, false},
		{"catalog.json", "", true},
		{"catalog", "", true},
	}

	for _, tt := range tests {
		got, err := DetectFormat(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("DetectFormat(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("DetectFormat(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		version string
		wantErr bool
	}{
		{"1.0.0", false},
		{"1.9.3", false},
		{"0.9.0", true},
		{"2.0.0", true},
		{"not-a-version", true},
		{"", true},
	}

	for _, tt := range tests {
		err := CheckVersion(tt.version)
		if (err != nil) != tt.wantErr {
			t.Errorf("CheckVersion(%q) error = %v, wantErr %v", tt.version, err, tt.wantErr)
		}
	}
}
