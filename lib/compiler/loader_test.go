package compiler

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm/psc"
)

func writeDefinition(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing definition %s: %v", name, err)
	}
	return path
}

func TestLoadDefinition(t *testing.T) {
	dir := t.TempDir()
	path := writeDefinition(t, dir, "Title.yaml", "tag: h1\nstyle: |\n  color: red;\n")

	desc, err := loadDefinition(path)
	if err != nil {
		t.Fatalf("loadDefinition() error = %v", err)
	}

	if desc.Name != "Title" {
		t.Errorf("Name = %q, want %q", desc.Name, "Title")
	}
	if desc.Tag != "h1" {
		t.Errorf("Tag = %q, want %q", desc.Tag, "h1")
	}
	if desc.RawStyle != "color: red;\n" {
		t.Errorf("RawStyle = %q, want %q", desc.RawStyle, "color: red;\n")
	}
	if desc.ClassName != "psc-Title" {
		t.Errorf("ClassName = %q, want %q", desc.ClassName, "psc-Title")
	}
	if desc.Source != path {
		t.Errorf("Source = %q, want %q", desc.Source, path)
	}
}

func TestLoadDefinitionNoStyle(t *testing.T) {
	dir := t.TempDir()
	path := writeDefinition(t, dir, "Divider.yaml", "tag: hr\n")

	desc, err := loadDefinition(path)
	if err != nil {
		t.Fatalf("loadDefinition() error = %v", err)
	}
	if desc.RawStyle != "" {
		t.Errorf("RawStyle = %q, want empty", desc.RawStyle)
	}
}

func TestLoadDefinitionErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		wantErr error
	}{
		{"missing tag", "Title.yaml", "style: |\n  color: red;\n", psc.ErrMissingTag},
		{"empty file", "Title.yaml", "", psc.ErrMissingTag},
		{"lowercase name", "title.yaml", "tag: h1\n", psc.ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeDefinition(t, dir, tt.file, tt.body)

			_, err := loadDefinition(path)
			if err == nil {
				t.Fatal("loadDefinition() expected error, got nil")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("loadDefinition() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDefinitionUnknownField(t *testing.T) {
	dir := t.TempDir()
	path := writeDefinition(t, dir, "Title.yaml", "tga: h1\n")

	if _, err := loadDefinition(path); err == nil {
		t.Fatal("loadDefinition() expected error for unknown field, got nil")
	}
}

func TestLoadDefinitionMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeDefinition(t, dir, "Title.yaml", "tag: [unclosed\n")

	if _, err := loadDefinition(path); err == nil {
		t.Fatal("loadDefinition() expected error for malformed YAML, got nil")
	}
}

func TestListDefinitions(t *testing.T) {
	dir := t.TempDir()
	writeDefinition(t, dir, "Title.yaml", "tag: h1\n")
	writeDefinition(t, dir, "Card.yaml", "tag: div\n")
	writeDefinition(t, dir, "notes.txt", "not a definition")
	writeDefinition(t, dir, ".hidden.yaml", "tag: div\n")
	if err := os.Mkdir(filepath.Join(dir, "sub.yaml"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := listDefinitions(dir)
	if err != nil {
		t.Fatalf("listDefinitions() error = %v", err)
	}

	want := []string{filepath.Join(dir, "Card.yaml"), filepath.Join(dir, "Title.yaml")}
	if len(files) != len(want) {
		t.Fatalf("listDefinitions() = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("listDefinitions()[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestListDefinitionsMissingDir(t *testing.T) {
	if _, err := listDefinitions(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("listDefinitions() expected error for missing directory, got nil")
	}
}
