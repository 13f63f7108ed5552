package compiler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm/psc"
)

// DefinitionExt is the extension component definition files must carry.
const DefinitionExt = ".yaml"

// definition is the on-disk shape of a component definition file. The name
// is not part of the document: it is derived from the file's base name, so
// a definition cannot declare an identifier that disagrees with where it
// lives.
type definition struct {
	Tag   string `yaml:"tag"`
	Style string `yaml:"style"`
}

// listDefinitions enumerates definition files in dir. os.ReadDir returns
// entries sorted by name, so discovery order is deterministic across passes.
func listDefinitions(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("psc: reading definitions directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if filepath.Ext(name) != DefinitionExt {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	return files, nil
}

// loadDefinition evaluates one definition file into a descriptor. The
// component name is the file's base name without extension. Unknown keys
// are rejected so a typoed "tga:" fails the pass instead of silently
// producing a component with no tag.
func loadDefinition(path string) (psc.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return psc.Descriptor{}, fmt.Errorf("psc: reading definition %s: %w", path, err)
	}

	var def definition
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil && !errors.Is(err, io.EOF) {
		return psc.Descriptor{}, fmt.Errorf("psc: parsing definition %s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), DefinitionExt)
	desc, err := psc.NewDescriptor(name, def.Tag, def.Style, path)
	if err != nil {
		return psc.Descriptor{}, fmt.Errorf("definition %s: %w", path, err)
	}
	return desc, nil
}
