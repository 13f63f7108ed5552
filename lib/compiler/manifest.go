package compiler

import (
	"fmt"
	"os"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/pthm/psc"
)

// Manifest is the sidecar record of a compilation pass, written next to the
// stylesheet. Tooling (psc inspect) reads it to see what the last pass
// produced without recompiling.
type Manifest struct {
	GeneratedAt time.Time           `msgpack:"generated_at"`
	Definitions string              `msgpack:"definitions"`
	Stylesheet  string              `msgpack:"stylesheet"`
	Components  []ManifestComponent `msgpack:"components"`
}

// ManifestComponent records one compiled component.
type ManifestComponent struct {
	Name      string `msgpack:"name"`
	Tag       string `msgpack:"tag"`
	ClassName string `msgpack:"class_name"`
	Source    string `msgpack:"source"`
}

// buildManifest assembles the manifest for one pass.
func buildManifest(opts Options, descs []psc.Descriptor, generatedAt time.Time) Manifest {
	man := Manifest{
		GeneratedAt: generatedAt,
		Definitions: opts.Dir,
		Stylesheet:  opts.StylesheetPath,
		Components:  make([]ManifestComponent, 0, len(descs)),
	}
	for _, desc := range descs {
		man.Components = append(man.Components, ManifestComponent{
			Name:      desc.Name,
			Tag:       desc.Tag,
			ClassName: desc.ClassName,
			Source:    desc.Source,
		})
	}
	return man
}

// WriteManifest encodes the manifest to path.
func WriteManifest(path string, man Manifest) error {
	data, err := msgpack.Marshal(man)
	if err != nil {
		return fmt.Errorf("psc: encoding manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("psc: writing manifest: %w", err)
	}
	return nil
}

// ReadManifest decodes the manifest at path.
func ReadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("psc: reading manifest: %w", err)
	}
	var man Manifest
	if err := msgpack.Unmarshal(data, &man); err != nil {
		return Manifest{}, fmt.Errorf("psc: decoding manifest: %w", err)
	}
	return man, nil
}
