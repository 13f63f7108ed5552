// Package compiler implements the build-time component pipeline: it
// discovers component definition files, loads them into descriptors, emits
// the aggregated stylesheet, and builds the render registry templates
// dispatch through. Compilation is an ahead-of-time pass; its outputs are
// immutable for the remainder of the build.
package compiler

import (
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/pthm/psc"
)

// Options configures a Compiler.
type Options struct {
	// Dir is the definitions directory, one definition file per component.
	Dir string

	// StylesheetPath is where the aggregated stylesheet is written. The
	// file is fully regenerated on every pass.
	StylesheetPath string

	// ManifestPath is where the build manifest is written. Empty disables
	// the manifest.
	ManifestPath string

	// Log receives compilation diagnostics. Nil means no logging.
	Log *zap.Logger
}

// Compiler coordinates compilation passes and owns the staleness state for
// the watch loop. Compile and ShouldRecompile serialize through one mutex,
// so two concurrent builders cannot both observe staleness and race to
// rewrite the same stylesheet.
type Compiler struct {
	opts Options
	log  *zap.Logger

	mu       sync.Mutex
	tracking bool
	lastMod  time.Time
}

// New creates a compiler for the given options.
func New(opts Options) *Compiler {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Compiler{
		opts: opts,
		log:  log.Named("compiler"),
	}
}

// Compile runs one full compilation pass: enumerate definition files, load
// every one of them, rewrite the stylesheet from scratch, and build the
// render registry. Any definition failure aborts the whole pass; no partial
// registry or stylesheet is ever published, since the two are only correct
// together.
func (c *Compiler) Compile() (*psc.Registry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()

	files, err := listDefinitions(c.opts.Dir)
	if err != nil {
		return nil, err
	}

	var loadErrs error
	descs := make([]psc.Descriptor, 0, len(files))
	for _, file := range files {
		desc, err := loadDefinition(file)
		if err != nil {
			loadErrs = multierr.Append(loadErrs, err)
			continue
		}
		descs = append(descs, desc)
	}
	if loadErrs != nil {
		return nil, loadErrs
	}

	reg := psc.NewRegistry()
	for _, desc := range descs {
		if err := reg.Add(desc); err != nil {
			return nil, err
		}
		lintStyle(c.log, desc)
	}

	generatedAt := time.Now()
	if err := c.writeStylesheet(descs, generatedAt); err != nil {
		return nil, err
	}
	if c.opts.ManifestPath != "" {
		if err := WriteManifest(c.opts.ManifestPath, buildManifest(c.opts, descs, generatedAt)); err != nil {
			return nil, err
		}
	}

	c.log.Info("compiled components",
		zap.Int("count", len(descs)),
		zap.String("stylesheet", c.opts.StylesheetPath),
		zap.Duration("elapsed", time.Since(start)))

	return reg, nil
}

// ShouldRecompile reports whether the definitions directory's modification
// time changed since the previous check. The first check after construction
// records the current time and reports false: the initial compilation pass
// already covered the current contents. Granularity is the whole directory,
// so touching any definition file triggers a full rebuild of the component
// set.
func (c *Compiler) ShouldRecompile() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fi, err := os.Stat(c.opts.Dir)
	if err != nil {
		return false, fmt.Errorf("psc: stat definitions directory: %w", err)
	}
	current := fi.ModTime()

	if !c.tracking {
		c.tracking = true
		c.lastMod = current
		return false, nil
	}

	changed := !current.Equal(c.lastMod)
	c.lastMod = current
	if changed {
		c.log.Debug("definitions directory changed", zap.Time("modified", current))
	}
	return changed, nil
}

// writeStylesheet replaces the stylesheet output atomically: the new
// content lands under a temporary name and is renamed into place, so a
// reader never observes a half-written file.
func (c *Compiler) writeStylesheet(descs []psc.Descriptor, generatedAt time.Time) error {
	content := RenderStylesheet(descs, generatedAt)

	tmp := c.opts.StylesheetPath + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return fmt.Errorf("psc: writing stylesheet: %w", err)
	}
	if err := os.Rename(tmp, c.opts.StylesheetPath); err != nil {
		return fmt.Errorf("psc: replacing stylesheet: %w", err)
	}
	return nil
}
