package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pthm/psc/lib/compiler"
	"github.com/pthm/psc/lib/rewrite"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            "psc",
		Usage:           "compile pre-styled components into render registries and CSS",
		Version:         version,
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "defs", Value: "components", Usage: "component definitions `DIR`"},
			&cli.StringFlag{Name: "out", Value: "static/components.css", Usage: "generated stylesheet `FILE`"},
			&cli.StringFlag{Name: "manifest", Usage: "build manifest `FILE` (default: stylesheet path + .manifest)"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "enable debug logging"},
		},
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Run one compilation pass",
				Action: runBuild,
			},
			{
				Name:   "watch",
				Usage:  "Recompile whenever the definitions directory changes",
				Action: runWatch,
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "interval", Value: 500 * time.Millisecond, Usage: "staleness poll `INTERVAL`"},
				},
			},
			{
				Name:      "rewrite",
				Usage:     "Preprocess template files, rewriting component tags",
				Action:    runRewrite,
				ArgsUsage: "TEMPLATE...",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out-dir", Usage: "write rewritten templates into `DIR` (default: STDOUT)"},
				},
			},
			{
				Name:   "inspect",
				Usage:  "Print the build manifest from the last compilation pass",
				Action: runInspect,
			},
		},
	}

	err := app.Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "psc: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the console logger. Debug level only with --verbose.
func newLogger(cmd *cli.Command) *zap.Logger {
	level := zapcore.InfoLevel
	if cmd.Bool("verbose") {
		level = zapcore.DebugLevel
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(os.Stderr), level)
	return zap.New(core)
}

func compilerOptions(cmd *cli.Command, log *zap.Logger) compiler.Options {
	out := cmd.String("out")
	manifest := cmd.String("manifest")
	if manifest == "" {
		manifest = out + ".manifest"
	}
	return compiler.Options{
		Dir:            cmd.String("defs"),
		StylesheetPath: out,
		ManifestPath:   manifest,
		Log:            log,
	}
}

func runBuild(_ context.Context, cmd *cli.Command) error {
	log := newLogger(cmd)
	defer log.Sync()

	c := compiler.New(compilerOptions(cmd, log))
	reg, err := c.Compile()
	if err != nil {
		return err
	}

	log.Info("build complete", zap.Strings("components", reg.Names()))
	return nil
}

func runWatch(ctx context.Context, cmd *cli.Command) error {
	log := newLogger(cmd)
	defer log.Sync()

	c := compiler.New(compilerOptions(cmd, log))
	if _, err := c.Compile(); err != nil {
		return err
	}

	// Prime the staleness state so the pass above is not immediately redone.
	if _, err := c.ShouldRecompile(); err != nil {
		return err
	}

	interval := cmd.Duration("interval")
	log.Info("watching definitions", zap.String("dir", cmd.String("defs")), zap.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("watch stopped")
			return nil
		case <-ticker.C:
			stale, err := c.ShouldRecompile()
			if err != nil {
				return err
			}
			if !stale {
				continue
			}
			// A broken definition should not kill the watch loop; the next
			// change re-triggers compilation.
			if _, err := c.Compile(); err != nil {
				log.Error("compilation failed", zap.Error(err))
			}
		}
	}
}

func runRewrite(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return fmt.Errorf("psc: no template files given")
	}

	outDir := cmd.String("out-dir")
	for _, path := range cmd.Args().Slice() {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("psc: reading template %s: %w", path, err)
		}

		rewritten, err := rewrite.Rewrite(path, string(src))
		if err != nil {
			return err
		}

		if outDir == "" {
			fmt.Print(rewritten)
			continue
		}
		dst := filepath.Join(outDir, filepath.Base(path))
		if err := os.WriteFile(dst, []byte(rewritten), 0o644); err != nil {
			return fmt.Errorf("psc: writing rewritten template %s: %w", dst, err)
		}
	}
	return nil
}

func runInspect(_ context.Context, cmd *cli.Command) error {
	manifest := cmd.String("manifest")
	if manifest == "" {
		manifest = cmd.String("out") + ".manifest"
	}

	man, err := compiler.ReadManifest(manifest)
	if err != nil {
		return err
	}

	fmt.Printf("generated: %s\n", man.GeneratedAt.Format(time.RFC3339))
	fmt.Printf("definitions: %s\n", man.Definitions)
	fmt.Printf("stylesheet: %s\n", man.Stylesheet)
	fmt.Printf("components: %d\n", len(man.Components))
	for _, comp := range man.Components {
		fmt.Printf("  %-20s tag=%-8s class=%-24s %s\n", comp.Name, comp.Tag, comp.ClassName, comp.Source)
	}
	return nil
}
