package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/wippyai/gmsbind/config"
	"github.com/wippyai/gmsbind/discover"
	"github.com/wippyai/gmsbind/discover/gosrc"
	"github.com/wippyai/gmsbind/discover/wasmexport"
	"github.com/wippyai/gmsbind/discover/witsig"
	"github.com/wippyai/gmsbind/driver"
	"github.com/wippyai/gmsbind/emit"
	"github.com/wippyai/gmsbind/session"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "gmsbind: %s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "gmsbind",
		Usage: "generate GameMaker extension descriptors for native libraries",
		Commands: []*cli.Command{
			{
				Name:      "go",
				Usage:     "scan a Go package annotated with //gms:bind directives",
				ArgsUsage: "<dir>",
				Flags:     sharedFlags(),
				Action:    action(loadGo),
			},
			{
				Name:      "wit",
				Usage:     "describe the functions declared in a WIT file",
				ArgsUsage: "<file.wit>",
				Flags:     sharedFlags(),
				Action:    action(loadWit),
			},
			{
				Name:      "wasm",
				Usage:     "describe the exported functions of a wasm core module",
				ArgsUsage: "<file.wasm>",
				Flags:     sharedFlags(),
				Action:    action(loadWasm),
			},
		},
	}
}

func sharedFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file"},
		&cli.StringFlag{Name: "name", Usage: "extension name"},
		&cli.StringFlag{Name: "artifact", Usage: "library file name the host loads"},
		&cli.StringFlag{Name: "prefix", Usage: "prefix for internal function names"},
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output directory"},
		&cli.StringFlag{Name: "ext", Usage: "descriptor file extension"},
		&cli.BoolFlag{Name: "s3", Usage: "upload to the configured S3 bucket instead of writing a file"},
		&cli.BoolFlag{Name: "print", Usage: "write the descriptor to stdout instead of persisting it"},
		&cli.BoolFlag{Name: "interactive", Aliases: []string{"i"}, Usage: "browse the generated functions"},
		&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
	}
}

// loader turns the command argument into a source and its default target.
type loader func(ctx context.Context, path string) (discover.Source, session.Target, error)

func loadGo(ctx context.Context, dir string) (discover.Source, session.Target, error) {
	pkg, err := gosrc.Load(ctx, dir)
	if err != nil {
		return nil, session.Target{}, err
	}
	target, err := pkg.Target()
	if err != nil {
		return nil, session.Target{}, err
	}
	return pkg, target, nil
}

func loadWit(_ context.Context, path string) (discover.Source, session.Target, error) {
	src, err := witsig.Load(path)
	if err != nil {
		return nil, session.Target{}, err
	}
	name := baseName(path)
	return src, session.Target{Name: name, FileName: name + ".dll", Prefix: strings.ToLower(name)}, nil
}

func loadWasm(ctx context.Context, path string) (discover.Source, session.Target, error) {
	src, err := wasmexport.LoadFile(ctx, path)
	if err != nil {
		return nil, session.Target{}, err
	}
	name := baseName(path)
	return src, session.Target{Name: name, FileName: filepath.Base(path), Prefix: strings.ToLower(name)}, nil
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func action(load loader) cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("%s: expected exactly one path argument", c.Command.Name)
		}

		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		logger, err := newLogger(cfg.Log)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
		installLogger(logger)

		opts, err := cfg.RegistryOptions()
		if err != nil {
			return err
		}
		reg := session.NewRegistry(opts...)

		ctx := c.Context
		src, target, err := load(ctx, c.Args().First())
		if err != nil {
			return fmt.Errorf("discover: %w", err)
		}
		target = overrideTarget(c, target)

		var mem *emit.MemorySink
		var sink emit.Sink
		switch {
		case c.Bool("print"):
			mem = emit.NewMemorySink()
			sink = mem
		case c.Bool("s3"):
			s3, err := cfg.S3Sink()
			if err != nil {
				return fmt.Errorf("emit: %w", err)
			}
			sink = s3
		default:
			sink = cfg.FileSink()
		}

		doc, err := driver.Run(ctx, reg, src, target, sink)
		if err != nil {
			return err
		}
		logger.Debug("session complete",
			zap.String("session", target.Name),
			zap.Int("functions", len(doc.Files.File.Functions.Items)))

		if mem != nil {
			return writeStored(os.Stdout, mem, target.Name)
		}

		printSummary(os.Stdout, target, doc)

		if c.Bool("interactive") {
			return runInteractive(target, doc)
		}
		return nil
	}
}

func writeStored(w io.Writer, mem *emit.MemorySink, name string) error {
	data, ok := mem.Get(name)
	if !ok {
		return fmt.Errorf("print: no descriptor stored for %q", name)
	}
	_, err := w.Write(data)
	return err
}

func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cfg, err
	}
	if c.IsSet("out") {
		cfg.Output.Dir = c.String("out")
	}
	if c.IsSet("ext") {
		cfg.Output.Ext = c.String("ext")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	return cfg, cfg.Validate()
}

func overrideTarget(c *cli.Context, t session.Target) session.Target {
	if c.IsSet("name") {
		t.Name = c.String("name")
	}
	if c.IsSet("artifact") {
		t.FileName = c.String("artifact")
	}
	if c.IsSet("prefix") {
		t.Prefix = c.String("prefix")
	}
	return t
}
