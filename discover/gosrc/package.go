package gosrc

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/gmsbind/errors"
	"github.com/wippyai/gmsbind/session"
)

// Package is a parsed Go package ready for discovery.
type Package struct {
	fset  *token.FileSet
	Dir   string
	files []*ast.File
}

// Load parses every non-test .go file in dir concurrently.
func Load(ctx context.Context, dir string) (*Package, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDiscover, errors.KindNotFound, err, "read package directory "+dir)
	}

	var paths []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, errors.NotFound(errors.PhaseDiscover, "go files", dir)
	}

	pkg := &Package{
		fset:  token.NewFileSet(),
		Dir:   dir,
		files: make([]*ast.File, len(paths)),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := parser.ParseFile(pkg.fset, path, nil, parser.ParseComments|parser.SkipObjectResolution)
			if err != nil {
				return errors.Wrap(errors.PhaseParse, errors.KindInvalidSignature, err, "parse "+path)
			}
			pkg.files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	Logger().Debug("package loaded", zap.String("dir", dir), zap.Int("files", len(paths)))
	return pkg, nil
}

func (p *Package) location(pos token.Pos) []string {
	position := p.fset.Position(pos)
	return []string{filepath.Base(position.Filename), strconv.Itoa(position.Line)}
}

// Target reads the session identity from the package's single
// //gms:bind-start directive and checks that //gms:bind-end is present once.
func (p *Package) Target() (session.Target, error) {
	var starts, ends []directive
	for _, f := range p.files {
		starts = append(starts, directives(f, DirectiveStart)...)
		ends = append(ends, directives(f, DirectiveEnd)...)
	}

	switch len(starts) {
	case 0:
		return session.Target{}, errors.NotFound(errors.PhaseDiscover, "directive "+DirectiveStart, p.Dir)
	case 1:
	default:
		return session.Target{}, errors.InvalidDirective(p.location(starts[1].c.Pos()),
			"more than one "+DirectiveStart+" directive")
	}

	start := starts[0]
	if len(start.args) != 3 {
		return session.Target{}, errors.InvalidDirective(p.location(start.c.Pos()),
			"expected "+DirectiveStart+" <name> <artifact> <prefix>")
	}

	switch len(ends) {
	case 0:
		return session.Target{}, errors.InvalidDirective(p.location(start.c.Pos()),
			"missing "+DirectiveEnd)
	case 1:
		if len(ends[0].args) != 0 {
			return session.Target{}, errors.InvalidDirective(p.location(ends[0].c.Pos()),
				DirectiveEnd+" takes no arguments")
		}
	default:
		return session.Target{}, errors.InvalidDirective(p.location(ends[1].c.Pos()),
			"more than one "+DirectiveEnd+" directive")
	}

	return session.Target{
		Name:     start.args[0],
		FileName: start.args[1],
		Prefix:   start.args[2],
	}, nil
}

// Discover appends a record for every //gms:bind function. Files are
// walked concurrently.
func (p *Package) Discover(ctx context.Context, reg *session.Registry) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, f := range p.files {
		g.Go(func() error {
			return p.discoverFile(ctx, f, reg)
		})
	}
	return g.Wait()
}

func (p *Package) discoverFile(ctx context.Context, f *ast.File, reg *session.Registry) error {
	if err := p.checkOrphans(f); err != nil {
		return err
	}

	count := 0
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || !hasBind(fn.Doc) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rec, err := p.record(fn)
		if err != nil {
			return err
		}
		if err := reg.Append(rec); err != nil {
			return err
		}
		count++
	}

	if count > 0 {
		Logger().Debug("file discovered",
			zap.String("file", filepath.Base(p.fset.Position(f.Package).Filename)),
			zap.Int("functions", count))
	}
	return nil
}

// checkOrphans fails on a //gms:bind that is not part of a function's doc
// comment, such as one separated from its function by a blank line.
func (p *Package) checkOrphans(f *ast.File) error {
	owned := make(map[*ast.Comment]bool)
	for _, decl := range f.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && fn.Doc != nil {
			for _, c := range fn.Doc.List {
				owned[c] = true
			}
		}
	}

	for _, d := range directives(f, DirectiveBind) {
		if !owned[d.c] {
			return errors.InvalidDirective(p.location(d.c.Pos()),
				DirectiveBind+" must be in the doc comment of a function")
		}
	}
	return nil
}
