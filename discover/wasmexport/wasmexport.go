// Package wasmexport discovers the exported functions of a compiled wasm
// core module.
//
// The module is compiled with wazero but never instantiated. Exports are
// ordered by function index, then export name. externref values are host
// references and classify as Text; i32, i64, f32, f64 and v128 are Number.
package wasmexport

import (
	"context"
	"os"
	"sort"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/gmsbind/binding"
	"github.com/wippyai/gmsbind/errors"
	"github.com/wippyai/gmsbind/session"
)

// Export is one exported function of the module.
type Export struct {
	Name  string
	Sig   binding.Signature
	Index uint32
}

// Source feeds module exports into a session.
type Source struct {
	Exports []Export
}

// LoadFile reads and inspects a .wasm file.
func LoadFile(ctx context.Context, path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDiscover, errors.KindNotFound, err, "read "+path)
	}
	return Load(ctx, data)
}

// Load compiles wasmBytes and collects its exported functions.
func Load(ctx context.Context, wasmBytes []byte) (*Source, error) {
	rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfigInterpreter())
	defer rt.Close(ctx)

	compiled, err := rt.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindInvalidInput, err, "compile module")
	}
	defer compiled.Close(ctx)

	src := &Source{}
	for name, def := range compiled.ExportedFunctions() {
		sig, err := signature(def)
		if err != nil {
			err.Name = name
			return nil, err
		}
		src.Exports = append(src.Exports, Export{Name: name, Sig: sig, Index: def.Index()})
	}

	sort.Slice(src.Exports, func(i, j int) bool {
		a, b := src.Exports[i], src.Exports[j]
		if a.Index != b.Index {
			return a.Index < b.Index
		}
		return a.Name < b.Name
	})
	return src, nil
}

// Discover appends one record per export.
func (s *Source) Discover(ctx context.Context, reg *session.Registry) error {
	for _, e := range s.Exports {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := reg.Append(binding.Record(e.Name, e.Sig)); err != nil {
			return err
		}
	}
	return nil
}

func signature(def api.FunctionDefinition) (binding.Signature, *errors.Error) {
	var sig binding.Signature
	for _, vt := range def.ParamTypes() {
		sig.Params = append(sig.Params, typeDesc(vt))
	}

	results := def.ResultTypes()
	switch len(results) {
	case 0:
	case 1:
		desc := typeDesc(results[0])
		sig.Result = &desc
	default:
		return sig, errors.InvalidSignature(nil, "", "at most one result is supported")
	}
	return sig, nil
}

func typeDesc(vt api.ValueType) binding.TypeDesc {
	name := api.ValueTypeName(vt)
	if vt == api.ValueTypeExternref {
		return binding.Pointer(name)
	}
	return binding.Direct(name)
}
