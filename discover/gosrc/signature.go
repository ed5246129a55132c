package gosrc

import (
	"go/ast"
	"go/types"
	"path/filepath"

	"github.com/wippyai/gmsbind/binding"
	"github.com/wippyai/gmsbind/errors"
)

func (p *Package) record(fn *ast.FuncDecl) (binding.FunctionRecord, error) {
	name := fn.Name.Name
	loc := p.location(fn.Pos())

	if fn.Recv != nil {
		return binding.FunctionRecord{}, errors.InvalidSignature(loc, name, "methods cannot be bound")
	}
	if fn.Type.TypeParams != nil && len(fn.Type.TypeParams.List) > 0 {
		return binding.FunctionRecord{}, errors.InvalidSignature(loc, name, "generic functions cannot be bound")
	}

	sig, err := signature(fn.Type)
	if err != nil {
		err.Path = loc
		err.Name = name
		return binding.FunctionRecord{}, err
	}

	position := p.fset.Position(fn.Pos())
	return binding.RecordAt(name, sig, binding.Pos{
		File:   filepath.Base(position.Filename),
		Line:   position.Line,
		Column: position.Column,
	}), nil
}

func signature(ft *ast.FuncType) (binding.Signature, *errors.Error) {
	var sig binding.Signature

	if ft.Params != nil {
		for _, field := range ft.Params.List {
			if _, ok := field.Type.(*ast.Ellipsis); ok {
				return sig, errors.InvalidSignature(nil, "", "variadic parameters are not supported")
			}
			desc := typeDesc(field.Type)
			for range max(len(field.Names), 1) {
				sig.Params = append(sig.Params, desc)
			}
		}
	}

	if ft.Results != nil {
		n := 0
		for _, field := range ft.Results.List {
			n += max(len(field.Names), 1)
		}
		if n > 1 {
			return sig, errors.InvalidSignature(nil, "", "at most one result is supported")
		}
		if n == 1 {
			desc := typeDesc(ft.Results.List[0].Type)
			sig.Result = &desc
		}
	}

	return sig, nil
}

// typeDesc maps Go type syntax to a structural description. Pointer types
// and unsafe.Pointer are indirections.
func typeDesc(expr ast.Expr) binding.TypeDesc {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return binding.Pointer(types.ExprString(t.X))
	case *ast.ParenExpr:
		return typeDesc(t.X)
	case *ast.SelectorExpr:
		if pkg, ok := t.X.(*ast.Ident); ok && pkg.Name == "unsafe" && t.Sel.Name == "Pointer" {
			return binding.Pointer("unsafe.Pointer")
		}
	}
	return binding.Direct(types.ExprString(expr))
}
