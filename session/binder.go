package session

import (
	"sort"

	"github.com/wippyai/gmsbind/binding"
)

// Target identifies the descriptor a session produces.
type Target struct {
	// Name is the descriptor identity, used for the output name and root label.
	Name string
	// FileName is the compiled artifact the functions belong to.
	FileName string
	// Prefix is prepended to every function's internal name.
	Prefix string
}

// Binder is one bounded accumulation of function records.
// Functions only grow while the session is active.
type Binder struct {
	Name      string
	FileName  string
	Prefix    string
	Functions []binding.FunctionRecord
}

func newBinder(t Target) *Binder {
	return &Binder{
		Name:     t.Name,
		FileName: t.FileName,
		Prefix:   t.Prefix,
	}
}

// Target returns the identity the binder was started with.
func (b *Binder) Target() Target {
	return Target{Name: b.Name, FileName: b.FileName, Prefix: b.Prefix}
}

// snapshot copies the binder so the caller owns every slice.
func (b *Binder) snapshot() *Binder {
	out := &Binder{
		Name:      b.Name,
		FileName:  b.FileName,
		Prefix:    b.Prefix,
		Functions: make([]binding.FunctionRecord, len(b.Functions)),
	}
	for i, f := range b.Functions {
		f.Args = append([]binding.ArgType(nil), f.Args...)
		out.Functions[i] = f
	}
	return out
}

// sortByPos stable-sorts records by source position. Records without a
// position keep their relative order after all positioned records.
func sortByPos(fns []binding.FunctionRecord) {
	sort.SliceStable(fns, func(i, j int) bool {
		pi, pj := fns[i].Pos, fns[j].Pos
		switch {
		case !pi.IsValid():
			return false
		case !pj.IsValid():
			return true
		default:
			return pi.Before(pj)
		}
	})
}
