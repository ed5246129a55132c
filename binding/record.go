package binding

import "fmt"

// Pos is a source location used as a secondary ordering key.
// The zero Pos means the location is unknown.
type Pos struct {
	File   string
	Line   int
	Column int
}

func (p Pos) IsValid() bool {
	return p.File != "" || p.Line > 0
}

// Before orders positions by file, then line, then column.
func (p Pos) Before(o Pos) bool {
	if p.File != o.File {
		return p.File < o.File
	}
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Column < o.Column
}

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Signature is the raw shape of an exported function as a front end sees it.
type Signature struct {
	Result *TypeDesc
	Params []TypeDesc
}

// FunctionRecord is the captured shape of one exported function.
// Help is always empty under the current documentation policy.
type FunctionRecord struct {
	Name   string
	Help   string
	Args   []ArgType
	Pos    Pos
	Return ArgType
}

// Record classifies every parameter in declaration order and the result.
func Record(name string, sig Signature) FunctionRecord {
	args := make([]ArgType, len(sig.Params))
	for i, p := range sig.Params {
		args[i] = Classify(p)
	}
	return FunctionRecord{
		Name:   name,
		Args:   args,
		Return: ClassifyResult(sig.Result),
	}
}

// RecordAt is Record with a source position attached.
func RecordAt(name string, sig Signature, pos Pos) FunctionRecord {
	r := Record(name, sig)
	r.Pos = pos
	return r
}
