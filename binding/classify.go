package binding

// TypeDesc is a syntax-independent description of a parameter or result type.
// Name is informational; only Indirect drives classification.
type TypeDesc struct {
	Name     string
	Indirect bool
}

// Direct describes a by-value type.
func Direct(name string) TypeDesc {
	return TypeDesc{Name: name}
}

// Pointer describes a reference or pointer indirection to name.
func Pointer(name string) TypeDesc {
	return TypeDesc{Name: name, Indirect: true}
}

func (d TypeDesc) String() string {
	if d.Indirect {
		return "*" + d.Name
	}
	return d.Name
}

// Classify maps a type description to its bucket.
func Classify(d TypeDesc) ArgType {
	if d.Indirect {
		return Text
	}
	return Number
}

// ClassifyResult classifies an optional result type; no result is Number.
func ClassifyResult(d *TypeDesc) ArgType {
	if d == nil {
		return Number
	}
	return Classify(*d)
}
