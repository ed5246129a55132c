package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgTypeString(t *testing.T) {
	assert.Equal(t, "number", Number.String())
	assert.Equal(t, "text", Text.String())
	assert.Equal(t, "unknown", ArgType(9).String())
}

func TestArgTypeCode(t *testing.T) {
	assert.Equal(t, 1, Text.Code())
	assert.Equal(t, 2, Number.Code())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		desc TypeDesc
		want ArgType
	}{
		{Direct("f64"), Number},
		{Direct("i32"), Number},
		{Direct("bool"), Number},
		{Direct(""), Number},
		{Direct("str"), Number},
		{Pointer("str"), Text},
		{Pointer("C.char"), Text},
		{Pointer(""), Text},
		{TypeDesc{Name: "Node", Indirect: true}, Text},
	}

	for _, tc := range tests {
		t.Run(tc.desc.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.desc))
		})
	}
}

func TestClassify_TextIffIndirect(t *testing.T) {
	for _, name := range []string{"", "f64", "u8", "string", "list<u8>", "C.double"} {
		for _, indirect := range []bool{false, true} {
			got := Classify(TypeDesc{Name: name, Indirect: indirect})
			assert.Equal(t, indirect, got == Text, "name=%q indirect=%v", name, indirect)
		}
	}
}

func TestClassifyResult(t *testing.T) {
	assert.Equal(t, Number, ClassifyResult(nil))
	ptr := Pointer("str")
	assert.Equal(t, Text, ClassifyResult(&ptr))
	num := Direct("f64")
	assert.Equal(t, Number, ClassifyResult(&num))
}

func TestRecord(t *testing.T) {
	ret := Direct("f64")
	rec := Record("node_y", Signature{
		Params: []TypeDesc{Pointer("str"), Direct("f64"), Direct("u32")},
		Result: &ret,
	})

	assert.Equal(t, "node_y", rec.Name)
	assert.Empty(t, rec.Help)
	assert.Equal(t, []ArgType{Text, Number, Number}, rec.Args)
	assert.Equal(t, Number, rec.Return)
	assert.False(t, rec.Pos.IsValid())
}

func TestRecord_NoParamsNoResult(t *testing.T) {
	rec := Record("tick", Signature{})
	require.NotNil(t, rec.Args)
	assert.Empty(t, rec.Args)
	assert.Equal(t, Number, rec.Return)
}

func TestRecordAt(t *testing.T) {
	pos := Pos{File: "rope.go", Line: 10, Column: 1}
	rec := RecordAt("f", Signature{}, pos)
	assert.Equal(t, pos, rec.Pos)
	assert.Equal(t, "rope.go:10:1", rec.Pos.String())
}

func TestPosBefore(t *testing.T) {
	a := Pos{File: "a.go", Line: 5, Column: 1}
	b := Pos{File: "a.go", Line: 5, Column: 9}
	c := Pos{File: "a.go", Line: 7}
	d := Pos{File: "b.go", Line: 1}

	assert.True(t, a.Before(b))
	assert.True(t, b.Before(c))
	assert.True(t, c.Before(d))
	assert.False(t, d.Before(a))
	assert.False(t, a.Before(a))
	assert.Equal(t, "-", Pos{}.String())
}
