package descriptor

import (
	"bytes"
	"encoding/xml"

	"github.com/wippyai/gmsbind/binding"
	"github.com/wippyai/gmsbind/errors"
	"github.com/wippyai/gmsbind/session"
)

// Build turns an ended session into a descriptor document.
func Build(b *session.Binder) *Document {
	fns := make([]Function, len(b.Functions))
	for i, rec := range b.Functions {
		fns[i] = buildFunction(b.Prefix, rec)
	}

	return &Document{
		Name:          b.Name,
		Version:       Version,
		Date:          Date,
		License:       License,
		ConfigOptions: ConfigOptions{Config: Config{Name: ConfigName, CopyToMask: ExtensionMask}},
		Files: Files{File: File{
			FileName:      b.FileName,
			OrigName:      OrigNamePrefix + b.FileName,
			Kind:          FileKindDynLib,
			Uncompress:    UncompressedOff,
			ConfigOptions: ConfigOptions{Config: Config{Name: ConfigName, CopyToMask: FileMask}},
			Functions:     Functions{Items: fns},
		}},
	}
}

// InternalName namespaces a function name with the session prefix.
func InternalName(prefix, name string) string {
	return prefix + "_" + name
}

func buildFunction(prefix string, rec binding.FunctionRecord) Function {
	codes := make([]int, len(rec.Args))
	for i, a := range rec.Args {
		codes[i] = a.Code()
	}
	return Function{
		Name:         InternalName(prefix, rec.Name),
		ExternalName: rec.Name,
		Kind:         FunctionKind,
		Help:         rec.Help,
		ReturnType:   rec.Return.Code(),
		ArgCount:     len(rec.Args),
		Args:         Args{Codes: codes},
	}
}

// Marshal serializes the document as indented XML terminated by a newline.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, errors.Wrap(errors.PhaseBuild, errors.KindInvalidInput, err, "encode descriptor")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(errors.PhaseBuild, errors.KindInvalidInput, err, "encode descriptor")
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Unmarshal parses a descriptor previously produced by Marshal.
func Unmarshal(data []byte) (*Document, error) {
	var doc Document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.PhaseBuild, errors.KindInvalidInput, err, "decode descriptor")
	}
	return &doc, nil
}

// FunctionXML renders a single function entry, used for previews.
func FunctionXML(fn Function) (string, error) {
	out, err := xml.MarshalIndent(struct {
		XMLName xml.Name `xml:"function"`
		Function
	}{Function: fn}, "", "  ")
	if err != nil {
		return "", errors.Wrap(errors.PhaseBuild, errors.KindInvalidInput, err, "encode function")
	}
	return string(out), nil
}
