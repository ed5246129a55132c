// Package witsig discovers functions from WIT declarations.
//
// Every `name: func(params) -> result;` declaration becomes one record, in
// text order. Kebab-case WIT names are exported as snake_case symbols
// (node-y becomes node_y).
//
// string, list<T>, own<T> and borrow<T> are passed by reference and
// classify as Text; the remaining primitives are Number. option, result,
// tuple and user-defined types have no host representation and are
// rejected.
//
// Comments are ignored. Resources with methods or constructors are rejected:
// their methods take an implicit self handle the host cannot pass.
package witsig

import (
	"context"
	"os"
	"regexp"
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/gmsbind/binding"
	"github.com/wippyai/gmsbind/errors"
	"github.com/wippyai/gmsbind/session"
)

// Func is one parsed WIT function.
type Func struct {
	WitName string
	Name    string
	Sig     binding.Signature
}

// Source feeds parsed WIT functions into a session in declaration order.
type Source struct {
	Funcs []Func
}

var (
	funcPattern     = regexp.MustCompile(`(?:export\s+)?([a-zA-Z_][a-zA-Z0-9_-]*)\s*:\s*func\s*\(([^)]*)\)(?:\s*->\s*([^;]+))?`)
	resourcePattern = regexp.MustCompile(`\bresource\s+([a-zA-Z_][a-zA-Z0-9_-]*)\s*\{`)
)

// Load reads and parses a .wit file.
func Load(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDiscover, errors.KindNotFound, err, "read "+path)
	}
	return Parse(string(data))
}

// Parse extracts function declarations from WIT text.
func Parse(witText string) (*Source, error) {
	witText = stripComments(witText)
	if err := checkResources(witText); err != nil {
		return nil, err
	}

	src := &Source{}
	for _, match := range funcPattern.FindAllStringSubmatch(witText, -1) {
		witName := match[1]
		paramsStr := strings.TrimSpace(match[2])
		resultStr := strings.TrimSpace(match[3])

		var sig binding.Signature
		for _, p := range splitParams(paramsStr) {
			typStr := p
			if idx := strings.Index(p, ":"); idx != -1 {
				typStr = strings.TrimSpace(p[idx+1:])
			}
			desc, err := typeDesc(typStr)
			if err != nil {
				return nil, errors.InvalidSignature(nil, witName, err.Error())
			}
			sig.Params = append(sig.Params, desc)
		}

		result, err := parseResult(resultStr)
		if err != nil {
			return nil, errors.InvalidSignature(nil, witName, err.Error())
		}
		sig.Result = result

		src.Funcs = append(src.Funcs, Func{
			WitName: witName,
			Name:    ExternalName(witName),
			Sig:     sig,
		})
	}

	if len(src.Funcs) == 0 {
		return nil, errors.InvalidInput(errors.PhaseParse, "no functions found in WIT text")
	}
	return src, nil
}

// Discover appends one record per function.
func (s *Source) Discover(ctx context.Context, reg *session.Registry) error {
	for _, fn := range s.Funcs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := reg.Append(binding.Record(fn.Name, fn.Sig)); err != nil {
			return err
		}
	}
	return nil
}

// stripComments blanks out // line comments and /* */ block comments.
// Newlines are kept.
func stripComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch {
		case strings.HasPrefix(s[i:], "//"):
			end := strings.IndexByte(s[i:], '\n')
			if end == -1 {
				return b.String()
			}
			i += end - 1
		case strings.HasPrefix(s[i:], "/*"):
			end := strings.Index(s[i+2:], "*/")
			if end == -1 {
				return b.String()
			}
			body := s[i : i+2+end+2]
			b.WriteString(strings.Repeat("\n", strings.Count(body, "\n")))
			b.WriteByte(' ')
			i += len(body) - 1
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// checkResources rejects resource declarations with a non-empty body.
func checkResources(s string) error {
	for _, loc := range resourcePattern.FindAllStringSubmatchIndex(s, -1) {
		name := s[loc[2]:loc[3]]
		open := loc[1]
		depth, end := 1, -1
		for i := open; i < len(s) && end == -1; i++ {
			switch s[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					end = i
				}
			}
		}
		if end == -1 {
			return errors.InvalidInput(errors.PhaseParse, "unterminated resource "+name)
		}
		if strings.TrimSpace(s[open:end]) != "" {
			err := errors.Unsupported(errors.PhaseParse, "resource methods have no host representation")
			err.Name = name
			return err
		}
	}
	return nil
}

// ExternalName converts a kebab-case WIT name to a C symbol name.
func ExternalName(witName string) string {
	return strings.ReplaceAll(witName, "-", "_")
}

func parseResult(s string) (*binding.TypeDesc, error) {
	if s == "" || s == "()" {
		return nil, nil
	}
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		parts := splitParams(strings.TrimSuffix(strings.TrimPrefix(s, "("), ")"))
		switch len(parts) {
		case 0:
			return nil, nil
		case 1:
			s = parts[0]
			if idx := strings.Index(s, ":"); idx != -1 {
				s = strings.TrimSpace(s[idx+1:])
			}
		default:
			return nil, errors.Unsupported(errors.PhaseParse, "multiple results")
		}
	}
	desc, err := typeDesc(s)
	if err != nil {
		return nil, err
	}
	return &desc, nil
}

func typeDesc(s string) (binding.TypeDesc, error) {
	s = strings.TrimSpace(s)
	if head, _, generic := strings.Cut(s, "<"); generic {
		switch strings.TrimSpace(head) {
		case "list", "own", "borrow":
			return binding.Pointer(s), nil
		}
		return binding.TypeDesc{}, errors.Unsupported(errors.PhaseParse, "type "+s+" has no host representation")
	}

	t, err := wit.ParseType(s)
	if err != nil {
		return binding.TypeDesc{}, errors.Unsupported(errors.PhaseParse, "type "+s+" has no host representation")
	}
	if _, ok := t.(wit.String); ok {
		return binding.Pointer(s), nil
	}
	return binding.Direct(s), nil
}

// splitParams splits a parameter list, handling nested parens and angle brackets.
func splitParams(s string) []string {
	var result []string
	var current strings.Builder
	depth := 0

	for _, ch := range s {
		switch ch {
		case '(', '<':
			depth++
			current.WriteRune(ch)
		case ')', '>':
			depth--
			current.WriteRune(ch)
		case ',':
			if depth == 0 {
				if str := strings.TrimSpace(current.String()); str != "" {
					result = append(result, str)
				}
				current.Reset()
			} else {
				current.WriteRune(ch)
			}
		default:
			current.WriteRune(ch)
		}
	}

	if str := strings.TrimSpace(current.String()); str != "" {
		result = append(result, str)
	}

	return result
}
