package gosrc

import (
	"go/ast"
	"strconv"
	"strings"
)

const (
	DirectiveStart = "//gms:bind-start"
	DirectiveBind  = "//gms:bind"
	DirectiveEnd   = "//gms:bind-end"
)

// directive is one //gms:bind* comment line split into words.
type directive struct {
	name string
	args []string
	c    *ast.Comment
}

func parseDirective(c *ast.Comment) (directive, bool) {
	if !strings.HasPrefix(c.Text, DirectiveBind) {
		return directive{}, false
	}
	fields := strings.Fields(c.Text)
	switch fields[0] {
	case DirectiveStart, DirectiveBind, DirectiveEnd:
	default:
		return directive{}, false
	}
	args := make([]string, 0, len(fields)-1)
	for _, f := range fields[1:] {
		if u, err := strconv.Unquote(f); err == nil {
			f = u
		}
		args = append(args, f)
	}
	return directive{name: fields[0], args: args, c: c}, true
}

// directives returns every directive named name in the file's comments.
func directives(f *ast.File, name string) []directive {
	var out []directive
	for _, cg := range f.Comments {
		for _, c := range cg.List {
			if d, ok := parseDirective(c); ok && d.name == name {
				out = append(out, d)
			}
		}
	}
	return out
}

// hasBind reports whether a doc comment carries //gms:bind.
func hasBind(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, c := range doc.List {
		if d, ok := parseDirective(c); ok && d.name == DirectiveBind {
			return true
		}
	}
	return false
}
