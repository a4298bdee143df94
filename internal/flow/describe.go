package flow

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Describe renders an expression node as a canonical dotted-path string:
// "state.counter", "state.items[..]", "*value", "resp.clicked()". It is
// total over any node; shapes it does not understand render as "<expr>".
func Describe(n *sitter.Node, src []byte) string {
	if n == nil {
		return "<expr>"
	}
	switch n.Type() {
	case "identifier", "scoped_identifier", "self", "super", "crate":
		return n.Content(src)
	case "field_expression":
		field := n.ChildByFieldName("field")
		if field == nil {
			return "<expr>"
		}
		return Describe(n.ChildByFieldName("value"), src) + "." + field.Content(src)
	case "call_expression":
		// Only method calls render; plain function calls have no path shape.
		fn := n.ChildByFieldName("function")
		if fn != nil && fn.Type() == "field_expression" {
			field := fn.ChildByFieldName("field")
			if field != nil {
				return Describe(fn.ChildByFieldName("value"), src) + "." + field.Content(src) + "()"
			}
		}
		return "<expr>"
	case "unary_expression":
		if op := n.Child(0); op != nil && op.Type() == "*" {
			return "*" + Describe(innerExpr(n), src)
		}
		return "<expr>"
	case "reference_expression":
		return Describe(n.ChildByFieldName("value"), src)
	case "parenthesized_expression":
		return Describe(innerExpr(n), src)
	case "index_expression":
		// Index values collapse to one canonical shape.
		return Describe(innerExpr(n), src) + "[..]"
	default:
		return "<expr>"
	}
}

// innerExpr returns the first named non-comment child, the wrapped
// expression of nodes like parenthesized_expression and unary_expression.
func innerExpr(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() != "comment" {
			return c
		}
	}
	return nil
}

// methodName returns the method name of a field_expression used as a call
// target, or "" if the node has no field child.
func methodName(fieldExpr *sitter.Node, src []byte) string {
	field := fieldExpr.ChildByFieldName("field")
	if field == nil {
		return ""
	}
	return field.Content(src)
}

// firstStringArg scans an arguments node left-to-right for the first string
// literal, descending through references. Returns nil when no argument is a
// string literal.
func firstStringArg(args *sitter.Node, src []byte) *string {
	if args == nil {
		return nil
	}
	for i := 0; i < int(args.NamedChildCount()); i++ {
		if s, ok := stringValue(args.NamedChild(i), src); ok {
			return &s
		}
	}
	return nil
}

func stringValue(n *sitter.Node, src []byte) (string, bool) {
	switch n.Type() {
	case "string_literal":
		return unescapeString(trimQuotes(n.Content(src))), true
	case "raw_string_literal":
		return trimRawQuotes(n.Content(src)), true
	case "reference_expression":
		if v := n.ChildByFieldName("value"); v != nil {
			return stringValue(v, src)
		}
	}
	return "", false
}

func trimQuotes(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}

// trimRawQuotes strips r, hash guards, and quotes from r#"..."# literals.
func trimRawQuotes(s string) string {
	s = strings.TrimPrefix(s, "r")
	hashes := 0
	for strings.HasPrefix(s, "#") {
		s = s[1:]
		hashes++
	}
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, strings.Repeat("#", hashes))
	return strings.TrimSuffix(s, `"`)
}

// unescapeString cooks the common escape sequences found in labels.
var labelUnescaper = strings.NewReplacer(
	`\\`, `\`,
	`\"`, `"`,
	`\n`, "\n",
	`\t`, "\t",
	`\r`, "\r",
)

func unescapeString(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	return labelUnescaper.Replace(s)
}
