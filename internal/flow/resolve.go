package flow

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// resolveElement maps a receiver expression to the UI element it denotes.
// Method chains are climbed until a constructor call is found; a bare
// variable reference resolves through the binding table. Unresolvable
// shapes return a sentinel element rather than failing.
func (w *walker) resolveElement(n *sitter.Node) UiElement {
	if n == nil {
		return w.unknownElement()
	}
	switch n.Type() {
	case "call_expression":
		fn := n.ChildByFieldName("function")
		if fn == nil || fn.Type() != "field_expression" {
			return w.unknownElement()
		}
		method := methodName(fn, w.src)
		if w.vocab.Constructors[method] {
			return w.newElement(method, firstStringArg(n.ChildByFieldName("arguments"), w.src))
		}
		return w.resolveElement(fn.ChildByFieldName("value"))
	case "parenthesized_expression":
		return w.resolveElement(innerExpr(n))
	case "identifier", "scoped_identifier", "self":
		path := n.Content(w.src)
		if bound, ok := w.bindings[path]; ok {
			// The binding's declaration site is overwritten with the use
			// site so the record reflects where the handle is checked.
			el := bound
			el.Context = w.currentFn
			el.FilePath = w.filePath
			el.Line = 0
			responseVar := path
			el.ResponseVar = &responseVar
			return el
		}
		label := path
		responseVar := path
		return UiElement{
			ElementType: "response_var",
			Label:       &label,
			Context:     w.currentFn,
			FilePath:    w.filePath,
			ResponseVar: &responseVar,
		}
	default:
		return w.unknownElement()
	}
}

// constructionElement is the construction-only resolver used for let
// initializers: it climbs call chains and parens like resolveElement but
// never consults the binding table, so an alias of an alias does not rebind.
func (w *walker) constructionElement(n *sitter.Node) (UiElement, bool) {
	if n == nil {
		return UiElement{}, false
	}
	switch n.Type() {
	case "call_expression":
		fn := n.ChildByFieldName("function")
		if fn == nil || fn.Type() != "field_expression" {
			return UiElement{}, false
		}
		method := methodName(fn, w.src)
		if w.vocab.Constructors[method] {
			return w.newElement(method, firstStringArg(n.ChildByFieldName("arguments"), w.src)), true
		}
		return w.constructionElement(fn.ChildByFieldName("value"))
	case "parenthesized_expression":
		return w.constructionElement(innerExpr(n))
	default:
		return UiElement{}, false
	}
}

func (w *walker) newElement(elementType string, label *string) UiElement {
	return UiElement{
		ElementType: elementType,
		Label:       label,
		Context:     w.currentFn,
		FilePath:    w.filePath,
	}
}

func (w *walker) unknownElement() UiElement {
	return UiElement{
		ElementType: "unknown",
		Context:     w.currentFn,
		FilePath:    w.filePath,
	}
}
