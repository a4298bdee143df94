// Package flow extracts UI causality records from parsed Rust source:
// "this element, on this action, causes these state mutations".
//
//	if ui.button("x").clicked() { state.y = z }
//	-> UiFlow{ ui: button("x"), action: clicked, mutations: [state.y = z] }
//
// Response variable bindings are tracked per function, so
// `let r = ui.button("x"); if r.clicked() { .. }` resolves r back to the
// button that produced it.
package flow

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// ExtractFlows walks a parsed file and returns its causality records in
// traversal order. filePath is stamped verbatim onto every record. The tree
// is read only; repeated calls on the same tree produce identical output.
func ExtractFlows(filePath string, root *sitter.Node, src []byte, vocab *Vocabulary) []UiFlow {
	w := &walker{
		filePath: filePath,
		src:      src,
		vocab:    vocab,
		bindings: make(map[string]UiElement),
	}
	w.walk(root)
	return w.flows
}

// walker is the top-level traversal. currentFn and bindings are the only
// mutable state; both are saved and restored around function boundaries.
type walker struct {
	filePath  string
	src       []byte
	vocab     *Vocabulary
	currentFn string
	bindings  map[string]UiElement
	flows     []UiFlow
}

func (w *walker) walk(n *sitter.Node) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "function_item":
		w.walkFunction(n)
		return
	case "let_declaration":
		// Capture before descending so later sibling conditionals can
		// resolve the alias.
		w.captureBinding(n)
	case "if_expression":
		w.scanConditional(n)
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		w.walk(n.Child(i))
	}
}

// walkFunction pushes a fresh scope frame: the enclosing function name and
// an empty binding table, both restored on exit. Free functions and methods
// in impl blocks are the same node kind, so one path covers both.
func (w *walker) walkFunction(n *sitter.Node) {
	savedFn, savedBindings := w.currentFn, w.bindings

	w.currentFn = ""
	if name := n.ChildByFieldName("name"); name != nil {
		w.currentFn = name.Content(w.src)
	}
	w.bindings = make(map[string]UiElement)

	for i := 0; i < int(n.ChildCount()); i++ {
		w.walk(n.Child(i))
	}

	w.currentFn, w.bindings = savedFn, savedBindings
}

// captureBinding records `let name = <ui constructor chain>` aliases. Only
// simple name patterns bind, and only through the construction path: an
// initializer that is itself a bare variable does not rebind.
func (w *walker) captureBinding(n *sitter.Node) {
	pattern := n.ChildByFieldName("pattern")
	value := n.ChildByFieldName("value")
	if pattern == nil || value == nil || pattern.Type() != "identifier" {
		return
	}
	if el, ok := w.constructionElement(value); ok {
		w.bindings[pattern.Content(w.src)] = el
	}
}

// scanConditional emits one flow per trigger found in the condition, each
// carrying the full mutation set of the then-body. Nothing is emitted when
// either side is empty. Nested conditionals are left to the continued
// depth-first walk.
func (w *walker) scanConditional(n *sitter.Node) {
	triggers := w.collectTriggers(n.ChildByFieldName("condition"), nil)
	if len(triggers) == 0 {
		return
	}
	mutations := collectMutations(n.ChildByFieldName("consequence"), w.filePath, w.currentFn, w.src, w.vocab)
	if len(mutations) == 0 {
		return
	}
	for _, t := range triggers {
		w.flows = append(w.flows, UiFlow{
			UiElement:      t.element,
			Action:         t.action,
			StateMutations: append([]StateMutation(nil), mutations...),
			Context:        w.currentFn,
		})
	}
}
