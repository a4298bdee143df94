package flow

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// trigger pairs a resolved UI element with the action query checked on it.
type trigger struct {
	element UiElement
	action  Action
}

// collectTriggers flattens a conditional test into (element, action) pairs,
// left to right. Both || and && fan out into independent triggers: the
// extractor does not model conjunctive triggering, so an AND of two action
// queries yields two records.
func (w *walker) collectTriggers(n *sitter.Node, triggers []trigger) []trigger {
	if n == nil {
		return triggers
	}
	switch n.Type() {
	case "binary_expression":
		op := n.ChildByFieldName("operator")
		if op == nil {
			return triggers
		}
		switch op.Content(w.src) {
		case "||", "&&":
			triggers = w.collectTriggers(n.ChildByFieldName("left"), triggers)
			triggers = w.collectTriggers(n.ChildByFieldName("right"), triggers)
		}
	case "parenthesized_expression":
		return w.collectTriggers(innerExpr(n), triggers)
	case "call_expression":
		fn := n.ChildByFieldName("function")
		if fn == nil || fn.Type() != "field_expression" {
			return triggers
		}
		method := methodName(fn, w.src)
		if !w.vocab.Actions[method] {
			return triggers
		}
		receiver := fn.ChildByFieldName("value")
		triggers = append(triggers, trigger{
			element: w.resolveElement(receiver),
			action: Action{
				ActionType: method,
				Source:     Describe(receiver, w.src),
				Context:    w.currentFn,
				FilePath:   w.filePath,
			},
		})
	}
	return triggers
}
