package flow

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Flat inventory passes: whole-file listings of elements, actions, and
// mutations with no causality attached. They recognize a wider surface than
// the flow vocabulary, matching their standalone nature — an element in a
// listing is useful even when no conditional ever queries it.

var inventoryElements = toSet([]string{
	"button", "small_button", "label", "heading", "monospace", "code",
	"checkbox", "radio", "radio_value", "selectable_label",
	"selectable_value", "text_edit_singleline", "text_edit_multiline",
	"add", "add_sized", "slider", "drag_value", "color_edit_button_rgb",
	"color_edit_button_rgba", "image", "hyperlink", "hyperlink_to",
	"separator", "spinner", "progress_bar", "toggle_value", "collapsing",
	"menu_button",
})

var inventoryActions = toSet([]string{
	"clicked", "clicked_by", "secondary_clicked", "middle_clicked",
	"double_clicked", "triple_clicked", "changed", "dragged",
	"drag_started", "drag_stopped", "hovered", "highlighted", "has_focus",
	"gained_focus", "lost_focus", "enabled", "clicked_elsewhere",
	"is_pointer_button_down_on",
})

var inventoryMutators = toSet([]string{
	"push", "pop", "insert", "remove", "clear", "append", "extend",
	"retain", "drain", "swap_remove", "set", "take", "replace",
	"get_or_insert", "toggle",
})

var inventoryCompoundOps = map[string]string{
	"+=":  "add_assign",
	"-=":  "sub_assign",
	"*=":  "mul_assign",
	"/=":  "div_assign",
	"%=":  "rem_assign",
	"&=":  "bitand_assign",
	"|=":  "bitor_assign",
	"^=":  "bitxor_assign",
	"<<=": "shl_assign",
	">>=": "shr_assign",
}

// inventoryWalker tracks the enclosing function name and dispatches each
// node to the pass-specific visit hook.
type inventoryWalker struct {
	filePath  string
	src       []byte
	currentFn string
	visit     func(iw *inventoryWalker, n *sitter.Node)
}

func (iw *inventoryWalker) walk(n *sitter.Node) {
	if n == nil {
		return
	}
	if n.Type() == "function_item" {
		saved := iw.currentFn
		iw.currentFn = ""
		if name := n.ChildByFieldName("name"); name != nil {
			iw.currentFn = name.Content(iw.src)
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			iw.walk(n.Child(i))
		}
		iw.currentFn = saved
		return
	}
	iw.visit(iw, n)
	for i := 0; i < int(n.ChildCount()); i++ {
		iw.walk(n.Child(i))
	}
}

// asMethodCall decomposes a call_expression into (receiver, method name).
// Returns ok=false for plain function calls.
func asMethodCall(n *sitter.Node, src []byte) (receiver *sitter.Node, method string, ok bool) {
	if n.Type() != "call_expression" {
		return nil, "", false
	}
	fn := n.ChildByFieldName("function")
	if fn == nil || fn.Type() != "field_expression" {
		return nil, "", false
	}
	return fn.ChildByFieldName("value"), methodName(fn, src), true
}

// ExtractElements lists every UI-constructor call whose receiver looks like
// a Ui handle, in traversal order.
func ExtractElements(filePath string, root *sitter.Node, src []byte) []UiElement {
	var elements []UiElement
	iw := &inventoryWalker{filePath: filePath, src: src}
	iw.visit = func(iw *inventoryWalker, n *sitter.Node) {
		receiver, method, ok := asMethodCall(n, src)
		if !ok || !inventoryElements[method] || !uiReceiver(receiver, src) {
			return
		}
		elements = append(elements, UiElement{
			ElementType: method,
			Label:       firstStringArg(n.ChildByFieldName("arguments"), src),
			Context:     iw.currentFn,
			FilePath:    filePath,
		})
	}
	iw.walk(root)
	return elements
}

// ExtractActions lists every action-query call, in traversal order.
func ExtractActions(filePath string, root *sitter.Node, src []byte) []Action {
	var actions []Action
	iw := &inventoryWalker{filePath: filePath, src: src}
	iw.visit = func(iw *inventoryWalker, n *sitter.Node) {
		receiver, method, ok := asMethodCall(n, src)
		if !ok || !inventoryActions[method] {
			return
		}
		actions = append(actions, Action{
			ActionType: method,
			Source:     Describe(receiver, src),
			Context:    iw.currentFn,
			FilePath:   filePath,
		})
	}
	iw.walk(root)
	return actions
}

// ExtractMutations lists every qualifying state write anywhere in the file,
// nested conditionals included — causality attribution is the flow
// extractor's job, not the inventory's.
func ExtractMutations(filePath string, root *sitter.Node, src []byte) []StateMutation {
	var mutations []StateMutation
	record := func(iw *inventoryWalker, target *sitter.Node, mutationType string) {
		path := Describe(target, src)
		if !LooksLikeState(path) {
			return
		}
		mutations = append(mutations, StateMutation{
			Target:       path,
			MutationType: mutationType,
			Context:      iw.currentFn,
			FilePath:     filePath,
		})
	}
	iw := &inventoryWalker{filePath: filePath, src: src}
	iw.visit = func(iw *inventoryWalker, n *sitter.Node) {
		switch n.Type() {
		case "assignment_expression":
			record(iw, n.ChildByFieldName("left"), "assign")
		case "compound_assignment_expr":
			if op := n.ChildByFieldName("operator"); op != nil {
				if tag, ok := inventoryCompoundOps[op.Content(src)]; ok {
					record(iw, n.ChildByFieldName("left"), tag)
				}
			}
		case "call_expression":
			if receiver, method, ok := asMethodCall(n, src); ok && inventoryMutators[method] {
				record(iw, receiver, "method:"+method)
			}
		}
	}
	iw.walk(root)
	return mutations
}

// uiReceiver reports whether an expression plausibly denotes an egui Ui
// handle: a variable with "ui" in its name, a .ui() call, or a chain ending
// in one.
func uiReceiver(n *sitter.Node, src []byte) bool {
	if n == nil {
		return false
	}
	switch n.Type() {
	case "identifier":
		name := n.Content(src)
		return name == "ui" || strings.HasSuffix(name, "_ui") || strings.Contains(name, "ui")
	case "reference_expression":
		return uiReceiver(n.ChildByFieldName("value"), src)
	case "call_expression":
		receiver, method, ok := asMethodCall(n, src)
		if !ok {
			return false
		}
		return method == "ui" || uiReceiver(receiver, src)
	default:
		return false
	}
}
