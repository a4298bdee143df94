package flow

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// mutationScanner is the second, independent walk over a conditional body.
// It is scoped strictly to that body: nested conditionals are not entered,
// because their mutations belong to their own trigger/mutation pairs.
type mutationScanner struct {
	filePath  string
	context   string
	src       []byte
	vocab     *Vocabulary
	mutations []StateMutation
}

// collectMutations scans the statements of a conditional body for
// assignments, compound assignments, and mutating method calls whose target
// passes LooksLikeState.
func collectMutations(body *sitter.Node, filePath, context string, src []byte, vocab *Vocabulary) []StateMutation {
	s := &mutationScanner{
		filePath: filePath,
		context:  context,
		src:      src,
		vocab:    vocab,
	}
	if body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			s.scan(body.NamedChild(i))
		}
	}
	return s.mutations
}

func (s *mutationScanner) scan(n *sitter.Node) {
	switch n.Type() {
	case "if_expression":
		// Owned by a later top-level visit of that conditional.
		return
	case "assignment_expression":
		s.record(n.ChildByFieldName("left"), "assign")
	case "compound_assignment_expr":
		if op := n.ChildByFieldName("operator"); op != nil {
			if tag, ok := s.vocab.CompoundOps[op.Content(s.src)]; ok {
				s.record(n.ChildByFieldName("left"), tag)
			}
		}
	case "call_expression":
		fn := n.ChildByFieldName("function")
		if fn != nil && fn.Type() == "field_expression" {
			method := methodName(fn, s.src)
			if s.vocab.Mutators[method] {
				s.record(fn.ChildByFieldName("value"), "method:"+method)
			}
		}
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		s.scan(n.Child(i))
	}
}

func (s *mutationScanner) record(target *sitter.Node, mutationType string) {
	path := Describe(target, s.src)
	if !LooksLikeState(path) {
		return
	}
	s.mutations = append(s.mutations, StateMutation{
		Target:       path,
		MutationType: mutationType,
		Context:      s.context,
		FilePath:     s.filePath,
	})
}

// LooksLikeState reports whether a canonical path plausibly names program
// state rather than a bare local. A string-shape guess, not a type check;
// targets failing it are silently dropped.
func LooksLikeState(target string) bool {
	return strings.Contains(target, ".") ||
		strings.HasPrefix(target, "self.") ||
		strings.Contains(target, "state") ||
		strings.HasPrefix(target, "*")
}
