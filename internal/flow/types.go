package flow

// UiElement is a recognized UI-construction call, or an unresolved reference
// to one. Context is the enclosing function name (empty if unknown).
// ResponseVar, when set, is the local variable name through which the element
// was referenced, not the name of the element itself.
type UiElement struct {
	ElementType string  `json:"element_type"`
	Label       *string `json:"label,omitempty"`
	Context     string  `json:"context"`
	FilePath    string  `json:"file_path"`
	Line        int     `json:"line"`
	ResponseVar *string `json:"response_var,omitempty"`
}

// Action is a recognized action-query check found in a conditional test.
// Source is the canonical path of the receiver expression, kept for
// diagnostics only; resolution goes through the binding table instead.
type Action struct {
	ActionType string `json:"action_type"`
	Source     string `json:"source"`
	Context    string `json:"context"`
	FilePath   string `json:"file_path"`
	Line       int    `json:"line"`
}

// StateMutation is a state write found inside a conditional body.
// MutationType is "assign", one of the compound-assign tags, or
// "method:<name>" for a recognized mutating method call.
type StateMutation struct {
	Target       string `json:"target"`
	MutationType string `json:"mutation_type"`
	Context      string `json:"context"`
	FilePath     string `json:"file_path"`
	Line         int    `json:"line"`
}

// UiFlow is one causality record: a UI element, the action recognized on it,
// and the state mutations attributed to that action. StateMutations is never
// empty; a flow is only emitted when the conditional body contained at least
// one qualifying mutation.
type UiFlow struct {
	UiElement      UiElement       `json:"ui_element"`
	Action         Action          `json:"action"`
	StateMutations []StateMutation `json:"state_mutations"`
	Context        string          `json:"context"`
}

// FileAnalysis bundles everything extracted from a single file: the flat
// inventories plus the scope-aware causality flows.
type FileAnalysis struct {
	Path      string          `json:"path"`
	Elements  []UiElement     `json:"elements"`
	Actions   []Action        `json:"actions"`
	Mutations []StateMutation `json:"mutations"`
	Flows     []UiFlow        `json:"flows"`
}

// ProjectAnalysis aggregates file analyses across a directory or file set.
type ProjectAnalysis struct {
	Files []*FileAnalysis `json:"files"`
}

// AllElements returns every UI element across all files, in file order.
func (p *ProjectAnalysis) AllElements() []UiElement {
	var out []UiElement
	for _, f := range p.Files {
		out = append(out, f.Elements...)
	}
	return out
}

// AllActions returns every action across all files, in file order.
func (p *ProjectAnalysis) AllActions() []Action {
	var out []Action
	for _, f := range p.Files {
		out = append(out, f.Actions...)
	}
	return out
}

// AllMutations returns every state mutation across all files, in file order.
func (p *ProjectAnalysis) AllMutations() []StateMutation {
	var out []StateMutation
	for _, f := range p.Files {
		out = append(out, f.Mutations...)
	}
	return out
}

// AllFlows returns every causality flow across all files, in file order.
func (p *ProjectAnalysis) AllFlows() []UiFlow {
	var out []UiFlow
	for _, f := range p.Files {
		out = append(out, f.Flows...)
	}
	return out
}
