// Package report renders analysis results as Mermaid flowcharts.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ynishi/eguicha/internal/flow"
)

// FlowChart renders a file's causality flows as a precise element -> action
// -> mutation graph. Returns a placeholder chart when no flows exist.
func FlowChart(fa *flow.FileAnalysis) string {
	if len(fa.Flows) == 0 {
		return "flowchart TD\n    %% No flows detected"
	}

	var b strings.Builder
	b.WriteString("flowchart TD\n\n")

	for i, fl := range fa.Flows {
		flowID := fmt.Sprintf("F%d", i)

		uiLabel := fl.UiElement.ElementType
		if fl.UiElement.Label != nil {
			uiLabel = *fl.UiElement.Label
		}
		uiNode := flowID + "_UI"
		fmt.Fprintf(&b, "    %s[\"%s\"]\n", uiNode, escape(uiLabel))
		fmt.Fprintf(&b, "    style %s fill:#e1f5fe\n", uiNode)

		actNode := flowID + "_ACT"
		fmt.Fprintf(&b, "    %s{\"%s\"}\n", actNode, escape(fl.Action.ActionType))
		fmt.Fprintf(&b, "    style %s fill:#fff9c4\n", actNode)
		fmt.Fprintf(&b, "    %s --> %s\n", uiNode, actNode)

		for _, m := range fl.StateMutations {
			stateNode := flowID + "_" + sanitizeID(m.Target)
			fmt.Fprintf(&b, "    %s([\"%s %s\"])\n", stateNode, mutationGlyph(m.MutationType), escape(m.Target))
			fmt.Fprintf(&b, "    style %s fill:#c8e6c9\n", stateNode)
			fmt.Fprintf(&b, "    %s --> %s\n", actNode, stateNode)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FileChart renders a file's flat inventories with context-based
// connections: within each function, every element links to every action
// and every action to every mutation. A coarse view for files where the
// scope-aware flows came up empty.
func FileChart(fa *flow.FileAnalysis) string {
	var b strings.Builder
	b.WriteString("flowchart TD\n\n    %% UI Elements\n")

	for i, el := range fa.Elements {
		label := el.ElementType
		if el.Label != nil {
			label = *el.Label
		}
		fmt.Fprintf(&b, "    UI%d[\"%s\"]\n", i, escape(label))
		fmt.Fprintf(&b, "    style UI%d fill:#e1f5fe\n", i)
	}

	b.WriteString("\n    %% Actions\n")
	for i, a := range fa.Actions {
		fmt.Fprintf(&b, "    ACT%d{\"%s\"}\n", i, escape(a.ActionType))
		fmt.Fprintf(&b, "    style ACT%d fill:#fff9c4\n", i)
	}

	b.WriteString("\n    %% State Mutations\n")
	for i, m := range fa.Mutations {
		fmt.Fprintf(&b, "    STATE%d([\"%s %s\"])\n", i, mutationGlyph(m.MutationType), escape(m.Target))
		fmt.Fprintf(&b, "    style STATE%d fill:#c8e6c9\n", i)
	}

	b.WriteString("\n    %% Connections\n")
	connectByContext(&b, fa)
	return strings.TrimRight(b.String(), "\n")
}

// SummaryChart renders a multi-file layer summary: element, action, and
// mutation-target counts grouped into UI/Action/State subgraphs.
func SummaryChart(res *flow.ProjectAnalysis) string {
	var b strings.Builder
	b.WriteString("flowchart LR\n\n    subgraph UI[\"UI Layer\"]\n")

	elementCounts := make(map[string]int)
	for _, el := range res.AllElements() {
		elementCounts[el.ElementType]++
	}
	for _, t := range sortedKeys(elementCounts) {
		fmt.Fprintf(&b, "        %s[\"%s (%d)\"]\n", t, t, elementCounts[t])
	}
	b.WriteString("    end\n\n    subgraph Actions[\"Action Layer\"]\n")

	actionCounts := make(map[string]int)
	for _, a := range res.AllActions() {
		actionCounts[a.ActionType]++
	}
	for _, t := range sortedKeys(actionCounts) {
		fmt.Fprintf(&b, "        %s{\"%s() (%d)\"}\n", t, t, actionCounts[t])
	}
	b.WriteString("    end\n\n    subgraph State[\"State Layer\"]\n")

	// Mutation targets group by their first two path components.
	targetCounts := make(map[string]int)
	for _, m := range res.AllMutations() {
		parts := strings.Split(m.Target, ".")
		if len(parts) > 2 {
			parts = parts[:2]
		}
		targetCounts[strings.Join(parts, ".")]++
	}
	for _, t := range sortedKeys(targetCounts) {
		fmt.Fprintf(&b, "        %s([\"%s (%d)\"])\n", sanitizeID(t), t, targetCounts[t])
	}
	b.WriteString("    end\n\n")
	b.WriteString("    %% Layer connections\n")
	b.WriteString("    UI --> Actions\n")
	b.WriteString("    Actions --> State")
	return b.String()
}

func connectByContext(b *strings.Builder, fa *flow.FileAnalysis) {
	type group struct {
		elements, actions, mutations []int
	}
	byContext := make(map[string]*group)
	grp := func(context string) *group {
		g, ok := byContext[context]
		if !ok {
			g = &group{}
			byContext[context] = g
		}
		return g
	}
	for i, el := range fa.Elements {
		g := grp(el.Context)
		g.elements = append(g.elements, i)
	}
	for i, a := range fa.Actions {
		g := grp(a.Context)
		g.actions = append(g.actions, i)
	}
	for i, m := range fa.Mutations {
		g := grp(m.Context)
		g.mutations = append(g.mutations, i)
	}

	for _, context := range sortedGroupKeys(byContext) {
		if context == "" {
			continue
		}
		g := byContext[context]
		for _, ui := range g.elements {
			for _, act := range g.actions {
				fmt.Fprintf(b, "    UI%d --> ACT%d\n", ui, act)
			}
		}
		for _, act := range g.actions {
			for _, state := range g.mutations {
				fmt.Fprintf(b, "    ACT%d --> STATE%d\n", act, state)
			}
		}
	}
}

// mutationGlyph picks a short marker for a mutation type.
func mutationGlyph(mutationType string) string {
	if method, ok := strings.CutPrefix(mutationType, "method:"); ok {
		switch method {
		case "push", "insert", "append", "extend":
			return "(+)"
		case "pop", "remove", "clear", "drain":
			return "(-)"
		case "toggle":
			return "(~)"
		default:
			return "(.)"
		}
	}
	switch mutationType {
	case "assign":
		return "="
	case "add_assign":
		return "+="
	case "sub_assign":
		return "-="
	case "mul_assign":
		return "*="
	case "div_assign":
		return "/="
	default:
		return "(.)"
	}
}

// sanitizeID maps a target path onto a Mermaid-safe node ID.
func sanitizeID(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

func escape(s string) string {
	s = strings.ReplaceAll(s, `"`, "'")
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	return strings.ReplaceAll(s, ">", "&gt;")
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedGroupKeys[V any](m map[string]*V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
