package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ynishi/eguicha/internal/flow"
)

func strptr(s string) *string { return &s }

func testFileAnalysis() *flow.FileAnalysis {
	return &flow.FileAnalysis{
		Path: "src/app.rs",
		Elements: []flow.UiElement{
			{ElementType: "button", Label: strptr("Save"), Context: "show"},
			{ElementType: "checkbox", Label: strptr("On"), Context: "options"},
		},
		Actions: []flow.Action{
			{ActionType: "clicked", Source: "ui.button()", Context: "show"},
			{ActionType: "changed", Source: "r", Context: "options"},
		},
		Mutations: []flow.StateMutation{
			{Target: "self.saved", MutationType: "assign", Context: "show"},
			{Target: "state.enabled", MutationType: "assign", Context: "options"},
		},
		Flows: []flow.UiFlow{
			{
				UiElement: flow.UiElement{ElementType: "button", Label: strptr("Save"), Context: "show"},
				Action:    flow.Action{ActionType: "clicked", Source: "ui.button()", Context: "show"},
				StateMutations: []flow.StateMutation{
					{Target: "self.saved", MutationType: "assign", Context: "show"},
					{Target: "self.items", MutationType: "method:push", Context: "show"},
				},
				Context: "show",
			},
		},
	}
}

func TestFlowChart(t *testing.T) {
	chart := FlowChart(testFileAnalysis())

	assert.True(t, strings.HasPrefix(chart, "flowchart TD"))
	assert.Contains(t, chart, `F0_UI["Save"]`)
	assert.Contains(t, chart, `F0_ACT{"clicked"}`)
	assert.Contains(t, chart, "F0_UI --> F0_ACT")
	assert.Contains(t, chart, `F0_self_saved(["= self.saved"])`)
	assert.Contains(t, chart, `F0_self_items(["(+) self.items"])`)
	assert.Contains(t, chart, "F0_ACT --> F0_self_saved")
}

func TestFlowChart_Empty(t *testing.T) {
	chart := FlowChart(&flow.FileAnalysis{Path: "empty.rs"})
	assert.Equal(t, "flowchart TD\n    %% No flows detected", chart)
}

func TestFlowChart_EscapesLabels(t *testing.T) {
	fa := &flow.FileAnalysis{
		Flows: []flow.UiFlow{
			{
				UiElement:      flow.UiElement{ElementType: "button", Label: strptr(`Save "all" <now>`)},
				Action:         flow.Action{ActionType: "clicked"},
				StateMutations: []flow.StateMutation{{Target: "self.x", MutationType: "assign"}},
			},
		},
	}
	chart := FlowChart(fa)
	assert.Contains(t, chart, "Save 'all' &lt;now&gt;")
	assert.NotContains(t, chart, `"Save "all"`)
}

func TestFileChart_ConnectsByContext(t *testing.T) {
	chart := FileChart(testFileAnalysis())

	assert.Contains(t, chart, `UI0["Save"]`)
	assert.Contains(t, chart, `ACT1{"changed"}`)
	assert.Contains(t, chart, `STATE0(["= self.saved"])`)

	// show: UI0/ACT0/STATE0; options: UI1/ACT1/STATE1. No cross-context edges.
	assert.Contains(t, chart, "UI0 --> ACT0")
	assert.Contains(t, chart, "ACT0 --> STATE0")
	assert.Contains(t, chart, "UI1 --> ACT1")
	assert.Contains(t, chart, "ACT1 --> STATE1")
	assert.NotContains(t, chart, "UI0 --> ACT1")
	assert.NotContains(t, chart, "ACT0 --> STATE1")
}

func TestSummaryChart(t *testing.T) {
	res := &flow.ProjectAnalysis{Files: []*flow.FileAnalysis{
		testFileAnalysis(),
		{
			Path:     "src/panel.rs",
			Elements: []flow.UiElement{{ElementType: "button", Label: strptr("Other"), Context: "panel"}},
			Mutations: []flow.StateMutation{
				{Target: "self.model.items", MutationType: "method:push", Context: "panel"},
			},
		},
	}}
	chart := SummaryChart(res)

	assert.True(t, strings.HasPrefix(chart, "flowchart LR"))
	assert.Contains(t, chart, `button["button (2)"]`)
	assert.Contains(t, chart, `checkbox["checkbox (1)"]`)
	assert.Contains(t, chart, `clicked{"clicked() (1)"}`)
	// Deep targets group by their first two path components.
	assert.Contains(t, chart, `self_model(["self.model (1)"])`)
	assert.Contains(t, chart, "UI --> Actions")
	assert.Contains(t, chart, "Actions --> State")
}

func TestMutationGlyph(t *testing.T) {
	tests := map[string]string{
		"assign":        "=",
		"add_assign":    "+=",
		"sub_assign":    "-=",
		"method:push":   "(+)",
		"method:insert": "(+)",
		"method:clear":  "(-)",
		"method:toggle": "(~)",
		"method:set":    "(.)",
		"bitxor_assign": "(.)",
	}
	for in, want := range tests {
		assert.Equal(t, want, mutationGlyph(in), in)
	}
}

func TestSanitizeID(t *testing.T) {
	assert.Equal(t, "self_items_0_", sanitizeID("self.items[0]"))
	assert.Equal(t, "_value", sanitizeID("*value"))
}
