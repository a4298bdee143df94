package script

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ynishi/eguicha/internal/flow"
)

func strptr(s string) *string { return &s }

func testResult() *flow.ProjectAnalysis {
	return &flow.ProjectAnalysis{Files: []*flow.FileAnalysis{
		{
			Path: "src/app.rs",
			Flows: []flow.UiFlow{
				{
					UiElement: flow.UiElement{ElementType: "button", Label: strptr("Save"), Context: "show"},
					Action:    flow.Action{ActionType: "clicked", Source: "ui.button()", Context: "show"},
					StateMutations: []flow.StateMutation{
						{Target: "self.saved", MutationType: "assign", Context: "show"},
					},
					Context: "show",
				},
			},
		},
	}}
}

func TestRunReportSource_StringResultWritten(t *testing.T) {
	var out bytes.Buffer
	rt := NewRuntime("")
	err := rt.RunReportSource(context.Background(),
		`"files=" + string(len(analysis["files"]))`, testResult(), &out)
	require.NoError(t, err)
	assert.Equal(t, "files=1\n", out.String())
}

func TestRunReportSource_AnalysisShape(t *testing.T) {
	var out bytes.Buffer
	rt := NewRuntime("")
	src := `
f := analysis["files"][0]
fl := f["flows"][0]
fl["ui_element"]["element_type"] + ":" + fl["action"]["action_type"] + ":" + fl["state_mutations"][0]["target"]
`
	err := rt.RunReportSource(context.Background(), src, testResult(), &out)
	require.NoError(t, err)
	assert.Equal(t, "button:clicked:self.saved\n", out.String())
}

func TestRunReportSource_NonStringResultWritesNothing(t *testing.T) {
	var out bytes.Buffer
	rt := NewRuntime("")
	err := rt.RunReportSource(context.Background(),
		`len(analysis["files"])`, testResult(), &out)
	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestRunReportSource_ScriptError(t *testing.T) {
	rt := NewRuntime("")
	err := rt.RunReportSource(context.Background(), `undefined_name`, testResult(), nil)
	assert.Error(t, err)
}

func TestRunReport_FromDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "report.risor"),
		[]byte(`"flows=" + string(len(analysis["files"][0]["flows"]))`), 0o644))

	var out bytes.Buffer
	rt := NewRuntime(dir)
	err := rt.RunReport(context.Background(), "report.risor", testResult(), &out)
	require.NoError(t, err)
	assert.Equal(t, "flows=1\n", out.String())
}

func TestRunReport_MissingScript(t *testing.T) {
	rt := NewRuntime(t.TempDir())
	err := rt.RunReport(context.Background(), "absent.risor", testResult(), nil)
	assert.Error(t, err)
}

func TestLoadScript_FromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"embedded.risor": &fstest.MapFile{Data: []byte(`"hello"`)},
	}
	rt := NewRuntime("", WithFS(fsys))

	src, err := rt.LoadScript("embedded.risor")
	require.NoError(t, err)
	assert.Equal(t, `"hello"`, src)

	var out bytes.Buffer
	require.NoError(t, rt.RunReport(context.Background(), "embedded.risor", testResult(), &out))
	assert.Equal(t, "hello\n", out.String())
}
