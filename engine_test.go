package eguicha

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const appSource = `
fn show(ui: &mut egui::Ui) {
	if ui.button("Save").clicked() {
		self.saved = true;
	}
}
`

const panelSource = `
fn options(ui: &mut egui::Ui) {
	let r = ui.checkbox(&mut state.enabled, "Enabled");
	if r.changed() {
		state.revision += 1;
	}
}
`

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}

// writeProject lays out a small Rust project under a temp dir.
func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "target", "debug"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "app.rs"), []byte(appSource), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "panel.rs"), []byte(panelSource), 0o644))
	// Build artifacts and non-Rust files must be skipped.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "target", "debug", "gen.rs"), []byte(appSource), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte("[package]\n"), 0o644))
	return dir
}

func TestAnalyzeSource(t *testing.T) {
	e := newTestEngine(t)

	fa, err := e.AnalyzeSource(context.Background(), "app.rs", []byte(appSource))
	require.NoError(t, err)

	assert.Equal(t, "app.rs", fa.Path)
	require.Len(t, fa.Flows, 1)
	f := fa.Flows[0]
	assert.Equal(t, "button", f.UiElement.ElementType)
	assert.Equal(t, "clicked", f.Action.ActionType)
	require.Len(t, f.StateMutations, 1)
	assert.Equal(t, "self.saved", f.StateMutations[0].Target)

	// The flat inventories are populated alongside the flows.
	require.Len(t, fa.Elements, 1)
	assert.Equal(t, "button", fa.Elements[0].ElementType)
	require.Len(t, fa.Actions, 1)
	require.Len(t, fa.Mutations, 1)
}

func TestAnalyzeDirectory(t *testing.T) {
	e := newTestEngine(t)
	dir := writeProject(t)

	res, err := e.AnalyzeDirectory(context.Background(), dir)
	require.NoError(t, err)

	// Discovery order is lexical, and target/ is skipped.
	require.Len(t, res.Files, 2)
	assert.Equal(t, filepath.Join(dir, "src", "app.rs"), res.Files[0].Path)
	assert.Equal(t, filepath.Join(dir, "src", "panel.rs"), res.Files[1].Path)

	flows := res.AllFlows()
	require.Len(t, flows, 2)
	assert.Equal(t, "button", flows[0].UiElement.ElementType)
	assert.Equal(t, "checkbox", flows[1].UiElement.ElementType)
	require.NotNil(t, flows[1].UiElement.ResponseVar)
	assert.Equal(t, "r", *flows[1].UiElement.ResponseVar)
}

func TestAnalyzeDirectory_SerialMatchesParallel(t *testing.T) {
	dir := writeProject(t)

	parallel, err := newTestEngine(t).AnalyzeDirectory(context.Background(), dir)
	require.NoError(t, err)
	serial, err := newTestEngine(t, WithParallel(false)).AnalyzeDirectory(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
}

func TestAnalyzeFiles_SkipsNonRust(t *testing.T) {
	e := newTestEngine(t)
	dir := t.TempDir()
	rs := filepath.Join(dir, "a.rs")
	require.NoError(t, os.WriteFile(rs, []byte(appSource), 0o644))
	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("not rust"), 0o644))

	res, err := e.AnalyzeFiles(context.Background(), []string{txt, rs})
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
	assert.Equal(t, rs, res.Files[0].Path)
}

func TestAnalyzeFile_Missing(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.AnalyzeFile(context.Background(), filepath.Join(t.TempDir(), "absent.rs"))
	assert.Error(t, err)
}

func TestWithVocabulary(t *testing.T) {
	vocab := DefaultVocabulary()
	vocab.Constructors["fancy_button"] = true
	e := newTestEngine(t, WithVocabulary(vocab))

	fa, err := e.AnalyzeSource(context.Background(), "custom.rs", []byte(`
		fn show(ui: &mut egui::Ui) {
			if ui.fancy_button("Go").clicked() {
				self.n += 1;
			}
		}
	`))
	require.NoError(t, err)
	require.Len(t, fa.Flows, 1)
	assert.Equal(t, "fancy_button", fa.Flows[0].UiElement.ElementType)
}

func TestSnapshotAndDiff(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	e := newTestEngine(t, WithSnapshotDB(dbPath))
	dir := writeProject(t)

	res, err := e.AnalyzeDirectory(context.Background(), dir)
	require.NoError(t, err)
	oldID, err := e.Snapshot(dir, res)
	require.NoError(t, err)
	require.NotEmpty(t, oldID)

	// Second revision: the panel handler now also clears a list.
	changed := `
fn options(ui: &mut egui::Ui) {
	let r = ui.checkbox(&mut state.enabled, "Enabled");
	if r.changed() {
		state.revision += 1;
		state.log.clear();
	}
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "panel.rs"), []byte(changed), 0o644))

	res, err = e.AnalyzeDirectory(context.Background(), dir)
	require.NoError(t, err)
	newID, err := e.Snapshot(dir, res)
	require.NoError(t, err)

	diff, err := e.Store().DiffRuns(oldID, newID)
	require.NoError(t, err)
	require.Len(t, diff.Added, 1)
	require.Len(t, diff.Removed, 1)
	assert.Equal(t, "checkbox", diff.Added[0].ElementType)
	assert.Len(t, diff.Added[0].Mutations, 2)
	assert.Len(t, diff.Removed[0].Mutations, 1)

	runs, err := e.Store().Runs()
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestSnapshot_NoStoreConfigured(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Snapshot("/proj", &ProjectAnalysis{})
	assert.Error(t, err)
}
