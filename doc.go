// Package eguicha statically analyzes egui source code and reconstructs the
// causal relationships it expresses: which UI element, on which action,
// causes which state mutations. It parses Rust with tree-sitter and walks
// the syntax tree; nothing is compiled or executed.
//
// # Extraction
//
// The core pass is scope-aware: it tracks the enclosing function, tracks
// local variables that alias a widget's Response handle, recognizes
// action queries in conditional tests, and collects the state mutations in
// the corresponding body:
//
//	if ui.button("Click").clicked() {
//	    state.counter += 1;
//	}
//
// yields one UiFlow: element button("Click"), action clicked, mutations
// [state.counter += 1]. A disjunction of action queries fans out into one
// flow per query; mutations behind a nested conditional are attributed to
// that conditional, never to the outer one.
//
// Alongside the flows, flat inventories list every UI element, action
// query, and state mutation in a file without causality attached.
//
// # Usage
//
// Create an Engine and analyze a file or directory:
//
//	e, err := eguicha.New()
//	if err != nil { ... }
//	defer e.Close()
//
//	res, err := e.AnalyzeDirectory(ctx, "path/to/app/src")
//	for _, flow := range res.AllFlows() { ... }
//
// # Snapshots
//
// With WithSnapshotDB, analysis runs persist to SQLite. Engine.Snapshot
// saves a run; Store.DiffRuns compares two runs and reports the flows that
// appeared or disappeared, turning the analyzer into a UI-behavior
// regression check.
//
// # Vocabularies
//
// Recognition is data-driven: four closed sets (constructor methods, action
// queries, mutating methods, compound-assign operators) seeded for egui and
// overridable from a YAML file via LoadVocabulary and WithVocabulary.
package eguicha
