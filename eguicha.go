package eguicha

import (
	"github.com/ynishi/eguicha/internal/flow"
	"github.com/ynishi/eguicha/internal/store"
)

// Public type aliases for internal types used in the Engine API. These are
// Go type aliases (=) — identical to the internal types at compile time.

type UiElement = flow.UiElement
type Action = flow.Action
type StateMutation = flow.StateMutation
type UiFlow = flow.UiFlow
type FileAnalysis = flow.FileAnalysis
type ProjectAnalysis = flow.ProjectAnalysis
type Vocabulary = flow.Vocabulary

type Store = store.Store
type Run = store.Run
type FlowRecord = store.FlowRecord
type MutationRecord = store.MutationRecord
type RunDiff = store.RunDiff

// DefaultVocabulary returns the egui surface recognized out of the box.
func DefaultVocabulary() *Vocabulary {
	return flow.DefaultVocabulary()
}

// LoadVocabulary reads a YAML vocabulary file and overlays it on the
// defaults.
func LoadVocabulary(path string) (*Vocabulary, error) {
	return flow.LoadVocabulary(path)
}
