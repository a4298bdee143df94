package flow

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Vocabulary holds the four closed method/operator sets that drive flow
// extraction. They are plain data so the recognized surface can be swapped
// per UI library without touching traversal logic.
type Vocabulary struct {
	// Constructors are method names whose call produces a UI element
	// descriptor (ui.button(..), ui.checkbox(..), ...).
	Constructors map[string]bool

	// Actions are method names whose presence in a boolean test marks an
	// event check (resp.clicked(), resp.changed(), ...).
	Actions map[string]bool

	// Mutators are method names whose call on a qualifying target is
	// treated as a state mutation (v.push(..), v.clear(), ...).
	Mutators map[string]bool

	// CompoundOps maps compound-assignment operator tokens to their
	// mutation tags ("+=" -> "add_assign").
	CompoundOps map[string]string
}

// DefaultVocabulary returns the egui surface recognized out of the box.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		Constructors: toSet([]string{
			"button", "small_button", "label", "heading", "checkbox", "radio",
			"radio_value", "selectable_label", "selectable_value",
			"text_edit_singleline", "text_edit_multiline", "slider",
			"drag_value", "toggle_value", "menu_button", "collapsing", "add",
		}),
		Actions: toSet([]string{
			"clicked", "clicked_by", "secondary_clicked", "middle_clicked",
			"double_clicked", "triple_clicked", "changed", "dragged",
			"drag_started", "drag_stopped", "hovered", "has_focus",
			"gained_focus", "lost_focus",
		}),
		Mutators: toSet([]string{
			"push", "pop", "insert", "remove", "clear", "append", "extend",
			"retain", "drain", "truncate", "toggle", "set", "take", "replace",
		}),
		CompoundOps: map[string]string{
			"+=": "add_assign",
			"-=": "sub_assign",
			"*=": "mul_assign",
			"/=": "div_assign",
		},
	}
}

// vocabularyFile is the on-disk YAML shape. Every section is optional;
// omitted sections keep their defaults.
type vocabularyFile struct {
	Constructors []string          `yaml:"constructors"`
	Actions      []string          `yaml:"actions"`
	Mutators     []string          `yaml:"mutators"`
	CompoundOps  map[string]string `yaml:"compound_ops"`
}

// LoadVocabulary reads a YAML vocabulary file and overlays it on the
// defaults. A non-empty section replaces the default set wholesale.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("flow: read vocabulary %s: %w", path, err)
	}
	return ParseVocabulary(data)
}

// ParseVocabulary parses YAML vocabulary data. See LoadVocabulary.
func ParseVocabulary(data []byte) (*Vocabulary, error) {
	var vf vocabularyFile
	if err := yaml.Unmarshal(data, &vf); err != nil {
		return nil, fmt.Errorf("flow: parse vocabulary: %w", err)
	}
	v := DefaultVocabulary()
	if len(vf.Constructors) > 0 {
		v.Constructors = toSet(vf.Constructors)
	}
	if len(vf.Actions) > 0 {
		v.Actions = toSet(vf.Actions)
	}
	if len(vf.Mutators) > 0 {
		v.Mutators = toSet(vf.Mutators)
	}
	if len(vf.CompoundOps) > 0 {
		v.CompoundOps = vf.CompoundOps
	}
	return v, nil
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
