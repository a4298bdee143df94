package flow

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultVocabulary(t *testing.T) {
	v := DefaultVocabulary()

	assert.True(t, v.Constructors["button"])
	assert.True(t, v.Constructors["checkbox"])
	assert.True(t, v.Constructors["menu_button"])
	assert.False(t, v.Constructors["clicked"])

	assert.True(t, v.Actions["clicked"])
	assert.True(t, v.Actions["lost_focus"])
	assert.False(t, v.Actions["button"])

	assert.True(t, v.Mutators["push"])
	assert.True(t, v.Mutators["replace"])
	assert.False(t, v.Mutators["len"])

	assert.Equal(t, "add_assign", v.CompoundOps["+="])
	assert.Equal(t, "div_assign", v.CompoundOps["/="])
}

func TestParseVocabulary_OverridesSectionsWholesale(t *testing.T) {
	v, err := ParseVocabulary([]byte(`
actions:
  - tapped
  - long_pressed
compound_ops:
  "+=": "increment"
`))
	require.NoError(t, err)

	// Overridden sections replace the defaults entirely.
	assert.True(t, v.Actions["tapped"])
	assert.True(t, v.Actions["long_pressed"])
	assert.False(t, v.Actions["clicked"])
	assert.Equal(t, "increment", v.CompoundOps["+="])
	assert.Empty(t, v.CompoundOps["-="])

	// Omitted sections keep the defaults.
	assert.True(t, v.Constructors["button"])
	assert.True(t, v.Mutators["push"])
}

func TestParseVocabulary_EmptyKeepsDefaults(t *testing.T) {
	v, err := ParseVocabulary([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultVocabulary(), v)
}

func TestParseVocabulary_InvalidYAML(t *testing.T) {
	_, err := ParseVocabulary([]byte("actions: [unclosed"))
	assert.Error(t, err)
}

func TestLoadVocabulary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mutators:\n  - enqueue\n"), 0o644))

	v, err := LoadVocabulary(path)
	require.NoError(t, err)
	assert.True(t, v.Mutators["enqueue"])
	assert.False(t, v.Mutators["push"])
}

func TestLoadVocabulary_MissingFile(t *testing.T) {
	_, err := LoadVocabulary(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
