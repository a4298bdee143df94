package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	src := []byte(`fn main() { println!("hi"); }`)
	f, err := Parse(context.Background(), "main.rs", src)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "main.rs", f.Path)
	assert.Equal(t, src, f.Source)
	root := f.Root()
	require.NotNil(t, root)
	assert.Equal(t, "source_file", root.Type())
	assert.Equal(t, 1, int(root.NamedChildCount()))
}

func TestParse_ToleratesSyntaxErrors(t *testing.T) {
	// tree-sitter produces a tree with error nodes rather than failing, so
	// partial files still yield extractable structure.
	f, err := Parse(context.Background(), "broken.rs", []byte("fn broken( { if x"))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "source_file", f.Root().Type())
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.rs")
	require.NoError(t, os.WriteFile(path, []byte("fn lib() {}"), 0o644))

	f, err := ParseFile(context.Background(), path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, path, f.Path)
	assert.Equal(t, "source_file", f.Root().Type())
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(context.Background(), filepath.Join(t.TempDir(), "absent.rs"))
	assert.Error(t, err)
}
