// Package parser turns Rust source text into the tree-sitter syntax tree
// the extraction passes walk. It owns source bytes and tree lifetime; the
// extractors only read nodes.
package parser

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// File is a parsed Rust source file. Close releases the underlying tree.
type File struct {
	Path   string
	Source []byte
	tree   *sitter.Tree
}

// Parse parses src as Rust. Each call creates its own tree-sitter parser,
// so Parse is safe for concurrent use across goroutines.
func Parse(ctx context.Context, path string, src []byte) (*File, error) {
	p := sitter.NewParser()
	p.SetLanguage(rust.GetLanguage())
	tree, err := p.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parser: parse %s: %w", path, err)
	}
	return &File{Path: path, Source: src, tree: tree}, nil
}

// ParseFile reads and parses the Rust file at path.
func ParseFile(ctx context.Context, path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("parser: read %s: %w", path, err)
	}
	return Parse(ctx, path, src)
}

// Root returns the tree's root node.
func (f *File) Root() *sitter.Node {
	return f.tree.RootNode()
}

// Close frees the tree-sitter tree. The File must not be used afterwards.
func (f *File) Close() {
	f.tree.Close()
}
