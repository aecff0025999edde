package core

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/alexaandru/go-sitter-forest/python"
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"pyrun/internal/shared"
	"pyrun/internal/types"
)

// ImportExtractor finds the top-level modules a Python source unit imports.
// It works on the syntax tree alone: scanned code is never executed or
// imported, and imports nested inside guards such as
// `if __name__ == "__main__":` are still found because the whole tree is
// walked.
type ImportExtractor struct {
	parser *sitter.Parser
}

func NewImportExtractor() *ImportExtractor {
	parser := sitter.NewParser()
	parser.SetLanguage(sitter.NewLanguage(python.GetLanguage()))
	return &ImportExtractor{parser: parser}
}

// Extract returns the distinct root-module references of the unit, each with
// its provenance kind. Dotted paths report only the root segment, which is
// the installable unit. When the source has syntax errors the recoverable
// records are returned together with a non-nil error; callers treat the
// error as a per-file warning, not a reason to abort.
func (e *ImportExtractor) Extract(ctx context.Context, unit types.SourceUnit, source []byte) ([]types.ImportRecord, error) {
	tree, err := e.parser.ParseString(ctx, nil, source)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to parse %s", unit.Path)).
			WithCause(err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("no syntax tree for %s", unit.Path))
	}

	walker := importWalker{
		source: source,
		unit:   unit,
		seen:   map[string]struct{}{},
	}
	walker.walk(root)

	if walker.errored {
		return walker.records, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("syntax errors in %s", unit.Path))
	}
	return walker.records, nil
}

type importWalker struct {
	source  []byte
	unit    types.SourceUnit
	seen    map[string]struct{}
	records []types.ImportRecord
	errored bool
}

func (w *importWalker) walk(node sitter.Node) {
	switch node.Type() {
	case "import_statement":
		w.collectImport(node)
		return
	case "import_from_statement":
		w.collectFromImport(node)
		return
	case "future_import_statement":
		// `from __future__ import ...` is interpreter-provided.
		return
	case "ERROR":
		// error recovery: keep walking, imports may sit past the breakage
		w.errored = true
	}
	for idx := range node.NamedChildCount() {
		w.walk(node.NamedChild(idx))
	}
}

// collectImport handles `import a.b.c` and `import a as b`.
func (w *importWalker) collectImport(node sitter.Node) {
	for idx := range node.NamedChildCount() {
		child := node.NamedChild(idx)
		switch child.Type() {
		case "dotted_name":
			w.add(w.text(child), types.ImportKindAbsolute)
		case "aliased_import":
			name := child.ChildByFieldName("name")
			if !name.IsNull() {
				w.add(w.text(name), types.ImportKindAbsolute)
			}
		}
	}
}

// collectFromImport handles `from a.b import c` plus the relative forms
// `from .sibling import x` and `from . import x`.
func (w *importWalker) collectFromImport(node sitter.Node) {
	module := node.ChildByFieldName("module_name")
	if module.IsNull() {
		return
	}
	if module.Type() != "relative_import" {
		w.add(w.text(module), types.ImportKindFrom)
		return
	}

	// `from .sibling import x` names the sibling module directly.
	for idx := range module.NamedChildCount() {
		child := module.NamedChild(idx)
		if child.Type() == "dotted_name" {
			w.add(w.text(child), types.ImportKindRelative)
			return
		}
	}

	// `from . import x` imports the siblings themselves.
	for idx := range node.NamedChildCount() {
		child := node.NamedChild(idx)
		switch child.Type() {
		case "dotted_name":
			w.add(w.text(child), types.ImportKindRelative)
		case "aliased_import":
			name := child.ChildByFieldName("name")
			if !name.IsNull() {
				w.add(w.text(name), types.ImportKindRelative)
			}
		}
	}
}

// add records the root segment of a dotted module path once per unit; the
// first observed kind wins.
func (w *importWalker) add(module string, kind types.ImportKind) {
	root := shared.RootModule(module)
	if root == "" {
		return
	}
	if _, dup := w.seen[root]; dup {
		return
	}
	w.seen[root] = struct{}{}
	w.records = append(w.records, types.ImportRecord{
		Module: root,
		Kind:   kind,
		Origin: w.unit,
	})
}

func (w *importWalker) text(node sitter.Node) string {
	start := node.StartByte()
	end := node.EndByte()
	if int(end) > len(w.source) || start > end {
		return ""
	}
	return string(w.source[start:end])
}
