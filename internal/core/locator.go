package core

import (
	"os"
	"path/filepath"

	"pyrun/internal/shared"
)

// LocalLocator decides whether a module name refers to a sibling source file
// or package directory of the importing file, using path existence only: no
// interpreter state is consulted and nothing is imported.
type LocalLocator struct{}

func NewLocalLocator() LocalLocator {
	return LocalLocator{}
}

// Locate returns the path to scan next when the module resolves locally. A
// sibling `name.py` wins over a same-named package directory; the package
// form requires `name/__init__.py`.
func (LocalLocator) Locate(module string, dir string) (string, bool) {
	base := shared.RootModule(module)
	if base == "" || dir == "" {
		return "", false
	}

	file := filepath.Join(dir, base+".py")
	if info, err := os.Stat(file); err == nil && !info.IsDir() {
		return file, true
	}

	initFile := filepath.Join(dir, base, "__init__.py")
	if info, err := os.Stat(initFile); err == nil && !info.IsDir() {
		return initFile, true
	}

	return "", false
}
