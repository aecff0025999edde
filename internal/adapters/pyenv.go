package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pyrun/internal/ports"
	"pyrun/internal/shared"
)

const defaultInterpreter = "python3"

// stdlibProbe asks the interpreter for its own standard-library set, so the
// answer tracks the running version instead of a baked-in list.
const stdlibProbe = `import sys
print("\n".join(sorted(set(sys.stdlib_module_names) | set(sys.builtin_module_names))))`

// importProbe checks importability without importing: find_spec consults the
// import machinery metadata only. The module name travels via argv, never
// interpolated into code.
const importProbe = `import importlib.util, sys
try:
    spec = importlib.util.find_spec(sys.argv[1])
except (ImportError, ValueError):
    spec = None
sys.exit(0 if spec is not None else 1)`

// fallbackStdlib covers interpreters too old to expose
// sys.stdlib_module_names (pre-3.10). Not the complete set: a module
// missing here still fails the installed-distribution check and then hits
// the find_spec probe, which recognizes it before any install starts. An
// omission costs one probe call, never a wrong skip.
var fallbackStdlib = []string{
	"abc", "argparse", "ast", "asyncio", "base64", "collections",
	"configparser", "contextlib", "copy", "csv", "dataclasses", "datetime",
	"decimal", "enum", "functools", "glob", "gzip", "hashlib", "http",
	"inspect", "io", "itertools", "json", "logging", "math", "os",
	"pathlib", "pickle", "queue", "random", "re", "select", "shutil",
	"signal", "socket", "sqlite3", "string", "struct", "subprocess", "sys",
	"tempfile", "textwrap", "threading", "time", "traceback", "typing",
	"unittest", "urllib", "uuid", "warnings", "zipfile",
}

// PyEnvAdapter answers environment questions by invoking the target
// interpreter. Results that cannot change within a run are cached.
type PyEnvAdapter struct {
	Python string

	stdlib    map[string]struct{}
	installed map[string]string
}

func NewPyEnvAdapter(python string) *PyEnvAdapter {
	if strings.TrimSpace(python) == "" {
		python = defaultInterpreter
	}
	return &PyEnvAdapter{Python: python}
}

func (a *PyEnvAdapter) Interpreter() string {
	return a.Python
}

func (a *PyEnvAdapter) StdlibModules(ctx context.Context) (map[string]struct{}, error) {
	if a.stdlib != nil {
		return a.stdlib, nil
	}
	out, err := exec.CommandContext(ctx, a.Python, "-c", stdlibProbe).Output()
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("stdlib probe failed, using fallback list")
		a.stdlib = make(map[string]struct{}, len(fallbackStdlib))
		for _, name := range fallbackStdlib {
			a.stdlib[name] = struct{}{}
		}
		return a.stdlib, nil
	}
	modules := map[string]struct{}{}
	for _, line := range strings.Split(string(out), "\n") {
		if name := strings.TrimSpace(line); name != "" {
			modules[name] = struct{}{}
		}
	}
	a.stdlib = modules
	return modules, nil
}

func (a *PyEnvAdapter) Importable(ctx context.Context, module string) (bool, error) {
	module = strings.TrimSpace(module)
	if module == "" {
		return false, nil
	}
	err := exec.CommandContext(ctx, a.Python, "-c", importProbe, module).Run()
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return false, nil
	}
	return false, errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("import probe failed for %s", module)).
		WithCause(err)
}

func (a *PyEnvAdapter) InstalledDistributions(ctx context.Context) (map[string]string, error) {
	if a.installed != nil {
		return a.installed, nil
	}
	out, err := exec.CommandContext(ctx, a.Python, "-m", "pip", "list", "--format=json").Output()
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to list installed distributions").
			WithCause(err)
	}
	var listed []struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}
	if err := json.Unmarshal(out, &listed); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to parse pip list output").
			WithCause(err)
	}
	installed := make(map[string]string, len(listed))
	for _, pkg := range listed {
		installed[shared.NormalizePipName(pkg.Name)] = pkg.Version
	}
	a.installed = installed
	return installed, nil
}

func (a *PyEnvAdapter) PipVersion(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, a.Python, "-m", "pip", "--version").Output()
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to query pip version").
			WithCause(err)
	}
	// "pip 24.0 from /usr/lib/python3/dist-packages/pip (python 3.12)"
	fields := strings.Fields(string(out))
	if len(fields) < 2 || fields[0] != "pip" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("unexpected pip version output: %s", strings.TrimSpace(string(out))))
	}
	return fields[1], nil
}

var _ ports.PyEnvPort = (*PyEnvAdapter)(nil)
