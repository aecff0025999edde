package adapters

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pyrun/internal/ports"
)

// ScriptRunner executes the entry script with the target interpreter,
// forwarding arguments verbatim and inheriting the caller's stdio.
type ScriptRunner struct {
	Python string
}

func NewScriptRunner(python string) ScriptRunner {
	if strings.TrimSpace(python) == "" {
		python = defaultInterpreter
	}
	return ScriptRunner{Python: python}
}

func (r ScriptRunner) Run(ctx context.Context, script string, args []string) (int, error) {
	cmd := exec.CommandContext(ctx, r.Python, append([]string{script}, args...)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("failed to execute script").
		WithCause(err)
}

var _ ports.RunnerPort = ScriptRunner{}
