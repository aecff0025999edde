package adapters

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pyrun/internal/ports"
	"pyrun/internal/shared"
)

// PipAdapter installs distributions by invoking pip through the target
// interpreter. One invocation at a time; pip serializes installs internally.
type PipAdapter struct {
	Python string
}

func NewPipAdapter(python string) PipAdapter {
	if strings.TrimSpace(python) == "" {
		python = defaultInterpreter
	}
	return PipAdapter{Python: python}
}

// Install attempts one install. The returned error carries pip's combined
// output so callers can classify the failure and surface suggestions.
func (a PipAdapter) Install(ctx context.Context, distribution string, opts ports.InstallOptions) error {
	distribution = strings.TrimSpace(distribution)
	if distribution == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("distribution name is empty")
	}
	args := []string{"-m", "pip", "install"}
	if opts.NoCache {
		args = append(args, "--no-cache-dir")
	}
	if opts.IndexURL != "" {
		args = append(args, "--index-url", opts.IndexURL)
	}
	args = append(args, distribution)

	log.Ctx(ctx).Info().Str("distribution", distribution).Bool("no_cache", opts.NoCache).Msg("installing")
	out, err := exec.CommandContext(ctx, a.Python, args...).CombinedOutput()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("pip install %s failed", distribution)).
			WithCause(shared.CommandError(out, err))
	}
	return nil
}

func (a PipAdapter) UpgradePip(ctx context.Context) error {
	out, err := exec.CommandContext(ctx, a.Python, "-m", "pip", "install", "--upgrade", "pip").CombinedOutput()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("pip self-upgrade failed").
			WithCause(shared.CommandError(out, err))
	}
	return nil
}

var _ ports.InstallerPort = PipAdapter{}
