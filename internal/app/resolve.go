package app

import (
	"context"
	"path/filepath"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pyrun/internal/core"
	"pyrun/internal/types"
)

const requirementsFileName = "requirements.txt"

// Resolve scans the entry script, maps the discovered modules to
// distributions, merges the optional requirements file and filters out what
// the environment already satisfies. No network action happens here.
func (s Service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	script := strings.TrimSpace(req.Script)
	if script == "" {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("entry script path is required")
	}
	assert.NotEmpty(ctx, script, "entry script path must be set")

	cfg := s.loadConfig(ctx)

	resolver := core.NewSourceResolver(s.Extractor, s.Locator)
	resolution, err := resolver.Resolve(ctx, script)
	if err != nil {
		return ResolveResult{}, err
	}

	var requirements []types.Requirement
	if cfg.CheckRequirements && !req.SkipRequirements {
		path := req.RequirementsFile
		if path == "" {
			abs, absErr := filepath.Abs(script)
			if absErr == nil {
				path = filepath.Join(filepath.Dir(abs), requirementsFileName)
			}
		}
		if path != "" {
			requirements, err = s.Requirements.Load(path)
			if err != nil {
				return ResolveResult{}, err
			}
		}
	}

	plan := core.BuildPlan(resolution.Externals, requirements, s.Mapping)
	remaining, satisfied := core.FilterPlan(ctx, plan, s.availability(ctx))

	// Report the canonical entry path so parse failures can be matched
	// against it.
	entry := script
	if len(resolution.Visited) > 0 {
		entry = resolution.Visited[0]
	}
	report := types.ResolveReport{
		Entry:         entry,
		Externals:     resolution.Externals,
		ParseFailures: resolution.ParseFailures,
		Requirements:  requirements,
		Plan:          remaining,
		Satisfied:     satisfied,
		GeneratedAt:   s.now(),
	}
	log.Ctx(ctx).Debug().
		Int("plan", len(remaining)).
		Int("satisfied", len(satisfied)).
		Msg("resolve completed")
	return ResolveResult{Report: report}, nil
}

// availability assembles the environment view for the filter. Probe
// failures leave the corresponding check empty, which biases the filter
// toward "missing" rather than a wrong skip.
func (s Service) availability(ctx context.Context) core.Availability {
	stdlib, err := s.PyEnv.StdlibModules(ctx)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("stdlib set unavailable")
		stdlib = map[string]struct{}{}
	}
	installed, err := s.PyEnv.InstalledDistributions(ctx)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Msg("installed distribution list unavailable")
		installed = map[string]string{}
	}
	return core.Availability{
		Stdlib:     stdlib,
		Installed:  installed,
		Importable: s.PyEnv.Importable,
	}
}
