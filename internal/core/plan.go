package core

import (
	"context"

	"github.com/rs/zerolog/log"

	"pyrun/internal/shared"
	"pyrun/internal/types"
)

// BuildPlan merges the mapped script imports with requirements-file entries
// into one install plan. Entries are deduplicated by PEP 503 normalized
// distribution name and keep first-seen order so output stays deterministic;
// scanned imports come first, requirements after.
func BuildPlan(modules []string, requirements []types.Requirement, mapping PackageMapping) []types.PlanEntry {
	var plan []types.PlanEntry
	index := map[string]int{}

	for _, module := range modules {
		distribution, installable := mapping.Distribution(module)
		if !installable || distribution == "" {
			continue
		}
		key := shared.NormalizePipName(distribution)
		if _, dup := index[key]; dup {
			continue
		}
		index[key] = len(plan)
		plan = append(plan, types.PlanEntry{
			Distribution: distribution,
			Module:       module,
			Source:       types.PlanEntrySourceImports,
			State:        types.PlanEntryStatePending,
		})
	}

	for _, req := range requirements {
		key := shared.NormalizePipName(req.Name)
		if at, dup := index[key]; dup {
			if plan[at].Specifier == "" {
				plan[at].Specifier = req.Specifier
			}
			continue
		}
		index[key] = len(plan)
		plan = append(plan, types.PlanEntry{
			Distribution: req.Name,
			Module:       req.Name,
			Specifier:    req.Specifier,
			Source:       types.PlanEntrySourceRequirements,
			State:        types.PlanEntryStatePending,
		})
	}

	return plan
}

// Availability is the environment view the filter consults. Importable may
// be nil when no interpreter probe is available.
type Availability struct {
	Stdlib     map[string]struct{}
	Installed  map[string]string
	Importable func(ctx context.Context, module string) (bool, error)
}

// FilterPlan splits the plan into entries still needing an install and
// entries the environment already satisfies. The check is deliberately
// conservative: a probe error counts as "missing", because a redundant
// install is idempotent while a wrong skip is not. Filtering an already
// filtered plan is a no-op.
func FilterPlan(ctx context.Context, plan []types.PlanEntry, avail Availability) (remaining []types.PlanEntry, satisfied []types.PlanEntry) {
	for _, entry := range plan {
		if isSatisfied(ctx, entry, avail) {
			entry.State = types.PlanEntryStateDone
			satisfied = append(satisfied, entry)
			continue
		}
		remaining = append(remaining, entry)
	}
	return remaining, satisfied
}

func isSatisfied(ctx context.Context, entry types.PlanEntry, avail Availability) bool {
	module := shared.RootModule(entry.Module)
	if _, ok := avail.Stdlib[module]; ok {
		return true
	}
	if _, ok := avail.Installed[shared.NormalizePipName(entry.Distribution)]; ok {
		return true
	}
	if avail.Importable == nil {
		return false
	}
	importable, err := avail.Importable(ctx, module)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("module", module).Msg("import probe failed, treating as missing")
		return false
	}
	return importable
}
