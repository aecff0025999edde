package app

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"pyrun/internal/policies"
	"pyrun/internal/shared"
	"pyrun/internal/types"
)

// nearMissDistance bounds how far a known name may differ from the failed
// one before it stops being a plausible typo.
const nearMissDistance = 2

// suggestAlternatives assembles candidate distributions after a failed
// install: pip's own "did you mean" hint, an exact index match for the
// original module name, near-miss names from the mapping table, and
// installed distributions containing the name. Purely informational; none
// of these are ever installed automatically, since guessing wrong could
// pull in an unrelated or malicious package.
func (s Service) suggestAlternatives(ctx context.Context, module string, pipError string, policy policies.InstallPolicy) []types.Suggestion {
	var suggestions []types.Suggestion
	seen := map[string]struct{}{}
	add := func(sg types.Suggestion) {
		key := shared.NormalizePipName(sg.Name)
		if key == "" {
			return
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		suggestions = append(suggestions, sg)
	}

	if name, ok := policy.ExtractPipSuggestion(pipError); ok {
		add(types.Suggestion{Name: name, Summary: "suggested by pip"})
	}

	if project, found, err := s.Index.Lookup(ctx, module); err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("module", module).Msg("index lookup failed during suggestion search")
	} else if found {
		add(types.Suggestion{
			Name:       project.Name,
			Version:    project.Version,
			Summary:    project.Summary,
			ExactMatch: true,
		})
	}

	normalized := shared.NormalizePipName(module)
	for _, known := range s.Mapping.KnownModules() {
		if len(suggestions) >= policy.MaxSuggestions {
			break
		}
		if shared.Levenshtein(normalized, shared.NormalizePipName(known)) > nearMissDistance {
			continue
		}
		if distribution, installable := s.Mapping.Distribution(known); installable {
			add(types.Suggestion{Name: distribution, Summary: "near-miss of known module " + known})
		}
	}

	if installed, err := s.PyEnv.InstalledDistributions(ctx); err == nil {
		for name, version := range installed {
			if len(suggestions) >= policy.MaxSuggestions {
				break
			}
			if strings.Contains(name, normalized) || strings.Contains(normalized, name) {
				add(types.Suggestion{Name: name, Version: version, Summary: "already installed"})
			}
		}
	}

	if len(suggestions) > policy.MaxSuggestions {
		suggestions = suggestions[:policy.MaxSuggestions]
	}
	return suggestions
}
