package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pyrun/internal/policies"
	"pyrun/internal/types"
)

func suggestionNames(suggestions []types.Suggestion) []string {
	names := make([]string, 0, len(suggestions))
	for _, sg := range suggestions {
		names = append(names, sg.Name)
	}
	return names
}

func TestSuggestUsesPipHint(t *testing.T) {
	service, _ := newTestService(t)
	policy := policies.NewInstallPolicy(types.Config{}, false)

	suggestions := service.suggestAlternatives(context.Background(), "pilow",
		`ERROR: No matching distribution found for pilow. Perhaps you meant "pillow"?`, policy)

	assert.Contains(t, suggestionNames(suggestions), "pillow")
}

func TestSuggestExactIndexMatch(t *testing.T) {
	service, p := newTestService(t)
	p.index.projects["requests"] = types.IndexProject{Name: "requests", Version: "2.31.0", Summary: "HTTP for Humans."}
	policy := policies.NewInstallPolicy(types.Config{}, false)

	suggestions := service.suggestAlternatives(context.Background(), "requests", "some pip error", policy)

	require.NotEmpty(t, suggestions)
	assert.Equal(t, "requests", suggestions[0].Name)
	assert.True(t, suggestions[0].ExactMatch)
}

func TestSuggestNearMissFromMapping(t *testing.T) {
	service, _ := newTestService(t)
	policy := policies.NewInstallPolicy(types.Config{}, false)

	// one edit away from the known module "yaml"
	suggestions := service.suggestAlternatives(context.Background(), "yamll", "some pip error", policy)

	assert.Contains(t, suggestionNames(suggestions), "pyyaml")
}

func TestSuggestInstalledSubstringMatch(t *testing.T) {
	service, p := newTestService(t)
	p.pyEnv.installed = map[string]string{"opencv-python": "4.9.0"}
	policy := policies.NewInstallPolicy(types.Config{}, false)

	suggestions := service.suggestAlternatives(context.Background(), "opencv", "some pip error", policy)

	assert.Contains(t, suggestionNames(suggestions), "opencv-python")
}

func TestSuggestDeduplicatesAndCaps(t *testing.T) {
	service, p := newTestService(t)
	p.index.projects["pillow"] = types.IndexProject{Name: "pillow", Version: "10.0.0"}
	policy := policies.NewInstallPolicy(types.Config{}, false)

	suggestions := service.suggestAlternatives(context.Background(), "pillow",
		`Perhaps you meant "pillow"?`, policy)

	assert.Equal(t, []string{"pillow"}, suggestionNames(suggestions))
	assert.LessOrEqual(t, len(suggestions), policy.MaxSuggestions)
}

func TestSuggestNothingToSay(t *testing.T) {
	service, _ := newTestService(t)
	policy := policies.NewInstallPolicy(types.Config{}, false)

	suggestions := service.suggestAlternatives(context.Background(), "qqqqzzzzxxxx", "unhelpful output", policy)
	assert.Empty(t, suggestions)
}
