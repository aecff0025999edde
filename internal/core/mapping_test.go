package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMappingKnownMismatches(t *testing.T) {
	mapping, err := LoadDefaultMapping()
	require.NoError(t, err)

	cases := map[string]string{
		"PIL":     "pillow",
		"cv2":     "opencv-python",
		"sklearn": "scikit-learn",
		"bs4":     "beautifulsoup4",
		"yaml":    "pyyaml",
	}
	for module, want := range cases {
		got, installable := mapping.Distribution(module)
		assert.True(t, installable, module)
		assert.Equal(t, want, got, module)
	}
}

func TestDefaultMappingIdentityFallback(t *testing.T) {
	mapping, err := LoadDefaultMapping()
	require.NoError(t, err)

	got, installable := mapping.Distribution("requests")
	assert.True(t, installable)
	assert.Equal(t, "requests", got)
}

func TestDefaultMappingNotInstallable(t *testing.T) {
	mapping, err := LoadDefaultMapping()
	require.NoError(t, err)

	_, installable := mapping.Distribution("tkinter")
	assert.False(t, installable)
}

func TestMappingDottedNameUsesRoot(t *testing.T) {
	mapping, err := ParseMapping([]byte("alpha: plain\n"))
	require.NoError(t, err)

	got, installable := mapping.Distribution("alpha.beta")
	require.True(t, installable)
	assert.Equal(t, "plain", got)
}

func TestDefaultMappingKeysAreRoots(t *testing.T) {
	mapping, err := LoadDefaultMapping()
	require.NoError(t, err)

	// The scanner reports root modules only, so a dotted key could never
	// match anything.
	for _, name := range mapping.KnownModules() {
		assert.NotContains(t, name, ".", name)
	}
}

func TestMappingDottedUnknownFallsToRoot(t *testing.T) {
	mapping, err := ParseMapping([]byte("{}"))
	require.NoError(t, err)

	got, installable := mapping.Distribution("pkg.sub.deep")
	require.True(t, installable)
	assert.Equal(t, "pkg", got)
}

func TestMappingKnownModulesSorted(t *testing.T) {
	mapping, err := ParseMapping([]byte("zeta: z\nalpha: a\nmid: m\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, mapping.KnownModules())
}

func TestParseMappingRejectsGarbage(t *testing.T) {
	_, err := ParseMapping([]byte(":\n  - broken"))
	assert.Error(t, err)
}
