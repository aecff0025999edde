package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pyrun/internal/types"
)

func TestParseRequirementLinePlainName(t *testing.T) {
	req, ok, err := ParseRequirementLine("requests", "requirements.txt")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, types.Requirement{Name: "requests", Source: "requirements.txt"}, req)
}

func TestParseRequirementLineWithSpecifier(t *testing.T) {
	req, ok, err := ParseRequirementLine("numpy>=1.24,<2.0", "requirements.txt")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "numpy", req.Name)
	assert.Equal(t, ">=1.24,<2.0", req.Specifier)
}

func TestParseRequirementLineStripsCommentAndMarker(t *testing.T) {
	req, ok, err := ParseRequirementLine("pandas==2.1.0 ; python_version >= '3.9'  # pinned", "r.txt")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "pandas", req.Name)
	assert.Equal(t, "==2.1.0", req.Specifier)
}

func TestParseRequirementLineStripsExtras(t *testing.T) {
	req, ok, err := ParseRequirementLine("uvicorn[standard]>=0.23", "r.txt")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "uvicorn", req.Name)
	assert.Equal(t, ">=0.23", req.Specifier)
}

func TestParseRequirementLineBlankAndComment(t *testing.T) {
	for _, line := range []string{"", "   ", "# just a comment"} {
		_, ok, err := ParseRequirementLine(line, "r.txt")
		require.NoError(t, err, line)
		assert.False(t, ok, line)
	}
}

func TestParseRequirementLineInvalidSpecifier(t *testing.T) {
	_, _, err := ParseRequirementLine("requests>=not.a.version.!", "r.txt")
	assert.Error(t, err)
}

func TestParseRequirementLineBareOperator(t *testing.T) {
	_, _, err := ParseRequirementLine(">=1.0", "r.txt")
	assert.Error(t, err)
}
