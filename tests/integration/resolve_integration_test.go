package integration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pyrun/internal/app"
	"pyrun/internal/types"
	"pyrun/tests/testutil"
)

func TestResolveAgainstRealInterpreter(t *testing.T) {
	testutil.RequirePython(t)

	dir := t.TempDir()
	testutil.WriteScript(t, dir, "helper.py", "import json\nimport totallyfakepkg123\n")
	script := testutil.WriteScript(t, dir, "main.py", `import os
import helper
from PIL import Image
`)
	testutil.WriteScript(t, dir, "requirements.txt", "somefakereq456>=1.0\n")

	t.Setenv("PYRUN_CONFIG_FILE", filepath.Join(dir, "config.json"))
	service, err := app.NewService("", "")
	require.NoError(t, err)

	result, err := service.Resolve(context.Background(), app.ResolveRequest{Script: script})
	require.NoError(t, err)

	report := result.Report
	assert.ElementsMatch(t, []string{"os", "PIL", "json", "totallyfakepkg123"}, report.Externals)

	planned := map[string]types.PlanEntry{}
	for _, entry := range report.Plan {
		planned[entry.Distribution] = entry
	}
	// whether pillow lands in the plan depends on the host environment,
	// but the mapping must have been applied either way
	all := map[string]types.PlanEntry{}
	for _, entry := range append(report.Satisfied, report.Plan...) {
		all[entry.Distribution] = entry
	}
	assert.NotContains(t, planned, "os")
	assert.NotContains(t, planned, "json")
	require.Contains(t, all, "pillow")
	assert.Equal(t, "PIL", all["pillow"].Module)
	require.Contains(t, planned, "totallyfakepkg123")
	require.Contains(t, planned, "somefakereq456")
	assert.Equal(t, types.PlanEntrySourceRequirements, planned["somefakereq456"].Source)
}

func TestResolveLocalModuleShadowing(t *testing.T) {
	testutil.RequirePython(t)

	dir := t.TempDir()
	testutil.WriteScript(t, dir, "requests.py", "import totallyfakepkg123\n")
	script := testutil.WriteScript(t, dir, "main.py", "import requests\n")

	t.Setenv("PYRUN_CONFIG_FILE", filepath.Join(dir, "config.json"))
	service, err := app.NewService("", "")
	require.NoError(t, err)

	result, err := service.Resolve(context.Background(), app.ResolveRequest{Script: script, SkipRequirements: true})
	require.NoError(t, err)

	// the sibling requests.py shadows the distribution; only its own
	// imports count
	assert.Equal(t, []string{"totallyfakepkg123"}, result.Report.Externals)
}
