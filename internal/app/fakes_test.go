package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pyrun/internal/core"
	"pyrun/internal/ports"
	"pyrun/internal/types"
)

type fakePyEnv struct {
	stdlib     map[string]struct{}
	installed  map[string]string
	importable map[string]bool
	pipVersion string
}

func (f *fakePyEnv) StdlibModules(context.Context) (map[string]struct{}, error) {
	return f.stdlib, nil
}

func (f *fakePyEnv) Importable(_ context.Context, module string) (bool, error) {
	return f.importable[module], nil
}

func (f *fakePyEnv) InstalledDistributions(context.Context) (map[string]string, error) {
	return f.installed, nil
}

func (f *fakePyEnv) PipVersion(context.Context) (string, error) {
	if f.pipVersion == "" {
		return "", errors.New("pip not available")
	}
	return f.pipVersion, nil
}

func (f *fakePyEnv) Interpreter() string { return "python3" }

type installCall struct {
	distribution string
	opts         ports.InstallOptions
}

type fakeInstaller struct {
	failures    map[string]string
	calls       []installCall
	pipUpgraded bool
}

func (f *fakeInstaller) Install(_ context.Context, distribution string, opts ports.InstallOptions) error {
	f.calls = append(f.calls, installCall{distribution: distribution, opts: opts})
	if message, failed := f.failures[distribution]; failed {
		return errors.New(message)
	}
	return nil
}

func (f *fakeInstaller) UpgradePip(context.Context) error {
	f.pipUpgraded = true
	return nil
}

type fakeIndex struct {
	projects map[string]types.IndexProject
	lookups  []string
}

func (f *fakeIndex) Lookup(_ context.Context, name string) (types.IndexProject, bool, error) {
	f.lookups = append(f.lookups, name)
	project, found := f.projects[name]
	return project, found, nil
}

type fakeRequirements struct {
	requirements []types.Requirement
	loadedPaths  []string
}

func (f *fakeRequirements) Load(path string) ([]types.Requirement, error) {
	f.loadedPaths = append(f.loadedPaths, path)
	return f.requirements, nil
}

type fakeConfig struct {
	cfg    types.Config
	exists bool
	saved  *types.Config
}

func (f *fakeConfig) Load() (types.Config, error) { return f.cfg, nil }

func (f *fakeConfig) Save(cfg types.Config) error {
	f.saved = &cfg
	f.exists = true
	return nil
}

func (f *fakeConfig) Exists() bool { return f.exists }
func (f *fakeConfig) Path() string { return "/tmp/pyrun-test/config.json" }

type fakePrompt struct {
	answer bool
	asked  []string
}

func (f *fakePrompt) Confirm(message string) bool {
	f.asked = append(f.asked, message)
	return f.answer
}

type fakeRunner struct {
	exitCode int
	script   string
	args     []string
	ran      bool
}

func (f *fakeRunner) Run(_ context.Context, script string, args []string) (int, error) {
	f.ran = true
	f.script = script
	f.args = args
	return f.exitCode, nil
}

type testPorts struct {
	pyEnv        *fakePyEnv
	installer    *fakeInstaller
	index        *fakeIndex
	requirements *fakeRequirements
	config       *fakeConfig
	prompt       *fakePrompt
	runner       *fakeRunner
}

func newTestService(t *testing.T) (Service, *testPorts) {
	t.Helper()
	mapping, err := core.LoadDefaultMapping()
	require.NoError(t, err)

	p := &testPorts{
		pyEnv: &fakePyEnv{
			stdlib:     map[string]struct{}{"os": {}, "sys": {}, "json": {}},
			installed:  map[string]string{},
			importable: map[string]bool{},
			pipVersion: "24.0",
		},
		installer:    &fakeInstaller{failures: map[string]string{}},
		index:        &fakeIndex{projects: map[string]types.IndexProject{}},
		requirements: &fakeRequirements{},
		config:       &fakeConfig{cfg: types.DefaultConfig(), exists: true},
		prompt:       &fakePrompt{answer: true},
		runner:       &fakeRunner{},
	}
	service := Service{
		Extractor:    core.NewImportExtractor(),
		Locator:      core.NewLocalLocator(),
		Mapping:      mapping,
		PyEnv:        p.pyEnv,
		Installer:    p.installer,
		Index:        p.index,
		Requirements: p.requirements,
		Config:       p.config,
		Prompt:       p.prompt,
		Runner:       p.runner,
		Clock:        func() time.Time { return time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC) },
	}
	return service, p
}
