package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"pyrun/internal/adapters"
	"pyrun/internal/core"
	"pyrun/internal/ports"
	"pyrun/internal/types"
)

// Service wires the resolution core to its environment ports. Everything is
// rebuilt per process; no state crosses runs except the config file.
type Service struct {
	Extractor    *core.ImportExtractor
	Locator      core.LocalLocator
	Mapping      core.PackageMapping
	PyEnv        ports.PyEnvPort
	Installer    ports.InstallerPort
	Index        ports.PackageIndexPort
	Requirements ports.RequirementsPort
	Config       ports.ConfigPort
	Prompt       ports.PromptPort
	Runner       ports.RunnerPort
	Clock        func() time.Time
}

func NewService(python string, configPath string) (Service, error) {
	mapping, err := core.LoadDefaultMapping()
	if err != nil {
		return Service{}, err
	}
	return Service{
		Extractor:    core.NewImportExtractor(),
		Locator:      core.NewLocalLocator(),
		Mapping:      mapping,
		PyEnv:        adapters.NewPyEnvAdapter(python),
		Installer:    adapters.NewPipAdapter(python),
		Index:        adapters.NewPyPIAdapter(""),
		Requirements: adapters.NewRequirementsFileAdapter(),
		Config:       adapters.NewConfigFileAdapter(configPath),
		Prompt:       adapters.NewStdinPrompt(),
		Runner:       adapters.NewScriptRunner(python),
		Clock:        time.Now,
	}, nil
}

// loadConfig degrades to defaults on a broken config file, per the error
// design: configuration problems warn, they never abort a run.
func (s Service) loadConfig(ctx context.Context) types.Config {
	cfg, err := s.Config.Load()
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("path", s.Config.Path()).Msg("using default configuration")
	}
	return cfg
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}
