package adapters

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/viper"

	"pyrun/internal/ports"
	"pyrun/internal/types"
)

const (
	envConfigDir  = "PYRUN_CONFIG_DIR"
	envConfigFile = "PYRUN_CONFIG_FILE"

	configDirName  = ".pyrun"
	configFileName = "config.json"
)

// ConfigFileAdapter persists the tool configuration as JSON under the
// user's dot-directory. Both the directory and the full file path can be
// overridden through the environment; an explicit path wins over both.
type ConfigFileAdapter struct {
	path string
}

func NewConfigFileAdapter(explicitPath string) ConfigFileAdapter {
	return ConfigFileAdapter{path: resolveConfigPath(explicitPath)}
}

func resolveConfigPath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}
	if fromEnv := os.Getenv(envConfigFile); fromEnv != "" {
		return fromEnv
	}
	dir := os.Getenv(envConfigDir)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dir = filepath.Join(home, configDirName)
	}
	return filepath.Join(dir, configFileName)
}

func (a ConfigFileAdapter) Path() string {
	return a.path
}

func (a ConfigFileAdapter) Exists() bool {
	info, err := os.Stat(a.path)
	return err == nil && !info.IsDir()
}

// Load reads the config file. A missing file returns the defaults silently;
// a malformed file returns the defaults together with the error, so the
// caller warns instead of crashing.
func (a ConfigFileAdapter) Load() (types.Config, error) {
	if !a.Exists() {
		return types.DefaultConfig(), nil
	}

	v := viper.New()
	v.SetConfigFile(a.path)
	v.SetConfigType("json")
	defaults := types.DefaultConfig()
	v.SetDefault("auto_install", defaults.AutoInstall)
	v.SetDefault("auto_update_pip", defaults.AutoUpdatePip)
	v.SetDefault("check_requirements", defaults.CheckRequirements)

	if err := v.ReadInConfig(); err != nil {
		return types.DefaultConfig(), errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("malformed config file, falling back to defaults").
			WithCause(err)
	}
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.DefaultConfig(), errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid config values, falling back to defaults").
			WithCause(err)
	}
	return cfg, nil
}

func (a ConfigFileAdapter) Save(cfg types.Config) error {
	if err := os.MkdirAll(filepath.Dir(a.path), 0o755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create config directory").
			WithCause(err)
	}
	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode config").
			WithCause(err)
	}
	if err := os.WriteFile(a.path, append(data, '\n'), 0o644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write config file").
			WithCause(err)
	}
	return nil
}

var _ ports.ConfigPort = ConfigFileAdapter{}
