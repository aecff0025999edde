package types

// Config is the resolved on-disk tool configuration. The core consumes it
// read-only; prompting and persistence live in the adapters/CLI layer.
type Config struct {
	AutoInstall       bool `json:"auto_install" mapstructure:"auto_install"`
	AutoUpdatePip     bool `json:"auto_update_pip" mapstructure:"auto_update_pip"`
	CheckRequirements bool `json:"check_requirements" mapstructure:"check_requirements"`
}

// DefaultConfig returns the safe defaults used on first run and whenever the
// config file cannot be read.
func DefaultConfig() Config {
	return Config{
		AutoInstall:       false,
		AutoUpdatePip:     false,
		CheckRequirements: true,
	}
}
