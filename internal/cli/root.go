package cli

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "PYRUN"

// Exit codes for the resolution contract: the script's own exit code is
// passed through on success, these cover pyrun's own failures.
const (
	exitUsage        = 2
	exitUndetermined = 4
	exitNotFound     = 5
)

type RootConfig struct {
	ConfigFile string
	LogLevel   string
	Python     string
}

func Execute() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		log.Error().Msg(errorMessage(err))
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:     "pyrun <script.py> [args...]",
		Short:   "Run Python scripts with automatic dependency installation",
		Version: version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			initConfig()
			setupLogging(viper.GetString("log_level"))
			// Service code logs through log.Ctx, which falls back to a
			// disabled logger when the context carries none.
			cmd.SetContext(loggerContext(cmd.Context()))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			// Bare `pyrun script.py` behaves like `pyrun run`.
			return runRun(cmd.Context(), cmd, runOptions{}, args)
		},
	}
	// Flags after the script belong to the script, not to pyrun.
	cmd.Flags().SetInterspersed(false)

	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	cmd.PersistentFlags().StringVar(&cfg.Python, "python", "", "Python interpreter to use")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("python", cmd.PersistentFlags().Lookup("python"))
	_ = viper.BindPFlag("config_file", cmd.PersistentFlags().Lookup("config"))

	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newResolveCommand())
	cmd.AddCommand(newConfigCommand())
	return cmd
}

// loggerContext attaches the process logger, so warnings emitted deep in
// the service reach stderr.
func loggerContext(ctx context.Context) context.Context {
	return log.Logger.WithContext(ctx)
}

func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func exitCodeForError(err error) int {
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument, errbuilder.CodeAlreadyExists:
		return exitUsage
	case errbuilder.CodeFailedPrecondition:
		return exitUndetermined
	case errbuilder.CodeNotFound:
		return exitNotFound
	case errbuilder.CodeInternal:
		return exitNotFound
	default:
		return 1
	}
}

// resolveString prefers an explicitly set flag over the viper-resolved value,
// so environment variables fill in only when the flag is absent.
func resolveString(cmd *cobra.Command, flagValue string, viperKey string, flagName string) string {
	if cmd.Flags().Changed(flagName) {
		return flagValue
	}
	if fromEnv := viper.GetString(viperKey); fromEnv != "" {
		return fromEnv
	}
	return flagValue
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
