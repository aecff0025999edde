package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pyrun/internal/app"
	"pyrun/internal/types"
)

type runOptions struct {
	Requirements     string
	SkipRequirements bool
	AssumeYes        bool
	IndexURL         string
}

func newRunCommand() *cobra.Command {
	opts := runOptions{}
	cmd := &cobra.Command{
		Use:   "run <script.py> [args...]",
		Short: "Install missing dependencies and execute the script",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd.Context(), cmd, opts, args)
		},
	}
	cmd.Flags().SetInterspersed(false)

	cmd.Flags().StringVar(&opts.Requirements, "requirements", "", "Requirements file path (default: sibling requirements.txt)")
	cmd.Flags().BoolVar(&opts.SkipRequirements, "no-requirements", false, "Skip the requirements file pass")
	cmd.Flags().BoolVarP(&opts.AssumeYes, "yes", "y", false, "Install without asking for confirmation")
	cmd.Flags().StringVar(&opts.IndexURL, "index-url", "", "Package index URL override")

	_ = viper.BindPFlag("index_url", cmd.Flags().Lookup("index-url"))

	return cmd
}

func runRun(ctx context.Context, cmd *cobra.Command, opts runOptions, args []string) error {
	service, err := newAppService()
	if err != nil {
		return err
	}
	ensureConfigured(service)

	result, err := service.Run(ctx, app.RunRequest{
		Script:           args[0],
		Args:             args[1:],
		RequirementsFile: opts.Requirements,
		SkipRequirements: opts.SkipRequirements,
		AssumeYes:        opts.AssumeYes,
		IndexURL:         resolveString(cmd, opts.IndexURL, "index_url", "index-url"),
	})
	if err != nil {
		return err
	}

	reportWarnings(result.Report, result.Outcomes)
	if result.Declined {
		log.Warn().Msg("the script ran without the declined packages")
	}
	if result.ExitCode != 0 {
		os.Exit(result.ExitCode)
	}
	// The script succeeded, but automation should still see that it ran
	// without dependency checks.
	if result.Verdict == types.VerdictUndetermined {
		log.Warn().Msg("imports could not be determined; the script ran without dependency checks")
		os.Exit(exitUndetermined)
	}
	return nil
}

func newAppService() (app.Service, error) {
	return app.NewService(viper.GetString("python"), viper.GetString("config_file"))
}

// ensureConfigured runs the one-time setup on first use: two questions,
// persisted to the config file so later runs stay quiet.
func ensureConfigured(service app.Service) {
	if service.Config.Exists() {
		return
	}
	fmt.Fprintln(os.Stderr, "first run: creating", service.Config.Path())
	cfg := types.DefaultConfig()
	cfg.AutoInstall = service.Prompt.Confirm("install missing packages automatically by default?")
	cfg.AutoUpdatePip = service.Prompt.Confirm("update pip automatically when a newer version is available?")
	if err := service.Config.Save(cfg); err != nil {
		log.Warn().Err(err).Msg("could not persist configuration")
	}
}

func reportWarnings(report types.ResolveReport, outcomes []types.InstallOutcome) {
	for _, failure := range report.ParseFailures {
		log.Warn().Str("file", failure.Path).Msg("could not analyze imports")
	}
	for _, outcome := range outcomes {
		if outcome.Status != types.InstallStatusFailed {
			continue
		}
		event := log.Warn().Str("distribution", outcome.Distribution)
		if outcome.HintText != "" {
			event = event.Str("hint", outcome.HintText)
		}
		event.Msg("install failed")
		for _, suggestion := range outcome.Suggestions {
			marker := ""
			if suggestion.ExactMatch {
				marker = " (exact match)"
			}
			fmt.Fprintf(os.Stderr, "  candidate: %s%s %s\n", suggestion.Name, marker, suggestion.Summary)
		}
	}
}
