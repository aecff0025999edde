package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pyrun/internal/adapters"
	"pyrun/internal/types"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the pyrun configuration file",
	}
	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigShowCommand())
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	cfg := types.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := adapters.NewConfigFileAdapter(viper.GetString("config_file"))
			if !cmd.Flags().Changed("auto-install") &&
				!cmd.Flags().Changed("auto-update-pip") &&
				!cmd.Flags().Changed("check-requirements") {
				prompt := adapters.NewStdinPrompt()
				cfg.AutoInstall = prompt.Confirm("install missing packages automatically by default?")
				cfg.AutoUpdatePip = prompt.Confirm("update pip automatically when a newer version is available?")
				cfg.CheckRequirements = prompt.Confirm("check requirements.txt next to scripts?")
			}
			if err := store.Save(cfg); err != nil {
				return err
			}
			fmt.Println("wrote", store.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&cfg.AutoInstall, "auto-install", cfg.AutoInstall, "Install missing packages without asking")
	cmd.Flags().BoolVar(&cfg.AutoUpdatePip, "auto-update-pip", cfg.AutoUpdatePip, "Update pip when a newer version exists")
	cmd.Flags().BoolVar(&cfg.CheckRequirements, "check-requirements", cfg.CheckRequirements, "Read requirements.txt next to scripts")

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := adapters.NewConfigFileAdapter(viper.GetString("config_file"))
			cfg, err := store.Load()
			if err != nil {
				return err
			}
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(cfg)
		},
	}
}
