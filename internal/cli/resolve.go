package cli

import (
	"encoding/json"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"pyrun/internal/app"
	"pyrun/internal/types"
)

type resolveOptions struct {
	Requirements     string
	SkipRequirements bool
	JSON             bool
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve <script.py>",
		Short: "Show which dependencies a script needs, without installing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := newAppService()
			if err != nil {
				return err
			}
			result, err := service.Resolve(cmd.Context(), app.ResolveRequest{
				Script:           args[0],
				RequirementsFile: opts.Requirements,
				SkipRequirements: opts.SkipRequirements,
			})
			if err != nil {
				return err
			}
			if opts.JSON {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(result.Report)
			}
			renderReport(result.Report)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Requirements, "requirements", "", "Requirements file path (default: sibling requirements.txt)")
	cmd.Flags().BoolVar(&opts.SkipRequirements, "no-requirements", false, "Skip the requirements file pass")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Emit the report as JSON")

	return cmd
}

func renderReport(report types.ResolveReport) {
	writer := table.NewWriter()
	writer.SetOutputMirror(os.Stdout)
	writer.AppendHeader(table.Row{"Module", "Distribution", "Status", "Source"})
	for _, entry := range report.Satisfied {
		writer.AppendRow(table.Row{entry.Module, entry.Distribution, "satisfied", string(entry.Source)})
	}
	for _, entry := range report.Plan {
		writer.AppendRow(table.Row{entry.Module, requirementCell(entry), "missing", string(entry.Source)})
	}
	writer.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Status", Align: text.AlignCenter},
	})
	writer.SetStyle(table.StyleLight)
	writer.Render()

	for _, failure := range report.ParseFailures {
		os.Stdout.WriteString("warning: could not analyze " + failure.Path + "\n")
	}
}

func requirementCell(entry types.PlanEntry) string {
	if entry.Specifier != "" {
		return entry.Distribution + entry.Specifier
	}
	return entry.Distribution
}
