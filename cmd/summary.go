package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/actionboard-cli/internal/report"
	"github.com/KaramelBytes/actionboard-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	sumFormat string
	sumOutput string
	sumSearch string
	sumTop    int
)

var summaryCmd = &cobra.Command{
	Use:   "summary [source]",
	Short: "Print the dashboard: KPIs, action breakdown, top reasons and records",
	Long: `Print the dashboard for a source as Markdown, JSON, or HTML.

The source is a published Google Sheet CSV link, a local CSV/TSV/XLSX file, or
empty for the built-in sample data. It defaults to --source or the configured
source.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(strings.TrimSpace(sumFormat))
		switch format {
		case "md", "markdown", "json", "html":
		default:
			return fmt.Errorf("unsupported --format: %s (use md|json|html)", sumFormat)
		}
		top := settings().TopReasons
		if cmd.Flags().Changed("top") {
			if sumTop <= 0 {
				return fmt.Errorf("--top must be positive")
			}
			top = sumTop
		}
		d, err := loadDashboard(cmd, resolveSource(args), sumSearch, top)
		if err != nil {
			return err
		}

		var out []byte
		switch format {
		case "json":
			b, err := utils.PrettyJSON(d)
			if err != nil {
				return err
			}
			out = append(b, '\n')
		case "html":
			out = report.RenderHTML(d.Markdown())
		default:
			out = []byte(d.Markdown())
		}

		if sumOutput != "" {
			if err := utils.SafeWriteFile(sumOutput, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote summary to %s\n", sumOutput)
			return nil
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringVar(&sumFormat, "format", "md", "output format: md|json|html")
	summaryCmd.Flags().StringVarP(&sumOutput, "output", "o", "", "write the summary to a file instead of stdout")
	summaryCmd.Flags().StringVarP(&sumSearch, "search", "q", "", "only list records matching this term (KPIs still cover all records)")
	summaryCmd.Flags().IntVar(&sumTop, "top", 0, "number of reasons to rank (default from config, 5)")
}

// loadDashboard loads source and builds the dashboard. A source that could not
// be loaded is reported on stderr and returned as an error.
func loadDashboard(cmd *cobra.Command, source, term string, top int) (*report.Dashboard, error) {
	res := newLoader().Load(cmd.Context(), source)
	d, err := report.Build(res, term, top)
	if err != nil {
		return nil, err
	}
	if d.Failed() {
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %s\n", d.Warning)
		return nil, fmt.Errorf("could not load %s: %w", source, res.Err)
	}
	if d.Notice != "" {
		debugf("%s", d.Notice)
	}
	return d, nil
}
