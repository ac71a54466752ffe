package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/actionboard-cli/internal/records"
	"github.com/KaramelBytes/actionboard-cli/internal/report"
	"github.com/KaramelBytes/actionboard-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	searchFormat string
	searchLimit  int
)

type searchResult struct {
	Term    string           `json:"term"`
	Count   int              `json:"count"`
	Total   int              `json:"total"`
	Records []records.Record `json:"records"`
}

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "List records where any field contains the term (case-insensitive)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(strings.TrimSpace(searchFormat))
		if format != "table" && format != "json" {
			return fmt.Errorf("unsupported --format: %s (use table|json)", searchFormat)
		}
		if searchLimit < 0 {
			return fmt.Errorf("--limit must not be negative")
		}
		term := args[0]
		d, err := loadDashboard(cmd, resolveSource(nil), term, settings().TopReasons)
		if err != nil {
			return err
		}
		rows := d.Rows
		if searchLimit > 0 && len(rows) > searchLimit {
			rows = rows[:searchLimit]
		}

		w := cmd.OutOrStdout()
		if format == "json" {
			b, err := utils.PrettyJSON(searchResult{Term: term, Count: len(d.Rows), Total: d.Summary.TotalActions, Records: rows})
			if err != nil {
				return err
			}
			fmt.Fprintln(w, string(b))
			return nil
		}
		if len(rows) == 0 {
			fmt.Fprintln(w, d.Empty)
			return nil
		}
		fmt.Fprint(w, report.RecordsTable(rows))
		fmt.Fprintf(w, "\n%d of %d records match %q\n", len(d.Rows), d.Summary.TotalActions, term)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVar(&searchFormat, "format", "table", "output format: table|json")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "show at most this many records (0 = all)")
}
