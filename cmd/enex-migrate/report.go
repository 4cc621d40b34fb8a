package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/enex-migrate/internal/report"
	"github.com/pdiddy/enex-migrate/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Query the run log of a completed migration",
	Long: `Report loads the JSON run log into an in-memory index and answers
structured queries: failures, records for one notebook, records of one
output type, and aggregate counts.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().String("log-file", defaultLogFile, "path of the JSON run log")
	reportCmd.Flags().Bool("failed", false, "show only failed operations")
	reportCmd.Flags().String("notebook", "", "filter by notebook name")
	reportCmd.Flags().String("type", "", "filter by output type: multi-item-pdf, unsupported-separate-file, single-resource, text-only-pdf")
	reportCmd.Flags().Int("max-results", 20, "maximum number of records listed")
	reportCmd.Flags().Bool("json", false, "output matching records as JSON")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	logFile, _ := cmd.Flags().GetString("log-file")
	failedOnly, _ := cmd.Flags().GetBool("failed")
	notebook, _ := cmd.Flags().GetString("notebook")
	outputType, _ := cmd.Flags().GetString("type")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	asJSON, _ := cmd.Flags().GetBool("json")

	store, err := report.Open(types.ReportConfig{LogFile: logFile, MaxResults: maxResults})
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Query(report.Filter{
		Notebook:   notebook,
		Type:       outputType,
		FailedOnly: failedOnly,
	})
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	for _, r := range records {
		status := "ok"
		detail := r.FilePath
		if !r.Success {
			status = "FAILED"
			detail = r.Error
		}
		fmt.Fprintf(os.Stdout, "%-8s %-24s %-28s %s\n", status, r.Notebook, r.Note, detail)
	}

	totals, err := store.Totals()
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "\n%d record(s): %d succeeded, %d failed\n",
		totals.Records, totals.Succeeded, totals.Failed)

	kinds := make([]string, 0, len(totals.ByType))
	for k := range totals.ByType {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(os.Stdout, "  %s: %d\n", k, totals.ByType[k])
	}
	return nil
}
