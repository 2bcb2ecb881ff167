package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zipsight-labs/zipsight-cli/internal/core/domain"
)

var (
	analyzeBusiness     string
	analyzeDemographics string
	analyzeJSON         bool
	analyzeCharts       bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Upload both CSVs and print the analysis results",
	Long: `Uploads the business listing and demographic CSVs to the analysis
service and prints the summary plus the first page of each result table.

If the service reports that no valid ZIP column was found, the pair is
resubmitted once with the file roles swapped before giving up.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeBusiness, "business", "b", "", "path to the business listing CSV")
	analyzeCmd.Flags().StringVarP(&analyzeDemographics, "demographics", "d", "", "path to the demographic CSV")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output the full report as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeCharts, "charts", false, "also fetch and save the chart images")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	pair := domain.UploadPair{
		Business:     domain.Upload{Path: analyzeBusiness},
		Demographics: domain.Upload{Path: analyzeDemographics},
	}

	ctx := context.Background()

	run, err := analysisService.Analyze(ctx, pair)
	if err != nil {
		if errors.Is(err, domain.ErrMissingInput) {
			return errors.New("both --business and --demographics are required")
		}
		if errors.Is(err, domain.ErrServiceUnavailable) {
			return fmt.Errorf("analysis service unreachable: %w", err)
		}
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeJSON {
		if err := outputReportJSON(cmd, run.Report); err != nil {
			return err
		}
	} else {
		outputSummary(cmd, run.Report)
		for _, table := range domain.AllTables() {
			outputTableFirstPage(cmd, table, run.Report)
		}
	}

	if analyzeCharts {
		return fetchChartImages(cmd, ctx, run)
	}
	return nil
}

func outputReportJSON(cmd *cobra.Command, report *domain.AnalysisReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSummary(cmd *cobra.Command, report *domain.AnalysisReport) {
	cmd.Println("Summary")
	cmd.Printf("  Total ZIP codes: %d\n", report.TotalZipcodes)
	if report.CorrelationWithIncome != nil {
		cmd.Printf("  Correlation with income: %.4f\n", *report.CorrelationWithIncome)
	} else {
		cmd.Println("  Correlation with income: Not available")
	}
	if len(report.TopZipcodes) > 0 {
		cmd.Println("  Top ZIP codes:")
		for _, rec := range report.TopZipcodes {
			cmd.Printf("    %s: %s businesses\n", rec.Field("ZIP"), rec.Field("business_count"))
		}
	}
	cmd.Println()
}

func outputTableFirstPage(cmd *cobra.Command, table domain.TableID, report *domain.AnalysisReport) {
	rows := table.Rows(report)
	page := domain.Paginate(rows, 1, domain.DefaultPageSize)
	total := domain.TotalPages(len(rows), domain.DefaultPageSize)

	cmd.Printf("%s (page 1 of %d)\n", table, total)
	if len(page) == 0 {
		cmd.Println("  no rows")
		cmd.Println()
		return
	}

	cols := domain.Columns(page)
	cmd.Printf("  %s\n", strings.Join(cols, " | "))
	for _, rec := range page {
		vals := make([]string, len(cols))
		for i, col := range cols {
			vals[i] = rec.Field(col)
		}
		cmd.Printf("  %s\n", strings.Join(vals, " | "))
	}
	cmd.Println()
}

func fetchChartImages(cmd *cobra.Command, ctx context.Context, run *domain.AnalysisRun) error {
	if chartService == nil {
		return errors.New("chart service not configured")
	}

	updates := chartService.Fetch(ctx, run)
	failed := 0
	for update := range updates {
		if !chartService.Apply(update) {
			continue
		}
		switch update.Slot.Status {
		case domain.SlotReady:
			cmd.Printf("chart %s: saved to %s\n", update.ID.Title(), update.Slot.Path)
		case domain.SlotUnavailable:
			failed++
			cmd.Printf("chart %s: unavailable\n", update.ID.Title())
		}
	}
	if failed == len(domain.AllCharts()) {
		return errors.New("no charts could be rendered")
	}
	return nil
}
