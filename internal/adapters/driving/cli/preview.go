package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zipsight-labs/zipsight-cli/internal/core/domain"
)

var previewPage int

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Show the parsed rows of a single CSV before analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().IntVarP(&previewPage, "page", "p", 1, "result page to show")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	rows, err := analysisService.Preview(context.Background(), domain.Upload{Path: args[0]})
	if err != nil {
		if errors.Is(err, domain.ErrServiceUnavailable) {
			return fmt.Errorf("analysis service unreachable: %w", err)
		}
		return fmt.Errorf("preview failed: %w", err)
	}

	total := domain.TotalPages(len(rows), domain.DefaultPageSize)
	cursor := domain.NewCursor(domain.DefaultPageSize)
	cursor.GoTo(previewPage, len(rows))
	page := domain.Paginate(rows, cursor.Page, cursor.PageSize)

	cmd.Printf("%s (page %d of %d, %d rows)\n", args[0], cursor.Page, total, len(rows))
	if len(page) == 0 {
		cmd.Println("  no rows")
		return nil
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
	return nil
}
