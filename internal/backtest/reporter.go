package backtest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GenerateConsoleReport formats a backtest summary for terminal output
func GenerateConsoleReport(summary *Summary) string {
	var builder strings.Builder
	builder.WriteString("Backtest Report\n")
	builder.WriteString("================\n")
	builder.WriteString(fmt.Sprintf("Races Evaluated: %d (skipped %d)\n", summary.TotalRaces, summary.SkippedRaces))
	builder.WriteString(fmt.Sprintf("Top-1 Hit Rate: %.2f%%\n", summary.Top1Rate*100))
	builder.WriteString(fmt.Sprintf("Top-3 Hit Rate: %.2f%%\n", summary.Top3Rate*100))
	builder.WriteString(fmt.Sprintf("Top-5 Hit Rate: %.2f%%\n", summary.Top5Rate*100))
	builder.WriteString(fmt.Sprintf("Avg Rank Correlation: %.3f\n", summary.AvgCorrelation))
	builder.WriteString(fmt.Sprintf("Simulated ROI (win): %s\n", summary.ROI.Win.StringFixed(4)))
	builder.WriteString(fmt.Sprintf("Simulated ROI (show): %s\n", summary.ROI.Show.StringFixed(4)))
	builder.WriteString(fmt.Sprintf("Simulated ROI (exacta box): %s\n", summary.ROI.ExactaBox.StringFixed(4)))

	builder.WriteString("\nFactor Contributions\n")
	builder.WriteString("--------------------\n")
	for _, c := range summary.Contributions {
		builder.WriteString(fmt.Sprintf("%-26s %+.3f (n=%d)\n", c.Factor, c.Correlation, c.Samples))
	}

	if len(summary.Suggestions) > 0 {
		builder.WriteString("\nWeight Suggestions\n")
		builder.WriteString("------------------\n")
		for _, s := range summary.Suggestions {
			builder.WriteString(fmt.Sprintf("%-26s %s (weight %.2f, contribution %+.3f)\n",
				s.Factor, s.Direction, s.CurrentWeight, s.Contribution))
		}
	}

	return builder.String()
}

// ExportToJSON writes the full summary to a JSON file
func ExportToJSON(summary *Summary, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	return os.WriteFile(outputPath, data, 0o644)
}
