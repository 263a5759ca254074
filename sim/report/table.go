package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

var recommendStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(0, 2)

// WriteTable writes the ranked rows as an aligned table.
func WriteTable(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BELT LENGTH\tWORKERS\tSTRATEGY\tVELOCITY\tEFFICIENCY\tMISSED A\tMISSED B\tWASTE %")
	for _, row := range rows {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%.4f\t%d\t%d\t%.1f%%\n",
			row.BeltLength, row.NumWorkers, row.Strategy,
			row.Velocity, row.Efficiency,
			row.Results.MissedA, row.Results.MissedB, row.WastePercent)
	}
	return tw.Flush()
}

// RecommendBlock renders the best configuration as export lines ready to
// paste into a shell, the run command reads the same variables back.
func RecommendBlock(rows []Row) string {
	best, ok := Recommend(rows)
	if !ok {
		return "no productive configuration found\n"
	}
	lines := []string{
		"Recommended configuration (lowest waste, highest efficiency):",
		"",
		fmt.Sprintf("export BELT_LENGTH=%d", best.BeltLength),
		fmt.Sprintf("export NUM_WORKER_PAIRS=%d", best.NumWorkers/2),
		fmt.Sprintf("export STRATEGY=%s", best.Strategy),
		"",
		"then: factory-sim run",
	}
	return recommendStyle.Render(strings.Join(lines, "\n")) + "\n"
}
