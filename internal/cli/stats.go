package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Tigraan/Teahouse-bot/internal/runlog"
)

var (
	statsLimit  int
	statsRecent int
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate attribution outcomes from the run log",
	Long: `Summarize past runs recorded in the run log: how many threads were
archived, how many were attributed, and how often the join failed.
The resolved rate is the honest quality signal for the heuristic;
watch it drift before trusting any change to the scan window.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsLimit, "limit", 0, "aggregate over the most recent N runs (0 = all)")
	statsCmd.Flags().IntVar(&statsRecent, "recent", 5, "list the most recent N runs")

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path, err := runlogPath(cfg)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("no run log at %s; enable runlog in the config and run the bot first", path)
	}

	log, err := runlog.Open(path)
	if err != nil {
		return err
	}
	defer log.Close()

	stats, err := log.Stats(statsLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Runs:            %d\n", stats.Runs)
	fmt.Printf("Threads archived: %d\n", stats.Archived)
	fmt.Printf("Resolved:         %d (%.1f%%)\n", stats.Resolved, stats.ResolvedRate()*100)
	fmt.Printf("No match:         %d\n", stats.NoMatch)
	fmt.Printf("Multiple match:   %d\n", stats.MultipleMatch)
	fmt.Printf("Notified:         %d\n", stats.Notified)
	fmt.Printf("Skipped:          %d\n", stats.Skipped)

	if statsRecent <= 0 {
		return nil
	}

	runs, err := log.Recent(statsRecent)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		return nil
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tPAGE\tARCHIVED\tRESOLVED\tNOTIFIED")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n",
			r.StartedAt.Format("2006-01-02 15:04"), r.Page, r.Counts.Archived, r.Counts.Resolved, r.Counts.Notified)
	}
	return w.Flush()
}
