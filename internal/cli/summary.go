package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSummaryCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Mostra os indicadores agregados",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary := opts.store.Summary()
			out := cmd.OutOrStdout()

			if opts.Format == "json" {
				return printJSON(out, summary)
			}

			tw := newTable(out)
			fmt.Fprintf(tw, "Total Acquired\t%d\n", summary.TotalAcquired)
			fmt.Fprintf(tw, "Avg Acquisition Rate\t%.1f%%\n", summary.AverageAcquisitionRate)
			fmt.Fprintf(tw, "Avg Cost per Customer\t$%.2f\n", summary.AverageCostPerAcquisition)
			fmt.Fprintf(tw, "Avg Churn Rate\t%.1f%%\n", summary.AverageChurnRate)
			return tw.Flush()
		},
	}
}
