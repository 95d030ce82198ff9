package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/customer-tracker-api/pkg/utils"
)

// Coleções aceitas como argumento
const (
	collectionAcquisitions = "acquisitions"
	collectionChurn        = "churn"
)

var collectionArgs = []string{collectionAcquisitions, collectionChurn}

func newListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "list acquisitions|churn",
		Short:     "Lista os registros de uma coleção com as métricas derivadas",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: collectionArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if args[0] == collectionAcquisitions {
				rows := opts.store.AcquisitionRows()
				if opts.Format == "json" {
					return printJSON(out, rows)
				}

				tw := newTable(out)
				fmt.Fprintln(tw, "#\tMONTH\tNEW CUSTOMERS\tLEADS\tCOST\tRATE\tCPA")
				for _, row := range rows {
					fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t$%.2f\t%.1f%%\t$%.2f\n",
						row.Position, utils.FormatMonth(row.Month), row.NewCustomers, row.TotalLeads,
						row.AcquisitionCost, row.AcquisitionRate, row.CostPerAcquisition)
				}
				return tw.Flush()
			}

			rows := opts.store.ChurnRows()
			if opts.Format == "json" {
				return printJSON(out, rows)
			}

			tw := newTable(out)
			fmt.Fprintln(tw, "#\tMONTH\tCUSTOMERS START\tCHURNED\tCHURN RATE")
			for _, row := range rows {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%.1f%%\n",
					row.Position, utils.FormatMonth(row.Month), row.TotalCustomersStart, row.ChurnedCustomers, row.ChurnRate)
			}
			return tw.Flush()
		},
	}
}
