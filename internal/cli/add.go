package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
	"github.com/vfg2006/customer-tracker-api/internal/forms"
)

func newAddCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Insere ou substitui o registro de um mês",
	}

	cmd.AddCommand(newAddAcquisitionCommand(opts))
	cmd.AddCommand(newAddChurnCommand(opts))

	return cmd
}

func newAddAcquisitionCommand(opts *RootOptions) *cobra.Command {
	var month, newCustomers, totalLeads, cost string

	cmd := &cobra.Command{
		Use:     "acquisition",
		Aliases: []string{"acquisitions"},
		Short:   "Salva o registro de aquisição do mês",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := forms.ParseAcquisition(url.Values{
				forms.FieldMonth:           {month},
				forms.FieldNewCustomers:    {newCustomers},
				forms.FieldTotalLeads:      {totalLeads},
				forms.FieldAcquisitionCost: {cost},
			})
			if err != nil {
				return err
			}

			updated, err := opts.store.UpsertAcquisition(cmd.Context(), record)
			if err != nil {
				return persistError(err)
			}

			message := "Acquisition record added successfully!"
			if updated {
				message = "Acquisition record updated successfully!"
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), message)
			return err
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "mês no formato yyyy-mm")
	cmd.Flags().StringVar(&newCustomers, "new-customers", "", "novos clientes no mês")
	cmd.Flags().StringVar(&totalLeads, "total-leads", "", "total de leads no mês")
	cmd.Flags().StringVar(&cost, "cost", "", "custo total de aquisição")

	for _, name := range []string{"month", "new-customers", "total-leads", "cost"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func newAddChurnCommand(opts *RootOptions) *cobra.Command {
	var month, totalStart, churned string

	cmd := &cobra.Command{
		Use:   "churn",
		Short: "Salva o registro de churn do mês",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := forms.ParseChurn(url.Values{
				forms.FieldMonth:               {month},
				forms.FieldTotalCustomersStart: {totalStart},
				forms.FieldChurnedCustomers:    {churned},
			})
			if err != nil {
				return err
			}

			updated, err := opts.store.UpsertChurn(cmd.Context(), record)
			if err != nil {
				return persistError(err)
			}

			message := "Churn record added successfully!"
			if updated {
				message = "Churn record updated successfully!"
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), message)
			return err
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "mês no formato yyyy-mm")
	cmd.Flags().StringVar(&totalStart, "total-start", "", "clientes no início do mês")
	cmd.Flags().StringVar(&churned, "churned", "", "clientes perdidos no mês")

	for _, name := range []string{"month", "total-start", "churned"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
