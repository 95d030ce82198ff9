package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newDeleteCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove o registro na posição informada (veja list)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "acquisition <position>",
		Aliases: []string{"acquisitions"},
		Short:   "Remove um registro de aquisição",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := parsePosition(args[0])
			if err != nil {
				return err
			}

			removed, err := opts.store.DeleteAcquisitionAt(cmd.Context(), position)
			if err != nil {
				return persistError(err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Acquisition record deleted successfully! (%s)\n", removed.Month)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "churn <position>",
		Short: "Remove um registro de churn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := parsePosition(args[0])
			if err != nil {
				return err
			}

			removed, err := opts.store.DeleteChurnAt(cmd.Context(), position)
			if err != nil {
				return persistError(err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Churn record deleted successfully! (%s)\n", removed.Month)
			return err
		},
	})

	return cmd
}

func parsePosition(raw string) (int, error) {
	position, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("posição inválida %q: use o número mostrado por list", raw)
	}
	return position, nil
}
