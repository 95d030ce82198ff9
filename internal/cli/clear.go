package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errClearNotConfirmed = errors.New("clear apaga todos os registros: confirme com --yes")

func newClearCommand(opts *RootOptions) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Apaga todos os registros das duas coleções",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return errClearNotConfirmed
			}

			if err := opts.store.ClearAll(cmd.Context()); err != nil {
				return persistError(err)
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "All data cleared successfully!")
			return err
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirma a remoção")

	return cmd
}
