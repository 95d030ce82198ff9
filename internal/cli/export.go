package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/vfg2006/customer-tracker-api/internal/export"
)

func newExportCommand(opts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:       "export acquisitions|churn",
		Short:     "Exporta uma coleção em CSV",
		Long:      "Exporta uma coleção em CSV. Sem --output o CSV vai para a saída padrão.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: collectionArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				buf      bytes.Buffer
				err      error
				filename string
			)

			if args[0] == collectionAcquisitions {
				filename = export.AcquisitionFilename
				err = export.WriteAcquisitionCSV(&buf, opts.store.AcquisitionRows())
			} else {
				filename = export.ChurnFilename
				err = export.WriteChurnCSV(&buf, opts.store.ChurnRows())
			}
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("output") {
				_, err = buf.WriteTo(cmd.OutOrStdout())
				return err
			}

			if output == "" {
				output = filename
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return errors.Wrapf(err, "erro ao gravar %s", output)
			}

			_, err = fmt.Fprintf(cmd.ErrOrStderr(), "CSV gravado em %s\n", output)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "arquivo de destino (vazio usa o nome padrão)")

	return cmd
}
