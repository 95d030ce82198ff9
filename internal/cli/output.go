package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/vfg2006/customer-tracker-api/internal/usecases/tracking"
	"github.com/vfg2006/customer-tracker-api/pkg/utils"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printJSON(w io.Writer, v any) error {
	out, err := utils.PrettyJson(v)
	if err != nil {
		return errors.Wrap(err, "erro ao formatar JSON")
	}

	_, err = fmt.Fprintln(w, out)
	return err
}

// persistError acrescenta à mensagem que a alteração não foi gravada
func persistError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, tracking.ErrPersistenceUnavailable) {
		return errors.Wrap(err, "a alteração não foi gravada no armazenamento local")
	}
	return err
}
