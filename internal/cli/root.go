// Package cli implementa o tracker, ferramenta de linha de comando que opera
// direto sobre o armazenamento local configurado.
package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"github.com/vfg2006/customer-tracker-api/infrastructure/repository"
	"github.com/vfg2006/customer-tracker-api/internal/config"
	"github.com/vfg2006/customer-tracker-api/internal/usecases/tracking"
)

var validFormats = []string{"text", "json"}

// StoreOpener abre o store já carregado e retorna a função que libera a conexão
type StoreOpener func(ctx context.Context, cfg config.Database) (tracking.Tracker, func() error, error)

// RootOptions guarda as flags globais
type RootOptions struct {
	Driver string
	Path   string
	Format string

	open  StoreOpener
	store tracking.Tracker
	close func() error
}

// OpenStore abre o repositório do driver configurado e carrega as coleções
func OpenStore(ctx context.Context, cfg config.Database) (tracking.Tracker, func() error, error) {
	repo, closeFn, err := repository.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	store := tracking.NewService(repo)
	if err := store.Load(ctx); err != nil {
		_ = closeFn()
		return nil, nil, fmt.Errorf("erro ao carregar coleções: %w", err)
	}

	return store, closeFn, nil
}

func NewRootCommand() *cobra.Command {
	return newRootCommand(OpenStore)
}

func newRootCommand(open StoreOpener) *cobra.Command {
	opts := &RootOptions{open: open}

	cmd := &cobra.Command{
		Use:           "tracker",
		Short:         "Administra as métricas mensais de aquisição e churn",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(validFormats, opts.Format) {
				return fmt.Errorf("formato %q inválido: use um de %v", opts.Format, validFormats)
			}
			return opts.openStore(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.close == nil {
				return nil
			}
			return opts.close()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Driver, "driver", "", "driver do armazenamento (sqlite|postgres|memory), sobrescreve DATABASE_DRIVER")
	cmd.PersistentFlags().StringVar(&opts.Path, "db-path", "", "arquivo do SQLite, sobrescreve DATABASE_PATH")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "formato de saída (text|json)")

	cmd.AddCommand(newSummaryCommand(opts))
	cmd.AddCommand(newListCommand(opts))
	cmd.AddCommand(newAddCommand(opts))
	cmd.AddCommand(newDeleteCommand(opts))
	cmd.AddCommand(newExportCommand(opts))
	cmd.AddCommand(newClearCommand(opts))

	return cmd
}

func (o *RootOptions) openStore(cmd *cobra.Command) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	if o.Driver != "" {
		cfg.Database.Driver = o.Driver
	}
	if o.Path != "" {
		cfg.Database.Path = o.Path
	}
	if err := cfg.Database.Resolve(); err != nil {
		return err
	}

	store, closeFn, err := o.open(cmd.Context(), cfg.Database)
	if err != nil {
		return err
	}

	o.store = store
	o.close = closeFn
	return nil
}
