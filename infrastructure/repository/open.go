package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/customer-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/customer-tracker-api/infrastructure/database/sqlite"
	"github.com/vfg2006/customer-tracker-api/internal/config"
)

// Open cria o repositório chave-valor do driver configurado.
// A função close retornada libera a conexão com o banco.
func Open(ctx context.Context, cfg config.Database) (KeyValueRepository, func() error, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		conn, err := sqlite.NewConnection(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return NewKeyValueRepository(conn, squirrel.Question), conn.Close, nil

	case config.DriverPostgres:
		conn, err := postgres.NewConnection(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return NewKeyValueRepository(conn, squirrel.Dollar), conn.Close, nil

	case config.DriverMemory:
		return NewMemoryKeyValueRepository(), func() error { return nil }, nil
	}

	return nil, nil, fmt.Errorf("driver de banco desconhecido: %q", cfg.Driver)
}
