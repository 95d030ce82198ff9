// Package sqlite abre o banco local onde o dashboard guarda suas coleções.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vfg2006/customer-tracker-api/infrastructure/database"
	"github.com/vfg2006/customer-tracker-api/internal/config"

	_ "modernc.org/sqlite" // registra o driver sqlite
)

type Connection struct {
	*sql.DB
}

// NewConnection abre ou cria o arquivo do banco e aplica o schema
func NewConnection(ctx context.Context, cfg config.Database) (*Connection, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("erro ao criar diretório do banco: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.Path+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir banco sqlite: %w", err)
	}

	// Um único escritor evita SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("erro ao testar conexão sqlite: %w", err)
	}

	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("erro ao criar tabela key_value_store: %w", err)
	}

	return &Connection{DB: db}, nil
}
