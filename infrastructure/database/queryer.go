package database

import (
	"context"
	"database/sql"
)

// Queryer é o subconjunto de *sql.DB usado pelos repositórios
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// KeyValueSchema cria a tabela chave-valor; o SQL é aceito por PostgreSQL e SQLite
const KeyValueSchema = `
CREATE TABLE IF NOT EXISTS key_value_store (
	data_key   TEXT PRIMARY KEY,
	data_value TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Migrate aplica o schema da tabela chave-valor
func Migrate(ctx context.Context, q Queryer) error {
	_, err := q.ExecContext(ctx, KeyValueSchema)
	return err
}
