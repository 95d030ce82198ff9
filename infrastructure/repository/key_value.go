package repository

//go:generate mockgen -source=key_value.go -destination=mocks/mock_key_value.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/customer-tracker-api/infrastructure/database"
)

const (
	keyValueTable = "key_value_store"
)

// KeyValueRepository é o armazenamento chave-valor local das coleções do dashboard
type KeyValueRepository interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type keyValueRepository struct {
	conn        database.Queryer
	placeholder squirrel.PlaceholderFormat
}

// NewKeyValueRepository cria o repositório SQL. O placeholder depende do driver:
// squirrel.Dollar para PostgreSQL e squirrel.Question para SQLite.
func NewKeyValueRepository(conn database.Queryer, placeholder squirrel.PlaceholderFormat) KeyValueRepository {
	return &keyValueRepository{
		conn:        conn,
		placeholder: placeholder,
	}
}

func (r *keyValueRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := squirrel.
		Select("data_value").
		From(keyValueTable).
		Where(squirrel.Eq{"data_key": key}).
		PlaceholderFormat(r.placeholder).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var value string
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("erro ao ler chave %s: %w", key, wrapDriverError(err))
	}

	return []byte(value), true, nil
}

func (r *keyValueRepository) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := squirrel.
		Insert(keyValueTable).
		Columns("data_key", "data_value", "updated_at").
		Values(key, string(value), squirrel.Expr("CURRENT_TIMESTAMP")).
		Suffix(`
			ON CONFLICT (data_key) DO UPDATE SET
				data_value = EXCLUDED.data_value,
				updated_at = CURRENT_TIMESTAMP
		`).
		PlaceholderFormat(r.placeholder).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao salvar chave %s: %w", key, wrapDriverError(err))
	}

	return nil
}

func (r *keyValueRepository) Delete(ctx context.Context, key string) error {
	query, args, err := squirrel.
		Delete(keyValueTable).
		Where(squirrel.Eq{"data_key": key}).
		PlaceholderFormat(r.placeholder).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao remover chave %s: %w", key, wrapDriverError(err))
	}

	return nil
}

// wrapDriverError inclui o código SQLSTATE quando o erro vem do PostgreSQL
func wrapDriverError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
	}
	return err
}
