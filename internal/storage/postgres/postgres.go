package postgres

import (
	"context"
	"errors"
	"fmt"

	"GeniusLabs/internal/app_errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Storage struct {
	Pool *pgxpool.Pool
}

func NewPostgresPool(username, password, host, port, dbName string) (*Storage, error) {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s", username, password, host, port, dbName)
	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &Storage{Pool: pool}, nil
}

func (p *Storage) Ping(ctx context.Context) error {
	return p.Pool.Ping(ctx)
}

func (p *Storage) Close() {
	if p.Pool != nil {
		p.Pool.Close()
	}
}

func UnwrapPgError(err error) *pgconn.PgError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr
	}
	return nil
}

// unavailable tags a store-level I/O failure so the delivery layer can map it
// to 500 while the cause stays in the chain.
func unavailable(err error) error {
	return fmt.Errorf("%w: %v", app_errors.ErrStorageUnavailable, err)
}
