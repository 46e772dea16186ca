package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionFactory выдаёт соединения на время одной операции.
type SessionFactory struct {
	pool *pgxpool.Pool
}

func NewSessionFactory(pool *pgxpool.Pool) *SessionFactory {
	return &SessionFactory{pool: pool}
}

// WithSession берёт соединение из пула, выполняет fn и всегда возвращает соединение обратно.
func (f *SessionFactory) WithSession(ctx context.Context, fn func(ctx context.Context, conn *pgxpool.Conn) error) error {
	conn, err := f.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire conn: %w", err)
	}
	defer conn.Release()

	return fn(ctx, conn)
}
