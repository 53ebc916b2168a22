package pgdb

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/storefront-tech/go-backend/pkg/tr"
)

// querier объединяет pgxpool.Pool и pgx.Tx: репозитории не знают,
// выполняются они внутри транзакции или напрямую через пул.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// db возвращает транзакцию из контекста, если она открыта, иначе пул.
// Так покупка видит согласованный снимок корзины, счета и остатков
// на протяжении всей последовательности чтений и записей.
func db(ctx context.Context, pool *pgxpool.Pool) querier {
	if tx, err := tr.TxFromCtx(ctx); err == nil {
		return tx
	}

	return pool
}
