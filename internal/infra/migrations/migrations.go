package migrations

import (
	"context"
	"embed"

	"medslot/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedded embed.FS

// Up applies all pending migrations using the pool's configuration.
// goose works against database/sql, so a throwaway *sql.DB is opened
// from the pool and closed after the run.
func Up(ctx context.Context, pool *pgxpool.Pool) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return errs.Wrap(err, "set goose dialect")
	}
	goose.SetBaseFS(embedded)

	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return errs.Wrap(err, "apply migrations")
	}
	return nil
}
