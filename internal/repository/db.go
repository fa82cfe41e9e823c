package repository

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/devconnect/devconnect/internal/models"
)

// OpenDB opens a sqlite backed bun database. Use "file::memory:?cache=shared"
// for tests.
func OpenDB(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	// sqlite serializes writers; a single connection avoids table locked
	// errors on the shared in-memory database.
	sqldb.SetMaxOpenConns(1)

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// CreateSchema creates all tables if they do not exist yet. There is no
// migration mechanism; the schema is fixed.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	tables := []any{
		(*models.User)(nil),
		(*models.Profile)(nil),
		(*models.Experience)(nil),
		(*models.Education)(nil),
		(*models.Post)(nil),
		(*models.Like)(nil),
		(*models.Comment)(nil),
	}

	for _, model := range tables {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}

	return nil
}
