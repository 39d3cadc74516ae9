// Package sqlxrepos implements the repositories over PostgreSQL with jmoiron/sqlx.
package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/studysync/core"
)

var byID = core.DBOrdering{Field: "id", Ascending: true}

// Wrap returns a sqlx handle over an already opened postgres connection pool.
func Wrap(db *sql.DB) *sqlx.DB {
	return sqlx.NewDb(db, "postgres")
}

// deleteOne runs a single-row DELETE, returning notFound when nothing matched.
func deleteOne(ctx context.Context, db *sqlx.DB, query string, id int, notFound error) error {
	res, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return errors.Wrap(err, "deleting row")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "counting deleted rows")
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func deleteMany(ctx context.Context, db *sqlx.DB, query string, args ...interface{}) (int, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting rows")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "counting deleted rows")
	}
	return int(n), nil
}

// notFoundOr maps sql.ErrNoRows onto the entity's not found error.
func notFoundOr(err error, notFound error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return errors.Wrap(err, msg)
}

// namedGet runs a named statement returning a single row into a T.
func namedGet[T any](ctx context.Context, db *sqlx.DB, query string, arg interface{}) (T, error) {
	var dest T
	stmt, err := db.PrepareNamedContext(ctx, query)
	if err != nil {
		return dest, errors.Wrap(err, "preparing statement")
	}
	defer func() { _ = stmt.Close() }()

	if err = stmt.GetContext(ctx, &dest, arg); err != nil {
		return dest, err
	}
	return dest, nil
}
