package store

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

var (
	// ErrNotFound 查無資料列
	ErrNotFound = errors.New("store: not found")
	// ErrConflict 違反唯一索引
	ErrConflict = errors.New("store: unique violation")
)

// uniqueViolation 為 PostgreSQL unique_violation 的 SQLSTATE
const uniqueViolation = "23505"

// wrap 將 pgx 錯誤轉為 store 的錯誤種類，並附上操作名稱
func wrap(err error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errors.Wrap(ErrNotFound, op)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return errors.Wrapf(ErrConflict, "%s: %s", op, pgErr.ConstraintName)
	}
	return errors.Wrap(err, op)
}
