package store

import (
	"context"

	"shv-inventory/internal/database"
	"shv-inventory/internal/model"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, name, email, password_hash, role, is_approved, working_group, created_at`

func scanUser(row pgx.Row, u *model.User) error {
	return row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.IsApproved,
		&u.WorkingGroup,
		&u.CreatedAt,
	)
}

func CountUsers(ctx context.Context, db database.Querier) (int, error) {
	var n int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, wrap(err, "CountUsers")
	}
	return n, nil
}

func GetUserByID(ctx context.Context, db database.Querier, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	)
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		return nil, wrap(err, "GetUserByID")
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.Querier, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	)
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		return nil, wrap(err, "GetUserByEmail")
	}
	return u, nil
}

func CreateUser(ctx context.Context, db database.Querier, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, role, is_approved, working_group)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.IsApproved,
		u.WorkingGroup,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		return nil, wrap(err, "CreateUser")
	}
	return u, nil
}

// ListPendingUsers 依建立順序列出尚未核准的帳號
func ListPendingUsers(ctx context.Context, db database.Querier) ([]model.User, error) {
	rows, err := db.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE is_approved = FALSE ORDER BY id`,
	)
	if err != nil {
		return nil, wrap(err, "ListPendingUsers")
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, wrap(err, "ListPendingUsers")
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err, "ListPendingUsers")
	}
	return users, nil
}

// ApproveUser 將帳號設為已核准；已核准者再次呼叫仍成功
func ApproveUser(ctx context.Context, db database.Querier, userID int) error {
	tag, err := db.Exec(ctx,
		`UPDATE users SET is_approved = TRUE WHERE id = $1`,
		userID,
	)
	if err != nil {
		return wrap(err, "ApproveUser")
	}
	if tag.RowsAffected() == 0 {
		return wrap(pgx.ErrNoRows, "ApproveUser")
	}
	return nil
}
