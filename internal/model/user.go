// File: internal/model/user.go
package model

import "time"

// 帳號角色
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	IsApproved   bool      `db:"is_approved" json:"is_approved"`
	WorkingGroup string    `db:"working_group" json:"working_group"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// IsAdmin 是否為管理員
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
