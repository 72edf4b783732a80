package api

import (
	"time"

	"shv-inventory/internal/model"
)

// swagger:model api.UserResponse
type UserResponse struct {
	ID           int       `json:"id" example:"1"`
	Name         string    `json:"name" example:"Alice"`
	Email        string    `json:"email" example:"alice@example.com"`
	Role         string    `json:"role" example:"user"`
	IsApproved   bool      `json:"is_approved" example:"false"`
	WorkingGroup string    `json:"working_group" example:"F.E."`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUserResponse 轉換 model.User，不含密碼哈希
func NewUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		IsApproved:   u.IsApproved,
		WorkingGroup: u.WorkingGroup,
		CreatedAt:    u.CreatedAt,
	}
}

// swagger:model api.MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"User approved successfully"`
}
