package auth

import (
	"context"

	"shv-inventory/internal/model"
	"shv-inventory/internal/service"
)

// Gate 為 handler 使用到的 service.AccountGate 方法
type Gate interface {
	Register(ctx context.Context, in service.RegisterInput) (*service.RegistrationResult, error)
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
	ListPendingApprovals(ctx context.Context, caller service.Caller) ([]model.User, error)
	ApproveAccount(ctx context.Context, caller service.Caller, userID int) error
}
