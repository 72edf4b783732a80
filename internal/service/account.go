package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"shv-inventory/internal/database"
	"shv-inventory/internal/model"
	"shv-inventory/internal/store"
)

// registerLockKey 序列化「計數後新增」，避免兩個同時註冊的首位使用者都成為管理員
const registerLockKey = "lock:register"

var (
	hashPassword     = HashPassword
	authenticateUser = AuthenticateUser
	issueAccessToken = IssueAccessToken
	countUsers       = store.CountUsers
	createUser       = store.CreateUser
	getUserByEmail   = store.GetUserByEmail
	listPendingUsers = store.ListPendingUsers
	approveUser      = store.ApproveUser
)

// Locker 為註冊使用的互斥鎖，cache.Locker 實作此介面
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// AccountGate 處理註冊、核准與登入
type AccountGate struct {
	db       database.DB
	locker   Locker
	tokenTTL time.Duration
}

func NewAccountGate(db database.DB, locker Locker) *AccountGate {
	return &AccountGate{db: db, locker: locker, tokenTTL: AccessTokenTTL}
}

type RegisterInput struct {
	Email        string `validate:"required,email"`
	Password     string `validate:"required,min=6"`
	Name         string `validate:"required"`
	WorkingGroup string `validate:"required,working_group"`
}

type RegistrationResult struct {
	User    model.User
	IsAdmin bool
	Message string
}

type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      model.User
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register 建立帳號；系統中第一個帳號自動成為已核准的管理員，其餘帳號需等待核准
func (g *AccountGate) Register(ctx context.Context, in RegisterInput) (*RegistrationResult, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	// bcrypt 較慢，先在鎖外完成
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	unlock, err := g.locker.Lock(ctx, registerLockKey)
	if err != nil {
		return nil, fmt.Errorf("acquire registration lock: %w", err)
	}
	defer unlock()

	if _, err := getUserByEmail(ctx, g.db, in.Email); err == nil {
		return nil, newError(KindDuplicateEmail, in.Email, "User already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	n, err := countUsers(ctx, g.db)
	if err != nil {
		return nil, err
	}
	first := n == 0

	u := &model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         model.RoleUser,
		IsApproved:   first,
		WorkingGroup: in.WorkingGroup,
	}
	if first {
		u.Role = model.RoleAdmin
	}

	created, err := createUser(ctx, g.db, u)
	if errors.Is(err, store.ErrConflict) {
		return nil, newError(KindDuplicateEmail, in.Email, "User already exists")
	}
	if err != nil {
		return nil, err
	}

	res := &RegistrationResult{User: *created, IsAdmin: first}
	if first {
		res.Message = "Admin account created successfully."
	} else {
		res.Message = "Registration successful. Waiting for admin approval."
	}
	return res, nil
}

// Login 驗證帳密並發行 24 小時的存取令牌。
// 查無帳號與密碼錯誤回傳相同的 InvalidCredentials。
func (g *AccountGate) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if err := validateVar("Email", email, "required,email"); err != nil {
		return nil, err
	}
	if err := validateVar("Password", password, "required"); err != nil {
		return nil, err
	}

	user, err := getUserByEmail(ctx, g.db, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, newError(KindInvalidCredentials, "", "Invalid credentials")
	}
	if err != nil {
		return nil, err
	}

	if err := authenticateUser(ctx, *user, password); err != nil {
		return nil, newError(KindInvalidCredentials, "", "Invalid credentials")
	}

	if !user.IsApproved {
		return nil, newError(KindPendingApproval, "", "Account pending approval")
	}

	token, expiresAt, err := issueAccessToken(*user, g.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: *user}, nil
}

// ListPendingApprovals 依建立順序回傳尚未核准的帳號（僅限管理員）
func (g *AccountGate) ListPendingApprovals(ctx context.Context, caller Caller) ([]model.User, error) {
	if !caller.IsAdmin() {
		return nil, newError(KindForbidden, "", "admin privileges required")
	}
	return listPendingUsers(ctx, g.db)
}

// ApproveAccount 核准帳號（僅限管理員），重複核准不視為錯誤
func (g *AccountGate) ApproveAccount(ctx context.Context, caller Caller, userID int) error {
	if !caller.IsAdmin() {
		return newError(KindForbidden, "", "admin privileges required")
	}
	// 超出 INTEGER 範圍的 id 不可能存在
	if userID <= 0 || userID > math.MaxInt32 {
		return newError(KindNotFound, strconv.Itoa(userID), "User not found")
	}
	err := approveUser(ctx, g.db, userID)
	if errors.Is(err, store.ErrNotFound) {
		return newError(KindNotFound, strconv.Itoa(userID), "User not found")
	}
	return err
}
