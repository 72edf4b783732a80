package service

import "fmt"

// Kind 為核心錯誤種類，HTTP 層據此決定狀態碼
type Kind string

const (
	KindValidation         Kind = "ValidationError"
	KindDuplicateEmail     Kind = "DuplicateEmail"
	KindDuplicateKey       Kind = "DuplicateKey"
	KindInvalidCredentials Kind = "InvalidCredentials"
	KindPendingApproval    Kind = "PendingApproval"
	KindForbidden          Kind = "Forbidden"
	KindNotFound           Kind = "NotFound"
	KindInsufficientStock  Kind = "InsufficientStock"
)

// Error 帶有種類、訊息與選填的相關識別值（email、品項 id、品名）
type Error struct {
	Kind    Kind
	Message string
	Ref     string
}

func (e *Error) Error() string {
	return e.Message
}

// Is 只比對 Kind，讓 errors.Is(err, ErrNotFound) 對任何 NotFound 成立
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrValidation         = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrDuplicateEmail     = &Error{Kind: KindDuplicateEmail, Message: "user already exists"}
	ErrDuplicateKey       = &Error{Kind: KindDuplicateKey, Message: "duplicate key"}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Message: "invalid credentials"}
	ErrPendingApproval    = &Error{Kind: KindPendingApproval, Message: "account pending approval"}
	ErrForbidden          = &Error{Kind: KindForbidden, Message: "admin privileges required"}
	ErrNotFound           = &Error{Kind: KindNotFound, Message: "not found"}
	ErrInsufficientStock  = &Error{Kind: KindInsufficientStock, Message: "insufficient stock"}
)

func newError(kind Kind, ref, format string, args ...any) *Error {
	return &Error{Kind: kind, Ref: ref, Message: fmt.Sprintf(format, args...)}
}
