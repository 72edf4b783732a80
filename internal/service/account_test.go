package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"shv-inventory/internal/database"
	"shv-inventory/internal/model"

	"github.com/stretchr/testify/require"
)

func fastHash(t *testing.T) {
	t.Helper()
	hashPassword = func(p string) (string, error) { return "hash:" + p, nil }
	authenticateUser = func(_ context.Context, u model.User, p string) error {
		if u.PasswordHash != "hash:"+p {
			return errors.New("invalid password")
		}
		return nil
	}
}

func newGate(t *testing.T) (*AccountGate, *memStore) {
	t.Helper()
	m := &memStore{}
	m.install(t)
	fastHash(t)
	return NewAccountGate(m.db(), &mutexLocker{}), m
}

func register(t *testing.T, g *AccountGate, email string) *RegistrationResult {
	t.Helper()
	res, err := g.Register(context.Background(), RegisterInput{
		Email:        email,
		Password:     "secret1",
		Name:         "Name " + email,
		WorkingGroup: "Smart Click",
	})
	require.NoError(t, err)
	return res
}

func TestRegisterFirstUserIsAdmin(t *testing.T) {
	g, m := newGate(t)

	res := register(t, g, "Boss@Example.com")
	require.True(t, res.IsAdmin)
	require.Equal(t, "Admin account created successfully.", res.Message)
	require.Equal(t, model.RoleAdmin, res.User.Role)
	require.True(t, res.User.IsApproved)
	require.Equal(t, "boss@example.com", res.User.Email)
	require.Equal(t, "hash:secret1", m.users[0].PasswordHash)
}

func TestRegisterLaterUsersPending(t *testing.T) {
	g, _ := newGate(t)
	register(t, g, "admin@example.com")

	for i := 0; i < 3; i++ {
		res := register(t, g, fmt.Sprintf("user%d@example.com", i))
		require.False(t, res.IsAdmin)
		require.Equal(t, "Registration successful. Waiting for admin approval.", res.Message)
		require.Equal(t, model.RoleUser, res.User.Role)
		require.False(t, res.User.IsApproved)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	g, m := newGate(t)
	register(t, g, "a@example.com")

	_, err := g.Register(context.Background(), RegisterInput{
		Email: "A@EXAMPLE.COM", Password: "another", Name: "x", WorkingGroup: "F.E.",
	})
	require.ErrorIs(t, err, ErrDuplicateEmail)
	var se *Error
	require.True(t, errors.As(err, &se))
	require.Equal(t, "a@example.com", se.Ref)
	require.Len(t, m.users, 1)
}

func TestRegisterValidation(t *testing.T) {
	cases := map[string]RegisterInput{
		"bad email":      {Email: "nope", Password: "secret1", Name: "n", WorkingGroup: "F.E."},
		"short password": {Email: "a@b.com", Password: "12345", Name: "n", WorkingGroup: "F.E."},
		"empty name":     {Email: "a@b.com", Password: "secret1", Name: "  ", WorkingGroup: "F.E."},
		"unknown group":  {Email: "a@b.com", Password: "secret1", Name: "n", WorkingGroup: "Sales"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			g, m := newGate(t)
			_, err := g.Register(context.Background(), in)
			require.ErrorIs(t, err, ErrValidation)
			require.Empty(t, m.users)
		})
	}
}

func TestRegisterConcurrentFirstUsers(t *testing.T) {
	g, m := newGate(t)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := g.Register(context.Background(), RegisterInput{
				Email: fmt.Sprintf("u%d@example.com", i), Password: "secret1", Name: "n", WorkingGroup: "Customs",
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	admins := 0
	for _, u := range m.users {
		if u.Role == model.RoleAdmin {
			admins++
			require.True(t, u.IsApproved)
		} else {
			require.False(t, u.IsApproved)
		}
	}
	require.Len(t, m.users, 8)
	require.Equal(t, 1, admins)
}

func TestRegisterInfraErrors(t *testing.T) {
	t.Run("lock", func(t *testing.T) {
		m := &memStore{}
		m.install(t)
		fastHash(t)
		g := NewAccountGate(m.db(), &mutexLocker{err: errors.New("redis down")})
		_, err := g.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "secret1", Name: "n", WorkingGroup: "F.E."})
		require.ErrorContains(t, err, "redis down")
		require.Empty(t, m.users)
	})

	t.Run("hash", func(t *testing.T) {
		g, _ := newGate(t)
		hashPassword = func(string) (string, error) { return "", errors.New("hash") }
		_, err := g.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "secret1", Name: "n", WorkingGroup: "F.E."})
		require.ErrorContains(t, err, "hash")
	})
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	g, _ := newGate(t)
	now := time.Date(2020, 1, 1, 9, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return now }

	register(t, g, "admin@example.com")
	pending := register(t, g, "user@example.com")

	t.Run("unknown email", func(t *testing.T) {
		_, err := g.Login(context.Background(), "ghost@example.com", "secret1")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := g.Login(context.Background(), "admin@example.com", "wrong-one")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		// 不透露帳號是否存在
		_, err2 := g.Login(context.Background(), "ghost@example.com", "wrong-one")
		require.Equal(t, err.Error(), err2.Error())
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := g.Login(context.Background(), "not-an-email", "x")
		require.ErrorIs(t, err, ErrValidation)
		_, err = g.Login(context.Background(), "admin@example.com", "")
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("pending approval", func(t *testing.T) {
		res, err := g.Login(context.Background(), "user@example.com", "secret1")
		require.ErrorIs(t, err, ErrPendingApproval)
		require.Nil(t, res)
	})

	t.Run("approved after admin action", func(t *testing.T) {
		admin := Caller{UserID: 1, Role: model.RoleAdmin}
		require.NoError(t, g.ApproveAccount(context.Background(), admin, pending.User.ID))

		res, err := g.Login(context.Background(), "USER@example.com", "secret1")
		require.NoError(t, err)
		require.Equal(t, now.Add(24*time.Hour), res.ExpiresAt)
		require.Equal(t, pending.User.ID, res.User.ID)

		timeNow = time.Now
		claims, err := VerifyAccessToken(res.Token)
		require.Error(t, err)
		require.Nil(t, claims)
	})

	t.Run("admin token", func(t *testing.T) {
		timeNow = time.Now
		res, err := g.Login(context.Background(), "admin@example.com", "secret1")
		require.NoError(t, err)
		claims, err := VerifyAccessToken(res.Token)
		require.NoError(t, err)
		require.Equal(t, 1, claims.UserID)
		require.True(t, claims.Caller().IsAdmin())
	})

	t.Run("issue error", func(t *testing.T) {
		issueAccessToken = func(model.User, time.Duration) (string, time.Time, error) {
			return "", time.Time{}, errors.New("sign")
		}
		_, err := g.Login(context.Background(), "admin@example.com", "secret1")
		require.ErrorContains(t, err, "sign")
		issueAccessToken = IssueAccessToken
	})
}

func TestListPendingApprovals(t *testing.T) {
	g, _ := newGate(t)
	register(t, g, "admin@example.com")
	register(t, g, "b@example.com")
	register(t, g, "c@example.com")

	_, err := g.ListPendingApprovals(context.Background(), Caller{UserID: 2, Role: model.RoleUser})
	require.ErrorIs(t, err, ErrForbidden)

	users, err := g.ListPendingApprovals(context.Background(), Caller{UserID: 1, Role: model.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "b@example.com", users[0].Email)
	require.Equal(t, "c@example.com", users[1].Email)
}

func TestApproveAccount(t *testing.T) {
	g, m := newGate(t)
	admin := Caller{UserID: 1, Role: model.RoleAdmin}
	register(t, g, "admin@example.com")
	u := register(t, g, "b@example.com")

	require.ErrorIs(t, g.ApproveAccount(context.Background(), Caller{UserID: 2, Role: model.RoleUser}, u.User.ID), ErrForbidden)
	require.False(t, m.users[1].IsApproved)

	require.NoError(t, g.ApproveAccount(context.Background(), admin, u.User.ID))
	require.NoError(t, g.ApproveAccount(context.Background(), admin, u.User.ID))
	require.True(t, m.users[1].IsApproved)

	err := g.ApproveAccount(context.Background(), admin, 99)
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, "99", err.(*Error).Ref)

	orig := approveUser
	approveUser = func(context.Context, database.Querier, int) error {
		t.Fatal("out-of-range id reached the store")
		return nil
	}
	require.ErrorIs(t, g.ApproveAccount(context.Background(), admin, math.MaxInt32+1), ErrNotFound)
	approveUser = orig

	pending, err := g.ListPendingApprovals(context.Background(), admin)
	require.NoError(t, err)
	require.Empty(t, pending)
}
