package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"shv-inventory/internal/database"
	"shv-inventory/internal/model"
	"shv-inventory/internal/store"

	"github.com/pkg/errors"
)

// memStore 以記憶體模擬 store 套件，並取代 service 中對應的函式變數
type memStore struct {
	mu    sync.Mutex
	users []model.User
	items []model.Item

	updateQuantityErr error
}

func (m *memStore) install(t *testing.T) {
	t.Helper()
	countUsers = func(context.Context, database.Querier) (int, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		return len(m.users), nil
	}
	getUserByEmail = func(_ context.Context, _ database.Querier, email string) (*model.User, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		for _, u := range m.users {
			if u.Email == email {
				cp := u
				return &cp, nil
			}
		}
		return nil, errors.Wrap(store.ErrNotFound, "GetUserByEmail")
	}
	createUser = func(_ context.Context, _ database.Querier, u *model.User) (*model.User, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		for _, x := range m.users {
			if x.Email == u.Email {
				return nil, errors.Wrap(store.ErrConflict, "CreateUser")
			}
		}
		u.ID = len(m.users) + 1
		u.CreatedAt = time.Now()
		m.users = append(m.users, *u)
		return u, nil
	}
	listPendingUsers = func(context.Context, database.Querier) ([]model.User, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		out := []model.User{}
		for _, u := range m.users {
			if !u.IsApproved {
				out = append(out, u)
			}
		}
		return out, nil
	}
	approveUser = func(_ context.Context, _ database.Querier, id int) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i := range m.users {
			if m.users[i].ID == id {
				m.users[i].IsApproved = true
				return nil
			}
		}
		return errors.Wrap(store.ErrNotFound, "ApproveUser")
	}
	listItems = func(context.Context, database.Querier) ([]model.Item, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		return append([]model.Item{}, m.items...), nil
	}
	get := func(_ context.Context, _ database.Querier, id int) (*model.Item, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		for _, it := range m.items {
			if it.ID == id {
				cp := it
				return &cp, nil
			}
		}
		return nil, errors.Wrap(store.ErrNotFound, "GetItemByID")
	}
	getItemByID = get
	getItemByIDForUpdate = get
	getItemByPartNumber = func(_ context.Context, _ database.Querier, pn string) (*model.Item, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		for _, it := range m.items {
			if it.PartNumber == pn {
				cp := it
				return &cp, nil
			}
		}
		return nil, errors.Wrap(store.ErrNotFound, "GetItemByPartNumber")
	}
	createItem = func(_ context.Context, _ database.Querier, it *model.Item) (*model.Item, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		for _, x := range m.items {
			if x.PartNumber == it.PartNumber || x.Barcode == it.Barcode {
				return nil, errors.Wrap(store.ErrConflict, "CreateItem")
			}
		}
		it.ID = len(m.items) + 1
		it.CreatedAt = it.LastUpdated
		m.items = append(m.items, *it)
		return it, nil
	}
	updateItem = func(_ context.Context, _ database.Querier, it *model.Item) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i := range m.items {
			if m.items[i].ID == it.ID {
				m.items[i].ItemName = it.ItemName
				m.items[i].Category = it.Category
				m.items[i].WorkingGroup = it.WorkingGroup
				m.items[i].Quantity = it.Quantity
				m.items[i].LastUpdated = it.LastUpdated
				return nil
			}
		}
		return errors.Wrap(store.ErrNotFound, "UpdateItem")
	}
	updateItemQuantity = func(_ context.Context, _ database.Querier, id, qty int, at time.Time) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.updateQuantityErr != nil {
			return m.updateQuantityErr
		}
		for i := range m.items {
			if m.items[i].ID == id {
				m.items[i].Quantity = qty
				m.items[i].LastUpdated = at
				return nil
			}
		}
		return errors.Wrap(store.ErrNotFound, "UpdateItemQuantity")
	}
	t.Cleanup(restoreGlobals)
}

func (m *memStore) item(id int) model.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.ID == id {
			return it
		}
	}
	panic("no item")
}

// db 回傳的 FakeDB 在 Begin 時快照品項，Rollback 時還原
func (m *memStore) db() *database.FakeDB {
	return &database.FakeDB{
		BeginFn: func(context.Context) (database.Tx, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			return &memTx{m: m, snapshot: append([]model.Item{}, m.items...)}, nil
		},
	}
}

type memTx struct {
	*database.FakeDB
	m         *memStore
	snapshot  []model.Item
	committed bool
}

func (tx *memTx) Commit(context.Context) error {
	tx.committed = true
	return nil
}

func (tx *memTx) Rollback(context.Context) error {
	if tx.committed {
		return nil
	}
	tx.m.mu.Lock()
	defer tx.m.mu.Unlock()
	tx.m.items = tx.snapshot
	return nil
}

// mutexLocker 以行程內互斥鎖取代 Redis 鎖
type mutexLocker struct {
	mu  sync.Mutex
	err error
}

func (l *mutexLocker) Lock(context.Context, string) (func(), error) {
	if l.err != nil {
		return nil, l.err
	}
	l.mu.Lock()
	return l.mu.Unlock, nil
}

type captureSheet struct {
	sheet   string
	headers []string
	rows    [][]any
	err     error
}

func (c *captureSheet) Write(sheet string, headers []string, rows [][]any) ([]byte, error) {
	c.sheet, c.headers, c.rows = sheet, headers, rows
	if c.err != nil {
		return nil, c.err
	}
	return []byte("xlsx"), nil
}

func restoreGlobals() {
	bcryptGenerateFromPassword = bcryptGenerateFromPasswordDefault
	bcryptCompareHashAndPassword = bcryptCompareHashAndPasswordDefault
	timeNow = time.Now
	parseWithClaims = parseWithClaimsDefault
	randIntN = randIntNDefault

	hashPassword = HashPassword
	authenticateUser = AuthenticateUser
	issueAccessToken = IssueAccessToken
	countUsers = store.CountUsers
	createUser = store.CreateUser
	getUserByEmail = store.GetUserByEmail
	listPendingUsers = store.ListPendingUsers
	approveUser = store.ApproveUser

	listItems = store.ListItems
	getItemByID = store.GetItemByID
	getItemByIDForUpdate = store.GetItemByIDForUpdate
	getItemByPartNumber = store.GetItemByPartNumber
	createItem = store.CreateItem
	updateItem = store.UpdateItem
	updateItemQuantity = store.UpdateItemQuantity
}

var (
	bcryptGenerateFromPasswordDefault   = bcryptGenerateFromPassword
	bcryptCompareHashAndPasswordDefault = bcryptCompareHashAndPassword
	parseWithClaimsDefault              = parseWithClaims
	randIntNDefault                     = randIntN
)
