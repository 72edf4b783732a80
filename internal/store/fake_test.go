package store

import (
	"time"

	"shv-inventory/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

/* ---------- 假實作 ---------- */

// fakeRow 依 dest 數量填值：
// 1 → COUNT(*)；2 → INSERT RETURNING (id, created_at)；
// 8 → users 全欄位；9 → inventory_items 全欄位
type fakeRow struct {
	scanErr error
	count   int
	user    *model.User
	item    *model.Item
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	switch len(dest) {
	case 1:
		*dest[0].(*int) = r.count
	case 2:
		if r.user != nil {
			*dest[0].(*int) = r.user.ID
			*dest[1].(*time.Time) = r.user.CreatedAt
		} else {
			*dest[0].(*int) = r.item.ID
			*dest[1].(*time.Time) = r.item.CreatedAt
		}
	case 8:
		u := r.user
		*dest[0].(*int) = u.ID
		*dest[1].(*string) = u.Name
		*dest[2].(*string) = u.Email
		*dest[3].(*string) = u.PasswordHash
		*dest[4].(*string) = u.Role
		*dest[5].(*bool) = u.IsApproved
		*dest[6].(*string) = u.WorkingGroup
		*dest[7].(*time.Time) = u.CreatedAt
	case 9:
		it := r.item
		*dest[0].(*int) = it.ID
		*dest[1].(*string) = it.ItemName
		*dest[2].(*string) = it.PartNumber
		*dest[3].(*string) = it.Category
		*dest[4].(*string) = it.WorkingGroup
		*dest[5].(*int) = it.Quantity
		*dest[6].(*string) = it.Barcode
		*dest[7].(*time.Time) = it.LastUpdated
		*dest[8].(*time.Time) = it.CreatedAt
	default:
		panic("fakeRow.Scan: unexpected dest count")
	}
	return nil
}

// fakeRows 逐列回傳 rows 中的 fakeRow
type fakeRows struct {
	rows []*fakeRow
	idx  int
	err  error
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	return r.rows[r.idx-1].Scan(dest...)
}
