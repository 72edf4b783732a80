package store

import (
	"context"
	"time"

	"shv-inventory/internal/database"
	"shv-inventory/internal/model"

	"github.com/jackc/pgx/v5"
)

const itemColumns = `id, item_name, part_number, category, working_group, quantity, barcode, last_updated, created_at`

func scanItem(row pgx.Row, it *model.Item) error {
	return row.Scan(
		&it.ID,
		&it.ItemName,
		&it.PartNumber,
		&it.Category,
		&it.WorkingGroup,
		&it.Quantity,
		&it.Barcode,
		&it.LastUpdated,
		&it.CreatedAt,
	)
}

// ListItems 依新增順序回傳所有品項
func ListItems(ctx context.Context, db database.Querier) ([]model.Item, error) {
	rows, err := db.Query(ctx, `SELECT `+itemColumns+` FROM inventory_items ORDER BY id`)
	if err != nil {
		return nil, wrap(err, "ListItems")
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		var it model.Item
		if err := scanItem(rows, &it); err != nil {
			return nil, wrap(err, "ListItems")
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err, "ListItems")
	}
	return items, nil
}

func GetItemByID(ctx context.Context, db database.Querier, id int) (*model.Item, error) {
	row := db.QueryRow(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id)
	it := &model.Item{}
	if err := scanItem(row, it); err != nil {
		return nil, wrap(err, "GetItemByID")
	}
	return it, nil
}

// GetItemByIDForUpdate 與 GetItemByID 相同，但鎖定該列直到交易結束；只能在交易中使用
func GetItemByIDForUpdate(ctx context.Context, db database.Querier, id int) (*model.Item, error) {
	row := db.QueryRow(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, id)
	it := &model.Item{}
	if err := scanItem(row, it); err != nil {
		return nil, wrap(err, "GetItemByIDForUpdate")
	}
	return it, nil
}

func GetItemByPartNumber(ctx context.Context, db database.Querier, partNumber string) (*model.Item, error) {
	row := db.QueryRow(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE part_number = $1`, partNumber)
	it := &model.Item{}
	if err := scanItem(row, it); err != nil {
		return nil, wrap(err, "GetItemByPartNumber")
	}
	return it, nil
}

func CreateItem(ctx context.Context, db database.Querier, it *model.Item) (*model.Item, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO inventory_items
		    (item_name, part_number, category, working_group, quantity, barcode, last_updated)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		it.ItemName,
		it.PartNumber,
		it.Category,
		it.WorkingGroup,
		it.Quantity,
		it.Barcode,
		it.LastUpdated,
	)
	if err := row.Scan(&it.ID, &it.CreatedAt); err != nil {
		return nil, wrap(err, "CreateItem")
	}
	return it, nil
}

// UpdateItem 只寫入可變欄位；part_number 與 barcode 不會被更動
func UpdateItem(ctx context.Context, db database.Querier, it *model.Item) error {
	tag, err := db.Exec(ctx,
		`UPDATE inventory_items
		 SET item_name = $1, category = $2, working_group = $3, quantity = $4, last_updated = $5
		 WHERE id = $6`,
		it.ItemName,
		it.Category,
		it.WorkingGroup,
		it.Quantity,
		it.LastUpdated,
		it.ID,
	)
	if err != nil {
		return wrap(err, "UpdateItem")
	}
	if tag.RowsAffected() == 0 {
		return wrap(pgx.ErrNoRows, "UpdateItem")
	}
	return nil
}

func UpdateItemQuantity(ctx context.Context, db database.Querier, id, quantity int, at time.Time) error {
	tag, err := db.Exec(ctx,
		`UPDATE inventory_items SET quantity = $1, last_updated = $2 WHERE id = $3`,
		quantity,
		at,
		id,
	)
	if err != nil {
		return wrap(err, "UpdateItemQuantity")
	}
	if tag.RowsAffected() == 0 {
		return wrap(pgx.ErrNoRows, "UpdateItemQuantity")
	}
	return nil
}
