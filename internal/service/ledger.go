package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"shv-inventory/internal/database"
	"shv-inventory/internal/model"
	"shv-inventory/internal/store"
)

// CheckoutMode 決定多品項出庫的提交方式
type CheckoutMode string

const (
	// CheckoutBestEffort 逐筆驗證並立即提交；中途失敗時前面的扣減不會回復
	CheckoutBestEffort CheckoutMode = "best-effort-sequential"
	// CheckoutStrictAtomic 在單一交易中以 FOR UPDATE 鎖定並扣減，任何一筆失敗整筆回滾
	CheckoutStrictAtomic CheckoutMode = "strict-atomic"
)

// ParseCheckoutMode 空字串視為 best-effort-sequential
func ParseCheckoutMode(s string) (CheckoutMode, error) {
	switch CheckoutMode(s) {
	case "", CheckoutBestEffort:
		return CheckoutBestEffort, nil
	case CheckoutStrictAtomic:
		return CheckoutStrictAtomic, nil
	}
	return "", fmt.Errorf("unknown checkout mode %q", s)
}

var (
	listItems            = store.ListItems
	getItemByID          = store.GetItemByID
	getItemByIDForUpdate = store.GetItemByIDForUpdate
	getItemByPartNumber  = store.GetItemByPartNumber
	createItem           = store.CreateItem
	updateItem           = store.UpdateItem
	updateItemQuantity   = store.UpdateItemQuantity
)

// SheetWriter 將表頭與資料列輸出為試算表位元組
type SheetWriter interface {
	Write(sheet string, headers []string, rows [][]any) ([]byte, error)
}

// SnapshotSheet 與 SnapshotHeaders 為匯出的工作表名稱與欄位順序
const SnapshotSheet = "Inventory"

var SnapshotHeaders = []string{
	"Item Name",
	"Part Number",
	"Category",
	"Working Group",
	"Quantity",
	"Barcode",
	"Last Updated",
}

// snapshotDateLayout 對應 en-US 的 toLocaleDateString，例如 10/18/2026
const snapshotDateLayout = "1/2/2006"

// Ledger 管理品項與出庫
type Ledger struct {
	db    database.DB
	mode  CheckoutMode
	sheet SheetWriter
}

func NewLedger(db database.DB, mode CheckoutMode, sheet SheetWriter) *Ledger {
	return &Ledger{db: db, mode: mode, sheet: sheet}
}

type AddItemInput struct {
	ItemName     string `validate:"required"`
	PartNumber   string `validate:"required"`
	Category     string `validate:"required,category"`
	WorkingGroup string `validate:"required,working_group"`
	Quantity     int    `validate:"min=0,max=2147483647"`
	// Barcode 留空時自動產生
	Barcode string
}

// ItemPatch 為可更新欄位的白名單；nil 表示不變更
type ItemPatch struct {
	ItemName     *string
	Category     *string
	WorkingGroup *string
	Quantity     *int
}

type CheckoutLine struct {
	ItemID   int
	Quantity int
}

type CheckoutResult struct {
	ItemID    int    `json:"item_id"`
	Item      string `json:"item"`
	Quantity  int    `json:"quantity"`
	Remaining int    `json:"remaining"`
}

func (l *Ledger) Mode() CheckoutMode {
	return l.mode
}

// ListItems 依新增順序回傳所有品項
func (l *Ledger) ListItems(ctx context.Context) ([]model.Item, error) {
	return listItems(ctx, l.db)
}

func (l *Ledger) AddItem(ctx context.Context, in AddItemInput) (*model.Item, error) {
	in.ItemName = strings.TrimSpace(in.ItemName)
	in.PartNumber = strings.TrimSpace(in.PartNumber)
	in.Barcode = strings.TrimSpace(in.Barcode)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	if _, err := getItemByPartNumber(ctx, l.db, in.PartNumber); err == nil {
		return nil, newError(KindDuplicateKey, in.PartNumber, "Part number already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	now := timeNow()
	barcode := in.Barcode
	if barcode == "" {
		barcode = generateBarcode(now)
	}

	created, err := createItem(ctx, l.db, &model.Item{
		ItemName:     in.ItemName,
		PartNumber:   in.PartNumber,
		Category:     in.Category,
		WorkingGroup: in.WorkingGroup,
		Quantity:     in.Quantity,
		Barcode:      barcode,
		LastUpdated:  now,
	})
	if errors.Is(err, store.ErrConflict) {
		return nil, newError(KindDuplicateKey, in.PartNumber, "Part number or barcode already exists")
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (p ItemPatch) validate() error {
	if p.ItemName != nil {
		if err := validateVar("ItemName", strings.TrimSpace(*p.ItemName), "required"); err != nil {
			return err
		}
	}
	if p.Category != nil {
		if err := validateVar("Category", *p.Category, "required,category"); err != nil {
			return err
		}
	}
	if p.WorkingGroup != nil {
		if err := validateVar("WorkingGroup", *p.WorkingGroup, "required,working_group"); err != nil {
			return err
		}
	}
	if p.Quantity != nil {
		if err := validateVar("Quantity", *p.Quantity, "min=0,max=2147483647"); err != nil {
			return err
		}
	}
	return nil
}

// UpdateItem 套用 patch 中提供的欄位並更新 last_updated
func (l *Ledger) UpdateItem(ctx context.Context, itemID int, patch ItemPatch) (*model.Item, error) {
	if itemID <= 0 || itemID > math.MaxInt32 {
		return nil, newError(KindValidation, strconv.Itoa(itemID), "invalid item id %d", itemID)
	}
	if err := patch.validate(); err != nil {
		return nil, err
	}

	item, err := getItemByID(ctx, l.db, itemID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, newError(KindNotFound, strconv.Itoa(itemID), "Item not found")
	}
	if err != nil {
		return nil, err
	}

	if patch.ItemName != nil {
		item.ItemName = strings.TrimSpace(*patch.ItemName)
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.WorkingGroup != nil {
		item.WorkingGroup = *patch.WorkingGroup
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	item.LastUpdated = timeNow()

	err = updateItem(ctx, l.db, item)
	if errors.Is(err, store.ErrNotFound) {
		return nil, newError(KindNotFound, strconv.Itoa(itemID), "Item not found")
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Checkout 依呼叫者給定的順序逐筆扣減庫存。
// best-effort 模式下失敗時回傳目前已提交的結果與錯誤；strict-atomic 模式失敗時不回傳結果。
func (l *Ledger) Checkout(ctx context.Context, lines []CheckoutLine) ([]CheckoutResult, error) {
	for _, line := range lines {
		if line.ItemID <= 0 || line.ItemID > math.MaxInt32 {
			return nil, newError(KindValidation, strconv.Itoa(line.ItemID), "invalid item id %d", line.ItemID)
		}
		if line.Quantity < 1 || line.Quantity > math.MaxInt32 {
			return nil, newError(KindValidation, strconv.Itoa(line.ItemID), "quantity for item %d must be between 1 and %d", line.ItemID, math.MaxInt32)
		}
	}

	if l.mode != CheckoutStrictAtomic {
		return checkoutLines(ctx, l.db, lines, getItemByID)
	}

	var results []CheckoutResult
	err := database.WithTx(ctx, l.db, func(q database.Querier) error {
		var err error
		results, err = checkoutLines(ctx, q, lines, getItemByIDForUpdate)
		return err
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

type itemGetter func(ctx context.Context, db database.Querier, id int) (*model.Item, error)

// checkoutLines 每筆依序完成「讀取、檢查、扣減、寫回」後才處理下一筆
func checkoutLines(ctx context.Context, q database.Querier, lines []CheckoutLine, get itemGetter) ([]CheckoutResult, error) {
	results := make([]CheckoutResult, 0, len(lines))
	for _, line := range lines {
		item, err := get(ctx, q, line.ItemID)
		if errors.Is(err, store.ErrNotFound) {
			return results, newError(KindNotFound, strconv.Itoa(line.ItemID), "Item %d not found", line.ItemID)
		}
		if err != nil {
			return results, err
		}

		if item.Quantity < line.Quantity {
			return results, newError(KindInsufficientStock, item.ItemName, "Insufficient quantity for item %s", item.ItemName)
		}

		remaining := item.Quantity - line.Quantity
		if err := updateItemQuantity(ctx, q, item.ID, remaining, timeNow()); err != nil {
			return results, err
		}

		results = append(results, CheckoutResult{
			ItemID:    item.ID,
			Item:      item.ItemName,
			Quantity:  line.Quantity,
			Remaining: remaining,
		})
	}
	return results, nil
}

// ExportSnapshot 將 ListItems 的結果輸出為試算表，列順序與 ListItems 相同
func (l *Ledger) ExportSnapshot(ctx context.Context) ([]byte, error) {
	items, err := listItems(ctx, l.db)
	if err != nil {
		return nil, err
	}
	return l.sheet.Write(SnapshotSheet, SnapshotHeaders, SnapshotRows(items))
}

// SnapshotRows 將品項對應到 SnapshotHeaders 的欄位順序
func SnapshotRows(items []model.Item) [][]any {
	rows := make([][]any, 0, len(items))
	for _, it := range items {
		rows = append(rows, []any{
			it.ItemName,
			it.PartNumber,
			it.Category,
			it.WorkingGroup,
			it.Quantity,
			it.Barcode,
			it.LastUpdated.Format(snapshotDateLayout),
		})
	}
	return rows
}

