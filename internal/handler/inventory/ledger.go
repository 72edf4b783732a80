package inventory

import (
	"context"

	"shv-inventory/internal/model"
	"shv-inventory/internal/service"
)

// Ledger 為 handler 使用到的 service.Ledger 方法
type Ledger interface {
	ListItems(ctx context.Context) ([]model.Item, error)
	AddItem(ctx context.Context, in service.AddItemInput) (*model.Item, error)
	UpdateItem(ctx context.Context, itemID int, patch service.ItemPatch) (*model.Item, error)
	Checkout(ctx context.Context, lines []service.CheckoutLine) ([]service.CheckoutResult, error)
	ExportSnapshot(ctx context.Context) ([]byte, error)
}

// Archiver 接收匯出的試算表並在背景封存
type Archiver interface {
	Submit(data []byte) string
}
