package archive

import (
	"context"
	"fmt"
	"time"

	"shv-inventory/internal/export"
	"shv-inventory/internal/worker"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// uploadTimeout 單次上傳的逾時
const uploadTimeout = 30 * time.Second

var (
	newUUID = uuid.NewString
	timeNow = time.Now
)

// Putter 為物件儲存的寫入介面，storage.ObjectStore 實作此介面
type Putter interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

// Archiver 在 worker pool 上把匯出的試算表上傳到物件儲存。
// 上傳失敗只記錄日誌，不影響匯出的回應。
type Archiver struct {
	store  Putter
	pool   worker.Pool
	logger echo.Logger
}

func NewArchiver(store Putter, pool worker.Pool, logger echo.Logger) *Archiver {
	return &Archiver{store: store, pool: pool, logger: logger}
}

// Key 產生 exports/<YYYY-MM-DD>/<uuid>.xlsx，日期以 UTC 計
func Key(at time.Time) string {
	return fmt.Sprintf("exports/%s/%s.xlsx", at.UTC().Format("2006-01-02"), newUUID())
}

// Submit 排入上傳工作並回傳物件 key。
// 佇列已滿或 pool 已停止時丟棄此次封存並回傳空字串，不阻塞呼叫端。
func (a *Archiver) Submit(data []byte) string {
	key := Key(timeNow())
	ok := a.pool.TrySubmit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
		defer cancel()
		if err := a.store.Put(ctx, key, data, export.ContentType); err != nil {
			a.logger.Errorf("archive snapshot %s: %v", key, err)
			return
		}
		a.logger.Infof("archived snapshot %s (%d bytes)", key, len(data))
	})
	if !ok {
		a.logger.Warnf("archive queue full, snapshot %s dropped", key)
		return ""
	}
	return key
}
