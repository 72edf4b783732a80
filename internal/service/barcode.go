package service

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"
)

var randIntN = rand.IntN

// generateBarcode 產生 "SHV" + 毫秒時間戳末 6 碼 + 3 位亂數。
// 同一毫秒內仍可能碰撞；碰撞由資料庫唯一索引擋下並回報 DuplicateKey，不在此重試。
func generateBarcode(now time.Time) string {
	ts := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ts) > 6 {
		ts = ts[len(ts)-6:]
	}
	return fmt.Sprintf("SHV%s%03d", ts, randIntN(1000))
}
