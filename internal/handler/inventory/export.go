package inventory

import (
	"net/http"

	"shv-inventory/internal/export"
	"shv-inventory/internal/handler"

	"github.com/labstack/echo/v4"
)

// ExportHandler 下載庫存試算表；archiver 不為 nil 時同時排入背景封存
// @Summary     匯出庫存
// @Description 回傳 inventory.xlsx，工作表 Inventory
// @Tags        inventory
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success     200 {file}   file
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /inventory/export [get]
func ExportHandler(ledger Ledger, archiver Archiver) echo.HandlerFunc {
	return func(c echo.Context) error {
		data, err := ledger.ExportSnapshot(c.Request().Context())
		if err != nil {
			return handler.WriteError(c, err)
		}
		if archiver != nil {
			archiver.Submit(data)
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=inventory.xlsx")
		return c.Blob(http.StatusOK, export.ContentType, data)
	}
}
