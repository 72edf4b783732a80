package inventory

import (
	"fmt"
	"net/http"

	"shv-inventory/internal/api"
	"shv-inventory/internal/handler"
	"shv-inventory/internal/service"

	"github.com/labstack/echo/v4"
)

// CheckoutHandler 依序扣減多個品項的庫存
// @Summary     出庫
// @Description 依請求順序逐筆扣減。best-effort 模式失敗時，錯誤回應的 results 為已提交的項目
// @Tags        inventory
// @Accept      json
// @Produce     json
// @Param       body body     api.CheckoutRequest true "出庫清單"
// @Success     200  {object} api.CheckoutResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /inventory/checkout [post]
func CheckoutHandler(ledger Ledger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CheckoutRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, fmt.Sprintf("無效的請求資料: %v", err))
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err.Error())
		}

		lines := make([]service.CheckoutLine, 0, len(req.Items))
		for _, it := range req.Items {
			lines = append(lines, service.CheckoutLine{ItemID: it.ID, Quantity: it.Quantity})
		}

		results, err := ledger.Checkout(c.Request().Context(), lines)
		if err != nil {
			body := handler.NewErrorResponse(c, err)
			body.Results = results
			return c.JSON(handler.StatusFor(err), body)
		}
		if results == nil {
			results = []service.CheckoutResult{}
		}
		return c.JSON(http.StatusOK, api.CheckoutResponse{Message: "Checkout successful", Results: results})
	}
}
