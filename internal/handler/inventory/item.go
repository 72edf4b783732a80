package inventory

import (
	"fmt"
	"net/http"
	"strconv"

	"shv-inventory/internal/api"
	"shv-inventory/internal/handler"
	"shv-inventory/internal/service"

	"github.com/labstack/echo/v4"
)

// ListItemsHandler 列出所有品項
// @Summary     品項列表
// @Description 依新增順序回傳所有品項
// @Tags        inventory
// @Produce     json
// @Success     200 {array}  model.Item
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /inventory [get]
func ListItemsHandler(ledger Ledger) echo.HandlerFunc {
	return func(c echo.Context) error {
		items, err := ledger.ListItems(c.Request().Context())
		if err != nil {
			return handler.WriteError(c, err)
		}
		return c.JSON(http.StatusOK, items)
	}
}

// AddItemHandler 新增品項
// @Summary     新增品項
// @Description 未提供 barcode 時自動產生；part_number 重複回 409
// @Tags        inventory
// @Accept      json
// @Produce     json
// @Param       body body     api.AddItemRequest true "品項資料"
// @Success     201  {object} model.Item
// @Failure     400  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /inventory [post]
func AddItemHandler(ledger Ledger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.AddItemRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, fmt.Sprintf("無效的請求資料: %v", err))
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err.Error())
		}

		item, err := ledger.AddItem(c.Request().Context(), service.AddItemInput{
			ItemName:     req.ItemName,
			PartNumber:   req.PartNumber,
			Category:     req.Category,
			WorkingGroup: req.WorkingGroup,
			Quantity:     *req.Quantity,
			Barcode:      req.Barcode,
		})
		if err != nil {
			return handler.WriteError(c, err)
		}
		return c.JSON(http.StatusCreated, item)
	}
}

// UpdateItemHandler 更新品項
// @Summary     更新品項
// @Description 只能更新 item_name、category、working_group、quantity；帶入 part_number 或 barcode 回 400
// @Tags        inventory
// @Accept      json
// @Produce     json
// @Param       id   path     int                   true "品項 ID"
// @Param       body body     api.UpdateItemRequest true "更新欄位"
// @Success     200  {object} model.Item
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /inventory/{id} [patch]
func UpdateItemHandler(ledger Ledger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 32)
		if err != nil || id <= 0 {
			return handler.BadRequest(c, "invalid item id")
		}

		var req api.UpdateItemRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, fmt.Sprintf("無效的請求資料: %v", err))
		}
		if req.PartNumber != nil || req.Barcode != nil {
			return handler.BadRequest(c, "part_number and barcode cannot be modified")
		}

		item, err := ledger.UpdateItem(c.Request().Context(), int(id), service.ItemPatch{
			ItemName:     req.ItemName,
			Category:     req.Category,
			WorkingGroup: req.WorkingGroup,
			Quantity:     req.Quantity,
		})
		if err != nil {
			return handler.WriteError(c, err)
		}
		return c.JSON(http.StatusOK, item)
	}
}
