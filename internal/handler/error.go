package handler

import (
	"errors"
	"net/http"

	"shv-inventory/internal/api"
	"shv-inventory/internal/service"

	"github.com/labstack/echo/v4"
)

// StatusFor 將 service.Error 的種類對應到 HTTP 狀態碼，其餘錯誤為 500
func StatusFor(err error) int {
	var se *service.Error
	if !errors.As(err, &se) {
		return http.StatusInternalServerError
	}
	switch se.Kind {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindDuplicateEmail, service.KindDuplicateKey, service.KindInsufficientStock:
		return http.StatusConflict
	case service.KindInvalidCredentials:
		return http.StatusUnauthorized
	case service.KindPendingApproval, service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// WriteError 輸出錯誤回應；非 service.Error 的細節只寫入日誌
func WriteError(c echo.Context, err error) error {
	return c.JSON(StatusFor(err), NewErrorResponse(c, err))
}

// NewErrorResponse 建立錯誤回應本文
func NewErrorResponse(c echo.Context, err error) api.ErrorResponse {
	var se *service.Error
	if errors.As(err, &se) {
		return api.ErrorResponse{Message: se.Message, Ref: se.Ref}
	}
	c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	return api.ErrorResponse{Message: "internal server error"}
}

// BadRequest 用於 Bind / Validate 失敗
func BadRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: msg})
}
