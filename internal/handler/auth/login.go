// File: internal/handler/auth/login.go
package auth

import (
	"fmt"
	"net/http"

	"shv-inventory/internal/api"
	"shv-inventory/internal/handler"

	"github.com/labstack/echo/v4"
)

// LoginHandler 使用 Email/Password 驗證並回傳 JWT
// @Summary     登入使用者
// @Description 驗證 Email 與 Password，回傳 24 小時有效的存取令牌；尚未核准的帳號回 403
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.LoginRequest true "登入資料"
// @Success     200  {object} api.LoginResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/login [post]
func LoginHandler(gate Gate) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		// 先 Bind
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, fmt.Sprintf("無效的請求資料: %v", err))
		}
		// 再驗證結構化參數 (go-playground/validator)
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err.Error())
		}

		res, err := gate.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return handler.WriteError(c, err)
		}

		return c.JSON(http.StatusOK, api.LoginResponse{
			Token:     res.Token,
			ExpiresAt: res.ExpiresAt,
			User:      api.NewUserResponse(res.User),
		})
	}
}
