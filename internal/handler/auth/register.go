package auth

import (
	"fmt"
	"net/http"

	"shv-inventory/internal/api"
	"shv-inventory/internal/handler"
	"shv-inventory/internal/service"

	"github.com/labstack/echo/v4"
)

// RegisterHandler 註冊新帳號
// @Summary     註冊帳號
// @Description 第一個註冊的帳號成為已核准的管理員，之後的帳號需等待管理員核准
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.RegisterRequest true "註冊資料"
// @Success     201  {object} api.RegisterResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/register [post]
func RegisterHandler(gate Gate) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, fmt.Sprintf("無效的請求資料: %v", err))
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err.Error())
		}

		res, err := gate.Register(c.Request().Context(), service.RegisterInput{
			Email:        req.Email,
			Password:     req.Password,
			Name:         req.Name,
			WorkingGroup: req.WorkingGroup,
		})
		if err != nil {
			return handler.WriteError(c, err)
		}
		return c.JSON(http.StatusCreated, api.RegisterResponse{Message: res.Message, IsAdmin: res.IsAdmin})
	}
}
