package auth

import (
	"net/http"
	"strconv"

	"shv-inventory/internal/api"
	"shv-inventory/internal/handler"
	"shv-inventory/internal/middleware"

	"github.com/labstack/echo/v4"
)

// PendingApprovalsHandler 列出尚未核准的帳號
// @Summary     待核准帳號
// @Tags        auth
// @Produce     json
// @Success     200 {array}  api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /auth/pending-approvals [get]
func PendingApprovalsHandler(gate Gate) echo.HandlerFunc {
	return func(c echo.Context) error {
		caller, _ := middleware.CallerFrom(c)
		users, err := gate.ListPendingApprovals(c.Request().Context(), caller)
		if err != nil {
			return handler.WriteError(c, err)
		}
		out := make([]api.UserResponse, 0, len(users))
		for _, u := range users {
			out = append(out, api.NewUserResponse(u))
		}
		return c.JSON(http.StatusOK, out)
	}
}

// ApproveHandler 核准帳號
// @Summary     核准帳號
// @Tags        auth
// @Produce     json
// @Param       user_id path     int true "帳號 ID"
// @Success     200     {object} api.MessageResponse
// @Failure     400     {object} api.ErrorResponse
// @Failure     403     {object} api.ErrorResponse
// @Failure     404     {object} api.ErrorResponse
// @Failure     500     {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /auth/approve/{user_id} [post]
func ApproveHandler(gate Gate) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("user_id"), 10, 32)
		if err != nil || id <= 0 {
			return handler.BadRequest(c, "invalid user id")
		}
		caller, _ := middleware.CallerFrom(c)
		if err := gate.ApproveAccount(c.Request().Context(), caller, int(id)); err != nil {
			return handler.WriteError(c, err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "User approved successfully"})
	}
}
