// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"shv-inventory/internal/cache"
	"shv-inventory/internal/database"
	"shv-inventory/internal/handler"
	"shv-inventory/internal/handler/auth"
	"shv-inventory/internal/handler/inventory"
	"shv-inventory/internal/middleware"
)

// Deps 為路由所需的元件；Archiver 可為 nil
type Deps struct {
	DB       database.DB
	Cache    cache.Cache
	Gate     auth.Gate
	Ledger   inventory.Ledger
	Archiver inventory.Archiver
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	api := e.Group("/api")

	// 健康檢查（需登入）
	api.GET("/ping", handler.PingHandler(d.DB, d.Cache), middleware.RequireAuth)

	// 註冊與登入
	api.POST("/auth/register", auth.RegisterHandler(d.Gate))
	api.POST("/auth/login", auth.LoginHandler(d.Gate))

	// 管理員核准帳號
	apiAdmin := api.Group("/auth", middleware.RequireAdmin)
	apiAdmin.GET("/pending-approvals", auth.PendingApprovalsHandler(d.Gate))
	apiAdmin.POST("/approve/:user_id", auth.ApproveHandler(d.Gate))

	// 庫存
	apiInventory := api.Group("/inventory", middleware.RequireAuth)
	apiInventory.GET("", inventory.ListItemsHandler(d.Ledger))
	apiInventory.POST("", inventory.AddItemHandler(d.Ledger))
	apiInventory.POST("/checkout", inventory.CheckoutHandler(d.Ledger))
	apiInventory.GET("/export", inventory.ExportHandler(d.Ledger, d.Archiver))
	apiInventory.PATCH("/:id", inventory.UpdateItemHandler(d.Ledger))
	apiInventory.PUT("/:id", inventory.UpdateItemHandler(d.Ledger))
}
