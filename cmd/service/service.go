// @title        SHV Inventory API
// @version      1.0
// @description  這是 SHV 庫存系統的後端 API 文件
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"shv-inventory/internal/archive"
	"shv-inventory/internal/cache"
	"shv-inventory/internal/config"
	"shv-inventory/internal/database"
	"shv-inventory/internal/export"
	"shv-inventory/internal/handler/inventory"
	"shv-inventory/internal/router"
	"shv-inventory/internal/service"
	"shv-inventory/internal/storage"
	"shv-inventory/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "shv-inventory/docs" // 引入 swag 的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// 註冊鎖：持有上限與等待上限
const (
	registerLockTTL  = 10 * time.Second
	registerLockWait = 5 * time.Second
)

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newObjectStore  = func(ctx context.Context, cfg storage.Config) (archive.Putter, error) {
		return storage.NewObjectStore(ctx, cfg)
	}
	startServer   = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	newWorkerPool = worker.NewPool
	exitFunc      = os.Exit
)

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := newPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	redis, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %v", err)
	}
	defer redis.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}

	wp := newWorkerPool(cfg.WorkerCount)
	defer wp.Stop()

	e := echo.New()
	e.Validator = &CustomValidator{validator: service.NewValidator()}
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// 未設定 R2 時不封存；介面需保持 nil
	var archiver inventory.Archiver
	if cfg.Archive.Enabled() {
		store, err := newObjectStore(context.Background(), cfg.Archive)
		if err != nil {
			return fmt.Errorf("物件儲存初始化失敗: %v", err)
		}
		archiver = archive.NewArchiver(store, wp, e.Logger)
	}

	router.Setup(e, router.Deps{
		DB:       db,
		Cache:    redis,
		Gate:     service.NewAccountGate(db, cache.NewLocker(redis, registerLockTTL, registerLockWait)),
		Ledger:   service.NewLedger(db, cfg.CheckoutMode, export.NewXLSXWriter()),
		Archiver: archiver,
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return startServer(e, cfg.ListenAddr)
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
