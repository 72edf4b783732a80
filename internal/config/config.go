package config

import (
	"fmt"
	"os"
	"strconv"

	"shv-inventory/internal/service"
	"shv-inventory/internal/storage"
)

// Config 服務啟動所需的環境設定
type Config struct {
	DatabaseURL   string
	RedisAddr     string
	RedisDB       int
	RedisPassword string
	JWTSecret     string
	WorkerCount   int
	CheckoutMode  service.CheckoutMode
	ListenAddr    string
	Archive       storage.Config
}

var lookupEnv = os.LookupEnv

func getenv(key string) string {
	v, _ := lookupEnv(key)
	return v
}

func required(key string) (string, error) {
	v := getenv(key)
	if v == "" {
		return "", fmt.Errorf("環境變數 %s 未設定", key)
	}
	return v, nil
}

// Load 讀取並驗證環境變數
func Load() (*Config, error) {
	cfg := &Config{WorkerCount: 1, ListenAddr: ":8080"}
	var err error

	if cfg.DatabaseURL, err = required("DATABASE_URL"); err != nil {
		return nil, err
	}
	if cfg.RedisAddr, err = required("REDIS_ADDR"); err != nil {
		return nil, err
	}
	redisDBStr, err := required("REDIS_DB")
	if err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = strconv.Atoi(redisDBStr); err != nil {
		return nil, fmt.Errorf("無效的 REDIS_DB: %v", err)
	}
	cfg.RedisPassword = getenv("REDIS_PASSWORD")

	// JWT_SECRET 由 service 在簽發與驗證時讀取，這裡只確認有設定
	if cfg.JWTSecret, err = required("JWT_SECRET"); err != nil {
		return nil, err
	}

	if v := getenv("WORKER_COUNT"); v != "" {
		c, err := strconv.Atoi(v)
		if err != nil || c <= 0 {
			return nil, fmt.Errorf("無效的 WORKER_COUNT: %q", v)
		}
		cfg.WorkerCount = c
	}

	if cfg.CheckoutMode, err = service.ParseCheckoutMode(getenv("CHECKOUT_MODE")); err != nil {
		return nil, fmt.Errorf("無效的 CHECKOUT_MODE: %v", err)
	}

	if v := getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}

	cfg.Archive = storage.Config{
		Endpoint:        getenv("R2_ENDPOINT"),
		Bucket:          getenv("R2_BUCKET"),
		AccessKeyID:     getenv("R2_ACCESS_KEY_ID"),
		SecretAccessKey: getenv("R2_SECRET_ACCESS_KEY"),
		Region:          getenv("R2_REGION"),
	}
	if cfg.Archive.Region == "" {
		cfg.Archive.Region = "auto"
	}
	if (cfg.Archive.Endpoint == "") != (cfg.Archive.Bucket == "") {
		return nil, fmt.Errorf("R2_ENDPOINT 與 R2_BUCKET 必須同時設定")
	}

	return cfg, nil
}
