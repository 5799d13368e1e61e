package config

import (
	"fmt"
	"os"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	JWTSecret string // JWT署名シークレット

	GoEnv string // dev/prod

	// 外部決済プロバイダ（未設定ならモック/デモ決済のみ）
	UseRealPayments   bool
	YooKassaShopID    string
	YooKassaSecretKey string
	SiteBaseURL       string // 決済後に戻るURLの組み立てに使う
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port:      getenv("PORT", "8080"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		GoEnv:     getenv("GO_ENV", "dev"),

		UseRealPayments:   os.Getenv("USE_REAL_PAYMENTS") == "true",
		YooKassaShopID:    os.Getenv("YOOKASSA_SHOP_ID"),
		YooKassaSecretKey: os.Getenv("YOOKASSA_SECRET_KEY"),
		SiteBaseURL:       getenv("SITE_BASE_URL", "http://localhost:8080"),
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.UseRealPayments && (cfg.YooKassaShopID == "" || cfg.YooKassaSecretKey == "") {
		return Config{}, fmt.Errorf("YOOKASSA_SHOP_ID and YOOKASSA_SECRET_KEY are required when USE_REAL_PAYMENTS=true")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
