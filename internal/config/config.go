package config

import (
	"fmt"
	"os"
	"strconv"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // APIサーバーポート

	JWTSecret string // JWT署名シークレット

	StoreName  string // 表示用の店名（メール・レシートで使う）
	AdminEmail string // 新規注文アラートの宛先
	FromEmail  string // 送信元アドレス

	SMTPHost     string // メール送信先SMTPホスト
	SMTPPort     int    // SMTPポート
	SMTPUser     string // SMTP認証ユーザー（空なら認証なし）
	SMTPPassword string // SMTP認証パスワード

	ReceiptServiceURL string // レシートPDFサービスのベースURL
}

// Loadは環境変数
func Load() (Config, error) {
	smtpPort, err := mustAtoi("SMTP_PORT")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: os.Getenv("PORT"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		StoreName:  getenv("STORE_NAME", "Maple Syrup Store"),
		AdminEmail: os.Getenv("ADMIN_EMAIL"),
		FromEmail:  os.Getenv("FROM_EMAIL"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     smtpPort,
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),

		ReceiptServiceURL: getenv("RECEIPT_SERVICE_URL", "http://localhost:8001"),
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.AdminEmail == "" {
		return Config{}, fmt.Errorf("ADMIN_EMAIL is required")
	}
	if cfg.FromEmail == "" {
		return Config{}, fmt.Errorf("FROM_EMAIL is required")
	}
	if cfg.SMTPHost == "" {
		return Config{}, fmt.Errorf("SMTP_HOST is required")
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

func mustAtoi(key string) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
