package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Configはアプリ全体の設定。起動時に一度だけ読み込み、各層に値で渡す。
type Config struct {
	Port string // サーバーポート（8080）

	DatabaseURL      string // あればこちらを優先
	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）
	PostgresSSLMode  string

	JWTSecret   string        // JWT署名シークレット
	JWTIssuer   string        // iss
	JWTAudience string        // aud
	JWTExpire   time.Duration // アクセストークンの有効期限

	CORSOrigins []string // 許可するオリジン
	StaticDir   string   // 画像などの静的ファイル

	RabbitMQURL string // 空ならイベントは送らない

	AdminEmail    string // 初期管理者
	AdminPassword string

	LogLevel string // debug/info/warn/error
	GoEnv    string // dev/prod
}

// Loadは.envと環境変数から読み込む
func Load() (Config, error) {
	// .envが無くても環境変数だけで動く
	_ = godotenv.Load()

	return FromEnv()
}

// FromEnvは環境変数だけから組み立てる
func FromEnv() (Config, error) {
	pgPort, err := atoiDefault("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	expireMin, err := atoiDefault("JWT_EXPIRE_MINUTES", 60)
	if err != nil {
		return Config{}, err
	}
	if expireMin <= 0 {
		return Config{}, fmt.Errorf("JWT_EXPIRE_MINUTES must be positive")
	}

	cfg := Config{
		Port: getenv("PORT", "8080"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       getenv("POSTGRES_DB", "foodstore"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTIssuer:   getenv("JWT_ISSUER", "foodstore"),
		JWTAudience: getenv("JWT_AUDIENCE", "foodstore-clients"),
		JWTExpire:   time.Duration(expireMin) * time.Minute,

		CORSOrigins: splitList(getenv("CORS_ORIGINS", "*")),
		StaticDir:   getenv("STATIC_DIR", "wwwroot"),

		RabbitMQURL: os.Getenv("RABBITMQ_URL"),

		AdminEmail:    getenv("ADMIN_EMAIL", "adminAPI@gmail.com"),
		AdminPassword: getenv("ADMIN_PASSWORD", "Admin@123"),

		LogLevel: getenv("LOG_LEVEL", "info"),
		GoEnv:    getenv("GO_ENV", "dev"),
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.DatabaseURL == "" && cfg.PostgresPassword == "" {
		return Config{}, fmt.Errorf("DATABASE_URL or POSTGRES_PASSWORD is required")
	}

	return cfg, nil
}

// DSNはpgxに渡す接続文字列
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUser, c.PostgresPassword),
		Host:     fmt.Sprintf("%s:%d", c.PostgresHost, c.PostgresPort),
		Path:     "/" + c.PostgresDB,
		RawQuery: "sslmode=" + url.QueryEscape(c.PostgresSSLMode),
	}
	return u.String()
}

func (c Config) IsProd() bool {
	return c.GoEnv == "prod"
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
