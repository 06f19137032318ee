package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	HTTP     ServerConfig
	MySQL    MySQLConfig
	Log      LogConfig
	Auth     AuthConfig
	VNPay    VNPayConfig
	Exchange ExchangeConfig
	Explorer ExplorerConfig
	Polling  PollingConfig
	Orders   OrdersConfig
	Jobs     JobsConfig
}

type AppConfig struct {
	ServiceName   string
	WebhookAPIKey string
}

type ServerConfig struct {
	Host string
	Port string
}

type MySQLConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type VNPayConfig struct {
	TmnCode    string
	HashSecret string
	BaseURL    string
	ReturnURL  string
	ResultURL  string
	Version    string
}

type ExchangeConfig struct {
	VNDPerToken int64
	TokenSymbol string
}

type ExplorerConfig struct {
	BaseURL string
}

type PollingConfig struct {
	Interval    time.Duration
	MaxAttempts int
}

type OrdersConfig struct {
	MinAmountVND   int64
	PendingTimeout time.Duration
	JobBatchSize   int32
}

type JobsConfig struct {
	ExpirePendingInterval time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		return nil, errors.New("MYSQL_DSN environment variable is required")
	}
	vnpayHashSecret := os.Getenv("VNPAY_HASH_SECRET")
	if vnpayHashSecret == "" {
		return nil, errors.New("VNPAY_HASH_SECRET environment variable is required")
	}

	return &Config{
		App: AppConfig{
			ServiceName:   getEnv("APP_SERVICE_NAME", "donations-service"),
			WebhookAPIKey: getEnv("APP_WEBHOOK_API_KEY", ""),
		},
		HTTP: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnv("HTTP_PORT", "8080"),
		},
		MySQL: MySQLConfig{
			DSN:             mysqlDSN,
			MaxOpenConns:    getIntEnv("MYSQL_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getIntEnv("MYSQL_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getMinutesEnv("MYSQL_CONN_MAX_LIFETIME_MINUTES", 30*time.Minute),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("AUTH_JWT_SECRET", ""),
			TokenTTL:  getMinutesEnv("AUTH_TOKEN_TTL_MINUTES", 24*60*time.Minute),
		},
		VNPay: VNPayConfig{
			TmnCode:    getEnv("VNPAY_TMN_CODE", ""),
			HashSecret: vnpayHashSecret,
			BaseURL:    getEnv("VNPAY_BASE_URL", "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"),
			ReturnURL:  getEnv("VNPAY_RETURN_URL", ""),
			ResultURL:  getEnv("VNPAY_RESULT_URL", ""),
			Version:    getEnv("VNPAY_VERSION", "2.1.0"),
		},
		Exchange: ExchangeConfig{
			VNDPerToken: int64(getIntEnv("EXCHANGE_VND_PER_TOKEN", 1000)),
			TokenSymbol: getEnv("EXCHANGE_TOKEN_SYMBOL", "NEM"),
		},
		Explorer: ExplorerConfig{
			BaseURL: getEnv("EXPLORER_BASE_URL", "https://sepolia.etherscan.io"),
		},
		Polling: PollingConfig{
			Interval:    getMillisEnv("POLL_INTERVAL_MILLIS", 3*time.Second),
			MaxAttempts: getIntEnv("POLL_MAX_ATTEMPTS", 20),
		},
		Orders: OrdersConfig{
			MinAmountVND:   int64(getIntEnv("ORDERS_MIN_AMOUNT_VND", 10000)),
			PendingTimeout: getMinutesEnv("ORDERS_PENDING_TIMEOUT_MINUTES", 60*time.Minute),
			JobBatchSize:   int32(getIntEnv("ORDERS_JOB_BATCH_SIZE", 100)),
		},
		Jobs: JobsConfig{
			ExpirePendingInterval: getMinutesEnv("JOBS_EXPIRE_PENDING_INTERVAL_MINUTES", 5*time.Minute),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getMinutesEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}

func getMillisEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if millis, err := strconv.Atoi(value); err == nil {
			return time.Duration(millis) * time.Millisecond
		}
	}
	return defaultValue
}
