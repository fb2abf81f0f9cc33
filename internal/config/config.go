package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Blockchain BlockchainConfig
	PayrollAPI PayrollAPIConfig
	Sweep      SweepConfig
	Mail       MailConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string

	// InternalToken guards the internal endpoints used by the external scheduler.
	InternalToken string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// BlockchainConfig holds the payout chain and pool contract settings
type BlockchainConfig struct {
	RPCURL string
	// ChainID is the EIP-155 id payouts are signed for (Base Sepolia by default).
	ChainID             int64
	PoolContractAddress string
	EmployerPrivateKey  string
	TokenSymbol         string
	TokenDecimals       int32
	ApprovalTimeout     time.Duration
	WaitForReceipt      bool
	ReceiptTimeout      time.Duration
}

// PayrollAPIConfig configures the outbound payroll-data endpoint used by the sweep
type PayrollAPIConfig struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// SweepConfig configures the scheduled payroll sweep
type SweepConfig struct {
	Enabled  bool
	Interval time.Duration
	LockTTL  time.Duration
}

// MailConfig configures outgoing mail documents
type MailConfig struct {
	ProductName  string
	DashboardURL string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),

			InternalToken: getEnv("INTERNAL_API_TOKEN", ""),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "trivix_payroll"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Blockchain: BlockchainConfig{
			RPCURL:              getEnv("BASE_SEPOLIA_RPC_URL", "https://sepolia.base.org"),
			ChainID:             int64(getEnvAsInt("PAYROLL_CHAIN_ID", 84532)),
			PoolContractAddress: getEnv("PAYROLL_POOL_ADDRESS", ""),
			EmployerPrivateKey:  getEnv("EMPLOYER_PRIVATE_KEY", ""),
			TokenSymbol:         getEnv("PAYROLL_TOKEN_SYMBOL", "USDC"),
			TokenDecimals:       int32(getEnvAsInt("PAYROLL_TOKEN_DECIMALS", 6)),
			ApprovalTimeout:     getEnvAsDuration("WALLET_APPROVAL_TIMEOUT", 10*time.Minute),
			WaitForReceipt:      getEnvAsBool("WAIT_FOR_RECEIPT", true),
			ReceiptTimeout:      getEnvAsDuration("RECEIPT_TIMEOUT", 2*time.Minute),
		},
		PayrollAPI: PayrollAPIConfig{
			BaseURL:           getEnv("PAYROLL_API_BASE_URL", "https://trib-backend-flow.vercel.app"),
			Timeout:           getEnvAsDuration("PAYROLL_API_TIMEOUT", 30*time.Second),
			RequestsPerSecond: getEnvAsFloat("PAYROLL_API_RPS", 5),
			Burst:             getEnvAsInt("PAYROLL_API_BURST", 1),
		},
		Sweep: SweepConfig{
			Enabled:  getEnvAsBool("PAYROLL_SWEEP_ENABLED", true),
			Interval: getEnvAsDuration("PAYROLL_SWEEP_INTERVAL", 24*time.Hour),
			LockTTL:  getEnvAsDuration("PAYROLL_SWEEP_LOCK_TTL", 30*time.Minute),
		},
		Mail: MailConfig{
			ProductName:  getEnv("MAIL_PRODUCT_NAME", "Trivix"),
			DashboardURL: getEnv("MAIL_DASHBOARD_URL", "https://app.trivix.io"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
