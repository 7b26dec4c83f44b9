package config

import (
	"time"

	"github.com/virtpanel/credit-ledger/internal/infrastructure/adapter/database"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// Config holds all configuration for the application
type Config struct {
	Environment string          `mapstructure:"environment"`
	Server      ServerConfig    `mapstructure:"server"`
	Database    database.Config `mapstructure:"database"`
	Logger      LoggerConfig    `mapstructure:"logger"`
	Ledger      LedgerConfig    `mapstructure:"ledger"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level string `mapstructure:"level"`
}

// LedgerConfig contains credit ledger settings
type LedgerConfig struct {
	// MonthlyGrantAmount is the system-wide free credit granted once per
	// UTC calendar month per account, as a decimal string
	MonthlyGrantAmount string `mapstructure:"monthlyGrantAmount"`
	// TransactionPageSize is the default page size for history listings
	TransactionPageSize int `mapstructure:"transactionPageSize"`
	// TransactionPageSizeCap bounds the page size a caller may request
	TransactionPageSizeCap int `mapstructure:"transactionPageSizeCap"`
}
