package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	SendGrid  SendGridConfig  `yaml:"sendgrid"`
	Log       LogConfig       `yaml:"log"`
	Platform  PlatformConfig  `yaml:"platform"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// JWTConfig contains access token settings
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
}

// SendGridConfig contains notification email settings
type SendGridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
	OpsEmail  string `yaml:"ops_email"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// PlatformConfig contains marketplace settlement settings
type PlatformConfig struct {
	// MinWithdrawal is the smallest withdrawal the platform accepts, as a
	// decimal string, e.g. "20.00".
	MinWithdrawal string `yaml:"min_withdrawal"`
	// DefaultCommissionRate is the fallback when the settings row is absent,
	// as a decimal fraction, e.g. "0.10".
	DefaultCommissionRate string `yaml:"default_commission_rate"`
	Currency              string `yaml:"currency"`
	// PendingBookingTTLMinutes is how long an unpaid pending booking survives
	// before the expiration sweep cancels it.
	PendingBookingTTLMinutes int    `yaml:"pending_booking_ttl_minutes"`
	MeetingBaseURL           string `yaml:"meeting_base_url"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	ExpirePendingBookings   string `yaml:"expire_pending_bookings"`
	CompleteElapsedBookings string `yaml:"complete_elapsed_bookings"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// SendGrid
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}
	if val := os.Getenv("SENDGRID_OPS_EMAIL"); val != "" {
		c.SendGrid.OpsEmail = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Platform
	if val := os.Getenv("MIN_WITHDRAWAL"); val != "" {
		c.Platform.MinWithdrawal = val
	}
	if val := os.Getenv("COMMISSION_RATE"); val != "" {
		c.Platform.DefaultCommissionRate = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	// JWT validation
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 60
	}

	// Platform defaults
	if c.Platform.MinWithdrawal == "" {
		c.Platform.MinWithdrawal = "20.00"
	}
	if _, err := decimal.NewFromString(c.Platform.MinWithdrawal); err != nil {
		return fmt.Errorf("invalid min_withdrawal %q: %w", c.Platform.MinWithdrawal, err)
	}
	if c.Platform.DefaultCommissionRate == "" {
		c.Platform.DefaultCommissionRate = "0.10"
	}
	rate, err := decimal.NewFromString(c.Platform.DefaultCommissionRate)
	if err != nil {
		return fmt.Errorf("invalid default_commission_rate %q: %w", c.Platform.DefaultCommissionRate, err)
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("default_commission_rate must be within [0, 1], got %s", rate)
	}
	if c.Platform.Currency == "" {
		c.Platform.Currency = "USD"
	}
	if c.Platform.PendingBookingTTLMinutes == 0 {
		c.Platform.PendingBookingTTLMinutes = 30
	}
	if c.Platform.MeetingBaseURL == "" {
		c.Platform.MeetingBaseURL = "https://meet.expertdesk.local"
	}

	// Scheduler defaults
	if c.Scheduler.ExpirePendingBookings == "" {
		c.Scheduler.ExpirePendingBookings = "0 * * * * *" // every minute
	}
	if c.Scheduler.CompleteElapsedBookings == "" {
		c.Scheduler.CompleteElapsedBookings = "0 */5 * * * *" // every 5 minutes
	}

	return nil
}

// MinWithdrawalAmount returns the validated platform minimum.
func (c *Config) MinWithdrawalAmount() decimal.Decimal {
	d, _ := decimal.NewFromString(c.Platform.MinWithdrawal)
	return d
}

// DefaultCommissionRateValue returns the validated fallback commission rate.
func (c *Config) DefaultCommissionRateValue() decimal.Decimal {
	d, _ := decimal.NewFromString(c.Platform.DefaultCommissionRate)
	return d
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
