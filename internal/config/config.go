package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port          string   `mapstructure:"PORT"`
	Env           string   `mapstructure:"ENV"`
	StoreBackend  string   `mapstructure:"STORE_BACKEND"`
	StorePath     string   `mapstructure:"STORE_PATH"`
	DatabaseURL   string   `mapstructure:"DATABASE_URL"`
	DBMaxConns    int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns    int32    `mapstructure:"DB_MIN_CONNS"`
	AuditLogPath  string   `mapstructure:"AUDIT_LOG_PATH"`
	LedgerPath    string   `mapstructure:"LEDGER_PATH"`
	SessionSecret string   `mapstructure:"SESSION_SECRET"`
	SessionTTLMin int      `mapstructure:"SESSION_TTL_MINUTES"`
	ManagerUser   string   `mapstructure:"MANAGER_USER"`
	ManagerPass   string   `mapstructure:"MANAGER_PASS"`
	OperatorUser  string   `mapstructure:"OPERATOR_USER"`
	OperatorPass  string   `mapstructure:"OPERATOR_PASS"`
	CORSOrigins   []string `mapstructure:"CORS_ORIGINS"`
	CountryCode   string   `mapstructure:"WHATSAPP_COUNTRY_CODE"`
	OverdueMonths int      `mapstructure:"OVERDUE_DEFAULT_MONTHS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("STORE_BACKEND", "csv")
	v.SetDefault("STORE_PATH", "./data/appointments.csv")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("AUDIT_LOG_PATH", "./data/outreach_log.csv")
	v.SetDefault("SESSION_TTL_MINUTES", 480)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("WHATSAPP_COUNTRY_CODE", "55")
	v.SetDefault("OVERDUE_DEFAULT_MONTHS", 12)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("STORE_BACKEND")
	v.BindEnv("STORE_PATH")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("AUDIT_LOG_PATH")
	v.BindEnv("LEDGER_PATH")
	v.BindEnv("SESSION_SECRET")
	v.BindEnv("SESSION_TTL_MINUTES")
	v.BindEnv("MANAGER_USER")
	v.BindEnv("MANAGER_PASS")
	v.BindEnv("OPERATOR_USER")
	v.BindEnv("OPERATOR_PASS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("WHATSAPP_COUNTRY_CODE")
	v.BindEnv("OVERDUE_DEFAULT_MONTHS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is safe to run. Outside development
// the session secret and both credential pairs must be set; a server without
// them would accept no logins at all.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case "csv", "memory":
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_BACKEND is \"postgres\"")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be \"csv\", \"postgres\", or \"memory\", got %q", c.StoreBackend)
	}

	if !c.IsDev() {
		if c.SessionSecret == "" {
			return fmt.Errorf("SESSION_SECRET is required outside development")
		}
		if c.ManagerUser == "" || c.ManagerPass == "" {
			return fmt.Errorf("MANAGER_USER and MANAGER_PASS are required outside development")
		}
		if c.OperatorUser == "" || c.OperatorPass == "" {
			return fmt.Errorf("OPERATOR_USER and OPERATOR_PASS are required outside development")
		}
	}

	if c.SessionTTLMin <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive, got %d", c.SessionTTLMin)
	}
	if c.OverdueMonths <= 0 {
		return fmt.Errorf("OVERDUE_DEFAULT_MONTHS must be positive, got %d", c.OverdueMonths)
	}

	return nil
}
