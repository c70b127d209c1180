package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Rules    RulesConfig
	Budget   BudgetConfig
	Ingest   IngestConfig
	Report   ReportConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path           string
	MigrationsPath string `mapstructure:"migrations_path"`
}

// RulesConfig points at the category rule file.
type RulesConfig struct {
	Path string
}

// BudgetConfig holds spending targets. Amounts are decimal strings so
// they survive the TOML round trip exactly.
type BudgetConfig struct {
	SpendingLimit    string            `mapstructure:"spending_limit"`
	SavingsGoal      string            `mapstructure:"savings_goal"`
	CategoryLimits   map[string]string `mapstructure:"category_limits"`
	ForecastLookback int               `mapstructure:"forecast_lookback"`
}

// IngestConfig holds CSV import defaults.
type IngestConfig struct {
	SourceName      string `mapstructure:"source_name"`
	DefaultCurrency string `mapstructure:"default_currency"`
}

// ReportConfig holds presentation settings.
type ReportConfig struct {
	Timezone string
}

// Load reads configuration from file and env. Env var overrides use prefix BUDGETCORE_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "budgetcore", "budgetcore.db"))
	v.SetDefault("database.migrations_path", "internal/store/migrations")
	v.SetDefault("rules.path", filepath.Join(os.Getenv("HOME"), ".config", "budgetcore", "rules.json"))
	v.SetDefault("budget.spending_limit", "")
	v.SetDefault("budget.savings_goal", "")
	v.SetDefault("budget.forecast_lookback", 3)
	v.SetDefault("ingest.source_name", "csv")
	v.SetDefault("ingest.default_currency", "USD")
	v.SetDefault("report.timezone", "Local")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("BUDGETCORE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "budgetcore"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("BUDGETCORE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// ParseSpendingLimit parses the configured overall limit. Empty means no limit.
func (c BudgetConfig) ParseSpendingLimit() (*decimal.Decimal, error) {
	return parseOptionalAmount("budget.spending_limit", c.SpendingLimit)
}

// ParseSavingsGoal parses the configured savings goal. Empty means no goal.
func (c BudgetConfig) ParseSavingsGoal() (*decimal.Decimal, error) {
	return parseOptionalAmount("budget.savings_goal", c.SavingsGoal)
}

// ParseCategoryLimits parses per-category limits, skipping empty entries.
func (c BudgetConfig) ParseCategoryLimits() (map[string]decimal.Decimal, error) {
	if len(c.CategoryLimits) == 0 {
		return nil, nil
	}
	out := make(map[string]decimal.Decimal, len(c.CategoryLimits))
	for cat, raw := range c.CategoryLimits {
		d, err := parseOptionalAmount("budget.category_limits."+cat, raw)
		if err != nil {
			return nil, err
		}
		if d != nil {
			out[cat] = *d
		}
	}
	return out, nil
}

func parseOptionalAmount(key, raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: bad amount %q: %w", key, raw, err)
	}
	return &d, nil
}
