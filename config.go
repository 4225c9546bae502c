package fund

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds the configuration of the nav tool.
type Config struct {
	Currency string        `toml:"currency" yaml:"currency"`
	DataDir  string        `toml:"data_dir" yaml:"data_dir"`
	Engine   EngineConfig  `toml:"engine" yaml:"engine"`
	Reports  ReportsConfig `toml:"reports" yaml:"reports"`
	Logging  LoggingConfig `toml:"logging" yaml:"logging"`
}

// EngineConfig holds the ledger engine parameters.
type EngineConfig struct {
	InitialCapital float64 `toml:"initial_capital" yaml:"initial_capital"`
	CashYield      float64 `toml:"cash_yield" yaml:"cash_yield"` // annualized, e.g. 0.03
}

// ReportsConfig holds the periodic risk-free rates used by the Sharpe ratio.
type ReportsConfig struct {
	RiskFree        float64 `toml:"risk_free" yaml:"risk_free"`                 // since inception
	MonthlyRiskFree float64 `toml:"monthly_risk_free" yaml:"monthly_risk_free"` // monthly reporting
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// NewDefaultConfig returns a Config with the defaults of the tool.
func NewDefaultConfig() *Config {
	return &Config{
		Currency: DefaultCurrency,
		DataDir:  "data",
		Engine: EngineConfig{
			InitialCapital: 100000,
			CashYield:      0.03,
		},
		Reports: ReportsConfig{
			RiskFree:        0,
			MonthlyRiskFree: 0.0475,
		},
		Logging: LoggingConfig{Level: "warn"},
	}
}

// LoadConfig loads the defaults, then the file at path if any, then the
// environment overrides.
//
// The file format is chosen by extension: .yaml and .yml are YAML, anything
// else is TOML. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	config := NewDefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// defaults only
		case err != nil:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		default:
			if err := unmarshalConfig(path, data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}
	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func unmarshalConfig(path string, data []byte, config *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, config)
	default:
		return toml.Unmarshal(data, config)
	}
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) error {
	if dir := os.Getenv("FUND_DATA"); dir != "" {
		config.DataDir = dir
	}
	if level := os.Getenv("FUND_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if cur := os.Getenv("FUND_CURRENCY"); cur != "" {
		config.Currency = strings.ToUpper(cur)
	}
	if v := os.Getenv("FUND_INITIAL_CAPITAL"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: FUND_INITIAL_CAPITAL=%q is not a number", ErrInvalidInput, v)
		}
		config.Engine.InitialCapital = f
	}
	return nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.Currency == "" {
		return fmt.Errorf("%w: currency is required", ErrInvalidInput)
	}
	if c.Engine.InitialCapital < 0 {
		return fmt.Errorf("%w: initial capital must not be negative", ErrInvalidInput)
	}
	return nil
}

// Params returns the engine parameters.
func (c *Config) Params() Params {
	return Params{
		InitialCapital: M(c.Engine.InitialCapital, c.Currency),
		CashYield:      c.Engine.CashYield,
	}
}
