// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/vantez/engine/internal/clients/bcb"
	"github.com/vantez/engine/internal/domain"
	"github.com/vantez/engine/internal/modules/fixedincome"
	"github.com/vantez/engine/internal/modules/tags"
	"github.com/vantez/engine/internal/utils"
)

// Config holds application configuration
type Config struct {
	DataDir  string // Base directory for the cache database, always absolute
	LogLevel string
	Port     int
	DevMode  bool

	BenchmarkRateURL      string
	FallbackBenchmarkRate float64 // percent per year

	RateRefreshSchedule  string // six-field cron
	CacheCleanupSchedule string // six-field cron

	SimulationWorkers  int // 0 means one per CPU
	StateOwnedPrefixes []string

	MacroFile string
	Macro     domain.MacroAssumptions
}

var scheduleParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Load reads configuration from .env, the environment and the optional
// macro regime file
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	dataDir, err := filepath.Abs(getEnv("DATA_DIR", "./data"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:               dataDir,
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		Port:                  getEnvAsInt("PORT", 8080),
		DevMode:               getEnvAsBool("DEV_MODE", false),
		BenchmarkRateURL:      getEnv("BENCHMARK_RATE_URL", bcb.DefaultURL),
		FallbackBenchmarkRate: getEnvAsFloat("FALLBACK_BENCHMARK_RATE", fixedincome.DefaultBenchmarkRate),
		RateRefreshSchedule:   getEnv("RATE_REFRESH_SCHEDULE", "0 0 */6 * * *"),
		CacheCleanupSchedule:  getEnv("CACHE_CLEANUP_SCHEDULE", "0 30 3 * * *"),
		SimulationWorkers:     getEnvAsInt("SIMULATION_WORKERS", 0),
		StateOwnedPrefixes:    utils.ParseUpperCSV(getEnv("STATE_OWNED_PREFIXES", "")),
		MacroFile:             getEnv("MACRO_FILE", ""),
	}
	if len(cfg.StateOwnedPrefixes) == 0 {
		cfg.StateOwnedPrefixes = append([]string(nil), tags.DefaultStateOwnedPrefixes...)
	}

	cfg.Macro = domain.DefaultMacro()
	if cfg.MacroFile != "" {
		macro, err := LoadMacroFile(cfg.MacroFile)
		if err != nil {
			return nil, err
		}
		cfg.Macro = macro
	}
	applyMacroOverrides(&cfg.Macro)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadMacroFile reads a versioned macro regime from YAML. Fields missing from
// the file keep their reference values.
func LoadMacroFile(path string) (domain.MacroAssumptions, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.MacroAssumptions{}, fmt.Errorf("failed to read macro file: %w", err)
	}

	macro := domain.DefaultMacro()
	if err := yaml.Unmarshal(content, &macro); err != nil {
		return domain.MacroAssumptions{}, fmt.Errorf("failed to parse macro file %s: %w", path, err)
	}
	return macro, nil
}

func applyMacroOverrides(m *domain.MacroAssumptions) {
	m.Version = getEnv("MACRO_VERSION", m.Version)
	m.RiskFreeRate = getEnvAsFloat("MACRO_RISK_FREE_RATE", m.RiskFreeRate)
	m.ExpectedInflation = getEnvAsFloat("MACRO_EXPECTED_INFLATION", m.ExpectedInflation)
	m.EquityRiskPremium = getEnvAsFloat("MACRO_EQUITY_RISK_PREMIUM", m.EquityRiskPremium)
	m.GDPGrowth = getEnvAsFloat("MACRO_GDP_GROWTH", m.GDPGrowth)
	m.ExpectedMarketReturn = getEnvAsFloat("MACRO_EXPECTED_MARKET_RETURN", m.ExpectedMarketReturn)
}

// Validate checks the configuration is usable
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.FallbackBenchmarkRate <= 0 {
		return fmt.Errorf("fallback benchmark rate must be positive, got %v", c.FallbackBenchmarkRate)
	}
	if c.SimulationWorkers < 0 {
		return fmt.Errorf("simulation workers must not be negative, got %d", c.SimulationWorkers)
	}
	if _, err := scheduleParser.Parse(c.RateRefreshSchedule); err != nil {
		return fmt.Errorf("invalid RATE_REFRESH_SCHEDULE %q: %w", c.RateRefreshSchedule, err)
	}
	if _, err := scheduleParser.Parse(c.CacheCleanupSchedule); err != nil {
		return fmt.Errorf("invalid CACHE_CLEANUP_SCHEDULE %q: %w", c.CacheCleanupSchedule, err)
	}
	if err := c.Macro.Validate(); err != nil {
		return err
	}
	return nil
}

// CacheDBPath is the location of the client data cache database
func (c *Config) CacheDBPath() string {
	return filepath.Join(c.DataDir, "cache.db")
}

// Helper functions
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

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getEnvAsFloat accepts both "11.25" and "11,25"
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, ok := utils.ParseNumber(value); ok {
			return f
		}
	}
	return defaultValue
}
