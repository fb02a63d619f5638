// Package config builds the process-wide configuration once at startup. The
// returned Config is handed to components by value and never mutated.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"premium-estimator/internal/logging"
	"premium-estimator/internal/model"
)

// ErrInvalidSchedule is returned when a rate or amount is negative.
var ErrInvalidSchedule = errors.New("invalid rate schedule")

const (
	DefaultContactURL = "https://lin.ee/dDnbPak"
	defaultPort       = 8080
)

type Config struct {
	Server     ServerConfig
	Logging    logging.Config
	Notify     NotifyConfig
	ContactURL string `validate:"required,url"`
	Pricing    PricingConfig
}

type ServerConfig struct {
	Port         int `validate:"min=1,max=65535"`
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NotifyConfig describes the best-effort notification endpoint. An empty URL
// disables notifications.
type NotifyConfig struct {
	URL     string `validate:"omitempty,url"`
	Timeout time.Duration
}

// PricingConfig is the rate file layout as well as the in-memory form.
type PricingConfig struct {
	PensionMonthly    decimal.Decimal    `yaml:"pension_monthly"`
	AltPlanAnnualCost decimal.Decimal    `yaml:"alt_plan_annual_cost"`
	Rates             model.RateSchedule `yaml:"rates"`
}

func DefaultPricing() PricingConfig {
	return PricingConfig{
		PensionMonthly:    decimal.NewFromInt(16980),
		AltPlanAnnualCost: decimal.NewFromInt(456000),
		Rates:             model.DefaultRateSchedule(),
	}
}

// Overrides carries command-line values that take precedence over the
// environment. Zero values are ignored.
type Overrides struct {
	RatesFile string
	Port      int
	LogLevel  string
}

// Load reads .env, the environment and the optional rate file, in that order
// of increasing precedence for pricing, then applies overrides.
func Load(o Overrides) (*Config, error) {
	_ = godotenv.Load(".env")

	logDefaults := logging.DefaultConfig()
	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnvAsInt("PORT", defaultPort),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Logging: logging.Config{
			Level:       getEnv("LOG_LEVEL", logDefaults.Level),
			Format:      getEnv("LOG_FORMAT", logDefaults.Format),
			Output:      getEnv("LOG_OUTPUT", logDefaults.Output),
			Development: getEnvAsBool("LOG_DEVELOPMENT", logDefaults.Development),
		},
		Notify: NotifyConfig{
			URL:     getEnv("NOTIFY_URL", ""),
			Timeout: getEnvAsDuration("NOTIFY_TIMEOUT", 5*time.Second),
		},
		ContactURL: getEnv("CONTACT_URL", DefaultContactURL),
		Pricing:    DefaultPricing(),
	}

	ratesFile := o.RatesFile
	if ratesFile == "" {
		ratesFile = getEnv("RATES_FILE", "")
	}
	if ratesFile != "" {
		p, err := LoadPricing(ratesFile, cfg.Pricing)
		if err != nil {
			return nil, err
		}
		cfg.Pricing = p
	}
	cfg.Pricing.PensionMonthly = getEnvAsDecimal("PENSION_MONTHLY", cfg.Pricing.PensionMonthly)
	cfg.Pricing.AltPlanAnnualCost = getEnvAsDecimal("ALT_PLAN_ANNUAL_COST", cfg.Pricing.AltPlanAnnualCost)

	if o.Port != 0 {
		cfg.Server.Port = o.Port
	}
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// LoadPricing decodes a YAML rate file on top of base, so a file only needs
// the values it changes.
func LoadPricing(path string, base PricingConfig) (PricingConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return PricingConfig{}, fmt.Errorf("read rates file: %w", err)
	}
	p := base
	if err := yaml.Unmarshal(b, &p); err != nil {
		return PricingConfig{}, fmt.Errorf("parse rates file %s: %w", path, err)
	}
	return p, nil
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	return c.Pricing.Validate()
}

// Validate rejects negative coefficients, which would break the guarantee
// that every estimate is non-negative. The first offending value is reported,
// checked in file order.
func (p PricingConfig) Validate() error {
	type amount struct {
		name  string
		value decimal.Decimal
	}
	amounts := []amount{
		{"pension_monthly", p.PensionMonthly},
		{"alt_plan_annual_cost", p.AltPlanAnnualCost},
		{"rates.standard_deduction", p.Rates.StandardDeduction},
	}
	for _, name := range []string{model.CategoryMedical, model.CategorySupport, model.CategoryCare} {
		r, _ := p.Rates.Rate(name)
		amounts = append(amounts,
			amount{"rates." + name + ".income_rate", r.IncomeRate},
			amount{"rates." + name + ".per_capita", r.PerCapita},
			amount{"rates." + name + ".ceiling", r.Ceiling},
		)
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return fmt.Errorf("%w: %s is negative (%s)", ErrInvalidSchedule, a.name, a.value)
		}
	}
	return nil
}

// Address returns the listen address for the HTTP server
func (c *ServerConfig) Address() string {
	return ":" + strconv.Itoa(c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
