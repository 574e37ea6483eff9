package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"MarketCache/internal/model"
)

// EnvPrefix prefixes every environment override, e.g. MARKETCACHE_PROVIDERS_BRAPI_TOKEN.
const EnvPrefix = "MARKETCACHE"

const dateLayout = "2006-01-02"

// Config holds all application configuration.
type Config struct {
	Cache     CacheConfig     `yaml:"cache" envconfig:"CACHE"`
	Providers ProvidersConfig `yaml:"providers" envconfig:"PROVIDERS"`
	Proxy     string          `yaml:"proxy" envconfig:"PROXY"`
	Recorder  struct {
		SQLitePath string `yaml:"sqlite_path" envconfig:"SQLITE_PATH"`
	} `yaml:"recorder" envconfig:"RECORDER"`
	Schedule ScheduleConfig `yaml:"schedule" envconfig:"SCHEDULE"`
	Logging  struct {
		Level       string `yaml:"level" envconfig:"LEVEL"`
		Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
	} `yaml:"logging" envconfig:"LOGGING"`
}

// CacheConfig controls padding, lookback limits and which database flavour is built.
type CacheConfig struct {
	Mode                  string         `yaml:"mode" envconfig:"MODE"` // daily or intraday
	VolatilityPaddingDays int            `yaml:"volatility_padding_days" envconfig:"VOLATILITY_PADDING_DAYS"`
	DefaultHistoryStart   string         `yaml:"default_history_start" envconfig:"DEFAULT_HISTORY_START"`
	IntradayLookbackDays  int            `yaml:"intraday_lookback_days" envconfig:"INTRADAY_LOOKBACK_DAYS"`
	IntradayWindowDays    map[string]int `yaml:"intraday_window_days" envconfig:"INTRADAY_WINDOW_DAYS"`
}

// ProvidersConfig points at the upstream APIs.
type ProvidersConfig struct {
	YahooBaseURL      string        `yaml:"yahoo_base_url" envconfig:"YAHOO_BASE_URL"`
	BrapiBaseURL      string        `yaml:"brapi_base_url" envconfig:"BRAPI_BASE_URL"`
	BrapiToken        string        `yaml:"brapi_token" envconfig:"BRAPI_TOKEN"`
	BCBBaseURL        string        `yaml:"bcb_base_url" envconfig:"BCB_BASE_URL"`
	Timeout           time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
	RequestsPerSecond float64       `yaml:"requests_per_second" envconfig:"REQUESTS_PER_SECOND"`
	Burst             int           `yaml:"burst" envconfig:"BURST"`
	UserAgent         string        `yaml:"user_agent" envconfig:"USER_AGENT"`
	Mock              bool          `yaml:"mock" envconfig:"MOCK"` // serve synthetic data, no network
}

// ScheduleConfig drives the background refresh. An empty cron disables its job.
type ScheduleConfig struct {
	RefreshCron  string   `yaml:"refresh_cron" envconfig:"REFRESH_CRON"`
	ResetCron    string   `yaml:"reset_cron" envconfig:"RESET_CRON"`
	Watchlist    []string `yaml:"watchlist" envconfig:"WATCHLIST"`
	Interval     string   `yaml:"interval" envconfig:"INTERVAL"`
	Field        string   `yaml:"field" envconfig:"FIELD"`
	LookbackDays int      `yaml:"lookback_days" envconfig:"LOOKBACK_DAYS"`
}

// Load reads .env, then the YAML file, then applies environment variable
// overrides and defaults. Missing .env and config files are not errors.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}
	if cfg.Proxy == "" {
		cfg.Proxy = os.Getenv("HTTPS_PROXY")
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := model.DefaultSettings()
	if c.Cache.Mode == "" {
		c.Cache.Mode = "daily"
	}
	if c.Cache.VolatilityPaddingDays == 0 {
		c.Cache.VolatilityPaddingDays = defaults.VolatilityPaddingDays
	}
	if c.Cache.DefaultHistoryStart == "" {
		c.Cache.DefaultHistoryStart = defaults.DefaultHistoryStart.Format(dateLayout)
	}
	if c.Cache.IntradayLookbackDays == 0 {
		c.Cache.IntradayLookbackDays = defaults.IntradayLookbackDays
	}
	if c.Cache.IntradayWindowDays == nil {
		c.Cache.IntradayWindowDays = make(map[string]int)
		for k, v := range defaults.IntradayWindowDays {
			c.Cache.IntradayWindowDays[string(k)] = v
		}
	}

	if c.Providers.YahooBaseURL == "" {
		c.Providers.YahooBaseURL = "https://query1.finance.yahoo.com"
	}
	if c.Providers.BrapiBaseURL == "" {
		c.Providers.BrapiBaseURL = "https://brapi.dev"
	}
	if c.Providers.BCBBaseURL == "" {
		c.Providers.BCBBaseURL = "https://api.bcb.gov.br"
	}
	if c.Providers.Timeout == 0 {
		c.Providers.Timeout = 30 * time.Second
	}
	if c.Providers.RequestsPerSecond == 0 {
		c.Providers.RequestsPerSecond = 5
	}
	if c.Providers.Burst == 0 {
		c.Providers.Burst = 5
	}
	if c.Providers.UserAgent == "" {
		c.Providers.UserAgent = "Mozilla/5.0 (compatible; MarketCache/1.0)"
	}

	if c.Schedule.Field == "" {
		c.Schedule.Field = "close"
	}
	if c.Schedule.LookbackDays == 0 {
		c.Schedule.LookbackDays = 365
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks that all fields are usable.
func (c *Config) Validate() error {
	var errs []error
	switch c.Cache.Mode {
	case "daily", "intraday":
	default:
		errs = append(errs, fmt.Errorf("cache.mode must be daily or intraday, got %q", c.Cache.Mode))
	}
	if c.Cache.VolatilityPaddingDays < 0 {
		errs = append(errs, errors.New("cache.volatility_padding_days must not be negative"))
	}
	if _, err := time.Parse(dateLayout, c.Cache.DefaultHistoryStart); err != nil {
		errs = append(errs, fmt.Errorf("cache.default_history_start: %w", err))
	}
	for k, v := range c.Cache.IntradayWindowDays {
		if _, err := model.ParseInterval(k); err != nil {
			errs = append(errs, fmt.Errorf("cache.intraday_window_days: %w", err))
		}
		if v <= 0 {
			errs = append(errs, fmt.Errorf("cache.intraday_window_days[%s] must be positive", k))
		}
	}
	if c.Providers.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("providers.requests_per_second must not be negative"))
	}

	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	for name, spec := range map[string]string{"refresh_cron": c.Schedule.RefreshCron, "reset_cron": c.Schedule.ResetCron} {
		if spec == "" {
			continue
		}
		if _, err := parser.Parse(spec); err != nil {
			errs = append(errs, fmt.Errorf("schedule.%s: %w", name, err))
		}
	}
	if c.Schedule.RefreshCron != "" && len(c.Schedule.Watchlist) == 0 {
		errs = append(errs, errors.New("schedule.watchlist is required when refresh_cron is set"))
	}
	if c.Schedule.Interval != "" {
		if _, err := model.ParseInterval(c.Schedule.Interval); err != nil {
			errs = append(errs, fmt.Errorf("schedule.interval: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Intraday reports whether the multi-frame database should be built.
func (c *Config) Intraday() bool { return strings.EqualFold(c.Cache.Mode, "intraday") }

// Settings converts the cache section. Call Validate first.
func (c *Config) Settings() model.Settings {
	s := model.DefaultSettings()
	s.VolatilityPaddingDays = c.Cache.VolatilityPaddingDays
	s.IntradayLookbackDays = c.Cache.IntradayLookbackDays
	if start, err := time.Parse(dateLayout, c.Cache.DefaultHistoryStart); err == nil {
		s.DefaultHistoryStart = start
	}
	s.IntradayWindowDays = make(map[model.Interval]int, len(c.Cache.IntradayWindowDays))
	for k, v := range c.Cache.IntradayWindowDays {
		s.IntradayWindowDays[model.Interval(k)] = v
	}
	return s
}
