package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"logview/models"
)

const (
	EnvPrefix = "LOGVIEW"

	DefaultListenAddr       = ":3000"
	DefaultSourceURL        = "http://localhost:8080/api/logs"
	DefaultPollInterval     = 60 * time.Second
	DefaultTimeRange        = models.TimeRangeDay
	DefaultTimezone         = "Local"
	DefaultSourceListenAddr = ":8080"
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "console"

	configName = "logview"
)

var (
	ErrFailedToReadConfig  = errors.New("failed to read config file")
	ErrFailedToParseConfig = errors.New("failed to parse config file")
	ErrInvalidConfig       = errors.New("invalid configuration")
)

// Config holds settings for both the dashboard and the source service.
type Config struct {
	ListenAddr       string        `mapstructure:"listen_addr"`
	SourceURL        string        `mapstructure:"source_url"`
	PollInterval     time.Duration `mapstructure:"poll_interval"`
	FetchTimeout     time.Duration `mapstructure:"fetch_timeout"`
	DefaultTimeRange string        `mapstructure:"default_time_range"`
	Timezone         string        `mapstructure:"timezone"`
	DatabaseURL      string        `mapstructure:"database_url"`

	Source struct {
		ListenAddr string `mapstructure:"listen_addr"`
	} `mapstructure:"source"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
}

// Load reads configuration from, in increasing priority: defaults, the YAML
// file at path (or ./logview.yaml when path is empty and the file exists),
// and LOGVIEW_* environment variables. A .env file in the working directory is
// loaded into the environment first. DATABASE_URL is honored as well as
// LOGVIEW_DATABASE_URL.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("database_url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %w", ErrFailedToReadConfig, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToParseConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen_addr", DefaultListenAddr)
	v.SetDefault("source_url", DefaultSourceURL)
	v.SetDefault("poll_interval", DefaultPollInterval)
	v.SetDefault("fetch_timeout", time.Duration(0))
	v.SetDefault("default_time_range", string(DefaultTimeRange))
	v.SetDefault("timezone", DefaultTimezone)
	v.SetDefault("database_url", "")
	v.SetDefault("source.listen_addr", DefaultSourceListenAddr)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg := &Config{
		ListenAddr:       DefaultListenAddr,
		SourceURL:        DefaultSourceURL,
		PollInterval:     DefaultPollInterval,
		DefaultTimeRange: string(DefaultTimeRange),
		Timezone:         DefaultTimezone,
	}
	cfg.Source.ListenAddr = DefaultSourceListenAddr
	cfg.Log.Level = DefaultLogLevel
	cfg.Log.Format = DefaultLogFormat
	return cfg
}

// Validate checks the dashboard settings. DatabaseURL is checked by the
// source command, which is the only one that needs it.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.SourceURL) == "" {
		problems = append(problems, "source_url must not be empty")
	}
	if c.PollInterval <= 0 {
		problems = append(problems, "poll_interval must be positive")
	}
	if c.FetchTimeout < 0 {
		problems = append(problems, "fetch_timeout must not be negative")
	}
	if !models.TimeRange(c.DefaultTimeRange).Valid() {
		problems = append(problems, fmt.Sprintf("default_time_range %q is not one of 1h, 6h, 24h, 7d, all", c.DefaultTimeRange))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("timezone %q: %v", c.Timezone, err))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Location returns the timeline zone. Validate has already checked it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// DefaultCriteria is what the dashboard shows before the user picks filters.
func (c *Config) DefaultCriteria() models.FilterCriteria {
	return models.FilterCriteria{
		Level:     models.LevelAll,
		TimeRange: models.TimeRange(c.DefaultTimeRange),
	}
}
