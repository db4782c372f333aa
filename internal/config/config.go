package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Seed     SeedConfig     `mapstructure:"seed"`
	Ads      AdsConfig      `mapstructure:"ads"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Stats    StatsConfig    `mapstructure:"stats"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type StorageConfig struct {
	// Driver selects the blob substrate: "memory" or "postgres".
	Driver          string        `mapstructure:"driver"`
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

type AuthConfig struct {
	AdminEmails  []string      `mapstructure:"admin_emails"`
	LoginDelay   time.Duration `mapstructure:"login_delay"`
	StartingGems float64       `mapstructure:"starting_gems"`
}

type SeedConfig struct {
	Enabled      bool `mapstructure:"enabled"`
	Count        int  `mapstructure:"count"`
	UnlockedHead int  `mapstructure:"unlocked_head"`
}

type AdsConfig struct {
	RewardGems float64       `mapstructure:"reward_gems"`
	Cooldown   time.Duration `mapstructure:"cooldown"`
	WatchDelay time.Duration `mapstructure:"watch_delay"`
}

type AnalysisConfig struct {
	Delay time.Duration `mapstructure:"delay"`
}

type StatsConfig struct {
	SnapshotCron string `mapstructure:"snapshot_cron"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("WINX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("storage.driver", "memory")
	v.SetDefault("storage.dsn", "")
	v.SetDefault("storage.max_open_conns", 10)
	v.SetDefault("storage.max_idle_conns", 5)
	v.SetDefault("storage.conn_max_lifetime", "30m")
	v.SetDefault("storage.conn_max_idle_time", "5m")
	v.SetDefault("auth.admin_emails", []string{"admin@winx.com"})
	v.SetDefault("auth.login_delay", "1s")
	v.SetDefault("auth.starting_gems", 5)
	v.SetDefault("seed.enabled", true)
	v.SetDefault("seed.count", 12)
	v.SetDefault("seed.unlocked_head", 3)
	v.SetDefault("ads.reward_gems", 0.5)
	v.SetDefault("ads.cooldown", "1m")
	v.SetDefault("ads.watch_delay", "5s")
	v.SetDefault("analysis.delay", "2s")
	v.SetDefault("stats.snapshot_cron", "@every 6h")

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
