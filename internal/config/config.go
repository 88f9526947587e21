// This file defines the configuration structure for the console.
package config

import (
	"log"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration settings for the application.
// It maps directly to the structure of config.yml.
type Config struct {
	Port    int `mapstructure:"port"`
	Backend struct {
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"backend"`
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Polling PollingConfig `mapstructure:"polling"`
	History struct {
		Retention time.Duration `mapstructure:"retention"`
	} `mapstructure:"history"`
}

// PollingConfig controls how often each snapshot collection is refreshed
// and how many jobs each refresh asks for.
type PollingConfig struct {
	JobsInterval          time.Duration `mapstructure:"jobs_interval"`
	StatsInterval         time.Duration `mapstructure:"stats_interval"`
	NotificationsInterval time.Duration `mapstructure:"notifications_interval"`
	MetricsInterval       time.Duration `mapstructure:"metrics_interval"`
	JobsLimit             int           `mapstructure:"jobs_limit"`
	NotificationsLimit    int           `mapstructure:"notifications_limit"`
}

// Load reads configuration from a file named "config.yml" in the
// current directory and unmarshals it into a Config struct.
func Load() (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}
	return decode(v)
}

// Watch loads the configuration and calls onChange with the re-decoded
// Config every time config.yml is written. Only the polling section is
// expected to be hot-applied; other keys need a restart.
func Watch(onChange func(*Config)) (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}
	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	if v.ConfigFileUsed() == "" {
		return cfg, nil
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		log.Printf("Config file changed: %s", e.Name)
		updated, err := decode(v)
		if err != nil {
			log.Printf("Warning: ignoring invalid config change: %v", err)
			return
		}
		onChange(updated)
	})
	v.WatchConfig()
	return cfg, nil
}

func newViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigName("config") // name of config file (without extension)
	v.SetConfigType("yml")
	v.AddConfigPath(".")

	// e.g. UGC_BACKEND_BASE_URL overrides `backend.base_url`.
	v.SetEnvPrefix("UGC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", 8080)
	v.SetDefault("backend.base_url", "http://localhost:8000")
	v.SetDefault("database.path", "./ugc-console.db")
	v.SetDefault("polling.jobs_interval", 5*time.Second)
	v.SetDefault("polling.stats_interval", 8*time.Second)
	v.SetDefault("polling.notifications_interval", 30*time.Second)
	v.SetDefault("polling.metrics_interval", 30*time.Second)
	v.SetDefault("polling.jobs_limit", 200)
	v.SetDefault("polling.notifications_limit", 10)
	v.SetDefault("history.retention", 24*time.Hour)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return nil, err
		}
	}
	return v, nil
}

func decode(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	config.Backend.BaseURL = strings.TrimRight(config.Backend.BaseURL, "/")
	return &config, nil
}
