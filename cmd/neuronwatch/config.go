package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"neuronwatch/internal/logger"
	"neuronwatch/internal/repository"
	"neuronwatch/internal/server"
	"neuronwatch/internal/service"
)

const envPrefix = "NEURONWATCH"

// errMissingCortexURL is returned when no stream address is configured.
var errMissingCortexURL = errors.New("cortex.url is not set")

// Config is the resolved runtime configuration.
type Config struct {
	CortexURL     string
	HTTPPort      string
	LogLevel      string
	LogCapacity   int
	RetryInterval time.Duration
	PulseWindow   time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", server.DefaultPort)
	v.SetDefault("log.level", logger.InfoLevel)
	v.SetDefault("monitor.log_capacity", repository.DefaultLogCapacity)
	v.SetDefault("monitor.retry_interval", service.DefaultRetryInterval)
	v.SetDefault("monitor.pulse_window", service.DefaultPulseWindow)
}

// loadConfig reads configs/config.yml (or path), then NEURONWATCH_* env vars,
// then the flags that were set. A missing default config file is not an error.
func loadConfig(v *viper.Viper, path string, flags *pflag.FlagSet) (Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for key, name := range map[string]string{
			"cortex.url": "cortex-url",
			"log.level":  "log-level",
			"http.port":  "port",
		} {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := Config{
		CortexURL:     strings.TrimSpace(v.GetString("cortex.url")),
		HTTPPort:      v.GetString("http.port"),
		LogLevel:      strings.ToLower(v.GetString("log.level")),
		LogCapacity:   v.GetInt("monitor.log_capacity"),
		RetryInterval: v.GetDuration("monitor.retry_interval"),
		PulseWindow:   v.GetDuration("monitor.pulse_window"),
	}
	if cfg.CortexURL == "" {
		return Config{}, errMissingCortexURL
	}
	return cfg, nil
}
