package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"jobdash/internal/structures"
)

const DefaultSessionKey = "authTokens"

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("session.key", DefaultSessionKey)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("cache.size", 8)
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("metrics.listen", "127.0.0.1:9464")
	v.SetDefault("watch.schedule", "@every 5m")

	v.BindEnv("api.baseUrl", "JOBDASH_API_URL")
	v.BindEnv("logger.level", "JOBDASH_LOG_LEVEL")
	v.BindEnv("session.path", "JOBDASH_SESSION_PATH")
	v.BindEnv("cache.enabled", "JOBDASH_CACHE_ENABLED")
	v.BindEnv("metrics.enabled", "JOBDASH_METRICS_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	conf.Session.Path = expandHome(conf.Session.Path)
	conf.Logger.Dir = expandHome(conf.Logger.Dir)

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "JobDash"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
