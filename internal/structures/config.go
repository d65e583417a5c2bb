package structures

import "time"

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type ApiConfig struct {
	BaseURL string        `yaml:"baseUrl" mapstructure:"baseUrl" validate:"required|fullUrl"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type SessionConfig struct {
	Path string `yaml:"path" mapstructure:"path" validate:"required|unixPath"`
	Key  string `yaml:"key" mapstructure:"key"`
}

type LoggerConfig struct {
	Level string `yaml:"level" mapstructure:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" mapstructure:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" mapstructure:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Size    int           `yaml:"size" mapstructure:"size"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Listen  string `yaml:"listen" mapstructure:"listen"`
}

type WatchConfig struct {
	Schedule string `yaml:"schedule" mapstructure:"schedule"`
}

type Config struct {
	AppName string
	Debug   bool
	Path    string
	Api     ApiConfig     `yaml:"api" mapstructure:"api"`
	Session SessionConfig `yaml:"session" mapstructure:"session"`
	Logger  LoggerConfig  `yaml:"logger" mapstructure:"logger"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
	Watch   WatchConfig   `yaml:"watch" mapstructure:"watch"`
}
