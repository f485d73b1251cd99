package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/corpustools/mekano/errors"
)

var globalConfig *Config
var viperInstance *viper.Viper

// Load reads the mekano configuration using Viper
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	v := initViper()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := validate(&config); err != nil {
		return nil, err
	}

	globalConfig = &config
	return globalConfig, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal config from %s", configPath)
	}
	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viperInstance = nil
}

// initViper initializes Viper with configuration sources and defaults
func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()

	// Environment variables: MEKANO_DATABASE_PATH, MEKANO_SCAN_FORMAT, ...
	v.SetEnvPrefix("MEKANO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	// An absent config file is fine; defaults and env vars apply.
	v.SetConfigName("mekano")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/mekano")
	_ = v.ReadInConfig()

	viperInstance = v
	return v
}

func validate(c *Config) error {
	switch c.Scan.Format {
	case FormatTrec, FormatSmart:
		return nil
	default:
		return errors.Newf("unknown scan.format %q (expected %q or %q)", c.Scan.Format, FormatTrec, FormatSmart)
	}
}
