package config

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.path", "mekano.db")

	// Scan defaults
	v.SetDefault("scan.format", FormatTrec)
	v.SetDefault("scan.sections", []string{}) // empty = all sections

	// Logging defaults
	v.SetDefault("log.json", false)
}
