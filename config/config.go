// Package config loads mekano configuration from config files and the
// environment using Viper.
package config

// Config represents the mekano configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Scan     ScanConfig     `mapstructure:"scan"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig configures the SQLite vocabulary database
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// ScanConfig configures corpus scanning defaults
type ScanConfig struct {
	Format   string   `mapstructure:"format"`   // corpus format: "trec" or "smart"
	Sections []string `mapstructure:"sections"` // SMART section allow-set; empty = all sections
}

// LogConfig configures logging output
type LogConfig struct {
	JSON bool `mapstructure:"json"`
}

// Corpus format names accepted by scan.format.
const (
	FormatTrec  = "trec"
	FormatSmart = "smart"
)
