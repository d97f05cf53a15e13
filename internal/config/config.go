package config

import (
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/viper"
)

// LoadStatus reports how config loading went. Absent and malformed
// files both fall back to defaults; the status lets callers log the
// difference instead of guessing.
type LoadStatus int

const (
	StatusOK LoadStatus = iota
	StatusFileAbsent
	StatusParseError
)

// String returns a short name for the status, used in log output.
func (s LoadStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusFileAbsent:
		return "absent"
	case StatusParseError:
		return "parse-error"
	default:
		return "unknown"
	}
}

// Config holds application configuration
type Config struct {
	// Series titles excluded from release checking (exact match)
	IgnoreSeries []string

	// Audible marketplace settings
	Audible AudibleConfig

	// Library listing settings
	Library LibraryConfig

	// Release check settings
	Check CheckConfig
}

// AudibleConfig holds Audible specific configuration
type AudibleConfig struct {
	Region      string
	SessionFile string
}

// LibraryConfig holds library listing configuration
type LibraryConfig struct {
	SortBy string
}

// CheckConfig holds release check tuning
type CheckConfig struct {
	Concurrency int
}

// Load reads configuration from the default location and environment
func Load() (*Config, LoadStatus) {
	return load("")
}

// LoadFrom reads configuration from an explicit file path
func LoadFrom(path string) (*Config, LoadStatus) {
	return load(path)
}

func load(path string) (*Config, LoadStatus) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(getConfigDir())
		v.AddConfigPath(".")
	}

	// Set defaults
	v.SetDefault("audible.region", "au")
	v.SetDefault("audible.session_file", filepath.Join(getConfigDir(), "session.json"))
	v.SetDefault("library.sort_by", "-PurchaseDate")
	v.SetDefault("check.concurrency", 8)

	status := StatusOK
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			status = StatusFileAbsent
		} else {
			// Malformed config degrades to defaults rather than
			// aborting the run.
			status = StatusParseError
		}
	}

	// Read from environment variables
	v.SetEnvPrefix("SEQUELS")
	v.AutomaticEnv()

	cfg := &Config{
		IgnoreSeries: ignoreList(v),
		Audible: AudibleConfig{
			Region:      v.GetString("audible.region"),
			SessionFile: v.GetString("audible.session_file"),
		},
		Library: LibraryConfig{
			SortBy: v.GetString("library.sort_by"),
		},
		Check: CheckConfig{
			Concurrency: v.GetInt("check.concurrency"),
		},
	}
	if cfg.Check.Concurrency < 1 {
		cfg.Check.Concurrency = 1
	}

	return cfg, status
}

// ignoreList reads the ignore_series key, accepting either a plain list
// of titles or a key -> title map (the historical INI-section shape,
// where the keys were meaningless counters). Map entries are ordered by
// key so the result is deterministic.
func ignoreList(v *viper.Viper) []string {
	if titles := v.GetStringSlice("ignore_series"); len(titles) > 0 {
		return titles
	}

	entries := v.GetStringMapString("ignore_series")
	if len(entries) == 0 {
		return nil
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	titles := make([]string, 0, len(entries))
	for _, k := range keys {
		if entries[k] != "" {
			titles = append(titles, entries[k])
		}
	}
	return titles
}

// getConfigDir returns the configuration directory path
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".config", "sequels")
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}
