// Package config provides centralized application configuration.
//
// Configuration follows a layered approach, lowest precedence first:
//
//  1. Library defaults (the constants below)
//  2. Environment variables (db_host, db_port, db_user, db_pass, db_name,
//     geonames_username, max_nearby_radius, port)
//  3. Command-line flags, which override the environment when present and
//     non-empty
//
// The environment layer is handled by viper; the flag layer is applied by
// the caller via the Override* methods. The package also owns the shared
// logger handed to the server and the orchestrators.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Defaults applied when neither the environment nor the flags supply a
// value. The database defaults match a stock timezonedb import.
const (
	DefaultDbHost          = "127.0.0.1"
	DefaultDbPort          = 3306
	DefaultDbName          = "timezonedb"
	DefaultDbUser          = "timezonedb"
	DefaultDbPass          = "password"
	DefaultGeonamesUser    = "demo"
	DefaultMaxNearbyRadius = 240.0
	DefaultWebPort         = 8089

	// DefaultHTTPTimeout bounds every call to the geocoding provider.
	DefaultHTTPTimeout = 10 * time.Second
)

// GeonamesAPIBase is the root URL of the Geonames-compatible API.
const GeonamesAPIBase = "http://api.geonames.org"

// Config holds the resolved application configuration.
type Config struct {
	DbHost string
	DbPort int
	DbName string
	DbUser string
	DbPass string

	// GeonamesUser is the username sent with every geocoding request.
	GeonamesUser string

	// MaxNearbyRadius is the findNearby search radius in kilometres.
	MaxNearbyRadius float64

	// WebPort is the HTTP listen port.
	WebPort int

	// CacheDir is where the shared HTTP cache stores its entries.
	CacheDir string

	Logger *log.Logger
}

// New loads the configuration from the environment on top of the defaults.
func New() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("db_host", DefaultDbHost)
	v.SetDefault("db_port", DefaultDbPort)
	v.SetDefault("db_name", DefaultDbName)
	v.SetDefault("db_user", DefaultDbUser)
	v.SetDefault("db_pass", DefaultDbPass)
	v.SetDefault("geonames_username", DefaultGeonamesUser)
	v.SetDefault("max_nearby_radius", DefaultMaxNearbyRadius)
	v.SetDefault("port", DefaultWebPort)
	v.SetDefault("cache_dir", defaultCacheDir())

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "geotimezone",
	})

	return &Config{
		DbHost:          v.GetString("db_host"),
		DbPort:          v.GetInt("db_port"),
		DbName:          v.GetString("db_name"),
		DbUser:          v.GetString("db_user"),
		DbPass:          v.GetString("db_pass"),
		GeonamesUser:    v.GetString("geonames_username"),
		MaxNearbyRadius: v.GetFloat64("max_nearby_radius"),
		WebPort:         v.GetInt("port"),
		CacheDir:        v.GetString("cache_dir"),
		Logger:          logger,
	}
}

// defaultCacheDir places the HTTP cache under the user cache directory,
// falling back to a relative path when none is available.
func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ".geotimezone-cache"
	}
	return base + string(os.PathSeparator) + "geotimezone"
}

// OverrideString replaces a string field when the flag value is non-empty.
func OverrideString(dst *string, flagValue string) {
	if strings.TrimSpace(flagValue) != "" {
		*dst = flagValue
	}
}

// OverrideInt replaces an int field when the flag value is positive.
func OverrideInt(dst *int, flagValue int) {
	if flagValue > 0 {
		*dst = flagValue
	}
}

// OverrideFloat replaces a float field when the flag value is positive.
func OverrideFloat(dst *float64, flagValue float64) {
	if flagValue > 0 {
		*dst = flagValue
	}
}

// DSN renders the MySQL data source name for the configured database.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=false", c.DbUser, c.DbPass, c.DbHost, c.DbPort, c.DbName)
}
