// Package config handles the parsing and validation of application
// configuration from command-line arguments and environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/hangarlabs/simwatch/internal/logger"
	"github.com/hangarlabs/simwatch/internal/vars"
)

// Config represents the complete application flags configuration.
type Config struct {
	Discord Discord       `group:"Discord Options" namespace:"discord" env-namespace:"SIMWATCH"`
	Watch   Watch         `group:"Watch Options" env-namespace:"SIMWATCH"`
	Export  Export        `group:"Export Options" namespace:"export" env-namespace:"SIMWATCH_EXPORT"`
	Storage Storage       `group:"Storage Options" namespace:"db" env-namespace:"SIMWATCH_DB"`
	Probe   Probe         `group:"Probe Options" namespace:"probe" env-namespace:"SIMWATCH_PROBE"`
	GeoIP   GeoIP         `group:"GeoIP Options" namespace:"geoip" env-namespace:"SIMWATCH_GEOIP"`
	Server  Server        `group:"Server Options" namespace:"api" env-namespace:"SIMWATCH_API"`
	Logger  logger.Config `group:"Logger Options" namespace:"log" env-namespace:"SIMWATCH_LOG"`

	Version bool `short:"v" long:"version" description:"Print version and build info"`
}

// Discord holds bot credentials and fetch tuning.
type Discord struct {
	Token        string `short:"t" long:"token" env:"TOKEN" description:"Discord bot token"`
	Guild        string `short:"g" long:"guild" env:"GUILD" description:"Guild (server) ID to watch"`
	MessageLimit int    `long:"message-limit" env:"MESSAGE_LIMIT" description:"Messages fetched per channel" default:"10"`
	RequestRate  int    `long:"request-rate" env:"REQUEST_RATE" description:"Max REST requests per second" default:"5"`
}

// Watch holds the collection loop settings.
type Watch struct {
	Interval time.Duration `short:"i" long:"interval" env:"INTERVAL" description:"Collection interval" default:"2m"`
	Once     bool          `long:"once" env:"ONCE" description:"Run a single collection pass and exit"`
}

// Export holds JSON file output settings.
type Export struct {
	Dir     string `short:"o" long:"dir" env:"DIR" description:"Output directory for JSON snapshots" default:"data"`
	Disable bool   `long:"disable" env:"DISABLE" description:"Skip JSON file export"`
}

// Storage holds database configuration and one-shot maintenance flags.
type Storage struct {
	Path          string        `short:"d" long:"path" env:"PATH" description:"Path to SQLite database" default:"simwatch.db"`
	PruneOlder    time.Duration `long:"prune-older" description:"Delete snapshots older than the given duration, then exit"`
	Vacuum        bool          `long:"vacuum" description:"Compact the database, then exit"`
	GenerateCount int           `long:"gen-fake-data" hidden:"true"`
}

// Probe holds optional live A2S probing of parsed server addresses.
type Probe struct {
	Enable     bool          `long:"enable" env:"ENABLE" description:"Probe parsed server addresses via A2S"`
	Timeout    time.Duration `long:"timeout" env:"TIMEOUT" description:"Query timeout" default:"3s"`
	BufferSize uint16        `long:"buffer-size" env:"BUFFER_SIZE" description:"Response body buffer size" default:"1400"`
}

// GeoIP holds MaxMind GeoIP configuration.
type GeoIP struct {
	Path     string        `long:"path" env:"PATH" description:"Path to MMDB file" default:"simwatch.mmdb"`
	URL      string        `long:"url" env:"URL" description:"URL to download MMDB" default:"https://git.io/GeoLite2-Country.mmdb"`
	Interval time.Duration `long:"interval" env:"INTERVAL" description:"Update interval check" default:"24h"`
	Disable  bool          `long:"disable" env:"DISABLE" description:"Skip GeoIP enrichment"`
}

// Server holds the optional read-only HTTP API configuration.
type Server struct {
	Address        string        `short:"l" long:"listen" env:"LISTEN_ADDRESS" description:"API listen address (empty disables the API)"`
	AuthToken      string        `long:"auth-token" env:"AUTH_TOKEN" description:"Admin authentication token"`
	TrustProxy     bool          `long:"trust-proxy" env:"TRUST_PROXY" description:"Trust X-Forwarded-For headers"`
	HardLimitCount int           `long:"rate-count" env:"RATE_COUNT" description:"Per-IP rate limit: requests count" default:"8"`
	HardLimitWin   time.Duration `long:"rate-window" env:"RATE_WINDOW" description:"Per-IP rate limit: window duration" default:"1m"`
}

// Parse reads the configuration from flags and environment variables.
// It terminates the application if the configuration is invalid or if the
// help flag is invoked.
func Parse() *Config {
	var cfg Config
	parser := flags.NewParser(&cfg, flags.Default)
	parser.NamespaceDelimiter = "-"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}

	if cfg.Version {
		vars.Print()
		os.Exit(0)
	}

	// Maintenance and fake-data runs work without Discord credentials.
	maintenanceOnly := cfg.Storage.PruneOlder > 0 || cfg.Storage.Vacuum || cfg.Storage.GenerateCount > 0

	if cfg.Discord.Token == "" && !maintenanceOnly {
		fmt.Fprintln(os.Stderr,
			"Required flag `-t, --discord-token' or environment variable `SIMWATCH_TOKEN` was not specified!")
		os.Exit(1)
	}
	if cfg.Discord.Guild == "" && !maintenanceOnly {
		fmt.Fprintln(os.Stderr,
			"Required flag `-g, --discord-guild' or environment variable `SIMWATCH_GUILD` was not specified!")
		os.Exit(1)
	}

	if cfg.Server.Address != "" && cfg.Server.AuthToken == "" {
		fmt.Fprintln(os.Stderr,
			"The API requires `--api-auth-token' or `SIMWATCH_API_AUTH_TOKEN` for admin endpoints!")
		os.Exit(1)
	}

	return &cfg
}
