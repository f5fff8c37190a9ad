package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Feed configuration
	FeedURL string `long:"feed-url" env:"FEED_URL" required:"true" description:"URL of the feed to mirror (required)"`
	HubURL  string `long:"hub-url" env:"HUB_URL" description:"Base URL of the push hub (outbound subscription requests are skipped when empty)"`

	// Subscription callback configuration
	HostName string `long:"host-name" env:"HOST_NAME" description:"Public host name the hub uses to reach the callback endpoint"`

	// Database configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./blogmirror.db" description:"Path to the SQLite database file"`

	// Application configuration
	Port              string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey      string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for admin endpoints (optional)"`
	RecentPostCount   int    `long:"recent-post-count" env:"RECENT_POST_COUNT" default:"5" description:"Number of posts returned by the listing endpoint"`
	WorkerCount       int    `long:"worker-count" env:"WORKER_COUNT" default:"2" description:"Number of background workers for task processing"`
	SchedulerInterval int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"60" description:"Scheduler tick interval in seconds"`
	SyncInterval      int    `long:"sync-interval" env:"SYNC_INTERVAL" default:"43200" description:"Minimum interval between scheduled feed syncs in seconds"`
	ExtractContent    bool   `long:"extract-content" env:"EXTRACT_CONTENT" description:"Backfill empty post content from the alternate link"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"BlogMirror/1.0" description:"User agent string for outbound HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load parses configuration from command-line flags and environment
// variables. It returns (nil, nil) when help was requested. The returned
// Cfg is passed explicitly into component constructors; there is no
// package-level configuration state.
func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		FeedURL:           raw.FeedURL,
		HubURL:            raw.HubURL,
		HostName:          raw.HostName,
		DBPath:            raw.DBPath,
		Port:              raw.Port,
		APIAccessKey:      raw.APIAccessKey,
		RecentPostCount:   raw.RecentPostCount,
		WorkerCount:       raw.WorkerCount,
		SchedulerInterval: raw.SchedulerInterval,
		SyncInterval:      raw.SyncInterval,
		ExtractContent:    raw.ExtractContent,
		UserAgent:         raw.UserAgent,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	return cfg, nil
}
