package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		FeedURL:           "https://blog.example.com/feeds/posts/default",
		HubURL:            "https://pubsubhubbub.example.com/",
		HostName:          "mirror.example.com",
		DBPath:            "./test.db",
		Port:              "8080",
		APIAccessKey:      "test-key",
		RecentPostCount:   5,
		WorkerCount:       2,
		SchedulerInterval: 60,
		SyncInterval:      43200,
		UserAgent:         "Test Agent",
		Debug:             true,
		Version:           "test-version",
	}

	if cfg.FeedURL != "https://blog.example.com/feeds/posts/default" {
		t.Errorf("Expected feed URL 'https://blog.example.com/feeds/posts/default', got '%s'", cfg.FeedURL)
	}
	if cfg.HubURL != "https://pubsubhubbub.example.com/" {
		t.Errorf("Expected hub URL 'https://pubsubhubbub.example.com/', got '%s'", cfg.HubURL)
	}
	if cfg.HostName != "mirror.example.com" {
		t.Errorf("Expected host name 'mirror.example.com', got '%s'", cfg.HostName)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.RecentPostCount != 5 {
		t.Errorf("Expected recent post count 5, got %d", cfg.RecentPostCount)
	}
	if cfg.SyncInterval != 43200 {
		t.Errorf("Expected sync interval 43200, got %d", cfg.SyncInterval)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}
