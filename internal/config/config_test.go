package config

import (
	"testing"
	"time"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if cfg.RESTPort != "8080" {
		t.Errorf("RESTPort = %q, want 8080", cfg.RESTPort)
	}
	if cfg.Sources.NewsMaxPages != 20 {
		t.Errorf("NewsMaxPages = %d, want 20", cfg.Sources.NewsMaxPages)
	}
	if cfg.Schedule.Odds != 15*time.Minute {
		t.Errorf("Schedule.Odds = %v, want 15m", cfg.Schedule.Odds)
	}
	if cfg.Location().String() != "America/New_York" {
		t.Errorf("Location() = %v, want America/New_York", cfg.Location())
	}
}

func TestNewOverrides(t *testing.T) {
	t.Setenv("REST_PORT", "9090")
	t.Setenv("SCHEDULE_NEWS", "2h")
	t.Setenv("BROWSER_HEADLESS", "false")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if cfg.RESTPort != "9090" {
		t.Errorf("RESTPort = %q, want 9090", cfg.RESTPort)
	}
	if cfg.Schedule.News != 2*time.Hour {
		t.Errorf("Schedule.News = %v, want 2h", cfg.Schedule.News)
	}
	if cfg.Browser.Headless {
		t.Error("Browser.Headless = true, want false")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok", Config{Timezone: "UTC", Sources: Sources{NewsMaxPages: 1}}, false},
		{"bad timezone", Config{Timezone: "Mars/Olympus", Sources: Sources{NewsMaxPages: 1}}, true},
		{"zero pages", Config{Timezone: "UTC"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestScheduleInterval(t *testing.T) {
	s := Schedule{Lineups: time.Minute, Injuries: 2 * time.Minute, News: 3 * time.Minute, Odds: 4 * time.Minute}
	tests := map[string]time.Duration{
		"lineups":  time.Minute,
		"injuries": 2 * time.Minute,
		"news":     3 * time.Minute,
		"odds":     4 * time.Minute,
		"weather":  0,
	}
	for source, want := range tests {
		if got := s.Interval(source); got != want {
			t.Errorf("Interval(%q) = %v, want %v", source, got, want)
		}
	}
}
