package config

import (
	"reflect"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected an error without JWT_SECRET")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_ACCESS_EXPIRY", "")
	t.Setenv("BOOKING_SWEEP_INTERVAL", "")
	t.Setenv("APP_CORS_ORIGINS", "")
	t.Setenv("RABBITMQ_URL", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.App.Name != "Hotel Ortus" || cfg.App.Timezone != "Asia/Kolkata" {
		t.Fatalf("unexpected app defaults %+v", cfg.App)
	}
	if cfg.JWT.AccessExpiry != 15*time.Minute || cfg.JWT.RefreshExpiry != 7*24*time.Hour {
		t.Fatalf("unexpected expiries %v %v", cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)
	}
	if cfg.Booking.CheckInHour != 11 || cfg.Booking.CheckOutHour != 11 {
		t.Fatalf("unexpected house hours %+v", cfg.Booking)
	}
	if cfg.Booking.SweepInterval != time.Minute || cfg.Booking.SweepLockTTL != 50*time.Second {
		t.Fatalf("unexpected sweep timings %+v", cfg.Booking)
	}
	if cfg.Booking.StrictTransitions || cfg.Booking.MaxExtensionDays != 0 {
		t.Fatalf("policies should be permissive by default %+v", cfg.Booking)
	}
	if cfg.RabbitMQ.URL != "" || cfg.RabbitMQ.Queue != "booking.events" {
		t.Fatalf("unexpected broker config %+v", cfg.RabbitMQ)
	}
	if len(cfg.App.CORSOrigins) != 0 {
		t.Fatalf("expected no CORS origins, got %v", cfg.App.CORSOrigins)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_ACCESS_EXPIRY", "5m")
	t.Setenv("BOOKING_SWEEP_INTERVAL", "-1s")
	t.Setenv("BOOKING_STRICT_TRANSITIONS", "true")
	t.Setenv("BOOKING_MAX_EXTENSION_DAYS", "3")
	t.Setenv("APP_CORS_ORIGINS", "https://ortus.in, https://admin.ortus.in,")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.JWT.AccessExpiry != 5*time.Minute {
		t.Fatalf("expected 5m access expiry, got %v", cfg.JWT.AccessExpiry)
	}
	if cfg.Booking.SweepInterval != time.Minute {
		t.Fatalf("non-positive interval should fall back, got %v", cfg.Booking.SweepInterval)
	}
	if !cfg.Booking.StrictTransitions || cfg.Booking.MaxExtensionDays != 3 {
		t.Fatalf("unexpected policies %+v", cfg.Booking)
	}
	want := []string{"https://ortus.in", "https://admin.ortus.in"}
	if !reflect.DeepEqual(cfg.App.CORSOrigins, want) {
		t.Fatalf("expected %v, got %v", want, cfg.App.CORSOrigins)
	}
}

func TestLocation(t *testing.T) {
	hook := test.NewGlobal()

	if loc := (AppConfig{Timezone: "Asia/Kolkata"}).Location(); loc.String() != "Asia/Kolkata" {
		t.Fatalf("expected Asia/Kolkata, got %s", loc)
	}
	if len(hook.AllEntries()) != 0 {
		t.Fatalf("unexpected log entries %v", hook.AllEntries())
	}

	if loc := (AppConfig{Timezone: "Mars/Olympus"}).Location(); loc != time.UTC {
		t.Fatalf("expected UTC fallback, got %s", loc)
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.WarnLevel {
		t.Fatalf("expected a warning for the fallback, got %v", entry)
	}
}

func TestSplitList(t *testing.T) {
	if got := splitList(" a ,, b "); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("unexpected %v", got)
	}
	if got := splitList(""); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
