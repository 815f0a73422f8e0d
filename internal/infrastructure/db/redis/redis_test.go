package redis

import (
	"context"
	"testing"
	"time"
)

func TestKeys(t *testing.T) {
	if got := sessionKey("abc"); got != "session:abc" {
		t.Fatalf("sessionKey = %q", got)
	}
	if got := telemetryKey("2793841", 10); got != "telemetry:2793841:10" {
		t.Fatalf("telemetryKey = %q", got)
	}
}

func TestCacheTTL(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	if got := cacheTTL(now.Add(90*time.Minute+500*time.Millisecond), now); got != 90*time.Minute {
		t.Fatalf("expected 90m, got %v", got)
	}
	if got := cacheTTL(now.Add(-time.Minute), now); got > 0 {
		t.Fatalf("expired session must not be cached, got %v", got)
	}
}

func TestConfigOptions(t *testing.T) {
	opts := Config{Addr: "cache:6379", Password: "s3cret", DB: 2}.options()
	if opts.Addr != "cache:6379" || opts.Password != "s3cret" || opts.DB != 2 {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if opts.DialTimeout != defaultTimeout || opts.ReadTimeout != defaultTimeout {
		t.Fatalf("expected default timeouts, got dial=%v read=%v", opts.DialTimeout, opts.ReadTimeout)
	}

	opts = Config{Addr: "cache:6379", Timeout: 750 * time.Millisecond}.options()
	if opts.DialTimeout != 750*time.Millisecond || opts.WriteTimeout != 750*time.Millisecond {
		t.Fatalf("expected configured timeout, got dial=%v write=%v", opts.DialTimeout, opts.WriteTimeout)
	}
}

func TestConnect_PingFailure(t *testing.T) {
	_, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	if err == nil {
		t.Fatalf("expected ping error")
	}
}
