package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ntdm/animal-hospital/internal/core/domain"
)

// TelemetryCache keeps recent device feeds for a short time.
// Key format: telemetry:<device_id>:<results>
type TelemetryCache struct {
	client *redis.Client
}

func NewTelemetryCache(client *redis.Client) *TelemetryCache {
	return &TelemetryCache{client: client}
}

func (c *TelemetryCache) Get(ctx context.Context, deviceID string, results int) ([]domain.TelemetryReading, bool, error) {
	raw, err := c.client.Get(ctx, telemetryKey(deviceID, results)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("telemetry cache get: %w", err)
	}
	var readings []domain.TelemetryReading
	if err := json.Unmarshal(raw, &readings); err != nil {
		return nil, false, fmt.Errorf("telemetry cache decode: %w", err)
	}
	return readings, true, nil
}

func (c *TelemetryCache) Set(ctx context.Context, deviceID string, results int, readings []domain.TelemetryReading, ttl time.Duration) error {
	raw, err := json.Marshal(readings)
	if err != nil {
		return fmt.Errorf("telemetry cache encode: %w", err)
	}
	return c.client.Set(ctx, telemetryKey(deviceID, results), raw, ttl).Err()
}

func telemetryKey(deviceID string, results int) string {
	return fmt.Sprintf("telemetry:%s:%d", deviceID, results)
}
