package ports

import (
	"context"
	"time"

	"github.com/ntdm/animal-hospital/internal/core/domain"
)

// TelemetryProvider fetches recent readings of a tracking device.
type TelemetryProvider interface {
	Feeds(ctx context.Context, deviceID string, results int) ([]domain.TelemetryReading, error)
}

// TelemetryCache keeps recent feeds for a short time.
type TelemetryCache interface {
	Get(ctx context.Context, deviceID string, results int) ([]domain.TelemetryReading, bool, error)
	Set(ctx context.Context, deviceID string, results int, readings []domain.TelemetryReading, ttl time.Duration) error
}

// TrackingService serves device readings for an owner's animals.
type TrackingService interface {
	// Telemetry scopes to ownerID when it is non-empty.
	Telemetry(ctx context.Context, animalID, ownerID string, results int) (*domain.Telemetry, error)
}
