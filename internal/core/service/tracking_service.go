package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ntdm/animal-hospital/internal/core/domain"
	"github.com/ntdm/animal-hospital/internal/core/ports"
)

const (
	defaultFeedResults = 10
	maxFeedResults     = 100
)

// TrackingService reads collar telemetry for registered animals.
type TrackingService struct {
	animals  ports.AnimalRepository
	provider ports.TelemetryProvider
	cache    ports.TelemetryCache
	cacheTTL time.Duration
	log      zerolog.Logger
}

// NewTrackingService builds the service. cache may be nil.
func NewTrackingService(
	animals ports.AnimalRepository,
	provider ports.TelemetryProvider,
	cache ports.TelemetryCache,
	cacheTTL time.Duration,
	log zerolog.Logger,
) *TrackingService {
	return &TrackingService{
		animals:  animals,
		provider: provider,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

func (s *TrackingService) Telemetry(ctx context.Context, animalID, ownerID string, results int) (*domain.Telemetry, error) {
	a, err := s.animals.FindByID(ctx, animalID)
	if err != nil {
		return nil, err
	}
	if ownerID != "" && !a.OwnedBy(ownerID) {
		return nil, domain.ErrAnimalNotFound
	}
	if a.DeviceID == "" {
		return nil, domain.ErrDeviceNotLinked
	}
	results = clampResults(results)

	out := &domain.Telemetry{AnimalID: a.ID, DeviceID: a.DeviceID}

	if s.cache != nil {
		readings, ok, err := s.cache.Get(ctx, a.DeviceID, results)
		if err != nil {
			s.log.Warn().Err(err).Str("device_id", a.DeviceID).Msg("telemetry cache read failed")
		} else if ok {
			out.Readings = readings
			return out, nil
		}
	}

	readings, err := s.provider.Feeds(ctx, a.DeviceID, results)
	if err != nil {
		s.log.Error().Err(err).Str("device_id", a.DeviceID).Msg("telemetry fetch failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrTelemetryUnavailable, err)
	}
	if readings == nil {
		readings = []domain.TelemetryReading{}
	}

	if s.cache != nil && s.cacheTTL > 0 {
		if err := s.cache.Set(ctx, a.DeviceID, results, readings, s.cacheTTL); err != nil {
			s.log.Warn().Err(err).Str("device_id", a.DeviceID).Msg("telemetry cache write failed")
		}
	}

	out.Readings = readings
	return out, nil
}

func clampResults(n int) int {
	switch {
	case n <= 0:
		return defaultFeedResults
	case n > maxFeedResults:
		return maxFeedResults
	}
	return n
}
