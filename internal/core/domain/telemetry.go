package domain

import "time"

// TelemetryReading is one sample reported by an animal's tracking collar.
type TelemetryReading struct {
	EntryID     int64     `json:"entry_id"`
	Timestamp   time.Time `json:"timestamp"`
	BPM         float64   `json:"bpm"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	HasLocation bool      `json:"has_location"`
}

// Telemetry is the recent feed of a tracking device.
type Telemetry struct {
	AnimalID string             `json:"animal_id"`
	DeviceID string             `json:"device_id"`
	Readings []TelemetryReading `json:"readings"`
}
