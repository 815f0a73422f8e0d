// Package metrics defines and registers all custom Prometheus metrics for the
// animal hospital API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "animal_hospital"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// UsersRegisteredTotal counts new accounts.
// Label:
//   - role: "farmer", "doctor" or "admin"
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of registered users, by role.",
	},
	[]string{"role"},
)

// ── Registry metrics ──────────────────────────────────────────────────────────

// AnimalsRegisteredTotal counts newly registered animals.
// Label:
//   - class: "dairy", "meat", "poultry", "pet" or "other"
var AnimalsRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "animals_registered_total",
		Help:      "Total number of animals registered, by class.",
	},
	[]string{"class"},
)

// ConsultationsBookedTotal counts new consultations.
// Labels:
//   - type: "Virtual" or "In-Person"
//   - source: "farmer" for the dashboard, "public" for the booking form
var ConsultationsBookedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "consultations_booked_total",
		Help:      "Total number of consultations booked, by type and source.",
	},
	[]string{"type", "source"},
)

// ConsultationStatusUpdatesTotal counts applied status changes.
// Label:
//   - status: the status the consultation moved to
var ConsultationStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "consultation_status_updates_total",
		Help:      "Total number of consultation status updates, by resulting status.",
	},
	[]string{"status"},
)

// MessagesSentTotal counts direct messages.
// Label:
//   - sender_role: "farmer", "doctor" or "admin"
var MessagesSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of direct messages sent, by sender role.",
	},
	[]string{"sender_role"},
)

// ContactSubmissionsTotal counts public contact form submissions.
var ContactSubmissionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contact_submissions_total",
		Help:      "Total number of contact form submissions.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsTotal counts outbound emails.
// Labels:
//   - kind: "welcome" or "booking"
//   - result: "sent", "failed" or "dropped" (queue full)
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of outbound emails, by kind and result.",
	},
	[]string{"kind", "result"},
)

// NotificationQueueDepth tracks the number of emails waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of emails pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// NotificationSendDuration measures SMTP delivery time.
// Label:
//   - kind: "welcome" or "booking"
var NotificationSendDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_send_duration_seconds",
		Help:      "Duration of a single email delivery attempt.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)

// ── Tracking metrics ──────────────────────────────────────────────────────────

// TelemetryRequestsTotal counts telemetry lookups.
// Label:
//   - result: "ok", "not_linked", "unavailable" or "error"
var TelemetryRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "telemetry_requests_total",
		Help:      "Total number of device telemetry requests, by result.",
	},
	[]string{"result"},
)
