package domain

// EmailKind labels outbound messages for logging and metrics.
type EmailKind string

const (
	EmailWelcome EmailKind = "welcome"
	EmailBooking EmailKind = "booking"
)

// Email is a rendered outbound message ready for delivery.
type Email struct {
	Kind    EmailKind
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}
