package service

import (
	"bytes"
	"context"
	"embed"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/rs/zerolog"

	"github.com/ntdm/animal-hospital/internal/core/domain"
	"github.com/ntdm/animal-hospital/internal/core/ports"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/*.html.tmpl"))
	textTemplates = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/*.txt.tmpl"))
)

type welcomeCopy struct {
	Title    string
	Greeting string
	Intro    string
	Features []string
	Closing  string
}

var welcomeByRole = map[string]welcomeCopy{
	domain.RoleFarmer: {
		Title:    "Welcome to NTDM Animal Hospital - Your Animal Care Partner!",
		Greeting: "Dear Livestock Owner",
		Intro:    "We're excited to welcome you to NTDM Animal Hospital, where we provide innovative solutions for livestock and pet owners. As a registered farmer or pet owner, you now have access to:",
		Features: []string{
			"Advanced animal tracking and health monitoring",
			"Expert veterinary consultations",
			"Comprehensive care management tools",
			"24/7 access to your animal health records",
			"Health alerts and vaccination reminders",
		},
		Closing: "Start by adding your animals to your profile and scheduling your first consultation if needed.",
	},
	domain.RoleDoctor: {
		Title:    "Welcome to NTDM Animal Hospital - Veterinary Professional Portal",
		Greeting: "Dear Dr.",
		Intro:    "Welcome to the NTDM Animal Hospital veterinary platform! As a registered veterinarian, you can now:",
		Features: []string{
			"Connect with farmers and pet owners in your area",
			"Manage your consultation schedule and availability",
			"Conduct remote consultations and health assessments",
			"Access comprehensive animal health records",
			"Provide treatment recommendations and prescriptions",
		},
		Closing: "Your expertise is valuable to our community. Please keep your availability schedule up to date.",
	},
	domain.RoleAdmin: {
		Title:    "Welcome to NTDM Animal Hospital - Administrator Access",
		Greeting: "Dear Administrator",
		Intro:    "Welcome to the NTDM Animal Hospital administrative portal. You now have full access to manage the platform and support our community of farmers and veterinarians.",
		Closing:  "Your administrative privileges include platform oversight, user management and system monitoring.",
	},
}

// NotificationService renders emails and hands them to the delivery queue.
// Rendering or queueing failures are logged and never surface to callers.
type NotificationService struct {
	queue       ports.EmailQueue
	loginURL    string
	clinicInbox string
	log         zerolog.Logger
	now         func() time.Time
}

func NewNotificationService(queue ports.EmailQueue, baseURL, clinicInbox string, log zerolog.Logger) *NotificationService {
	return &NotificationService{
		queue:       queue,
		loginURL:    strings.TrimRight(baseURL, "/") + "/login",
		clinicInbox: clinicInbox,
		log:         log,
		now:         time.Now,
	}
}

// Welcome sends the role-specific greeting to a newly registered user.
func (s *NotificationService) Welcome(_ context.Context, user *domain.User) {
	if user == nil || user.Email == "" {
		return
	}
	wc, ok := welcomeByRole[user.Role]
	if !ok {
		wc = welcomeByRole[domain.RoleFarmer]
	}
	data := struct {
		welcomeCopy
		Name     string
		Email    string
		LoginURL string
	}{wc, user.Name, user.Email, s.loginURL}

	html, text, err := render("welcome", data)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("failed to render welcome email")
		return
	}
	s.enqueue(domain.Email{
		Kind:    domain.EmailWelcome,
		To:      user.Email,
		ToName:  user.Name,
		Subject: wc.Title,
		HTML:    html,
		Text:    text,
	})
}

// BookingReceived tells the clinic inbox about a new consultation.
func (s *NotificationService) BookingReceived(_ context.Context, c *domain.Consultation, extra *ports.BookingDetails) {
	if c == nil {
		return
	}
	if s.clinicInbox == "" {
		s.log.Debug().Str("consultation_id", c.ID).Msg("clinic inbox not configured, booking email skipped")
		return
	}
	if extra == nil {
		extra = &ports.BookingDetails{}
	}
	label := domain.ServiceLabel(c.Service)
	data := struct {
		*domain.Consultation
		ports.BookingDetails
		ServiceLabel string
		Received     string
	}{c, *extra, label, s.now().UTC().Format(time.RFC1123)}

	html, text, err := render("booking", data)
	if err != nil {
		s.log.Error().Err(err).Str("consultation_id", c.ID).Msg("failed to render booking email")
		return
	}
	s.enqueue(domain.Email{
		Kind:    domain.EmailBooking,
		To:      s.clinicInbox,
		Subject: "New Booking: " + c.FullName + " - " + label,
		HTML:    html,
		Text:    text,
	})
}

func (s *NotificationService) enqueue(msg domain.Email) {
	if !s.queue.Enqueue(msg) {
		s.log.Warn().Str("kind", string(msg.Kind)).Str("to", msg.To).Msg("email queue full, message dropped")
	}
}

func render(name string, data any) (string, string, error) {
	var html, text bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&html, name+".html.tmpl", data); err != nil {
		return "", "", err
	}
	if err := textTemplates.ExecuteTemplate(&text, name+".txt.tmpl", data); err != nil {
		return "", "", err
	}
	return html.String(), text.String(), nil
}
