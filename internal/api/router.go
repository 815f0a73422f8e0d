package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ntdm/animal-hospital/internal/api/handler"
	"github.com/ntdm/animal-hospital/internal/api/middleware"
	"github.com/ntdm/animal-hospital/internal/core/domain"
	"github.com/ntdm/animal-hospital/internal/core/ports"
	"github.com/ntdm/animal-hospital/internal/infrastructure/http/handlers"
)

// Dependencies are the services and clients the HTTP layer is built from.
// Redis is optional.
type Dependencies struct {
	Auth          ports.AuthService
	Users         ports.UserService
	Animals       ports.AnimalService
	Tracking      ports.TrackingService
	Consultations ports.ConsultationService
	Messages      ports.MessageService

	Mongo *mongo.Database
	Redis *redis.Client

	Cookie middleware.SessionCookie
	Log    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddleware("animal_hospital"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Users, deps.Cookie)
	directoryHandler := handler.NewDirectoryHandler(deps.Users)
	animalHandler := handler.NewAnimalHandler(deps.Animals, deps.Tracking)
	consultationHandler := handler.NewConsultationHandler(deps.Consultations)
	messageHandler := handler.NewMessageHandler(deps.Messages)

	session := middleware.Session(deps.Auth, deps.Cookie)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/services", directoryHandler.Services)
	e.POST("/bookings", consultationHandler.BookPublic)
	e.POST("/contact", messageHandler.Contact)

	// --- Any signed-in user ---
	e.GET("/auth/me", authHandler.Me, session)
	e.GET("/doctors", directoryHandler.Doctors, session)

	// --- Farmer ---
	farmer := e.Group("/farmer", session, middleware.RBAC(domain.RoleFarmer))
	farmer.GET("/animals", animalHandler.List)
	farmer.POST("/animals", animalHandler.Create)
	farmer.GET("/animals/:id", animalHandler.Get)
	farmer.PUT("/animals/:id", animalHandler.Update)
	farmer.DELETE("/animals/:id", animalHandler.Delete)
	farmer.GET("/animals/:id/telemetry", animalHandler.Telemetry)
	farmer.GET("/consultations", consultationHandler.ListMine)
	farmer.POST("/consultations", consultationHandler.Book)
	farmer.GET("/consultations/:id", consultationHandler.Get)
	farmer.PUT("/consultations/:id", consultationHandler.Update)
	farmer.DELETE("/consultations/:id", consultationHandler.Delete)
	farmer.GET("/messages", messageHandler.List)
	farmer.POST("/messages", messageHandler.Send)
	farmer.PATCH("/messages/:id/read", messageHandler.MarkRead)

	// --- Doctor ---
	vet := e.Group("/veterinary", session, middleware.RBAC(domain.RoleDoctor))
	vet.GET("/consultations", consultationHandler.ListAssigned)
	vet.PATCH("/consultations/:id/status", consultationHandler.UpdateStatus)
	vet.GET("/messages", messageHandler.List)
	vet.POST("/messages", messageHandler.Send)
	vet.PATCH("/messages/:id/read", messageHandler.MarkRead)

	// --- Admin ---
	admin := e.Group("/admin", session, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/animals", animalHandler.List)
	admin.PUT("/animals/:id", animalHandler.Update)
	admin.DELETE("/animals/:id", animalHandler.Delete)
	admin.GET("/consultations", consultationHandler.ListAll)
	admin.PATCH("/consultations/:id/status", consultationHandler.UpdateStatus)
	admin.GET("/contacts", messageHandler.ListContacts)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
