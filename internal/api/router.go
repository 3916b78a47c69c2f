package api

import (
	"net/url"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/medisys/opd-console/docs"
	"github.com/medisys/opd-console/internal/api/handler"
	"github.com/medisys/opd-console/internal/api/middleware"
	"github.com/medisys/opd-console/internal/core/domain"
	"github.com/medisys/opd-console/internal/core/ports"
)

// Deps is everything the console routes need.
type Deps struct {
	Log zerolog.Logger

	Guard      ports.AccessGuard
	Login      ports.LoginService
	Sessions   ports.SessionStore
	Storage    ports.Storage
	Navigation PendingNavigation
	LoginPath  string

	Backend   handler.Prober
	Doctors   ports.DoctorAPI
	Medicines ports.MedicineAPI
	Patients  ports.PatientAPI

	// ProxyTarget enables /api/* forwarding when non-nil.
	ProxyTarget *url.URL
	// Metrics mounts request metrics and GET /metrics. Registerer defaults
	// to the global Prometheus registry.
	Metrics    bool
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Navigation, d.LoginPath, d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	if d.Metrics {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "console",
			Registerer: d.Registerer,
		}))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	// --- Dev API proxy ---
	if d.ProxyTarget != nil {
		e.Group("/api", echomiddleware.ProxyWithConfig(echomiddleware.ProxyConfig{
			Balancer: echomiddleware.NewRoundRobinBalancer([]*echomiddleware.ProxyTarget{{URL: d.ProxyTarget}}),
		}))
	}

	// --- Public routes ---
	authHandler := handler.NewAuthHandler(d.Login, d.Sessions, d.LoginPath)
	e.GET("/", authHandler.Home)
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Backend, d.Storage)
	e.GET("/health", healthHandler.Liveness)           // liveness:  is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness: backend and session storage

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Any authenticated role ---
	e.GET("/session", authHandler.Session, middleware.Guard(d.Guard))

	// --- Admin ---
	dashboards := handler.NewDashboardHandler(d.Doctors, d.Medicines, d.Patients)
	doctors := handler.NewDoctorHandler(d.Doctors)
	medicines := handler.NewMedicineHandler(d.Medicines)
	patients := handler.NewPatientHandler(d.Patients, d.Doctors)

	admin := e.Group("/admin", middleware.Guard(d.Guard, domain.RoleAdmin))
	admin.GET("/dashboard", dashboards.Admin)
	admin.GET("/doctors", doctors.List)
	admin.POST("/doctors", doctors.Create)
	admin.PUT("/doctors/:id", doctors.Update)
	admin.DELETE("/doctors/:id", doctors.Delete)
	admin.GET("/medicines", medicines.List)
	admin.POST("/medicines", medicines.Create)
	admin.PUT("/medicines/:id", medicines.Update)
	admin.DELETE("/medicines/:id", medicines.Delete)
	admin.GET("/patients", patients.RegistrationForm)
	admin.POST("/patients", patients.Register)
	admin.GET("/all-patients", patients.All)

	// --- Doctor ---
	prescriptions := handler.NewPrescriptionHandler(d.Patients, d.Medicines)

	doctor := e.Group("/doctor", middleware.Guard(d.Guard, domain.RoleDoctor))
	doctor.GET("/dashboard", dashboards.Doctor)
	doctor.GET("/prescription/:id", prescriptions.Form)
	doctor.POST("/prescription/:id", prescriptions.Submit)

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
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Str("request_id", v.RequestID).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
