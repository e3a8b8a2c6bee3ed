// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"encoding/json"
	"errors"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/Luisr26/ExpertSoft/app/dto"
	"github.com/Luisr26/ExpertSoft/app/handlers"
	"github.com/Luisr26/ExpertSoft/app/middleware"
	"github.com/Luisr26/ExpertSoft/config"
	"github.com/Luisr26/ExpertSoft/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// Handlers groups the resource handlers mounted by the router.
// Seed may be nil; it is only mounted in development.
type Handlers struct {
	Platform    handlers.PlatformHandlerInterface
	Client      handlers.ClientHandlerInterface
	Invoice     handlers.InvoiceHandlerInterface
	Transaction handlers.TransactionHandlerInterface
	Seed        handlers.SeedHandlerInterface
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app       *fiber.App
	cfg       *config.AppConfig
	handlers  Handlers
	log       zerolog.Logger
	accessLog io.Writer
}

// NewFiberRouter creates a new Fiber router. Access logs go to accessLog.
func NewFiberRouter(cfg *config.AppConfig, h Handlers, log zerolog.Logger, accessLog io.Writer) Router {
	app := fiber.New(fiber.Config{
		AppName:      "ExpertSoft API",
		ServerHeader: "ExpertSoft",
		ErrorHandler: newErrorHandler(log),
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return &FiberRouter{
		app:       app,
		cfg:       cfg,
		handlers:  h,
		log:       log,
		accessLog: accessLog,
	}
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	r.setupMiddleware()

	// Health check route (no rate limiting)
	r.app.Get("/health", r.healthCheck)

	if r.cfg.Metrics.Enabled {
		r.app.Get(r.cfg.Metrics.Path, adaptor.HTTPHandler(promhttp.Handler()))
	}

	platforms := r.app.Group("/platforms")
	platforms.Get("/", r.handlers.Platform.List)
	platforms.Post("/", r.handlers.Platform.Create)
	platforms.Get("/:id", r.handlers.Platform.Get)
	platforms.Put("/:id", r.handlers.Platform.Update)
	platforms.Delete("/:id", r.handlers.Platform.Delete)

	clients := r.app.Group("/clients")
	clients.Get("/", r.handlers.Client.List)
	clients.Post("/", r.handlers.Client.Create)
	clients.Get("/:id", r.handlers.Client.Get)
	clients.Put("/:id", r.handlers.Client.Update)
	clients.Delete("/:id", r.handlers.Client.Delete)
	clients.Get("/:id/transactions", r.handlers.Client.ListTransactions)

	invoices := r.app.Group("/invoices")
	invoices.Get("/", r.handlers.Invoice.List)
	invoices.Post("/", r.handlers.Invoice.Create)
	invoices.Get("/:id", r.handlers.Invoice.Get)
	invoices.Put("/:id", r.handlers.Invoice.Update)
	invoices.Delete("/:id", r.handlers.Invoice.Delete)

	transactions := r.app.Group("/transactions")
	transactions.Get("/", r.handlers.Transaction.List)
	transactions.Post("/", r.handlers.Transaction.Create)
	transactions.Get("/:id", r.handlers.Transaction.Get)
	transactions.Put("/:id", r.handlers.Transaction.Update)
	transactions.Delete("/:id", r.handlers.Transaction.Delete)

	// Seed routes are never registered outside development
	if r.cfg.IsDevelopment() && r.handlers.Seed != nil {
		r.app.Post("/init-db", r.handlers.Seed.InitDB)
		r.app.Get("/verify-db", r.handlers.Seed.VerifyDB)
		r.log.Info().Msg("development seed routes enabled")
	}

	// Not found handler
	r.app.Use(r.notFoundHandler)

	r.log.Info().Msg("routes configured")
}

// setupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header:    utils.RequestIDHeader,
		Generator: uuid.NewString,
	}))

	// Recovery middleware turns panics into the generic 500 body
	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e any) {
			r.log.Error().
				Str("request_id", requestid.FromContext(c)).
				Str("event", "panic").
				Interface("error", e).
				Str("path", c.Path()).
				Str("method", c.Method()).
				Str("ip", c.IP()).
				Msg("recovered from panic")
		},
	}))

	if r.cfg.Metrics.Enabled {
		r.app.Use(middleware.Metrics())
	}

	// Security headers middleware
	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:             "1; mode=block",
		ContentTypeNosniff:        "nosniff",
		XFrameOptions:             "DENY",
		HSTSMaxAge:                31536000, // 1 year
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "cross-origin",
		XDNSPrefetchControl:       "off",
		XDownloadOptions:          "noopen",
		XPermittedCrossDomain:     "none",
	}))

	// Browser frontends call the API directly; credentials cannot be combined with a wildcard origin
	origins := r.cfg.Server.AllowedOrigins
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{
			"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"X-Requested-With",
			utils.RequestIDHeader,
			"Cache-Control",
		},
		ExposeHeaders: []string{
			utils.RequestIDHeader,
			"Content-Disposition",
		},
		AllowCredentials: !slices.Contains(origins, "*"),
		MaxAge:           utils.CORSMaxAge,
	}))

	// Compression middleware for performance
	r.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Access log in JSON, written next to the application log
	r.app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","request_id":"${respHeader:X-Request-ID}","level":"info","method":"${method}","path":"${path}","ip":"${ip}","user_agent":"${ua}","status":${status},"latency":"${latency}","bytes_in":${bytesReceived},"bytes_out":${bytesSent}}` + "\n",
		TimeFormat: time.RFC3339,
		TimeZone:   "UTC",
		Stream:     r.accessLog,
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == r.cfg.Metrics.Path
		},
	}))

	if r.cfg.Server.RateLimit > 0 {
		r.app.Use(limiter.New(limiter.Config{
			Max:        r.cfg.Server.RateLimit,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP() // Rate limit by IP
			},
			LimitReached: func(c fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(errorBody(c, "Too many requests. Please try again later."))
			},
			Next: func(c fiber.Ctx) bool {
				// Skip rate limiting for health checks and scrapes
				return c.Path() == "/health" || c.Path() == r.cfg.Metrics.Path
			},
		}))
	}
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	r.log.Info().Str("address", address).Msg("starting server")
	return r.app.Listen(address, fiber.ListenConfig{DisableStartupMessage: true})
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

// Health check endpoint
func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: utils.UTCNowRFC3339(),
		Service:   "expertsoft-api",
		Version:   r.cfg.Deployment.Version,
	})
}

func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(errorBody(c, "Route not found"))
}

// newErrorHandler builds the global error handler. Fiber errors keep their
// status; anything else is a 500 whose cause only reaches the log.
func newErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code != fiber.StatusInternalServerError {
			code = fe.Code
			message = fe.Message
		}

		log.Error().
			Err(err).
			Int("status", code).
			Str("request_id", requestid.FromContext(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("request error")

		return c.Status(code).JSON(errorBody(c, message))
	}
}

func errorBody(c fiber.Ctx, message string) dto.ErrorResponse {
	return dto.ErrorResponse{
		Status:   "error",
		Endpoint: c.OriginalURL(),
		Method:   strings.ToUpper(c.Method()),
		Message:  message,
	}
}
