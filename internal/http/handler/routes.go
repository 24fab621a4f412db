package handler

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"platformapi/docs"
	"platformapi/internal/http/middleware"
	"platformapi/internal/service"
)

// Deps are the collaborators the HTTP routes are built from.
type Deps struct {
	DB *sql.DB
	// Gatherer backs /metrics. Nil leaves the route unregistered.
	Gatherer prometheus.Gatherer
	// Auth guards every /api route.
	Auth fiber.Handler

	Documents service.DocumentService
	Users     service.UserService
	Settings  service.SettingsService
	Consents  service.ConsentService
	Files     service.FileAccessService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())
	if d.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}
	app.Get("/swagger/*", Swagger())

	api := app.Group("/api", d.Auth)

	api.Get("/me", GetMe(d.Users))
	api.Post("/me/photo/upload-url", BeginPhotoUpload(d.Users))
	api.Post("/me/photo/confirm", ConfirmPhotoUpload(d.Users))

	api.Post("/documents", BeginDocumentUpload(d.Documents))
	api.Get("/documents", ListDocuments(d.Documents))
	api.Get("/documents/:id", GetDocument(d.Documents))
	api.Post("/documents/:id/confirm", ConfirmDocumentUpload(d.Documents))
	api.Delete("/documents/:id", DeleteDocument(d.Documents))

	api.Post("/consents", RecordConsent(d.Consents))

	api.Get("/files/*", GetFile(d.Files))

	admin := api.Group("/admin", middleware.RequireAdmin())
	admin.Get("/settings", ListSettings(d.Settings))
	admin.Put("/settings/:key", PutSetting(d.Settings))
	admin.Delete("/settings/:key", DeleteSetting(d.Settings))
	admin.Get("/users", ListUsers(d.Users))
}

// Swagger serves the UI with host and scheme taken from the request.
func Swagger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	}
}
