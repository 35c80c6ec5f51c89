// Package server exposes the query translator over HTTP.
package server

import (
	"bytes"

	"github.com/VictoriaMetrics/metrics"
	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"

	"github.com/luceql/luceql/internal/cli/config"
	"github.com/luceql/luceql/internal/luceneql"
)

// Server wraps the fiber app and the translator configuration.
type Server struct {
	app        *fiber.App
	log        *log.Logger
	cfg        *config.Config
	parserOpts []luceneql.Option
}

// New builds the HTTP server with routes registered.
func New(cfg *config.Config, logger *log.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "luceql",
		ReadTimeout:           cfg.Server.ReadTimeout,
		DisableStartupMessage: true,
	})

	s := &Server{
		app:        app,
		log:        logger,
		cfg:        cfg,
		parserOpts: cfg.ParserOptions(),
	}

	app.Post("/api/v1/translate", s.handleTranslate)
	app.Post("/api/v1/validate", s.handleValidate)
	app.Get("/health", s.handleHealth)
	app.Get("/metrics", s.handleMetrics)

	return s
}

// Listen starts serving on the configured address and blocks.
func (s *Server) Listen() error {
	s.log.Info("starting HTTP server", "address", s.cfg.Server.Address)
	return s.app.Listen(s.cfg.Server.Address)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return SendSuccess(c, fiber.StatusOK, fiber.Map{"status": "ok"})
}

func (s *Server) handleMetrics(c *fiber.Ctx) error {
	var buf bytes.Buffer
	metrics.WritePrometheus(&buf, true)
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}
