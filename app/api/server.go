package api

import (
	"log/slog"

	"festbot/app/config"
	"festbot/app/service/chat"
	"festbot/app/service/guests"
	"festbot/app/service/session"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
)

var _ do.Shutdownable = (*Server)(nil)

// Server is the HTTP session boundary: one endpoint per operation.
// Handlers stay thin; everything interesting happens in the services.
type Server struct {
	cfg      *config.Config
	app      *fiber.App
	validate *validator.Validate

	chatSvc    *chat.Service
	sessionSvc *session.Service
	guestsSvc  *guests.Service
}

func New(di *do.Injector) (*Server, error) {
	s := &Server{
		cfg:        do.MustInvoke[*config.Config](di),
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		chatSvc:    do.MustInvoke[*chat.Service](di),
		sessionSvc: do.MustInvoke[*session.Service](di),
		guestsSvc:  do.MustInvoke[*guests.Service](di),
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	apiGroup := s.app.Group("/api")
	apiGroup.Post("/chat", s.handleChat)
	apiGroup.Get("/sessions/:id/transcript", s.handleTranscript)
	apiGroup.Delete("/sessions/:id", s.handleClearSession)
	apiGroup.Get("/stats", s.handleStats)
	apiGroup.Post("/guests/import", s.handleImport)
	apiGroup.Post("/families/:id/confirm", s.handleConfirmFamily)

	return s, nil
}

func (s *Server) Run() error {
	slog.Info("HTTP API listening", "addr", s.cfg.Server.Addr)

	return s.app.Listen(s.cfg.Server.Addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid request body"})
	}
	if err := s.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: err.Error()})
	}

	sess := s.sessionSvc.Acquire(req.SessionID, req.Guest)
	reply := s.chatSvc.Respond(c.Context(), sess, req.Message)

	return c.JSON(chatResponse{
		SessionID: sess.ID,
		Reply:     reply,
	})
}

func (s *Server) handleTranscript(c *fiber.Ctx) error {
	sess := s.sessionSvc.Lookup(c.Params("id"))
	if sess == nil {
		return c.Status(fiber.StatusNotFound).JSON(errorResponse{Error: "unknown session"})
	}

	return c.JSON(transcriptResponse{
		SessionID:  sess.ID,
		Transcript: sess.Transcript(),
	})
}

func (s *Server) handleClearSession(c *fiber.Ctx) error {
	if !s.sessionSvc.Clear(c.Params("id")) {
		return c.Status(fiber.StatusNotFound).JSON(errorResponse{Error: "unknown session"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleStats(c *fiber.Ctx) error {
	stats, err := s.guestsSvc.Statistics(c.Context())
	if err != nil {
		slog.Error("Statistics failed", "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(errorResponse{Error: "guest directory unavailable"})
	}

	return c.JSON(stats)
}

func (s *Server) handleImport(c *fiber.Ctx) error {
	var req importRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid request body"})
	}

	path := req.Path
	if path == "" {
		path = s.cfg.Party.GuestsFile
	}

	imported, err := s.guestsSvc.ImportGuests(c.Context(), path)
	if err != nil {
		slog.Error("Guest import failed", "path", path, "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(errorResponse{Error: "import failed"})
	}

	return c.JSON(importResponse{Imported: imported})
}

func (s *Server) handleConfirmFamily(c *fiber.Ctx) error {
	familyID := c.Params("id")

	confirmed, err := s.guestsSvc.ConfirmFamily(c.Context(), familyID)
	if err != nil {
		slog.Error("Family confirmation failed", "family_id", familyID, "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(errorResponse{Error: "guest directory unavailable"})
	}

	return c.JSON(confirmFamilyResponse{
		FamilyID:  familyID,
		Confirmed: confirmed,
	})
}
