package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"linkhub/internal/handlers"
	"linkhub/internal/middleware"
	"linkhub/internal/store"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(hub *store.Store) {
	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(hub)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(hub)
	profileHandler := handlers.NewProfileHandler(hub)
	uploadHandler := handlers.NewUploadHandler(hub)
	moderationHandler := handlers.NewModerationHandler(hub)
	chatHandler := handlers.NewChatHandler(hub)
	userHandler := handlers.NewUserHandler(hub)

	// Auth routes
	s.App.Post("/api/auth/register", authHandler.Register)
	s.App.Post("/api/auth/login", authHandler.Login)
	s.App.Post("/api/auth/logout", authHandler.Logout)

	// Profile routes
	s.App.Get("/api/profile", authMiddleware.RequireAuth, profileHandler.Show)
	s.App.Post("/api/profile/username", authMiddleware.RequireAuth, profileHandler.ChangeUsername)
	s.App.Post("/api/profile/password", authMiddleware.RequireAuth, profileHandler.ChangePassword)

	// Upload routes; the community list is readable without an account
	s.App.Get("/api/uploads", authMiddleware.OptionalAuth, uploadHandler.List)
	s.App.Post("/api/uploads", authMiddleware.RequireAuth, uploadHandler.Create)
	s.App.Delete("/api/uploads/:id", authMiddleware.RequireAuth, uploadHandler.Remove)

	// Moderation routes (moderators only)
	s.App.Get("/api/moderation/pending", authMiddleware.RequireAuth, moderationHandler.ListPending)
	s.App.Post("/api/moderation/:id/approve", authMiddleware.RequireAuth, moderationHandler.Approve)
	s.App.Post("/api/moderation/:id/reject", authMiddleware.RequireAuth, moderationHandler.Reject)
	s.App.Get("/api/moderation/audit-log", authMiddleware.RequireAuth, moderationHandler.AuditLog)

	// Chat routes
	s.App.Get("/api/chat", authMiddleware.OptionalAuth, chatHandler.List)
	s.App.Post("/api/chat", authMiddleware.RequireAuth, chatHandler.Send)

	// Admin routes
	s.App.Get("/api/admin/users", authMiddleware.RequireAuth, userHandler.ListUsers)
	s.App.Post("/api/admin/users/:id/role", authMiddleware.RequireAuth, userHandler.UpdateRole)
	s.App.Delete("/api/admin/users/:id", authMiddleware.RequireAuth, userHandler.DeleteUser)
	s.App.Post("/api/admin/impersonate/stop", authMiddleware.RequireAuth, userHandler.StopImpersonation)
	s.App.Post("/api/admin/impersonate/:id", authMiddleware.RequireAuth, userHandler.Impersonate)

	// Operational endpoints
	s.App.Get("/healthz", handlers.Healthz)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
