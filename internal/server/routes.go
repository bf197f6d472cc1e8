package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"postmarket/internal/analyzer"
	"postmarket/internal/auth"
	"postmarket/internal/cache"
	"postmarket/internal/config"
	"postmarket/internal/db"
	"postmarket/internal/email"
	"postmarket/internal/handlers"
	"postmarket/internal/middleware"
)

// Deps are the shared components handlers are wired with.
type Deps struct {
	DB       *db.DB
	Catalog  *config.Catalog
	Issuer   *auth.TokenIssuer
	Analyzer *analyzer.Analyzer
	Cache    *cache.Cache
	Notifier *email.Notifier
	Queue    handlers.AnalysisQueue
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(deps Deps) {
	authMiddleware := middleware.NewAuthMiddleware(deps.Issuer, deps.DB)

	authHandler := handlers.NewAuthHandler(deps.DB, deps.Issuer, deps.Notifier)
	requestHandler := handlers.NewRequestHandler(deps.DB, deps.Catalog, deps.Analyzer, deps.Cache, deps.Notifier, deps.Queue)
	adminHandler := handlers.NewAdminHandler(deps.DB, deps.Notifier)
	marketplaceHandler := handlers.NewMarketplaceHandler(deps.DB)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	// Liveness and metrics
	s.App.Get("/health", healthHandler.Check)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Auth routes
	s.App.Post("/auth/register", authHandler.Register)
	s.App.Post("/auth/login", authHandler.Login)
	s.App.Post("/auth/forgot-password", authHandler.ForgotPassword)
	s.App.Post("/auth/reset-password", authHandler.ResetPassword)
	s.App.Get("/auth/profile", authMiddleware.RequireAuth, authHandler.Profile)

	// Submission vocabulary (categories, gray niches, countries)
	s.App.Get("/catalog", requestHandler.Catalog)

	// Publisher request routes
	s.App.Post("/publisher-requests", authMiddleware.RequireAuth, requestHandler.Create)
	s.App.Get("/publisher-requests", authMiddleware.RequireAuth, requestHandler.List)
	s.App.Get("/publisher-requests/:id", authMiddleware.RequireAuth, requestHandler.Get)
	s.App.Delete("/publisher-requests/:id", authMiddleware.RequireAuth, requestHandler.Delete)
	s.App.Post("/publisher-requests/:id/analyze", authMiddleware.RequireAuth, requestHandler.Analyze)

	// Website verification for the submission form
	s.App.Get("/verify-website", authMiddleware.RequireAuth, requestHandler.VerifyWebsite)
	s.App.Get("/verify-website/:url", authMiddleware.RequireAuth, requestHandler.VerifyWebsite)

	// Marketplace routes (advertiser browse)
	s.App.Get("/marketplace/websites", authMiddleware.RequireAuth, marketplaceHandler.ListWebsites)

	// Admin routes
	admin := s.App.Group("/admin", authMiddleware.RequireAuth, authMiddleware.RequireAdmin)
	admin.Get("/dashboard-stats", adminHandler.DashboardStats)
	admin.Get("/publisher-requests", adminHandler.List)
	admin.Put("/publisher-requests/:id/approve", adminHandler.Approve)
	admin.Put("/publisher-requests/:id/reject", adminHandler.Reject)
	admin.Put("/publisher-requests/:id/review", adminHandler.MarkUnderReview)
}
