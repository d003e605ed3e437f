package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/api/http/handlers"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/session"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Explorer     *handlers.ExplorerHandler
	Validators   *handlers.ValidatorsHandler
	Tokenization *handlers.TokenizationHandler
	Compliance   *handlers.ComplianceHandler
	Channels     *handlers.ChannelsHandler
	Network      *handlers.NetworkHandler
	Audit        *handlers.AuditHandler
	SessionStore session.Store
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/stats", cfg.Health.Stats)

	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/session", cfg.Auth.Session)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/profile", cfg.Auth.Profile)

	panels := api.Group("", RequireSession(cfg.SessionStore))

	explorer := panels.Group("/explorer")
	explorer.Get("/blocks", cfg.Explorer.ListBlocks)
	explorer.Get("/blocks/hash/:hash", cfg.Explorer.GetBlockByHash)
	explorer.Get("/blocks/:height", cfg.Explorer.GetBlock)
	explorer.Get("/blocks/:height/transactions", cfg.Explorer.ListBlockTransactions)
	explorer.Get("/search", cfg.Explorer.Search)
	explorer.Get("/transactions", cfg.Explorer.ListTransactions)
	explorer.Get("/transactions/:id", cfg.Explorer.GetTransaction)

	validators := panels.Group("/validators")
	validators.Get("/", cfg.Validators.ListValidators)
	validators.Get("/summary", cfg.Validators.NetworkSummary)
	validators.Get("/:id", cfg.Validators.GetValidator)

	tokenization := panels.Group("/tokenization")
	tokenization.Get("/assets", cfg.Tokenization.ListAssets)
	tokenization.Get("/assets/:id", cfg.Tokenization.GetAsset)
	tokenization.Get("/assets/:id/issuances", cfg.Tokenization.ListIssuances)

	compliance := panels.Group("/compliance")
	compliance.Get("/checks", cfg.Compliance.ListChecks)
	compliance.Get("/summary", cfg.Compliance.Summary)
	compliance.Post("/checks/:id/acknowledge", cfg.Compliance.AcknowledgeCheck)

	panels.Get("/channels", cfg.Channels.ListChannels)

	network := panels.Group("/network")
	network.Get("/profiles", cfg.Network.ListProfiles)
	network.Get("/profiles/:id", cfg.Network.GetProfile)

	panels.Get("/audit/events", cfg.Audit.ListEvents)
}
