package router

import (
	"net"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	redisstorage "github.com/gofiber/storage/redis"

	"github.com/ManuelReschke/LeadFox/app/controllers"
	"github.com/ManuelReschke/LeadFox/internal/pkg/cache"
	"github.com/ManuelReschke/LeadFox/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Storage:    rateLimitStorage(),
	}))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group("/v1")

	// Public routes: the plan catalog and the billing webhook (which carries
	// its own signature verification).
	v1.Get("/plans", controllers.HandleListPlans)
	v1.Post("/billing/webhook/stripe", controllers.HandleStripeWebhook)

	// Routes authenticated by the edge-proxy user header.
	authed := v1.Group("", middleware.UserHeaderMiddleware())
	authed.Get("/account", controllers.HandleGetAccount)

	authed.Get("/leads", controllers.HandleListLeads)
	authed.Post("/leads", controllers.HandleCreateLead)
	authed.Get("/leads/:uuid", controllers.HandleGetLead)
	authed.Put("/leads/:uuid/stage", controllers.HandleUpdateLeadStage)

	authed.Get("/commissions", controllers.HandleListCommissions)

	authed.Get("/team", controllers.HandleListTeam)
	authed.Post("/team/invite", controllers.HandleInviteTeamMember)
	authed.Put("/team/:id/role", controllers.HandleChangeTeamMemberRole)
	authed.Delete("/team/:id", controllers.HandleRemoveTeamMember)

	authed.Get("/settings/notifications", controllers.HandleGetNotificationSettings)
	authed.Patch("/settings/notifications", controllers.HandleUpdateNotificationSettings)

	authed.Post("/enrichment/lookup", controllers.HandleEnrichmentLookup)

	authed.Post("/user/apikey", controllers.HandleIssueAPIKey)
	authed.Delete("/user/apikey", controllers.HandleRevokeAPIKey)

	// Machine integration surface, authenticated by API key instead of the
	// user header. Same handlers; the middleware resolves the same context.
	integration := v1.Group("/integration", middleware.APIKeyAuthMiddleware())
	integration.Get("/account", controllers.HandleGetAccount)
	integration.Get("/leads", controllers.HandleListLeads)
	integration.Post("/leads", controllers.HandleCreateLead)
	integration.Get("/leads/:uuid", controllers.HandleGetLead)
	integration.Put("/leads/:uuid/stage", controllers.HandleUpdateLeadStage)
}

// rateLimitStorage backs the limiter with Redis so counters survive restarts
// and are shared across instances. Reuses the cache connection settings on a
// separate database.
func rateLimitStorage() fiber.Storage {
	opts := cache.GetClient().Options()
	host, port := "127.0.0.1", 6379
	if opts != nil && opts.Addr != "" {
		if h, p, err := net.SplitHostPort(opts.Addr); err == nil {
			host = h
			if parsed, e := strconv.Atoi(p); e == nil {
				port = parsed
			}
		} else {
			host = opts.Addr
		}
	}
	cfg := redisstorage.Config{
		Host:     host,
		Port:     port,
		Database: 2,
		Reset:    false,
	}
	if opts != nil {
		cfg.Username = opts.Username
		cfg.Password = opts.Password
	}
	return redisstorage.New(cfg)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
