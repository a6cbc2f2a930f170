// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	agentsfeature "github.com/imanprime/estatecms/internal/app/features/agents"
	blogsfeature "github.com/imanprime/estatecms/internal/app/features/blogs"
	companyfeature "github.com/imanprime/estatecms/internal/app/features/company"
	healthfeature "github.com/imanprime/estatecms/internal/app/features/health"
	propertiesfeature "github.com/imanprime/estatecms/internal/app/features/properties"
	quotesfeature "github.com/imanprime/estatecms/internal/app/features/quotes"
	userstore "github.com/imanprime/estatecms/internal/app/store/users"
	"github.com/imanprime/estatecms/internal/app/system/auth"
	"github.com/imanprime/estatecms/internal/domain/models"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The public surface is mounted at the
// root; everything under /admin requires a valid bearer token for an
// active admin account.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase
	tokens := auth.NewTokens(appCfg.JWTSecret, appCfg.JWTTTL)

	companyHandler := companyfeature.NewHandler(db, deps.Assets, logger)
	propertiesHandler := propertiesfeature.NewHandler(db, deps.Assets, logger)
	agentsHandler := agentsfeature.NewHandler(db, deps.Assets, logger)
	blogsHandler := blogsfeature.NewHandler(db, deps.Assets, logger)
	quotesHandler := quotesfeature.NewHandler(db, deps.Assets, logger)

	r := chi.NewRouter()

	// Global auth middleware: resolves the bearer token to a fresh user on
	// every request so deactivated accounts lose access immediately.
	r.Use(auth.LoadBearerUser(tokens, userstore.New(db), logger))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Public surface
	r.Route("/company", companyHandler.MountPublicRoutes)
	r.Route("/properties", propertiesHandler.MountPublicRoutes)
	r.Route("/agents", agentsHandler.MountPublicRoutes)
	r.Route("/blogs", blogsHandler.MountPublicRoutes)
	r.Route("/quotes", quotesHandler.MountPublicRoutes)

	// Admin surface
	r.Route("/admin", func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Use(auth.RequireRole(models.RoleAdmin))

		r.Route("/company", companyHandler.MountAdminRoutes)
		r.Route("/properties", propertiesHandler.MountAdminRoutes)
		r.Route("/agents", agentsHandler.MountAdminRoutes)
		r.Route("/blogs", blogsHandler.MountAdminRoutes)
		r.Route("/quotes", quotesHandler.MountAdminRoutes)
	})

	return r, nil
}
