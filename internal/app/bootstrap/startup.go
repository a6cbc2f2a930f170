// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	userstore "github.com/imanprime/estatecms/internal/app/store/users"
	"github.com/imanprime/estatecms/internal/app/system/timeouts"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Ping:   appCfg.TimeoutPing,
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Long:   appCfg.TimeoutLong,
	})

	if appCfg.AdminEmail != "" {
		return ensureAdminAccount(ctx, deps, appCfg.AdminEmail, appCfg.AdminPassword, logger)
	}
	return nil
}

// ensureAdminAccount guarantees the configured admin can sign in. An
// existing account with that email is left untouched.
func ensureAdminAccount(ctx context.Context, deps DBDeps, email, password string, logger *zap.Logger) error {
	users := userstore.New(deps.MongoDatabase)
	u, err := users.EnsureAdmin(ctx, email, password)
	if err != nil {
		logger.Error("admin bootstrap failed", zap.String("email", email), zap.Error(err))
		return err
	}
	logger.Info("admin account ready",
		zap.String("email", email),
		zap.String("user_id", u.ID.Hex()))
	return nil
}
