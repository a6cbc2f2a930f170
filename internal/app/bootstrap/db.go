// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/imanprime/estatecms/internal/app/system/indexes"
)

// EnsureSchema creates the collection indexes the handlers rely on: the
// partial unique index keeping a single active company profile, unique
// agent emails and blog slugs, and the property text-search index.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return indexes.EnsureAll(ctx, deps.MongoDatabase)
}
