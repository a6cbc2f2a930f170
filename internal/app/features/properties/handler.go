// internal/app/features/properties/handler.go
package properties

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/imanprime/estatecms/internal/app/assets"
	agentstore "github.com/imanprime/estatecms/internal/app/store/agents"
	propertystore "github.com/imanprime/estatecms/internal/app/store/properties"
)

// Handler owns the listing endpoints: public browsing with filters and
// view counting, and the admin CRUD with the multi-image lifecycle.
type Handler struct {
	DB     *mongo.Database
	Store  *propertystore.Store
	Agents *agentstore.Store
	Assets assets.Store
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, store assets.Store, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  propertystore.New(db),
		Agents: agentstore.New(db),
		Assets: store,
		Log:    logger,
	}
}
