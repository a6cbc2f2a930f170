// internal/app/features/agents/handler.go
package agents

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/imanprime/estatecms/internal/app/assets"
	agentstore "github.com/imanprime/estatecms/internal/app/store/agents"
	propertystore "github.com/imanprime/estatecms/internal/app/store/properties"
)

// Handler owns the agent endpoints. Agents are referenced by listings, so
// deletion is blocked while the agent still has live properties.
type Handler struct {
	DB         *mongo.Database
	Store      *agentstore.Store
	Properties *propertystore.Store
	Assets     assets.Store
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, store assets.Store, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Store:      agentstore.New(db),
		Properties: propertystore.New(db),
		Assets:     store,
		Log:        logger,
	}
}
