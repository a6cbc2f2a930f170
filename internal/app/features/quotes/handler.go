// internal/app/features/quotes/handler.go
package quotes

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/imanprime/estatecms/internal/app/assets"
	agentstore "github.com/imanprime/estatecms/internal/app/store/agents"
	quotestore "github.com/imanprime/estatecms/internal/app/store/quotes"
)

// Handler owns the quote-request endpoints: public submission with
// attachments and the admin pipeline management.
type Handler struct {
	DB     *mongo.Database
	Store  *quotestore.Store
	Agents *agentstore.Store
	Assets assets.Store
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, store assets.Store, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  quotestore.New(db),
		Agents: agentstore.New(db),
		Assets: store,
		Log:    logger,
	}
}
