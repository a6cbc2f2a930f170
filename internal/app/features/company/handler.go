// internal/app/features/company/handler.go
package company

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/imanprime/estatecms/internal/app/assets"
	companystore "github.com/imanprime/estatecms/internal/app/store/company"
)

// Handler owns all company-profile handlers: the aggregate reads, the
// partial basic-info updates, and the embedded team/partner editors.
type Handler struct {
	DB     *mongo.Database
	Store  *companystore.Store
	Assets assets.Store
	Log    *zap.Logger
}

// NewHandler constructs a company Handler.
func NewHandler(db *mongo.Database, store assets.Store, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  companystore.New(db),
		Assets: store,
		Log:    logger,
	}
}
