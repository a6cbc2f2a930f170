// internal/app/features/blogs/handler.go
package blogs

import (
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/imanprime/estatecms/internal/app/assets"
	blogstore "github.com/imanprime/estatecms/internal/app/store/blogs"
)

// Handler owns the blog endpoints. Post content arrives as HTML from the
// admin editor and is sanitized before it is stored.
type Handler struct {
	DB       *mongo.Database
	Store    *blogstore.Store
	Assets   assets.Store
	Log      *zap.Logger
	sanitize *bluemonday.Policy
}

func NewHandler(db *mongo.Database, store assets.Store, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Store:    blogstore.New(db),
		Assets:   store,
		Log:      logger,
		sanitize: bluemonday.UGCPolicy(),
	}
}
