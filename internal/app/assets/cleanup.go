package assets

import (
	"context"

	"go.uber.org/zap"
)

// BestEffortDelete removes the remote asset behind url, if the url carries a
// recognizable public id. Failures are logged and returned as a warning
// string for the response envelope; they never abort the caller's workflow.
// The empty string means nothing went wrong.
func BestEffortDelete(ctx context.Context, s Store, log *zap.Logger, url string) string {
	if url == "" {
		return ""
	}
	id, ok := PublicIDFromURL(url)
	if !ok {
		// Not an asset-store URL (seeded data may point elsewhere).
		return ""
	}
	if err := s.Delete(ctx, id); err != nil {
		log.Warn("asset cleanup failed",
			zap.String("public_id", id),
			zap.Error(err))
		return "failed to remove previous asset " + id
	}
	return ""
}

// BestEffortDeleteAll runs BestEffortDelete over several urls and collects
// the non-empty warnings.
func BestEffortDeleteAll(ctx context.Context, s Store, log *zap.Logger, urls []string) []string {
	var warnings []string
	for _, u := range urls {
		if w := BestEffortDelete(ctx, s, log, u); w != "" {
			warnings = append(warnings, w)
		}
	}
	return warnings
}
