// Package notification implements the saved-search matching and push
// fan-out pipeline triggered by new property listings.
package notification

import (
	"context"
	"time"

	"trovacasa/server/internal/database"
	"trovacasa/server/internal/models"
	"trovacasa/server/internal/push"
)

// SearchRepository is the slice of the storage layer the pipeline needs.
type SearchRepository interface {
	FindEligibleSearches(ctx context.Context, criteria database.EligibilityCriteria) ([]models.SavedSearch, error)
	MarkSearchesNotified(ctx context.Context, searchIDs []int64, notifiedAt time.Time) error
}

// Gateway is the push-messaging collaborator. An error means the
// transport call failed as a whole; per-token failures are counted in
// the result instead.
type Gateway interface {
	SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) (push.SendResult, error)
}
