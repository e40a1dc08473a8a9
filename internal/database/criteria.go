package database

import (
	"time"

	"trovacasa/server/internal/models"
)

// EligibilityCriteria is the immutable storage-level filter for saved
// searches: the notification category the owner must be opted into, and
// the cutoff before which a previous notification no longer throttles.
type EligibilityCriteria struct {
	Category       models.NotificationCategory
	NotifiedBefore time.Time
}

// NewEligibilityCriteria derives the cutoff from the throttle window. A
// zero window sets the cutoff to now, so every past notification is
// outside it and throttling is effectively disabled.
func NewEligibilityCriteria(category models.NotificationCategory, throttleWindow time.Duration, now time.Time) EligibilityCriteria {
	return EligibilityCriteria{
		Category:       category,
		NotifiedBefore: now.Add(-throttleWindow),
	}
}
