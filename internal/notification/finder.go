package notification

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"trovacasa/server/internal/database"
	"trovacasa/server/internal/models"
	"trovacasa/server/internal/search"
)

// CandidateFinder retrieves eligible saved searches from the store and
// filters them through the predicate matcher. The storage query only
// carries the two indexable conditions (opt-in and throttle cutoff);
// everything else, including the geo math, runs in memory.
type CandidateFinder struct {
	repo           SearchRepository
	matcher        *search.Matcher
	throttleWindow time.Duration
	logger         *logrus.Logger
	now            func() time.Time
}

func NewCandidateFinder(repo SearchRepository, matcher *search.Matcher, throttleWindow time.Duration, logger *logrus.Logger) *CandidateFinder {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &CandidateFinder{
		repo:           repo,
		matcher:        matcher,
		throttleWindow: throttleWindow,
		logger:         logger,
		now:            time.Now,
	}
}

// FindMatchingSearches returns the saved searches the property satisfies.
// No matches is a normal outcome, not an error; storage failures
// propagate to the caller.
func (f *CandidateFinder) FindMatchingSearches(ctx context.Context, property *models.Property) ([]models.SavedSearch, error) {
	criteria := database.NewEligibilityCriteria(models.NotificationCategoryNewPropertyMatch, f.throttleWindow, f.now())

	candidates, err := f.repo.FindEligibleSearches(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate searches: %w", err)
	}

	matched := make([]models.SavedSearch, 0, len(candidates))
	for i := range candidates {
		if f.matcher.Matches(property, &candidates[i]) {
			matched = append(matched, candidates[i])
		}
	}

	f.logger.WithFields(logrus.Fields{
		"property_id": property.ID,
		"candidates":  len(candidates),
		"matched":     len(matched),
	}).Debug("Finished matching saved searches")

	return matched, nil
}
