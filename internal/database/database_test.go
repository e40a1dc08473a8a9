package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trovacasa/server/internal/models"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedUser(t *testing.T, db *Database, id int64, optedIn bool, tokens ...string) {
	t.Helper()

	user := models.User{ID: id, Email: "user@example.com"}
	require.NoError(t, db.db.Create(&user).Error)

	if optedIn {
		pref := models.NotificationPreference{
			UserID:   id,
			Category: models.NotificationCategoryNewPropertyMatch,
		}
		require.NoError(t, db.db.Create(&pref).Error)
	}

	for i := range tokens {
		session := models.Session{
			UserID:    id,
			PushToken: &tokens[i],
			ExpiresAt: time.Now().Add(24 * time.Hour),
		}
		require.NoError(t, db.db.Create(&session).Error)
	}
}

func TestNewEligibilityCriteria(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	criteria := NewEligibilityCriteria(models.NotificationCategoryNewPropertyMatch, time.Hour, now)
	assert.Equal(t, now.Add(-time.Hour), criteria.NotifiedBefore)

	disabled := NewEligibilityCriteria(models.NotificationCategoryNewPropertyMatch, 0, now)
	assert.Equal(t, now, disabled.NotifiedBefore)
}

func TestFindEligibleSearches_RequiresOptIn(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	seedUser(t, db, 1, true, "tok-1")
	seedUser(t, db, 2, false, "tok-2")

	require.NoError(t, db.CreateSavedSearch(ctx, &models.SavedSearch{UserID: 1}))
	require.NoError(t, db.CreateSavedSearch(ctx, &models.SavedSearch{UserID: 2}))

	criteria := NewEligibilityCriteria(models.NotificationCategoryNewPropertyMatch, time.Hour, time.Now())
	searches, err := db.FindEligibleSearches(ctx, criteria)
	require.NoError(t, err)

	require.Len(t, searches, 1)
	assert.Equal(t, int64(1), searches[0].UserID)
}

func TestFindEligibleSearches_ThrottleWindow(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	seedUser(t, db, 1, true, "tok-1")

	recentlyNotified := time.Now().Add(-time.Minute)
	require.NoError(t, db.CreateSavedSearch(ctx, &models.SavedSearch{
		UserID:         1,
		LastNotifiedAt: &recentlyNotified,
	}))

	// 1-hour window: a search notified a minute ago is still throttled.
	criteria := NewEligibilityCriteria(models.NotificationCategoryNewPropertyMatch, time.Hour, time.Now())
	searches, err := db.FindEligibleSearches(ctx, criteria)
	require.NoError(t, err)
	assert.Empty(t, searches)

	// Zero window disables throttling entirely.
	criteria = NewEligibilityCriteria(models.NotificationCategoryNewPropertyMatch, 0, time.Now())
	searches, err = db.FindEligibleSearches(ctx, criteria)
	require.NoError(t, err)
	assert.Len(t, searches, 1)
}

func TestFindEligibleSearches_PreloadsSessions(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	seedUser(t, db, 1, true, "tok-a", "tok-b")
	require.NoError(t, db.CreateSavedSearch(ctx, &models.SavedSearch{UserID: 1}))

	criteria := NewEligibilityCriteria(models.NotificationCategoryNewPropertyMatch, time.Hour, time.Now())
	searches, err := db.FindEligibleSearches(ctx, criteria)
	require.NoError(t, err)

	require.Len(t, searches, 1)
	assert.Len(t, searches[0].User.Sessions, 2)
}

func TestMarkSearchesNotified(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	seedUser(t, db, 1, true, "tok-1")
	first := &models.SavedSearch{UserID: 1}
	second := &models.SavedSearch{UserID: 1}
	require.NoError(t, db.CreateSavedSearch(ctx, first))
	require.NoError(t, db.CreateSavedSearch(ctx, second))

	notifiedAt := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, db.MarkSearchesNotified(ctx, []int64{first.ID}, notifiedAt))

	searches, err := db.GetSavedSearchesByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, searches, 2)

	for _, s := range searches {
		switch s.ID {
		case first.ID:
			require.NotNil(t, s.LastNotifiedAt)
			assert.WithinDuration(t, notifiedAt, *s.LastNotifiedAt, time.Second)
		case second.ID:
			assert.Nil(t, s.LastNotifiedAt)
		}
	}

	// Empty id list is a no-op, not an error.
	assert.NoError(t, db.MarkSearchesNotified(ctx, nil, notifiedAt))
}

func TestCreateAndListProperties(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	property := &models.Property{
		Price:         300000,
		City:          "Roma",
		InsertionType: models.InsertionTypeSale,
		CreatedAt:     time.Now(),
	}
	require.NoError(t, db.CreateProperty(ctx, property))
	assert.NotZero(t, property.ID)

	minPrice := 250000.0
	properties, err := db.GetProperties(ctx, "roma", &minPrice, nil)
	require.NoError(t, err)
	assert.Len(t, properties, 1)

	maxPrice := 250000.0
	properties, err = db.GetProperties(ctx, "", nil, &maxPrice)
	require.NoError(t, err)
	assert.Empty(t, properties)
}
