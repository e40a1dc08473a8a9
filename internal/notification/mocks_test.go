package notification

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"trovacasa/server/internal/database"
	"trovacasa/server/internal/models"
	"trovacasa/server/internal/push"
)

type MockSearchRepository struct {
	mock.Mock
}

func (m *MockSearchRepository) FindEligibleSearches(ctx context.Context, criteria database.EligibilityCriteria) ([]models.SavedSearch, error) {
	args := m.Called(ctx, criteria)
	if searches := args.Get(0); searches != nil {
		return searches.([]models.SavedSearch), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSearchRepository) MarkSearchesNotified(ctx context.Context, searchIDs []int64, notifiedAt time.Time) error {
	args := m.Called(ctx, searchIDs, notifiedAt)
	return args.Error(0)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) (push.SendResult, error) {
	args := m.Called(ctx, tokens, title, body, data)
	return args.Get(0).(push.SendResult), args.Error(1)
}

func tokenSession(userID int64, token string, expiresAt time.Time) models.Session {
	return models.Session{UserID: userID, PushToken: &token, ExpiresAt: expiresAt}
}

func userWithSessions(id int64, sessions ...models.Session) models.User {
	return models.User{ID: id, Sessions: sessions}
}
