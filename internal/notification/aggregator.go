package notification

import (
	"time"

	"trovacasa/server/internal/models"
)

// UserBatch is one user's share of a dispatch: the deduplicated push
// tokens of their active sessions and the ids of their matching searches.
type UserBatch struct {
	Tokens    []string
	SearchIDs []int64
}

// GroupByUser folds matching searches into per-user batches. Tokens from
// expired sessions or sessions without a registered device are skipped,
// and a token shared by several sessions appears once. Users left with no
// deliverable token are dropped entirely, search ids included, so their
// searches stay eligible for the next matching property.
func GroupByUser(matches []models.SavedSearch, now time.Time) map[int64]*UserBatch {
	batches := make(map[int64]*UserBatch)
	seenTokens := make(map[int64]map[string]struct{})

	for i := range matches {
		s := &matches[i]

		batch, ok := batches[s.UserID]
		if !ok {
			batch = &UserBatch{}
			batches[s.UserID] = batch
			seenTokens[s.UserID] = make(map[string]struct{})

			for j := range s.User.Sessions {
				session := &s.User.Sessions[j]
				if session.PushToken == nil || *session.PushToken == "" || !session.IsActive(now) {
					continue
				}
				if _, dup := seenTokens[s.UserID][*session.PushToken]; dup {
					continue
				}
				seenTokens[s.UserID][*session.PushToken] = struct{}{}
				batch.Tokens = append(batch.Tokens, *session.PushToken)
			}
		}

		batch.SearchIDs = append(batch.SearchIDs, s.ID)
	}

	for userID, batch := range batches {
		if len(batch.Tokens) == 0 {
			delete(batches, userID)
		}
	}

	return batches
}
