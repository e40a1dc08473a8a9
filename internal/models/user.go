package models

import "time"

// NotificationCategory identifies an opt-in notification channel.
type NotificationCategory string

const (
	// NotificationCategoryNewPropertyMatch is sent when a newly listed
	// property matches one of the user's saved searches.
	NotificationCategoryNewPropertyMatch NotificationCategory = "NEW_PROPERTY_MATCH"
)

type User struct {
	ID                      int64                    `json:"id" gorm:"primaryKey"`
	Email                   string                   `json:"email"`
	Sessions                []Session                `json:"-" gorm:"foreignKey:UserID"`
	NotificationPreferences []NotificationPreference `json:"-" gorm:"foreignKey:UserID"`
	CreatedAt               time.Time                `json:"created_at"`
}

// Session is a device login. PushToken is nil for sessions whose device
// never registered for push notifications.
type Session struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"index"`
	PushToken *string   `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsActive reports whether the session has not expired at the given instant.
func (s *Session) IsActive(now time.Time) bool {
	return s.ExpiresAt.After(now)
}

type NotificationPreference struct {
	ID       int64                `json:"id" gorm:"primaryKey"`
	UserID   int64                `json:"user_id" gorm:"index"`
	Category NotificationCategory `json:"category" gorm:"index"`
}
