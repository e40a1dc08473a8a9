package database

import "trovacasa/server/internal/models"

func (d *Database) RunMigrations() error {
	return d.db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.NotificationPreference{},
		&models.Property{},
		&models.SavedSearch{},
	)
}
