package database

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"trovacasa/server/internal/models"
)

type Database struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewDatabase(dbPath string, logger *logrus.Logger) (*Database, error) {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &Database{db: db, logger: logger}, nil
}

// GetDB exposes the underlying gorm handle for transactional callers.
func (d *Database) GetDB() *gorm.DB {
	return d.db
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreateProperty persists a new listing inside its own transaction.
func (d *Database) CreateProperty(ctx context.Context, property *models.Property) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(property).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

func (d *Database) GetPropertyByID(ctx context.Context, id int64) (*models.Property, error) {
	var property models.Property
	if err := d.db.WithContext(ctx).First(&property, id).Error; err != nil {
		return nil, fmt.Errorf("failed to load property %d: %w", id, err)
	}
	return &property, nil
}

// GetProperties returns listings filtered by the optional city and price
// bounds. Empty/nil filters impose no constraint.
func (d *Database) GetProperties(ctx context.Context, city string, minPrice, maxPrice *float64) ([]models.Property, error) {
	query := d.db.WithContext(ctx).Model(&models.Property{})
	if city != "" {
		query = query.Where("LOWER(city) = LOWER(?)", city)
	}
	if minPrice != nil {
		query = query.Where("price >= ?", *minPrice)
	}
	if maxPrice != nil {
		query = query.Where("price <= ?", *maxPrice)
	}

	var properties []models.Property
	if err := query.Order("created_at DESC").Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

func (d *Database) CreateSavedSearch(ctx context.Context, search *models.SavedSearch) error {
	if err := d.db.WithContext(ctx).Create(search).Error; err != nil {
		return fmt.Errorf("failed to create saved search: %w", err)
	}
	return nil
}

func (d *Database) GetSavedSearchesByUser(ctx context.Context, userID int64) ([]models.SavedSearch, error) {
	var searches []models.SavedSearch
	err := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&searches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list saved searches for user %d: %w", userID, err)
	}
	return searches, nil
}

// FindEligibleSearches retrieves saved searches whose owner opted into the
// criteria's notification category and that are outside the throttle
// window. Sessions and preferences of the owning user are preloaded so the
// notification pipeline never goes back to the store per search. Domain
// predicate matching happens in memory afterwards; only the two indexable
// conditions are pushed into the query.
func (d *Database) FindEligibleSearches(ctx context.Context, criteria EligibilityCriteria) ([]models.SavedSearch, error) {
	var searches []models.SavedSearch
	err := d.db.WithContext(ctx).
		Joins("JOIN notification_preferences ON notification_preferences.user_id = saved_searches.user_id AND notification_preferences.category = ?", criteria.Category).
		Where("saved_searches.last_notified_at IS NULL OR saved_searches.last_notified_at < ?", criteria.NotifiedBefore).
		Preload("User.Sessions").
		Preload("User.NotificationPreferences").
		Find(&searches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query eligible saved searches: %w", err)
	}
	return searches, nil
}

// MarkSearchesNotified stamps last_notified_at on the given searches in one
// bulk update. A nil/empty id list is a no-op.
func (d *Database) MarkSearchesNotified(ctx context.Context, searchIDs []int64, notifiedAt time.Time) error {
	if len(searchIDs) == 0 {
		return nil
	}
	err := d.db.WithContext(ctx).
		Model(&models.SavedSearch{}).
		Where("id IN ?", searchIDs).
		Update("last_notified_at", notifiedAt).Error
	if err != nil {
		return fmt.Errorf("failed to mark searches notified: %w", err)
	}
	return nil
}
