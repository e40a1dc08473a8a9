package models

import "time"

// SavedSearch is a persisted set of listing filters owned by a user.
// Nil fields impose no constraint; a search with every field nil matches
// every property.
type SavedSearch struct {
	ID     int64 `json:"id" gorm:"primaryKey"`
	UserID int64 `json:"user_id" gorm:"index"`
	User   User  `json:"-" gorm:"foreignKey:UserID"`

	MinPrice       *float64 `json:"min_price"`
	MaxPrice       *float64 `json:"max_price"`
	MinSurfaceArea *float64 `json:"min_surface_area"`
	MaxSurfaceArea *float64 `json:"max_surface_area"`
	MinRooms       *int     `json:"min_rooms"`
	MaxRooms       *int     `json:"max_rooms"`

	PropertyType  *PropertyType  `json:"property_type"`
	InsertionType *InsertionType `json:"insertion_type"`
	Condition     *Condition     `json:"condition"`

	// Amenity requirements: true means the property must have the amenity,
	// false means no constraint.
	RequireElevator        bool `json:"require_elevator"`
	RequireAirConditioning bool `json:"require_air_conditioning"`
	RequireConcierge       bool `json:"require_concierge"`
	RequireFurnished       bool `json:"require_furnished"`

	EnergyClass *string `json:"energy_class"`
	City        *string `json:"city"`
	Province    *string `json:"province"`
	PostalCode  *string `json:"postal_code"`

	// Geo filter: only applied when all three fields are set.
	// RadiusMeters is stored in meters.
	CenterLatitude  *float64 `json:"center_latitude"`
	CenterLongitude *float64 `json:"center_longitude"`
	RadiusMeters    *float64 `json:"radius_meters"`

	LastNotifiedAt *time.Time `json:"last_notified_at" gorm:"index"`
	CreatedAt      time.Time  `json:"created_at"`
}

// HasGeoFilter reports whether the search carries a complete geo filter.
func (s *SavedSearch) HasGeoFilter() bool {
	return s.CenterLatitude != nil && s.CenterLongitude != nil && s.RadiusMeters != nil
}
