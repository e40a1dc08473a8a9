package models

import "time"

// PropertyType classifies the kind of building a listing refers to.
type PropertyType string

const (
	PropertyTypeApartment PropertyType = "APARTMENT"
	PropertyTypeVilla     PropertyType = "VILLA"
	PropertyTypeStudio    PropertyType = "STUDIO"
	PropertyTypeGarage    PropertyType = "GARAGE"
)

// InsertionType is the commercial type of a listing.
type InsertionType string

const (
	InsertionTypeSale      InsertionType = "SALE"
	InsertionTypeRent      InsertionType = "RENT"
	InsertionTypeShortTerm InsertionType = "SHORT_TERM"
	InsertionTypeVacation  InsertionType = "VACATION"
)

var insertionTypeLabels = map[InsertionType]string{
	InsertionTypeSale:      "For Sale",
	InsertionTypeRent:      "For Rent",
	InsertionTypeShortTerm: "Short Term",
	InsertionTypeVacation:  "Vacation Rental",
}

// Label returns the display phrase used in notification messages.
// Unknown values fall back to a generic label.
func (t InsertionType) Label() string {
	if label, ok := insertionTypeLabels[t]; ok {
		return label
	}
	return "Available"
}

// Condition describes the state of repair of a property.
type Condition string

const (
	ConditionNew        Condition = "NEW"
	ConditionRenovated  Condition = "RENOVATED"
	ConditionGood       Condition = "GOOD"
	ConditionToRenovate Condition = "TO_RENOVATE"
)

type Property struct {
	ID                 int64         `json:"id" gorm:"primaryKey"`
	Price              float64       `json:"price"`
	SurfaceArea        float64       `json:"surface_area"`
	NumRooms           int           `json:"num_rooms"`
	NumFloors          int           `json:"num_floors"`
	PropertyType       PropertyType  `json:"property_type"`
	InsertionType      InsertionType `json:"insertion_type"`
	Condition          Condition     `json:"condition"`
	HasElevator        bool          `json:"has_elevator"`
	HasAirConditioning bool          `json:"has_air_conditioning"`
	HasConcierge       bool          `json:"has_concierge"`
	IsFurnished        bool          `json:"is_furnished"`
	EnergyClass        string        `json:"energy_class"`
	City               string        `json:"city"`
	Province           string        `json:"province"`
	PostalCode         string        `json:"postal_code"`
	Address            string        `json:"address"`
	Latitude           float64       `json:"latitude"`
	Longitude          float64       `json:"longitude"`
	CreatedAt          time.Time     `json:"created_at"`
}
