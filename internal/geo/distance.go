// Package geo provides great-circle distance math for the saved-search
// radius filter.
package geo

import (
	"errors"
	"fmt"
	"math"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// MaxRadiusKm is half the Earth's circumference. A radius beyond this is
// geometrically meaningless on a sphere.
var MaxRadiusKm = math.Pi * EarthRadiusKm

var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidRadius     = errors.New("invalid radius")
)

// DistanceKm computes the haversine great-circle distance in kilometers
// between two coordinate pairs. Identical points return exactly 0.
func DistanceKm(lat1, lon1, lat2, lon2 float64) (float64, error) {
	if err := validateLatitude("lat1", lat1); err != nil {
		return 0, err
	}
	if err := validateLongitude("lon1", lon1); err != nil {
		return 0, err
	}
	if err := validateLatitude("lat2", lat2); err != nil {
		return 0, err
	}
	if err := validateLongitude("lon2", lon2); err != nil {
		return 0, err
	}

	if lat1 == lat2 && lon1 == lon2 {
		return 0, nil
	}

	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	deltaPhi := toRadians(lat2 - lat1)
	deltaLambda := toRadians(lon2 - lon1)

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c, nil
}

// IsWithinRadius reports whether the point lies within radiusKm of the
// center. The boundary is inclusive.
func IsWithinRadius(centerLat, centerLon, pointLat, pointLon, radiusKm float64) (bool, error) {
	if math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) || radiusKm < 0 || radiusKm > MaxRadiusKm {
		return false, fmt.Errorf("%w: %v (must be in [0, %.0f] km)", ErrInvalidRadius, radiusKm, MaxRadiusKm)
	}

	distance, err := DistanceKm(centerLat, centerLon, pointLat, pointLon)
	if err != nil {
		return false, err
	}

	return distance <= radiusKm, nil
}

func validateLatitude(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < -90 || value > 90 {
		return fmt.Errorf("%w: %s=%v (latitude must be in [-90, 90])", ErrInvalidCoordinate, name, value)
	}
	return nil
}

func validateLongitude(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < -180 || value > 180 {
		return fmt.Errorf("%w: %s=%v (longitude must be in [-180, 180])", ErrInvalidCoordinate, name, value)
	}
	return nil
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
