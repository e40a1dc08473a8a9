// Package search evaluates saved-search filters against property listings.
package search

import (
	"os"
	"strings"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
	"github.com/sirupsen/logrus"

	"trovacasa/server/internal/geo"
	"trovacasa/server/internal/models"
)

// Matcher decides whether a property satisfies a saved search. All
// predicates are conjunctive and an unset search field imposes no
// constraint, so adding a filter can only shrink the match set.
type Matcher struct {
	logger *logrus.Logger
}

func NewMatcher(logger *logrus.Logger) *Matcher {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Matcher{logger: logger}
}

// Matches is pure apart from logging: no I/O, no mutation of either
// argument. It short-circuits on the first failing predicate.
func (m *Matcher) Matches(p *models.Property, s *models.SavedSearch) bool {
	if s.MinPrice != nil && p.Price < *s.MinPrice {
		return false
	}
	if s.MaxPrice != nil && p.Price > *s.MaxPrice {
		return false
	}

	if s.MinSurfaceArea != nil && p.SurfaceArea < *s.MinSurfaceArea {
		return false
	}
	if s.MaxSurfaceArea != nil && p.SurfaceArea > *s.MaxSurfaceArea {
		return false
	}

	if s.MinRooms != nil && p.NumRooms < *s.MinRooms {
		return false
	}
	if s.MaxRooms != nil && p.NumRooms > *s.MaxRooms {
		return false
	}

	if s.PropertyType != nil && p.PropertyType != *s.PropertyType {
		return false
	}
	if s.InsertionType != nil && p.InsertionType != *s.InsertionType {
		return false
	}
	if s.Condition != nil && p.Condition != *s.Condition {
		return false
	}

	if s.RequireElevator && !p.HasElevator {
		return false
	}
	if s.RequireAirConditioning && !p.HasAirConditioning {
		return false
	}
	if s.RequireConcierge && !p.HasConcierge {
		return false
	}
	if s.RequireFurnished && !p.IsFurnished {
		return false
	}

	if s.EnergyClass != nil && !containsFold(p.EnergyClass, *s.EnergyClass) {
		return false
	}

	if s.City != nil && !containsFold(p.City, *s.City) {
		return false
	}
	if s.Province != nil && !containsFold(p.Province, *s.Province) {
		return false
	}
	// Postal codes carry no case ambiguity, plain containment is enough.
	if s.PostalCode != nil && !strings.Contains(p.PostalCode, *s.PostalCode) {
		return false
	}

	if s.HasGeoFilter() {
		return m.matchesGeoFilter(p, s)
	}

	return true
}

// matchesGeoFilter applies the radius test. A cheap bounding-box check
// rules out far-away properties before the exact haversine distance.
// Malformed stored coordinates make the single search a non-match rather
// than failing the whole matching pass.
func (m *Matcher) matchesGeoFilter(p *models.Property, s *models.SavedSearch) bool {
	// The bound is padded 1% because orb pads with the WGS84 radius while
	// the exact check uses the mean radius; without it points right at the
	// boundary would be cut off.
	center := orb.Point{*s.CenterLongitude, *s.CenterLatitude}
	bound := orbgeo.NewBoundAroundPoint(center, *s.RadiusMeters*1.01)
	if !bound.Contains(orb.Point{p.Longitude, p.Latitude}) {
		return false
	}

	radiusKm := *s.RadiusMeters / 1000
	within, err := geo.IsWithinRadius(*s.CenterLatitude, *s.CenterLongitude, p.Latitude, p.Longitude, radiusKm)
	if err != nil {
		m.logger.WithError(err).WithFields(logrus.Fields{
			"saved_search_id": s.ID,
			"property_id":     p.ID,
		}).Warn("Skipping search with invalid geo filter")
		return false
	}

	return within
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
