package geo

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	romeLat  = 41.9028
	romeLon  = 12.4964
	milanLat = 45.4642
	milanLon = 9.19
)

func TestDistanceKm_IdenticalPoints(t *testing.T) {
	d, err := DistanceKm(romeLat, romeLon, romeLat, romeLon)
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestDistanceKm_Symmetry(t *testing.T) {
	forward, err := DistanceKm(romeLat, romeLon, milanLat, milanLon)
	require.NoError(t, err)
	backward, err := DistanceKm(milanLat, milanLon, romeLat, romeLon)
	require.NoError(t, err)
	assert.Equal(t, forward, backward)
}

func TestDistanceKm_RomeToMilan(t *testing.T) {
	d, err := DistanceKm(romeLat, romeLon, milanLat, milanLon)
	require.NoError(t, err)
	assert.InDelta(t, 477, d, 5)
}

func TestDistanceKm_AgreesWithOrb(t *testing.T) {
	d, err := DistanceKm(romeLat, romeLon, milanLat, milanLon)
	require.NoError(t, err)

	// orb uses a slightly different mean radius; agreement within 1 km
	// over ~477 km is all the radius filter needs.
	reference := orbgeo.DistanceHaversine(
		orb.Point{romeLon, romeLat},
		orb.Point{milanLon, milanLat},
	) / 1000
	assert.InDelta(t, reference, d, 1)
}

func TestDistanceKm_InvalidCoordinates(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
	}{
		{"lat1 above range", 91, 0, 0, 0},
		{"lat1 below range", -91, 0, 0, 0},
		{"lon1 above range", 0, 181, 0, 0},
		{"lon1 below range", 0, -181, 0, 0},
		{"lat2 above range", 0, 0, 91, 0},
		{"lon2 above range", 0, 0, 0, 181},
		{"lat1 NaN", math.NaN(), 0, 0, 0},
		{"lon1 NaN", 0, math.NaN(), 0, 0},
		{"lat2 positive infinity", 0, 0, math.Inf(1), 0},
		{"lon2 negative infinity", 0, 0, 0, math.Inf(-1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DistanceKm(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
			assert.ErrorIs(t, err, ErrInvalidCoordinate)
		})
	}
}

func TestIsWithinRadius(t *testing.T) {
	within, err := IsWithinRadius(romeLat, romeLon, milanLat, milanLon, 500)
	require.NoError(t, err)
	assert.True(t, within)

	within, err = IsWithinRadius(romeLat, romeLon, milanLat, milanLon, 400)
	require.NoError(t, err)
	assert.False(t, within)
}

func TestIsWithinRadius_InclusiveBoundary(t *testing.T) {
	d, err := DistanceKm(romeLat, romeLon, milanLat, milanLon)
	require.NoError(t, err)

	within, err := IsWithinRadius(romeLat, romeLon, milanLat, milanLon, d)
	require.NoError(t, err)
	assert.True(t, within)
}

func TestIsWithinRadius_InvalidRadius(t *testing.T) {
	cases := []struct {
		name   string
		radius float64
	}{
		{"negative", -1},
		{"NaN", math.NaN()},
		{"positive infinity", math.Inf(1)},
		{"beyond half circumference", math.Pi*EarthRadiusKm + 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := IsWithinRadius(romeLat, romeLon, milanLat, milanLon, tc.radius)
			assert.ErrorIs(t, err, ErrInvalidRadius)
		})
	}
}

func TestIsWithinRadius_PropagatesCoordinateErrors(t *testing.T) {
	_, err := IsWithinRadius(95, 0, 0, 0, 10)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
}
