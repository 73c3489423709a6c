// Package geo holds the great-circle math behind route distances and the
// curved polyline the map layer draws between two airports.
package geo

import (
	"math"

	"github.com/ddrozdov/flight-dispatch/internal/models"
)

const earthRadiusKm = 6371

// DefaultRouteSteps is the segment count used for map polylines.
const DefaultRouteSteps = 48

// HaversineKm returns the great-circle distance between two points in
// kilometers. Symmetric in its arguments; zero for identical points.
func HaversineKm(a, b models.Coordinates) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*sinLon*sinLon

	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// BuildCurvedRoute interpolates steps+1 points between the endpoints with a
// sinusoidal latitude bulge so long routes render as an arc instead of a
// chord. The bulge amplitude grows with distance and is capped at 6 degrees.
// Purely visual; scoring never reads these points. Returns nil if either
// endpoint is absent.
func BuildCurvedRoute(from, to *models.Coordinates, steps int) []models.Coordinates {
	if from == nil || to == nil {
		return nil
	}
	if steps <= 0 {
		steps = DefaultRouteSteps
	}

	amplitude := math.Min(6, HaversineKm(*from, *to)/1200)

	points := make([]models.Coordinates, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		points = append(points, models.Coordinates{
			Lat: from.Lat + (to.Lat-from.Lat)*t + amplitude*math.Sin(math.Pi*t),
			Lon: from.Lon + (to.Lon-from.Lon)*t,
		})
	}

	// Endpoints must be exact for marker alignment.
	points[0] = *from
	points[steps] = *to

	return points
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
