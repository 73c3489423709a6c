package api

import (
	"github.com/ddrozdov/flight-dispatch/internal/models"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// Coordinates is []float64 for points and [][]float64 for line strings,
// per GeoJSON. Always [lon, lat] order.
type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

func airportsToGeoJSON(airports []models.Airport) FeatureCollection {
	features := make([]Feature, 0, len(airports))

	for _, a := range airports {
		f := Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{a.Lon, a.Lat},
			},
			Properties: map[string]any{
				"id":     a.ID,
				"name":   a.Name,
				"city":   a.City,
				"region": a.Region,
			},
		}
		features = append(features, f)
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}

func routeToGeoJSON(from, to models.Airport, points []models.Coordinates, distanceKm float64) Feature {
	coords := make([][]float64, 0, len(points))
	for _, p := range points {
		coords = append(coords, []float64{p.Lon, p.Lat})
	}

	return Feature{
		Type: "Feature",
		Geometry: Geometry{
			Type:        "LineString",
			Coordinates: coords,
		},
		Properties: map[string]any{
			"from":        from.ID,
			"to":          to.ID,
			"distance_km": distanceKm,
		},
	}
}
