package models

type Airport struct {
	ID     string  `json:"id"` // IATA code, e.g. "SVO"
	Name   string  `json:"name"`
	City   string  `json:"city"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Region string  `json:"region,omitempty"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (a Airport) Coordinates() Coordinates {
	return Coordinates{
		Lat: a.Lat,
		Lon: a.Lon,
	}
}

// Region groups airports for map highlighting. Bounds is
// [[southLat, westLon], [northLat, eastLon]]; it never feeds scoring.
type Region struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Bounds [2][2]float64 `json:"bounds"`
}
