package models

import "time"

// WeatherObservation mirrors the OpenWeather current-weather payload.
// Optional numeric fields are pointers: the provider omits readings its
// stations did not take, and an absent reading is not the same thing as a
// measured zero.
type WeatherObservation struct {
	Wind       Wind           `json:"wind"`
	Main       MainReadings   `json:"main"`
	Visibility *float64       `json:"visibility,omitempty"` // meters
	Weather    []Condition    `json:"weather,omitempty"`
	Clouds     Clouds         `json:"clouds"`
	Rain       *Precipitation `json:"rain,omitempty"`
	Snow       *Precipitation `json:"snow,omitempty"`
}

type Wind struct {
	Speed *float64 `json:"speed,omitempty"` // m/s
	Gust  *float64 `json:"gust,omitempty"`  // m/s
}

type MainReadings struct {
	Temp      *float64 `json:"temp,omitempty"`       // Celsius
	FeelsLike *float64 `json:"feels_like,omitempty"` // Celsius
	Pressure  *float64 `json:"pressure,omitempty"`   // hPa
	Humidity  *float64 `json:"humidity,omitempty"`   // percent
}

type Condition struct {
	ID          *float64 `json:"id,omitempty"` // OpenWeather condition code
	Description string   `json:"description,omitempty"`
}

type Clouds struct {
	All *float64 `json:"all,omitempty"` // percent
}

type Precipitation struct {
	OneHour *float64 `json:"1h,omitempty"` // mm over the last hour
}

// ConditionID returns the primary weather condition code, if reported.
func (w *WeatherObservation) ConditionID() *float64 {
	if w == nil || len(w.Weather) == 0 {
		return nil
	}
	return w.Weather[0].ID
}

// PrecipPerHour returns the heavier of the 1-hour rain and snow readings,
// or nil when neither was reported.
func (w *WeatherObservation) PrecipPerHour() *float64 {
	if w == nil {
		return nil
	}
	var best *float64
	for _, p := range []*Precipitation{w.Rain, w.Snow} {
		if p == nil {
			continue
		}
		if v, ok := Finite(p.OneHour); ok {
			if best == nil || v > *best {
				val := v
				best = &val
			}
		}
	}
	return best
}

// CacheEntry is one cached observation. Freshness is judged lazily against
// FetchedAt; the entry itself carries no TTL.
type CacheEntry struct {
	Data      *WeatherObservation `json:"data"`
	FetchedAt time.Time           `json:"fetched_at"`
}
