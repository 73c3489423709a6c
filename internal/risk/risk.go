// Package risk turns raw weather observations into bounded dispatch risk
// scores. All functions are total: malformed or missing data degrades to a
// conservative score plus bookkeeping, never to an error.
package risk

import (
	"fmt"
	"strings"

	"github.com/ddrozdov/flight-dispatch/internal/geo"
	"github.com/ddrozdov/flight-dispatch/internal/models"
)

// Wind speed, visibility and the condition code are load-bearing for a
// go/no-go call: guessing a safe default for them could mask a real hazard,
// so their absence forces the conservative ceiling instead of a computed
// score.
const conservativeScore = 90

// EvaluateSurfaceRisk estimates ground-phase (takeoff/landing) hazard at one
// airport from a single observation. Rules run in a fixed order and each adds
// to a running score; factors are appended in that same order.
func EvaluateSurfaceRisk(obs *models.WeatherObservation) models.RiskAssessment {
	if obs == nil {
		return models.RiskAssessment{
			Score:   conservativeScore,
			Factors: []string{"no weather data for airport (dispatcher decision required)"},
			Missing: []string{"weather"},
		}
	}

	missing := []string{}
	factors := []string{}
	score := 0.0

	wind, windOK := models.Finite(obs.Wind.Speed)
	if !windOK {
		missing = append(missing, "wind.speed")
	}

	gust, gustOK := models.Finite(obs.Wind.Gust)
	if !gustOK {
		missing = append(missing, "wind.gust")
	}

	visibility, visibilityOK := models.Finite(obs.Visibility)
	if !visibilityOK {
		missing = append(missing, "visibility")
	}

	pressure, pressureOK := models.Finite(obs.Main.Pressure)
	if !pressureOK {
		missing = append(missing, "main.pressure")
	}

	temp, tempOK := models.Finite(obs.Main.Temp)
	if !tempOK {
		missing = append(missing, "main.temp")
	}

	code, codeOK := models.Finite(obs.ConditionID())
	if !codeOK {
		missing = append(missing, "weather[0].id")
	}

	var loadBearing []string
	if !windOK {
		loadBearing = append(loadBearing, "wind speed")
	}
	if !visibilityOK {
		loadBearing = append(loadBearing, "visibility")
	}
	if !codeOK {
		loadBearing = append(loadBearing, "weather condition code")
	}

	if len(loadBearing) > 0 {
		return models.RiskAssessment{
			Score: conservativeScore,
			Factors: []string{
				"data incomplete, dispatcher decision required",
				"missing: " + strings.Join(loadBearing, ", "),
			},
			Missing: missing,
		}
	}

	if wind >= 12 {
		score += 16
		factors = append(factors, fmt.Sprintf("wind %.1f m/s", wind))
	}
	if wind >= 18 {
		score += 15
	}

	if gustOK && gust >= 20 {
		score += 18
		factors = append(factors, fmt.Sprintf("gusts %.1f m/s", gust))
	}

	if visibility < 5000 {
		score += 12
		factors = append(factors, fmt.Sprintf("visibility %.0f m", visibility))
	}
	if visibility < 1500 {
		score += 20
	}

	if pressureOK && (pressure < 985 || pressure > 1035) {
		score += 8
		factors = append(factors, fmt.Sprintf("pressure %.0f hPa", pressure))
	}

	if tempOK && (temp <= -30 || temp >= 38) {
		score += 8
		factors = append(factors, fmt.Sprintf("extreme temperature %.1f C", temp))
	}

	switch {
	case code >= 200 && code < 300:
		score += 34
		factors = append(factors, "thunderstorm activity")
	case code >= 300 && code < 600:
		score += 14
		factors = append(factors, "precipitation")
	case code == 741 || code == 701:
		score += 16
		factors = append(factors, "fog/haze")
	}

	if len(missing) > 0 {
		factors = append(factors, "some readings unavailable: "+strings.Join(missing, ", "))
	}

	return models.RiskAssessment{
		Score:   models.ClampScore(score),
		Factors: factors,
		Missing: missing,
	}
}

// EvaluateCruiseRisk is a coarse en-route hazard proxy built from the two
// endpoint observations only; no true en-route data exists. The base score is
// 10 so cruise is never zero-risk.
func EvaluateCruiseRisk(from, to models.Airport, dep, arr *models.WeatherObservation) models.RiskAssessment {
	missing := []string{}
	factors := []string{}
	score := 10.0

	var depWind, arrWind, depPressure, arrPressure float64
	var depWindOK, arrWindOK, depPressureOK, arrPressureOK bool

	if dep != nil {
		depWind, depWindOK = models.Finite(dep.Wind.Speed)
		depPressure, depPressureOK = models.Finite(dep.Main.Pressure)
	}
	if arr != nil {
		arrWind, arrWindOK = models.Finite(arr.Wind.Speed)
		arrPressure, arrPressureOK = models.Finite(arr.Main.Pressure)
	}

	if !depWindOK {
		missing = append(missing, "dep wind.speed")
	}
	if !arrWindOK {
		missing = append(missing, "arr wind.speed")
	}
	if !depPressureOK {
		missing = append(missing, "dep main.pressure")
	}
	if !arrPressureOK {
		missing = append(missing, "arr main.pressure")
	}

	// Endpoint wind is load-bearing for the cruise proxy.
	if !depWindOK || !arrWindOK {
		return models.RiskAssessment{
			Score: conservativeScore,
			Factors: []string{
				"data incomplete for route assessment, dispatcher decision required",
				"missing: " + strings.Join(missing, ", "),
			},
			Missing: missing,
		}
	}

	distanceKm := geo.HaversineKm(from.Coordinates(), to.Coordinates())
	if distanceKm >= 2000 {
		score += 10
		factors = append(factors, "long-haul route")
	}
	if distanceKm >= 4000 {
		score += 12
	}

	avgAbsLat := (abs(from.Lat) + abs(to.Lat)) / 2
	if avgAbsLat >= 50 {
		score += 12
		factors = append(factors, "likely jet-stream band")
	}

	windProxy := max(depWind, arrWind)
	if windProxy >= 14 {
		score += 10
		factors = append(factors, "strong boundary wind at route ends")
	}
	if windProxy >= 20 {
		score += 10
	}

	if depPressureOK && arrPressureOK {
		pressureDelta := abs(depPressure - arrPressure)
		if pressureDelta >= 20 {
			score += 8
			factors = append(factors, "high pressure differential")
		}
		if pressureDelta >= 35 {
			score += 8
		}
	} else {
		factors = append(factors, "no pressure data for pressure-contrast check")
	}

	if len(missing) > 0 {
		factors = append(factors, "some readings unavailable: "+strings.Join(missing, ", "))
	}

	return models.RiskAssessment{
		Score:      models.ClampScore(score),
		Factors:    factors,
		Missing:    missing,
		DistanceKm: distanceKm,
	}
}

// GetFeasibility maps the combined total score to the dispatcher verdict.
func GetFeasibility(totalScore int) models.Feasibility {
	switch {
	case totalScore <= 30:
		return models.Feasibility{Label: "high feasibility", Tier: "high"}
	case totalScore <= 55:
		return models.Feasibility{Label: "medium feasibility", Tier: "medium"}
	case totalScore <= 75:
		return models.Feasibility{Label: "low feasibility", Tier: "low"}
	default:
		return models.Feasibility{Label: "not recommended", Tier: "not-recommended"}
	}
}

// Level maps a per-leg score to its display label. Same boundaries as the
// feasibility tiers.
func Level(score int) models.RiskLevel {
	switch {
	case score <= 30:
		return models.RiskLevelLow
	case score <= 55:
		return models.RiskLevelModerate
	case score <= 75:
		return models.RiskLevelHigh
	default:
		return models.RiskLevelCritical
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
