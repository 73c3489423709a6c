package models

import "time"

type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelModerate RiskLevel = "MODERATE"
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelCritical RiskLevel = "CRITICAL"
)

// RiskAssessment is the outcome of scoring one leg. Factors are appended in
// rule-evaluation order and must not be re-sorted; Missing lists the dotted
// field names that were absent from the observation.
type RiskAssessment struct {
	Score      int      `json:"score"`
	Factors    []string `json:"factors"`
	Missing    []string `json:"missing"`
	DistanceKm float64  `json:"distance_km,omitempty"` // cruise legs only
}

type Feasibility struct {
	Label string `json:"label"`
	Tier  string `json:"tier"`
}

// FlightEvaluation is one dispatcher decision record: three leg assessments,
// the weighted total, and the verdict. Immutable once created.
type FlightEvaluation struct {
	ID            string         `json:"id"`
	FlightNumber  string         `json:"flight_number"`
	DepartureAt   time.Time      `json:"departure_at"`
	FromAirportID string         `json:"from_airport_id"`
	ToAirportID   string         `json:"to_airport_id"`
	Departure     RiskAssessment `json:"departure_risk"`
	Arrival       RiskAssessment `json:"arrival_risk"`
	Cruise        RiskAssessment `json:"cruise_risk"`
	TotalScore    int            `json:"total_risk"`
	Feasibility   Feasibility    `json:"feasibility"`
	CreatedAt     time.Time      `json:"created_at"`
}
