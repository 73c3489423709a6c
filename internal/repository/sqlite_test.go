package repository

import (
	"context"
	"testing"
	"time"

	"github.com/ddrozdov/flight-dispatch/internal/models"
)

func setupTestDB(t *testing.T) *SQLiteDB {
	db, err := NewSQLiteDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	return db
}

func testEvaluation(id string, createdAt time.Time) *models.FlightEvaluation {
	return &models.FlightEvaluation{
		ID:            id,
		FlightNumber:  "SU 100",
		DepartureAt:   createdAt.Add(2 * time.Hour),
		FromAirportID: "SVO",
		ToAirportID:   "LED",
		Departure: models.RiskAssessment{
			Score:   31,
			Factors: []string{"wind 13.0 m/s"},
			Missing: []string{"wind.gust"},
		},
		Arrival: models.RiskAssessment{
			Score:   0,
			Factors: []string{},
			Missing: []string{},
		},
		Cruise: models.RiskAssessment{
			Score:      22,
			Factors:    []string{"likely jet-stream band"},
			Missing:    []string{},
			DistanceKm: 598.7,
		},
		TotalScore:  17,
		Feasibility: models.Feasibility{Label: "high feasibility", Tier: "high"},
		CreatedAt:   createdAt,
	}
}

func TestSQLiteDB_AddAndGet(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	ev := testEvaluation("ev_1", time.Now().UTC())

	if err := db.Add(ctx, ev); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got, err := db.GetByID(ctx, "ev_1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected evaluation, got nil")
	}
	if got.FlightNumber != "SU 100" {
		t.Errorf("flight number = %q, want 'SU 100'", got.FlightNumber)
	}
	if got.Departure.Score != 31 {
		t.Errorf("departure score = %d, want 31", got.Departure.Score)
	}
	if len(got.Departure.Factors) != 1 || got.Departure.Factors[0] != "wind 13.0 m/s" {
		t.Errorf("departure factors = %v, want [wind 13.0 m/s]", got.Departure.Factors)
	}
	if got.Cruise.DistanceKm != 598.7 {
		t.Errorf("cruise distance = %v, want 598.7", got.Cruise.DistanceKm)
	}
	if got.Feasibility.Tier != "high" {
		t.Errorf("feasibility tier = %q, want high", got.Feasibility.Tier)
	}
}

func TestSQLiteDB_GetMissing(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	got, err := db.GetByID(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing id, got %+v", got)
	}
}

func TestSQLiteDB_ListMostRecentFirst(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"ev_old", "ev_mid", "ev_new"} {
		if err := db.Add(ctx, testEvaluation(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	got, err := db.List(ctx, 20)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 evaluations, got %d", len(got))
	}
	if got[0].ID != "ev_new" || got[2].ID != "ev_old" {
		t.Errorf("order = [%s %s %s], want most-recent-first", got[0].ID, got[1].ID, got[2].ID)
	}

	limited, err := db.List(ctx, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 evaluations with limit, got %d", len(limited))
	}
}

func TestSQLiteDB_ListSkipsCorruptRows(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	if err := db.Add(ctx, testEvaluation("ev_good", time.Now().UTC())); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// Simulate a damaged history entry.
	_, err := db.db.ExecContext(ctx, `
		INSERT INTO evaluations (
			id, flight_number, departure_at, from_airport, to_airport,
			departure_risk, arrival_risk, cruise_risk,
			total_risk, feasibility_label, feasibility_tier, created_at
		) VALUES ('ev_bad', 'XX 1', NULL, 'SVO', 'LED', 'not json', '{}', '{}', 10, 'x', 'x', ?)`,
		time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("failed to insert corrupt row: %v", err)
	}

	got, err := db.List(ctx, 20)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected corrupt row to be skipped, got %d rows", len(got))
	}
	if got[0].ID != "ev_good" {
		t.Errorf("surviving row = %s, want ev_good", got[0].ID)
	}
}
