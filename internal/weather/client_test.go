package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ddrozdov/flight-dispatch/internal/models"
)

var testAirport = models.Airport{ID: "SVO", Lat: 55.9726, Lon: 37.4146}

func TestClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("lat") == "" || q.Get("lon") == "" {
			t.Errorf("expected lat/lon query params, got %q", r.URL.RawQuery)
		}
		if q.Get("appid") != "test-key" {
			t.Errorf("appid = %q, want test-key", q.Get("appid"))
		}
		if q.Get("units") != "metric" {
			t.Errorf("units = %q, want metric", q.Get("units"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"wind": {"speed": 7.2, "gust": 11.5},
			"main": {"temp": -3.1, "pressure": 1004, "humidity": 86},
			"visibility": 8000,
			"weather": [{"id": 600, "description": "light snow"}],
			"snow": {"1h": 0.4}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", 5*time.Second)

	obs, err := client.Fetch(context.Background(), testAirport)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if speed, ok := models.Finite(obs.Wind.Speed); !ok || speed != 7.2 {
		t.Errorf("wind speed = %v, want 7.2", obs.Wind.Speed)
	}
	if vis, ok := models.Finite(obs.Visibility); !ok || vis != 8000 {
		t.Errorf("visibility = %v, want 8000", obs.Visibility)
	}
	if code, ok := models.Finite(obs.ConditionID()); !ok || code != 600 {
		t.Errorf("condition code = %v, want 600", obs.ConditionID())
	}
	if p := obs.PrecipPerHour(); p == nil || *p != 0.4 {
		t.Errorf("precip = %v, want 0.4", p)
	}
}

func TestClient_Fetch_OmittedFieldsStayAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"main": {"temp": 10}, "weather": [{"id": 800}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", 5*time.Second)

	obs, err := client.Fetch(context.Background(), testAirport)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if obs.Wind.Speed != nil {
		t.Errorf("wind speed = %v, want absent", obs.Wind.Speed)
	}
	if obs.Visibility != nil {
		t.Errorf("visibility = %v, want absent", obs.Visibility)
	}
	if obs.Main.Pressure != nil {
		t.Errorf("pressure = %v, want absent", obs.Main.Pressure)
	}
}

func TestClient_Fetch_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "bad-key", 5*time.Second)

	if _, err := client.Fetch(context.Background(), testAirport); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}
