package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ddrozdov/flight-dispatch/internal/models"
	"github.com/ddrozdov/flight-dispatch/internal/weather"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func fp(v float64) *float64 { return &v }

func calmObs() *models.WeatherObservation {
	return &models.WeatherObservation{
		Wind:       models.Wind{Speed: fp(3), Gust: fp(5)},
		Main:       models.MainReadings{Pressure: fp(1013), Temp: fp(15)},
		Visibility: fp(10000),
		Weather:    []models.Condition{{ID: fp(800), Description: "clear sky"}},
	}
}

// stubFetcher counts upstream calls per airport.
type stubFetcher struct {
	mu    sync.Mutex
	calls map[string]int
	err   error
	delay time.Duration
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{calls: make(map[string]int)}
}

func (f *stubFetcher) Fetch(ctx context.Context, airport models.Airport) (*models.WeatherObservation, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[airport.ID]++
	if f.err != nil {
		return nil, f.err
	}
	return calmObs(), nil
}

func (f *stubFetcher) callCount(airportID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[airportID]
}

func newTestEvaluator(f weather.Fetcher) *Evaluator {
	return NewEvaluator(f, weather.NewCache(), weather.DefaultTTL)
}

func TestEvaluate_UnknownAirport(t *testing.T) {
	e := newTestEvaluator(newStubFetcher())

	_, err := e.Evaluate(context.Background(), Request{FromAirportID: "XXX", ToAirportID: "LED"})
	require.ErrorIs(t, err, ErrUnknownAirport)

	_, err = e.Evaluate(context.Background(), Request{FromAirportID: "SVO", ToAirportID: "YYY"})
	require.ErrorIs(t, err, ErrUnknownAirport)
}

func TestEvaluate_InvalidRoute(t *testing.T) {
	e := newTestEvaluator(newStubFetcher())

	_, err := e.Evaluate(context.Background(), Request{FromAirportID: "SVO", ToAirportID: "SVO"})
	require.ErrorIs(t, err, ErrInvalidRoute)

	// Different airports, same city.
	_, err = e.Evaluate(context.Background(), Request{FromAirportID: "SVO", ToAirportID: "DME"})
	require.ErrorIs(t, err, ErrInvalidRoute)
}

func TestEvaluate_FetchFailureAbortsWhole(t *testing.T) {
	f := newStubFetcher()
	f.err = errors.New("upstream down")
	e := newTestEvaluator(f)

	ev, err := e.Evaluate(context.Background(), Request{FromAirportID: "SVO", ToAirportID: "LED"})
	require.ErrorIs(t, err, ErrWeatherUnavailable)
	assert.Nil(t, ev, "no partial evaluation on failure")
}

func TestEvaluate_CalmRoute(t *testing.T) {
	e := newTestEvaluator(newStubFetcher())

	ev, err := e.Evaluate(context.Background(), Request{
		FromAirportID: "SVO",
		ToAirportID:   "LED",
		FlightNumber:  "  su 100 ",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, "SU 100", ev.FlightNumber)
	assert.False(t, ev.CreatedAt.IsZero())
	assert.Equal(t, 0, ev.Departure.Score)
	assert.Equal(t, 0, ev.Arrival.Score)

	// SVO-LED: ~600 km, average |lat| above 50 -> base 10 + jet stream 12.
	assert.Equal(t, 22, ev.Cruise.Score)
	assert.InDelta(t, 600, ev.Cruise.DistanceKm, 25)

	// total = clamp(0.4*0 + 0.4*0 + 0.2*22) = 4
	assert.Equal(t, 4, ev.TotalScore)
	assert.Equal(t, "high", ev.Feasibility.Tier)
}

func TestEvaluate_SecondCallWithinTTLHitsCache(t *testing.T) {
	f := newStubFetcher()
	e := newTestEvaluator(f)

	_, err := e.Evaluate(context.Background(), Request{FromAirportID: "SVO", ToAirportID: "LED"})
	require.NoError(t, err)
	_, err = e.Evaluate(context.Background(), Request{FromAirportID: "SVO", ToAirportID: "LED"})
	require.NoError(t, err)

	assert.Equal(t, 1, f.callCount("SVO"), "exactly one fetch per airport within TTL")
	assert.Equal(t, 1, f.callCount("LED"), "exactly one fetch per airport within TTL")
}

func TestEvaluate_RefetchesAfterTTL(t *testing.T) {
	f := newStubFetcher()
	e := newTestEvaluator(f)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return base }

	_, err := e.Evaluate(context.Background(), Request{FromAirportID: "SVO", ToAirportID: "LED"})
	require.NoError(t, err)

	e.now = func() time.Time { return base.Add(weather.DefaultTTL + time.Second) }

	_, err = e.Evaluate(context.Background(), Request{FromAirportID: "SVO", ToAirportID: "LED"})
	require.NoError(t, err)

	assert.Equal(t, 2, f.callCount("SVO"))
	assert.Equal(t, 2, f.callCount("LED"))
}

func TestEvaluate_ConcurrentMissesCollapse(t *testing.T) {
	f := newStubFetcher()
	f.delay = 50 * time.Millisecond
	e := newTestEvaluator(f)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.Evaluate(context.Background(), Request{FromAirportID: "SVO", ToAirportID: "LED"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, f.callCount("SVO"), "concurrent misses must share one fetch")
	assert.Equal(t, 1, f.callCount("LED"), "concurrent misses must share one fetch")
}

func TestAirportWeather(t *testing.T) {
	f := newStubFetcher()
	e := newTestEvaluator(f)

	_, _, err := e.AirportWeather(context.Background(), "nope")
	require.ErrorIs(t, err, ErrUnknownAirport)

	airport, obs, err := e.AirportWeather(context.Background(), "MMK")
	require.NoError(t, err)
	assert.Equal(t, "Murmansk", airport.City)
	require.NotNil(t, obs)

	// Second read is served from cache.
	_, _, err = e.AirportWeather(context.Background(), "MMK")
	require.NoError(t, err)
	assert.Equal(t, 1, f.callCount("MMK"))
}
