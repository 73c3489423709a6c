// Package dispatch composes the weather cache and the risk engine into one
// flight evaluation per dispatcher request.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/ddrozdov/flight-dispatch/internal/airports"
	"github.com/ddrozdov/flight-dispatch/internal/models"
	"github.com/ddrozdov/flight-dispatch/internal/risk"
	"github.com/ddrozdov/flight-dispatch/internal/weather"
)

var (
	ErrUnknownAirport     = errors.New("unknown airport")
	ErrInvalidRoute       = errors.New("invalid route")
	ErrWeatherUnavailable = errors.New("weather unavailable")
)

// Total score weights: ground phases dominate accident risk, so the two
// surface legs carry 0.4 each and the cruise proxy 0.2.
const (
	departureWeight = 0.4
	arrivalWeight   = 0.4
	cruiseWeight    = 0.2
)

type Request struct {
	FromAirportID string
	ToAirportID   string
	FlightNumber  string
	DepartureAt   time.Time
}

// Evaluator owns an explicit weather cache; there is no ambient store, so
// independent evaluators (one per test, for example) never share state.
type Evaluator struct {
	fetcher weather.Fetcher
	cache   *weather.Cache
	ttl     time.Duration
	flight  singleflight.Group
	now     func() time.Time
}

func NewEvaluator(fetcher weather.Fetcher, cache *weather.Cache, ttl time.Duration) *Evaluator {
	if ttl <= 0 {
		ttl = weather.DefaultTTL
	}
	return &Evaluator{
		fetcher: fetcher,
		cache:   cache,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Evaluate scores one candidate route. The two endpoint fetches are
// independent and run concurrently; a failure of either aborts the whole
// evaluation, never producing a partial result.
func (e *Evaluator) Evaluate(ctx context.Context, req Request) (*models.FlightEvaluation, error) {
	from, ok := airports.ByID(req.FromAirportID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAirport, req.FromAirportID)
	}
	to, ok := airports.ByID(req.ToAirportID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAirport, req.ToAirportID)
	}
	if from.ID == to.ID {
		return nil, fmt.Errorf("%w: departure and arrival airports must differ", ErrInvalidRoute)
	}
	if from.City == to.City {
		return nil, fmt.Errorf("%w: departure and arrival cities must differ", ErrInvalidRoute)
	}

	var dep, arr *models.WeatherObservation

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		obs, err := e.observation(gctx, from)
		dep = obs
		return err
	})
	g.Go(func() error {
		obs, err := e.observation(gctx, to)
		arr = obs
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWeatherUnavailable, err)
	}

	departureRisk := risk.EvaluateSurfaceRisk(dep)
	arrivalRisk := risk.EvaluateSurfaceRisk(arr)
	cruiseRisk := risk.EvaluateCruiseRisk(from, to, dep, arr)

	total := models.ClampScore(
		departureWeight*float64(departureRisk.Score) +
			arrivalWeight*float64(arrivalRisk.Score) +
			cruiseWeight*float64(cruiseRisk.Score),
	)

	return &models.FlightEvaluation{
		ID:            uuid.NewString(),
		FlightNumber:  strings.ToUpper(strings.TrimSpace(req.FlightNumber)),
		DepartureAt:   req.DepartureAt,
		FromAirportID: from.ID,
		ToAirportID:   to.ID,
		Departure:     departureRisk,
		Arrival:       arrivalRisk,
		Cruise:        cruiseRisk,
		TotalScore:    total,
		Feasibility:   risk.GetFeasibility(total),
		CreatedAt:     e.now(),
	}, nil
}

// AirportWeather serves the per-airport weather card: cached observation when
// fresh, a live fetch otherwise.
func (e *Evaluator) AirportWeather(ctx context.Context, airportID string) (models.Airport, *models.WeatherObservation, error) {
	airport, ok := airports.ByID(airportID)
	if !ok {
		return models.Airport{}, nil, fmt.Errorf("%w: %s", ErrUnknownAirport, airportID)
	}
	obs, err := e.observation(ctx, airport)
	if err != nil {
		return airport, nil, fmt.Errorf("%w: %v", ErrWeatherUnavailable, err)
	}
	return airport, obs, nil
}

// observation consults the cache first and fetches on staleness. Concurrent
// misses for the same airport collapse into one upstream call.
func (e *Evaluator) observation(ctx context.Context, airport models.Airport) (*models.WeatherObservation, error) {
	if entry, ok := e.cache.Get(airport.ID); ok && weather.IsFresh(entry, e.now(), e.ttl) {
		return entry.Data, nil
	}

	v, err, _ := e.flight.Do(airport.ID, func() (any, error) {
		// Re-check under the flight: a concurrent caller may have already
		// fetched and stored this airport.
		if entry, ok := e.cache.Get(airport.ID); ok && weather.IsFresh(entry, e.now(), e.ttl) {
			return entry.Data, nil
		}

		obs, err := e.fetcher.Fetch(ctx, airport)
		if err != nil {
			return nil, err
		}
		e.cache.Put(airport.ID, obs, e.now())
		return obs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.WeatherObservation), nil
}
