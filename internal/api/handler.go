package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ddrozdov/flight-dispatch/internal/airports"
	"github.com/ddrozdov/flight-dispatch/internal/dispatch"
	"github.com/ddrozdov/flight-dispatch/internal/geo"
	"github.com/ddrozdov/flight-dispatch/internal/repository"
	"github.com/ddrozdov/flight-dispatch/internal/risk"
	"github.com/ddrozdov/flight-dispatch/internal/worker"
)

type Handler struct {
	evaluator *dispatch.Evaluator
	repo      repository.FlightRepository
	pool      *worker.Pool
}

// NewHandler wires the HTTP surface. pool may be nil, in which case history
// writes happen synchronously on the request.
func NewHandler(evaluator *dispatch.Evaluator, repo repository.FlightRepository, pool *worker.Pool) *Handler {
	return &Handler{
		evaluator: evaluator,
		repo:      repo,
		pool:      pool,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)
	r.GET("/api/airports", h.getAirports)
	r.GET("/api/regions", h.getRegions)
	r.GET("/api/route", h.getRoute)
	r.GET("/api/weather/:airport", h.getAirportWeather)
	r.POST("/api/evaluations", h.createEvaluation)
	r.GET("/api/evaluations", h.listEvaluations)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) getAirports(c *gin.Context) {
	fc := airportsToGeoJSON(airports.All)
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, fc)
}

func (h *Handler) getRegions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"regions":         airports.Regions,
		"aircraft_models": airports.AircraftModels,
	})
}

func (h *Handler) getRoute(c *gin.Context) {
	from, fromOK := airports.ByID(c.Query("from"))
	to, toOK := airports.ByID(c.Query("to"))
	if !fromOK || !toOK {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown airport"})
		return
	}
	if from.ID == to.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "departure and arrival airports must differ"})
		return
	}

	fromCoords := from.Coordinates()
	toCoords := to.Coordinates()
	points := geo.BuildCurvedRoute(&fromCoords, &toCoords, geo.DefaultRouteSteps)
	distance := geo.HaversineKm(fromCoords, toCoords)

	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, routeToGeoJSON(from, to, points, distance))
}

func (h *Handler) getAirportWeather(c *gin.Context) {
	airport, obs, err := h.evaluator.AirportWeather(c.Request.Context(), c.Param("airport"))
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, dispatch.ErrUnknownAirport) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"airport":   airport,
		"weather":   obs,
		"precip_1h": obs.PrecipPerHour(),
	})
}

type evaluationRequest struct {
	From         string    `json:"from" binding:"required"`
	To           string    `json:"to" binding:"required"`
	FlightNumber string    `json:"flight_number" binding:"required"`
	DepartureAt  time.Time `json:"departure_at"`
}

func (h *Handler) createEvaluation(c *gin.Context) {
	var req evaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from, to and flight_number are required"})
		return
	}

	ev, err := h.evaluator.Evaluate(c.Request.Context(), dispatch.Request{
		FromAirportID: req.From,
		ToAirportID:   req.To,
		FlightNumber:  req.FlightNumber,
		DepartureAt:   req.DepartureAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, dispatch.ErrUnknownAirport):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, dispatch.ErrInvalidRoute):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}

	if h.pool != nil {
		h.pool.Submit(ev)
	} else if err := h.repo.Add(c.Request.Context(), ev); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store evaluation"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"evaluation": ev,
		"levels": gin.H{
			"departure": risk.Level(ev.Departure.Score),
			"arrival":   risk.Level(ev.Arrival.Score),
			"cruise":    risk.Level(ev.Cruise.Score),
		},
	})
}

func (h *Handler) listEvaluations(c *gin.Context) {
	limit := 20 // default page size when limit param not supplied
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	evaluations, err := h.repo.List(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to fetch evaluations",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"evaluations": evaluations})
}
