package repository

import (
	"context"

	"github.com/ddrozdov/flight-dispatch/internal/models"
)

// FlightRepository stores the dispatcher's evaluation history. List returns
// most-recent-first; corrupt stored rows degrade to being skipped, never to
// an error, so a damaged history can not block new evaluations.
type FlightRepository interface {
	Add(ctx context.Context, ev *models.FlightEvaluation) error
	GetByID(ctx context.Context, id string) (*models.FlightEvaluation, error)
	List(ctx context.Context, limit int) ([]models.FlightEvaluation, error)
}
