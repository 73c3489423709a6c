// Package worker persists finished evaluations off the request path so the
// dispatcher gets the verdict without waiting on history writes.
package worker

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ddrozdov/flight-dispatch/internal/models"
)

type PersistFunc func(ctx context.Context, ev *models.FlightEvaluation) error

type Pool struct {
	numWorkers int
	jobs       chan *models.FlightEvaluation
	persist    PersistFunc
	wg         sync.WaitGroup
}

func NewPool(numWorkers int, bufferSize int, persist PersistFunc) *Pool {
	return &Pool{
		numWorkers: numWorkers,
		jobs:       make(chan *models.FlightEvaluation, bufferSize),
		persist:    persist,
	}
}

func (p *Pool) Start(ctx context.Context) {
	for i := 1; i <= p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-p.jobs:
			if !ok {
				return
			}
			if err := p.persist(ctx, ev); err != nil {
				slog.Error("error persisting evaluation", "id", ev.ID, "error", err)
				continue
			}
			slog.Debug("persisted evaluation", "id", ev.ID, "total", ev.TotalScore)
		}
	}
}

func (p *Pool) Submit(ev *models.FlightEvaluation) {
	p.jobs <- ev
}

func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}
