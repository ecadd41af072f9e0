package listing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/agrosuite/dashboard/internal/envelope"
	"github.com/agrosuite/dashboard/internal/filter"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Outcome describes how a single load ended
type Outcome[T any] struct {
	LoadID   uuid.UUID
	State    State
	Filters  filter.Set
	Envelope *envelope.Envelope[T]

	// Cause holds the read failure that led to a fallback or failed state
	Cause error
}

// Meta returns the pagination metadata that was rendered
func (outcome *Outcome[T]) Meta() envelope.Meta {
	return outcome.Envelope.Meta()
}

// Controller drives one entity list: it reads a page, substitutes sample records on failure and invokes
// the renderer and the paginator exactly once per load.
// Concurrent loads are not de-duplicated; the last one to finish determines what is displayed.
type Controller[T any] struct {
	// Name identifies the entity in log messages, e.g. 'cattle/animals'
	Name string

	Source    Source[T]
	Renderer  Renderer[T]
	Paginator Paginator

	// Fallback is consulted whenever the source fails; nil disables the substitution
	Fallback Fallback[T]

	// Accumulator, if set, receives the records of every load
	Accumulator *Accumulator[T]

	// OnPage is handed to the paginator; it defaults to reloading through this controller
	OnPage PageRequestFunc

	inFlight atomic.Int32

	mu   sync.Mutex
	last *Outcome[T]
}

// State returns the current lifecycle state
func (controller *Controller[T]) State() State {
	if controller.inFlight.Load() > 0 {
		return StateLoading
	}
	return StateIdle
}

// Last returns the outcome of the most recently finished load
func (controller *Controller[T]) Last() *Outcome[T] {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.last
}

// Load reads and displays one page of records matching the filters
func (controller *Controller[T]) Load(ctx context.Context, filters filter.Set, page, pageSize int) (*Outcome[T], error) {
	if err := ValidateQuery(page, pageSize); err != nil {
		return nil, err
	}
	filters = filters.Clone()

	controller.inFlight.Add(1)
	defer controller.inFlight.Add(-1)

	outcome := &Outcome[T]{
		LoadID:  uuid.New(),
		State:   StateRendered,
		Filters: filters,
	}

	env, err := controller.Source.Fetch(ctx, filters, page, pageSize)
	if err != nil {
		outcome.Cause = err
		env = controller.substitute(outcome, page, pageSize)
	}
	outcome.Envelope = env

	if controller.Accumulator != nil {
		controller.Accumulator.Add(env.Items...)
	}

	renderErr := controller.Renderer.Render(env.Items)
	paginationErr := controller.Paginator.RenderPagination(env.Meta(), filters, controller.onPage())

	controller.mu.Lock()
	controller.last = outcome
	controller.mu.Unlock()

	if err := errors.Join(renderErr, paginationErr); err != nil {
		return outcome, fmt.Errorf("%s: %w", controller.Name, err)
	}
	return outcome, nil
}

func (controller *Controller[T]) substitute(outcome *Outcome[T], page, pageSize int) *envelope.Envelope[T] {
	logger := log.With().
		Str("entity", controller.Name).
		Str("load_id", outcome.LoadID.String()).
		Err(outcome.Cause).
		Logger()

	if controller.Fallback == nil {
		logger.Warn().Msg("could not load the list and sample data is disabled")
		outcome.State = StateFailed
		return envelope.New([]T{}, page, pageSize, 0)
	}

	env, err := controller.Fallback.Envelope(outcome.Filters, page, pageSize)
	if err != nil {
		logger.Error().AnErr("fallback_error", err).Msg("could not build the sample data")
		outcome.State = StateFailed
		return envelope.New([]T{}, page, pageSize, 0)
	}
	logger.Warn().Int("items", len(env.Items)).Msg("could not load the list; displaying sample data")
	outcome.State = StateRenderedFallback
	return env
}

func (controller *Controller[T]) onPage() PageRequestFunc {
	if controller.OnPage != nil {
		return controller.OnPage
	}
	return func(filters filter.Set, page, pageSize int) {
		if _, err := controller.Load(context.Background(), filters, page, pageSize); err != nil {
			log.Error().Err(err).Str("entity", controller.Name).Int("page", page).Msg("could not load the requested page")
		}
	}
}

// Drain loads every page sequentially, starting at page 1, until the last page or maxPages is reached.
// The accumulator is reset first. A failed read stops the drain; its substituted records replace whatever
// was accumulated so the result never mixes backend and sample records.
func (controller *Controller[T]) Drain(ctx context.Context, filters filter.Set, pageSize, maxPages int) (*Outcome[T], error) {
	if controller.Accumulator == nil {
		return nil, errors.New("draining a list requires an accumulator")
	}
	controller.Accumulator.Reset()

	var outcome *Outcome[T]
	for page := 1; maxPages <= 0 || page <= maxPages; page++ {
		var err error
		outcome, err = controller.Load(ctx, filters, page, pageSize)
		if err != nil {
			return outcome, err
		}
		if outcome.State != StateRendered {
			controller.Accumulator.Reset()
			if outcome.State == StateRenderedFallback {
				if err := controller.collectFallback(filters, pageSize); err != nil {
					return outcome, err
				}
			}
			break
		}
		if page >= outcome.Envelope.TotalPages {
			break
		}
	}
	return outcome, nil
}

func (controller *Controller[T]) collectFallback(filters filter.Set, pageSize int) error {
	for page := 1; ; page++ {
		env, err := controller.Fallback.Envelope(filters, page, pageSize)
		if err != nil {
			return fmt.Errorf("%s: %w", controller.Name, err)
		}
		controller.Accumulator.Add(env.Items...)
		if page >= env.TotalPages {
			return nil
		}
	}
}
