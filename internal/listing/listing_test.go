package listing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/agrosuite/dashboard/internal/envelope"
	"github.com/agrosuite/dashboard/internal/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type animal struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
}

const (
	timeout = time.Second
	tick    = 5 * time.Millisecond
)

var schema = filter.Schema{{Param: "status", Kind: filter.Equal, Fields: []string{"status"}}}

type fakeSource struct {
	mu    sync.Mutex
	calls []filter.Set
	fetch func(page, pageSize int) (*envelope.Envelope[animal], error)
}

func (source *fakeSource) Fetch(_ context.Context, filters filter.Set, page, pageSize int) (*envelope.Envelope[animal], error) {
	source.mu.Lock()
	source.calls = append(source.calls, filters)
	source.mu.Unlock()
	return source.fetch(page, pageSize)
}

type samples []animal

func (s samples) Envelope(filters filter.Set, page, pageSize int) (*envelope.Envelope[animal], error) {
	return envelope.Paginate(filter.Apply(schema, []animal(s), filters), page, pageSize), nil
}

type recorder struct {
	renders     [][]animal
	paginations []envelope.Meta
	onPage      PageRequestFunc
}

func (rec *recorder) Render(records []animal) error {
	rec.renders = append(rec.renders, records)
	return nil
}

func (rec *recorder) RenderPagination(meta envelope.Meta, _ filter.Set, onPage PageRequestFunc) error {
	rec.paginations = append(rec.paginations, meta)
	rec.onPage = onPage
	return nil
}

func newController(source *fakeSource, fallback Fallback[animal]) (*Controller[animal], *recorder) {
	rec := &recorder{}
	return &Controller[animal]{
		Name:      "cattle/animals",
		Source:    source,
		Renderer:  rec,
		Paginator: rec,
		Fallback:  fallback,
	}, rec
}

var sampleAnimals = samples{{ID: 1, Status: "Em Engorda"}, {ID: 2, Status: "Vendido"}}

func failing(err error) *fakeSource {
	return &fakeSource{fetch: func(int, int) (*envelope.Envelope[animal], error) { return nil, err }}
}

func TestLoadRejectsInvalidQueries(t *testing.T) {
	source := failing(errors.New("unreachable"))
	controller, rec := newController(source, sampleAnimals)

	_, err := controller.Load(context.Background(), nil, 0, 10)
	assert.ErrorIs(t, err, ErrInvalidPage)
	_, err = controller.Load(context.Background(), nil, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidPageSize)

	assert.Empty(t, source.calls)
	assert.Empty(t, rec.renders)
	assert.Empty(t, rec.paginations)
}

func TestLoadRendersBackendPage(t *testing.T) {
	source := &fakeSource{fetch: func(page, pageSize int) (*envelope.Envelope[animal], error) {
		return envelope.New([]animal{{ID: 11}, {ID: 12}}, page, pageSize, 12), nil
	}}
	controller, rec := newController(source, sampleAnimals)

	outcome, err := controller.Load(context.Background(), filter.New(map[string]string{"status": "Vendido"}), 2, 2)
	require.NoError(t, err)

	assert.Equal(t, StateRendered, outcome.State)
	assert.NoError(t, outcome.Cause)
	require.Len(t, rec.renders, 1)
	require.Len(t, rec.paginations, 1)
	assert.Equal(t, envelope.Meta{Page: 2, PageSize: 2, TotalItems: 12, TotalPages: 6}, rec.paginations[0])
	assert.Equal(t, StateIdle, controller.State())
	assert.Same(t, outcome, controller.Last())
}

func TestLoadFallsBackOnFailure(t *testing.T) {
	controller, rec := newController(failing(errors.New("connection refused")), sampleAnimals)

	outcome, err := controller.Load(context.Background(), nil, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, StateRenderedFallback, outcome.State)
	assert.EqualError(t, outcome.Cause, "connection refused")
	require.Len(t, rec.renders, 1)
	assert.Len(t, rec.renders[0], 2)
	require.Len(t, rec.paginations, 1)
	assert.Equal(t, 1, rec.paginations[0].TotalPages)
	assert.NotEqual(t, outcome.LoadID.String(), "")
}

func TestLoadFallbackReappliesFilters(t *testing.T) {
	controller, rec := newController(failing(errors.New("timeout")), sampleAnimals)

	_, err := controller.Load(context.Background(), filter.New(map[string]string{"status": "Em Engorda"}), 1, 10)
	require.NoError(t, err)

	require.Len(t, rec.renders, 1)
	assert.Equal(t, []animal{{ID: 1, Status: "Em Engorda"}}, rec.renders[0])
}

func TestLoadWithoutFallbackRendersEmptyState(t *testing.T) {
	controller, rec := newController(failing(errors.New("500")), nil)

	outcome, err := controller.Load(context.Background(), nil, 3, 10)
	require.NoError(t, err)

	assert.Equal(t, StateFailed, outcome.State)
	require.Len(t, rec.renders, 1)
	assert.Empty(t, rec.renders[0])
	require.Len(t, rec.paginations, 1)
	assert.Equal(t, 0, rec.paginations[0].TotalPages)
}

func TestLoadReportsRenderErrorsAfterInvokingBoth(t *testing.T) {
	source := &fakeSource{fetch: func(page, pageSize int) (*envelope.Envelope[animal], error) {
		return envelope.New([]animal{}, page, pageSize, 0), nil
	}}
	paginations := 0
	controller := &Controller[animal]{
		Name:     "cattle/animals",
		Source:   source,
		Renderer: RendererFunc[animal](func([]animal) error { return errors.New("broken template") }),
		Paginator: PaginatorFunc(func(envelope.Meta, filter.Set, PageRequestFunc) error {
			paginations++
			return nil
		}),
	}

	_, err := controller.Load(context.Background(), nil, 1, 10)
	assert.ErrorContains(t, err, "broken template")
	assert.Equal(t, 1, paginations)
}

func TestOnPageReloadsWithSameFilters(t *testing.T) {
	source := &fakeSource{fetch: func(page, pageSize int) (*envelope.Envelope[animal], error) {
		return envelope.New([]animal{{ID: page}}, page, pageSize, 30), nil
	}}
	controller, rec := newController(source, sampleAnimals)
	filters := filter.New(map[string]string{"status": "Vendido"})

	_, err := controller.Load(context.Background(), filters, 1, 10)
	require.NoError(t, err)
	require.NotNil(t, rec.onPage)

	rec.onPage(filters, 3, 10)

	require.Len(t, source.calls, 2)
	assert.True(t, source.calls[1].Equal(filters))
	require.Len(t, rec.paginations, 2)
	assert.Equal(t, 3, rec.paginations[1].Page)
}

func TestConcurrentLoadsEachRenderOnce(t *testing.T) {
	release := make(chan struct{})
	source := &fakeSource{fetch: func(page, pageSize int) (*envelope.Envelope[animal], error) {
		<-release
		return envelope.New([]animal{{ID: page}}, page, pageSize, 20), nil
	}}
	var mu sync.Mutex
	renders := 0
	controller := &Controller[animal]{
		Name:   "cattle/animals",
		Source: source,
		Renderer: RendererFunc[animal](func([]animal) error {
			mu.Lock()
			defer mu.Unlock()
			renders++
			return nil
		}),
		Paginator: PaginatorFunc(func(envelope.Meta, filter.Set, PageRequestFunc) error { return nil }),
	}

	var wg sync.WaitGroup
	for page := 1; page <= 2; page++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()
			_, err := controller.Load(context.Background(), nil, page, 10)
			assert.NoError(t, err)
		}(page)
	}
	require.Eventually(t, func() bool { return controller.State() == StateLoading }, timeout, tick)
	close(release)
	wg.Wait()

	assert.Equal(t, 2, renders)
	assert.Equal(t, StateIdle, controller.State())
}

func TestDrainAccumulatesEveryPage(t *testing.T) {
	source := &fakeSource{fetch: func(page, pageSize int) (*envelope.Envelope[animal], error) {
		all := make([]animal, 25)
		for i := range all {
			all[i] = animal{ID: i + 1}
		}
		return envelope.Paginate(all, page, pageSize), nil
	}}
	controller, _ := newController(source, sampleAnimals)
	controller.Accumulator = &Accumulator[animal]{}
	controller.Accumulator.Add(animal{ID: 99})

	outcome, err := controller.Drain(context.Background(), nil, 10, 0)
	require.NoError(t, err)

	assert.Equal(t, StateRendered, outcome.State)
	assert.Len(t, source.calls, 3)
	rows := controller.Accumulator.Rows()
	require.Len(t, rows, 25)
	assert.Equal(t, 1, rows[0].ID)
	assert.Equal(t, 25, rows[24].ID)
}

func TestDrainStopsAtMaxPages(t *testing.T) {
	source := &fakeSource{fetch: func(page, pageSize int) (*envelope.Envelope[animal], error) {
		return envelope.New([]animal{{ID: page}}, page, pageSize, 1000), nil
	}}
	controller, _ := newController(source, sampleAnimals)
	controller.Accumulator = &Accumulator[animal]{}

	_, err := controller.Drain(context.Background(), nil, 1, 4)
	require.NoError(t, err)
	assert.Len(t, source.calls, 4)
	assert.Equal(t, 4, controller.Accumulator.Len())
}

func TestDrainReplacesPartialRowsWithSamples(t *testing.T) {
	source := &fakeSource{fetch: func(page, pageSize int) (*envelope.Envelope[animal], error) {
		if page > 1 {
			return nil, fmt.Errorf("page %d: connection reset", page)
		}
		return envelope.New([]animal{{ID: 100}}, page, pageSize, 5), nil
	}}
	controller, _ := newController(source, sampleAnimals)
	controller.Accumulator = &Accumulator[animal]{}

	outcome, err := controller.Drain(context.Background(), nil, 1, 0)
	require.NoError(t, err)

	assert.Equal(t, StateRenderedFallback, outcome.State)
	assert.Equal(t, []animal(sampleAnimals), controller.Accumulator.Rows())
}

func TestDrainRequiresAccumulator(t *testing.T) {
	controller, _ := newController(failing(errors.New("x")), nil)
	_, err := controller.Drain(context.Background(), nil, 10, 0)
	assert.Error(t, err)
}
