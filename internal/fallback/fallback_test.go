package fallback

import (
	"testing"

	"github.com/agrosuite/dashboard/internal/filter"
	"github.com/agrosuite/dashboard/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type animal struct {
	ID     int           `json:"id"`
	Name   string        `json:"name"`
	Status string        `json:"status"`
	Weight record.Number `json:"current_weight"`
}

var animalSchema = filter.Schema{
	{Param: "status", Kind: filter.Equal, Fields: []string{"status"}},
	{Param: "weight_min", Kind: filter.Min, Fields: []string{"current_weight"}},
	{Param: "search", Kind: filter.Contains, Fields: []string{"name"}},
}

func newSource(t *testing.T) *Source[animal] {
	store, err := New(Dataset{
		Table: "cattle/animals",
		Records: []any{
			animal{ID: 1, Name: "Mimosa", Status: "Em Engorda", Weight: 420},
			animal{ID: 2, Name: "Estrela", Status: "Vendido", Weight: 510},
		},
		IDField:     "id",
		StatusField: "status",
	})
	require.NoError(t, err)
	return &Source[animal]{Store: store, Table: "cattle/animals", Schema: animalSchema}
}

func TestNewRejectsDuplicateTables(t *testing.T) {
	_, err := New(Dataset{Table: "a", IDField: "id"}, Dataset{Table: "a", IDField: "id"})
	assert.Error(t, err)
}

func TestQueryUnknownTable(t *testing.T) {
	source := newSource(t)
	_, err := source.Store.Query("dairy/productions", "")
	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestEnvelopeWithoutFilters(t *testing.T) {
	env, err := newSource(t).Envelope(filter.Set{}, 1, 10)
	require.NoError(t, err)

	require.Len(t, env.Items, 2)
	assert.Equal(t, "Mimosa", env.Items[0].Name)
	assert.Equal(t, "Estrela", env.Items[1].Name)
	assert.Equal(t, 1, env.Page)
	assert.Equal(t, 2, env.TotalItems)
	assert.Equal(t, 1, env.TotalPages)
	assert.NoError(t, env.Validate())
}

func TestEnvelopeUsesStatusIndexCaseInsensitively(t *testing.T) {
	env, err := newSource(t).Envelope(filter.New(map[string]string{"status": "vendido"}), 1, 10)
	require.NoError(t, err)

	require.Len(t, env.Items, 1)
	assert.Equal(t, 2, env.Items[0].ID)
	assert.Equal(t, 1, env.TotalItems)
}

func TestEnvelopeReappliesOtherFilters(t *testing.T) {
	source := newSource(t)

	env, err := source.Envelope(filter.New(map[string]string{"weight_min": "500"}), 1, 10)
	require.NoError(t, err)
	require.Len(t, env.Items, 1)
	assert.Equal(t, "Estrela", env.Items[0].Name)

	env, err = source.Envelope(filter.New(map[string]string{"status": "Vendido", "search": "mim"}), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, env.Items)
	assert.Equal(t, 0, env.TotalPages)
}

func TestEnvelopeClampsRequestedPage(t *testing.T) {
	env, err := newSource(t).Envelope(filter.Set{}, 7, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, env.Page)
	assert.Len(t, env.Items, 2)
}

func TestEnvelopeResultsAreCopies(t *testing.T) {
	source := newSource(t)

	env, err := source.Envelope(filter.Set{}, 1, 10)
	require.NoError(t, err)
	env.Items[0].Name = "changed"
	env.Items = env.Items[:0]

	again, err := source.Envelope(filter.Set{}, 1, 10)
	require.NoError(t, err)
	require.Len(t, again.Items, 2)
	assert.Equal(t, "Mimosa", again.Items[0].Name)
}

func TestLookup(t *testing.T) {
	source := newSource(t)

	found, err := source.Lookup("2")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Estrela", found.Name)

	missing, err := source.Lookup("99")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
