package envelope

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestParseEnvelopeObject(t *testing.T) {
	body := []byte(`{"items":[{"id":1,"name":"a"},{"id":2,"name":"b"}],"page":2,"page_size":2,"total_items":5,"total_pages":3}`)

	env, shape, err := Parse[item](body, 10)
	require.NoError(t, err)
	assert.Equal(t, ShapeEnvelope, shape)

	expected := &Envelope[item]{
		Items:      []item{{1, "a"}, {2, "b"}},
		Page:       2,
		PageSize:   2,
		TotalItems: 5,
		TotalPages: 3,
	}
	if diff := cmp.Diff(expected, env); diff != "" {
		t.Fatalf("unexpected envelope (-want +got):\n%s", diff)
	}
}

func TestParseEnvelopeDerivesMissingMetadata(t *testing.T) {
	env, _, err := Parse[item]([]byte(`{"items":[{"id":1}],"total_items":21}`), 10)
	require.NoError(t, err)

	assert.Equal(t, 1, env.Page)
	assert.Equal(t, 10, env.PageSize)
	assert.Equal(t, 3, env.TotalPages)
}

func TestParseBareArray(t *testing.T) {
	env, shape, err := Parse[item]([]byte(`[{"id":1},{"id":2},{"id":3}]`), 10)
	require.NoError(t, err)

	assert.Equal(t, ShapeArray, shape)
	assert.Len(t, env.Items, 3)
	assert.Equal(t, 1, env.Page)
	assert.Equal(t, 3, env.PageSize)
	assert.Equal(t, 3, env.TotalItems)
	assert.Equal(t, 1, env.TotalPages)
	assert.NoError(t, env.Validate())
}

func TestParseEmptyBareArray(t *testing.T) {
	env, _, err := Parse[item]([]byte(`[]`), 10)
	require.NoError(t, err)

	assert.Empty(t, env.Items)
	assert.Equal(t, 10, env.PageSize)
	assert.Equal(t, 0, env.TotalPages)
}

func TestParseRejectsOtherShapes(t *testing.T) {
	bodies := []string{
		``,
		`null`,
		`"items"`,
		`42`,
		`{"data":[]}`,
		`{"items":{"id":1}}`,
		`{"items":[{"id":1},{"id":2}],"page_size":1}`,
		`{"items":[],"page":0}`,
		`{"items":[{"id":1}],"page_size":10,"total_items":30,"total_pages":2}`,
		`[{"id":"x"}]`,
	}
	for _, body := range bodies {
		_, _, err := Parse[item]([]byte(body), 10)
		assert.Error(t, err, body)
		assert.True(t, IsParseError(err), body)
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(5, 0))
}

func TestPaginate(t *testing.T) {
	all := make([]item, 23)
	for i := range all {
		all[i] = item{ID: i + 1}
	}

	env := Paginate(all, 3, 10)
	assert.Equal(t, 3, env.Page)
	assert.Len(t, env.Items, 3)
	assert.Equal(t, 21, env.Items[0].ID)
	assert.Equal(t, 3, env.TotalPages)
	assert.NoError(t, env.Validate())

	clamped := Paginate(all, 9, 10)
	assert.Equal(t, 3, clamped.Page)

	empty := Paginate([]item{}, 2, 10)
	assert.Equal(t, 1, empty.Page)
	assert.Empty(t, empty.Items)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestEnvelopeInvariantsHoldForPaginate(t *testing.T) {
	for total := 0; total < 40; total++ {
		all := make([]item, total)
		for size := 1; size < 12; size++ {
			for page := 1; page < 6; page++ {
				env := Paginate(all, page, size)
				require.NoError(t, env.Validate())
				assert.LessOrEqual(t, len(env.Items), env.PageSize)
				if env.TotalItems > 0 {
					assert.Equal(t, (env.TotalItems+size-1)/size, env.TotalPages)
				} else {
					assert.LessOrEqual(t, env.TotalPages, 1)
				}
			}
		}
	}
}
