package binding

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/labelkit/layout"
)

const recordsYAML = `
records:
  - name: Jane Doe
    address:
      - 42 Long Street
      - Springfield
    order:
      id: 1001
      items:
        - sku: A-1
    note: "Order ${order.id} for ${name}"
    empty: ""
    boxes: []
    "order id": X-9
  - name: John Roe
    address: |
      7 Short Road
      Shelbyville
`

func TestLoadRecordsShapes(t *testing.T) {
	list, err := LoadRecords(strings.NewReader(recordsYAML))
	require.NoError(t, err)
	assert.Len(t, list, 2)

	single, err := LoadRecords(strings.NewReader(`{"name": "solo"}`))
	require.NoError(t, err)
	assert.Len(t, single, 1)

	arr, err := LoadRecords(strings.NewReader(`[{"name": "a"}, {"name": "b"}, {"name": "c"}]`))
	require.NoError(t, err)
	assert.Len(t, arr, 3)

	none, err := LoadRecords(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = LoadRecords(strings.NewReader(`42`))
	assert.Error(t, err)
	_, err = LoadRecords(strings.NewReader("name: [unterminated"))
	assert.Error(t, err)
}

func TestRecordFromYAML(t *testing.T) {
	list, err := LoadRecords(strings.NewReader(recordsYAML))
	require.NoError(t, err)
	keys := []string{"name", "address", "note", "empty", "boxes", "order.items[0].sku", "order id", "missing"}
	recs := Records(list, keys)
	require.Len(t, recs, 2)

	want := layout.Record{
		"name":               {"Jane Doe"},
		"address":            {"42 Long Street", "Springfield"},
		"note":               {"Order 1001 for Jane Doe"},
		"boxes":              {},
		"order.items[0].sku": {"A-1"},
		"order id":           {"X-9"},
	}
	if diff := cmp.Diff(want, recs[0]); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}

	second := recs[1]
	assert.Equal(t, []string{"7 Short Road", "Shelbyville"}, second["address"])
	_, ok := second["note"]
	assert.False(t, ok)
}

func TestInterpolate(t *testing.T) {
	data := map[string]any{
		"user":  map[string]any{"name": "Ada", "tags": []any{"x", "y"}},
		"price": 12.5,
	}
	assert.Equal(t, "Hi Ada (y) 12.5", Interpolate("Hi ${user.name} (${ user.tags[1] }) ${price}", data))
	assert.Equal(t, "keep ${user.age}", Interpolate("keep ${user.age}", data))
	assert.Equal(t, "raw ${x}", Interpolate("raw ${x}", nil))
}

func TestResolve(t *testing.T) {
	data := map[string]any{
		"a.b": "dotted",
		"a":   map[string]any{"b": "nested", "list": []any{map[string]any{"c": 3}}},
	}
	v, ok := Resolve(data, "a.b")
	require.True(t, ok)
	assert.Equal(t, "dotted", v)

	v, ok = Resolve(data, "a.list[0].c")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = Resolve(data, "a.list[5].c")
	assert.False(t, ok)
	_, ok = Resolve(data, "a.list[x]")
	assert.False(t, ok)
}

func TestTruthiness(t *testing.T) {
	data := map[string]any{"zero": 0, "no": false, "nil": nil, "yes": true, "n": 7}
	rec := Record(data, []string{"zero", "no", "nil", "yes", "n"})
	assert.Equal(t, layout.Record{"yes": {"true"}, "n": {"7"}}, rec)
}

func TestParsePath(t *testing.T) {
	p, err := ParsePath("orders[1].lines[0].sku")
	require.NoError(t, err)
	want := []Step{
		{Key: "orders"}, {Index: 1, IsIdx: true},
		{Key: "lines"}, {Index: 0, IsIdx: true},
		{Key: "sku"},
	}
	if diff := cmp.Diff(want, p.steps); diff != "" {
		t.Fatalf("steps mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "orders[1].lines[0].sku", p.String())

	for _, bad := range []string{"a[", "a[-1]", "a[1]x", "a[one]"} {
		_, err := ParsePath(bad)
		assert.Error(t, err, bad)
	}
}

func TestInterpolateEdgeCases(t *testing.T) {
	data := map[string]any{"n": nil, "id": 7}
	assert.Equal(t, "${} ${n} #7", Interpolate("${} ${n} #${id}", data))
	assert.Equal(t, "no placeholders", Interpolate("no placeholders", data))
}
