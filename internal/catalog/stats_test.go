package catalog

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vdrcandles/catalog/internal/domain"
)

func TestStats(t *testing.T) {
	s, _ := newTestStore(t)
	addCandle(t, s, "one", 100, "A")
	addCandle(t, s, "two", 200, "A")
	addCandle(t, s, "three", 300, "B")
	_, err := s.Update(3, map[string]interface{}{"in_stock": false})
	require.NoError(t, err)

	st, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, 3, st.Count)
	assert.Equal(t, 2, st.InStock)
	assert.Equal(t, 1, st.OutOfStock)
	assert.Equal(t, 2, st.Categories)
	assert.Equal(t, int64(600), st.Total)
	assert.InDelta(t, 200.0, st.Average, 1e-9)
	assert.Equal(t, int64(100), st.Min)
	assert.Equal(t, int64(300), st.Max)
	assert.Equal(t, []domain.CategoryStats{
		{Name: "A", Count: 2, Average: 150},
		{Name: "B", Count: 1, Average: 300},
	}, st.PerCategory)
}

func TestStats_Empty(t *testing.T) {
	s, notices := newTestStore(t)
	_, err := s.Stats()
	assert.True(t, errors.Is(err, ErrEmptyCatalog))
	assert.Equal(t, "No products", lastNotice(t, notices).Message)
}

func TestSummarize_CategoriesAreCaseSensitiveAndSorted(t *testing.T) {
	st, err := Summarize([]domain.Product{
		{Price: 10, Category: "jars"},
		{Price: 20, Category: "Jars"},
		{Price: 30, Category: "Candles"},
	})
	require.NoError(t, err)
	require.Len(t, st.PerCategory, 3)
	assert.Equal(t, "Candles", st.PerCategory[0].Name)
	assert.Equal(t, "Jars", st.PerCategory[1].Name)
	assert.Equal(t, "jars", st.PerCategory[2].Name)
}

func TestRenderStats(t *testing.T) {
	st, err := Summarize([]domain.Product{
		{Price: 100, Category: "A", InStock: true},
		{Price: 200, Category: "A", InStock: true},
		{Price: 300, Category: "B", InStock: true},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	RenderStats(&buf, st, "₹")
	out := buf.String()
	assert.Contains(t, out, "Total Products: 3")
	assert.Contains(t, out, "Average Price: ₹200.00")
	assert.Contains(t, out, "Total Value: ₹600")
	assert.Contains(t, out, "  A: 2 products (avg: ₹150)")
	assert.Contains(t, out, "  B: 1 products (avg: ₹300)")
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	RenderTable(&buf, nil, "₹")
	assert.Equal(t, "No products found\n", buf.String())

	buf.Reset()
	RenderTable(&buf, []domain.Product{
		{ID: 1, Name: "Lavender", Price: 350, Category: "Candles", InStock: true},
		{ID: 2, Name: "Rose", Price: 520, Category: "Jars"},
	}, "₹")
	out := buf.String()
	assert.Contains(t, out, "1   Lavender             ₹350     Candles         ✓ Yes")
	assert.Contains(t, out, "✗ No")
	assert.Contains(t, out, "Total: 2 products")
}

func TestParseInt(t *testing.T) {
	cases := map[string]int64{
		"42": 42, " 010 ": 10, "0": 0, "000": 0, "-7": -7, "+3": 3,
		"1_000": 1000, "-0_050": -50, "99999999999": 99999999999,
	}
	for in, want := range cases {
		got, err := ParseInt(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "abc", "12.5", "0x10", "-", "0o17", "_1", "1_", "1__0", "1 000"} {
		_, err := ParseInt(in)
		assert.Error(t, err, in)
	}
}

func TestParseAffirmative(t *testing.T) {
	for _, in := range []string{"true", "YES", "1", " Yes "} {
		assert.True(t, ParseAffirmative(in), in)
	}
	for _, in := range []string{"no", "false", "0", "y", ""} {
		assert.False(t, ParseAffirmative(in), in)
	}
}
