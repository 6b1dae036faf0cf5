package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vdrcandles/catalog/internal/domain"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 589000000, time.Local)

func newTestStore(t *testing.T) (*Store, *[]Notice) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	s := NewStore(path, WithClock(func() time.Time { return fixedNow }))
	var notices []Notice
	require.NoError(t, SubscribeNotices(s.Bus(), func(n Notice) { notices = append(notices, n) }))
	require.NoError(t, s.Load())
	return s, &notices
}

func addCandle(t *testing.T, s *Store, name string, price int64, category string) domain.Product {
	t.Helper()
	p, err := s.Add(domain.NewProduct{Name: name, Price: price, Category: category, Description: name + " candle"})
	require.NoError(t, err)
	return p
}

func lastNotice(t *testing.T, notices *[]Notice) Notice {
	t.Helper()
	require.NotEmpty(t, *notices)
	return (*notices)[len(*notices)-1]
}

func TestLoad_MissingFileStartsEmpty(t *testing.T) {
	s, notices := newTestStore(t)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, NoticeWarn, (*notices)[0].Level)
	assert.Contains(t, (*notices)[0].Message, "not found")
}

func TestLoad_MalformedDocumentFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	s := NewStore(path)
	assert.Error(t, s.Load())
}

func TestLoad_MissingInStockDefaultsTrue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	doc := `{"brand":{"name":"x","tagline":"y"},"products":[{"id":3,"name":"Rose","price":450,"category":"Candles"}],"last_updated":"2024-11-02T18:45:10.123456"}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	s := NewStore(path)
	require.NoError(t, s.Load())
	p, ok := s.Get(3)
	require.True(t, ok)
	assert.True(t, p.InStock)
	assert.Equal(t, 2024, s.LastUpdated().Year())
	assert.Equal(t, time.November, s.LastUpdated().Month())
}

func TestAdd_AssignsSequentialIDs(t *testing.T) {
	s, notices := newTestStore(t)

	p := addCandle(t, s, "Lavender", 350, "Candles")
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "INR", p.Currency)
	assert.Equal(t, domain.DefaultBurnTime, p.BurnTime)
	assert.Equal(t, domain.DefaultWaxType, p.WaxType)
	assert.Equal(t, domain.DefaultSize, p.Size)
	assert.True(t, p.InStock)
	assert.Equal(t, "Added: #1 - Lavender (₹350)", lastNotice(t, notices).Message)
}

func TestAdd_NextIDFollowsMaximum(t *testing.T) {
	s, _ := newTestStore(t)
	addCandle(t, s, "a", 1, "A")
	addCandle(t, s, "b", 2, "A")
	addCandle(t, s, "c", 3, "A")

	// punch holes so the maximum is 7 while only three products exist
	s.products[0].ID = 7
	s.products[1].ID = 2
	s.products[2].ID = 5

	p := addCandle(t, s, "next", 10, "A")
	assert.Equal(t, int64(8), p.ID)
}

func TestAdd_KeepsExplicitOptionalFields(t *testing.T) {
	s, _ := newTestStore(t)
	p, err := s.Add(domain.NewProduct{Name: "Pillar", Price: 900, Category: "Pillars", BurnTime: "60 hours", WaxType: "Beeswax", Size: "500g"})
	require.NoError(t, err)
	assert.Equal(t, "60 hours", p.BurnTime)
	assert.Equal(t, "Beeswax", p.WaxType)
	assert.Equal(t, "500g", p.Size)
}

func TestAdd_AcceptsAnyValue(t *testing.T) {
	s, _ := newTestStore(t)
	p, err := s.Add(domain.NewProduct{Name: "", Price: -5})
	require.NoError(t, err)
	assert.Equal(t, int64(-5), p.Price)
}

func TestUpdate_PriceOnlyTouchesPrice(t *testing.T) {
	s, _ := newTestStore(t)
	first := addCandle(t, s, "Lavender", 350, "Candles")
	second := addCandle(t, s, "Vanilla", 400, "Candles")

	updated, err := s.Update(first.ID, map[string]interface{}{"price": int64(375)})
	require.NoError(t, err)

	want := first
	want.Price = 375
	assert.Equal(t, want, updated)
	got, _ := s.Get(second.ID)
	assert.Equal(t, second, got)
}

func TestUpdate_StockAndOptionalFields(t *testing.T) {
	s, _ := newTestStore(t)
	p := addCandle(t, s, "Lavender", 350, "Candles")

	updated, err := s.Update(p.ID, map[string]interface{}{
		"in_stock":       false,
		"original_price": int64(499),
		"description":    "calming",
	})
	require.NoError(t, err)
	assert.False(t, updated.InStock)
	require.NotNil(t, updated.OriginalPrice)
	assert.Equal(t, int64(499), *updated.OriginalPrice)
	assert.Equal(t, "calming", updated.Description)
}

func TestUpdate_NotFound(t *testing.T) {
	s, notices := newTestStore(t)
	addCandle(t, s, "Lavender", 350, "Candles")
	before := s.Products()

	_, err := s.Update(42, map[string]interface{}{"price": int64(1)})
	assert.True(t, errors.Is(err, ErrProductNotFound))
	assert.Equal(t, before, s.Products())
	assert.Equal(t, "Product #42 not found", lastNotice(t, notices).Message)
}

func TestUpdate_RejectsIdentifierAndUnknownFields(t *testing.T) {
	s, _ := newTestStore(t)
	p := addCandle(t, s, "Lavender", 350, "Candles")

	_, err := s.Update(p.ID, map[string]interface{}{"id": int64(9)})
	assert.True(t, errors.Is(err, ErrUnknownField))
	_, err = s.Update(p.ID, map[string]interface{}{"colour": "red"})
	assert.True(t, errors.Is(err, ErrUnknownField))

	got, _ := s.Get(p.ID)
	assert.Equal(t, p, got)
}

func TestDelete(t *testing.T) {
	s, notices := newTestStore(t)
	addCandle(t, s, "Lavender", 350, "Candles")
	addCandle(t, s, "Vanilla", 400, "Candles")

	require.NoError(t, s.Delete(1))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "Deleted product #1", lastNotice(t, notices).Message)

	before := s.Products()
	err := s.Delete(99)
	assert.True(t, errors.Is(err, ErrProductNotFound))
	assert.Equal(t, before, s.Products())
	assert.Equal(t, "Product #99 not found", lastNotice(t, notices).Message)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	addCandle(t, s, "Lavender", 350, "Candles")
	addCandle(t, s, "Rose Jar", 520, "Jars")
	_, err := s.Update(2, map[string]interface{}{"in_stock": false, "icon": "🕯️"})
	require.NoError(t, err)

	reloaded := NewStore(s.Path())
	require.NoError(t, reloaded.Load())
	assert.Equal(t, s.Products(), reloaded.Products())
	assert.Equal(t, fixedNow.Format(lastUpdatedLayout), reloaded.LastUpdated().Format(lastUpdatedLayout))
}

func TestSave_DocumentLayout(t *testing.T) {
	s, _ := newTestStore(t)
	addCandle(t, s, "Jasmine & Oud", 650, "Candles")

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `"brand": {`)
	assert.Contains(t, text, `"name": "Jasmine & Oud"`)
	assert.Contains(t, text, `"last_updated": "2025-03-14T09:26:53.589000"`)
	assert.NotContains(t, text, "original_price")
	assert.Less(t, strings.Index(text, `"brand"`), strings.Index(text, `"products"`))
	assert.Less(t, strings.Index(text, `"products"`), strings.Index(text, `"last_updated"`))
}

func TestSave_EmptyCatalogWritesEmptyArray(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Save())
	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"products": []`)
}

func TestFindByName(t *testing.T) {
	s, _ := newTestStore(t)
	addCandle(t, s, "Lavender Dream", 350, "Candles")
	addCandle(t, s, "Vanilla", 400, "Candles")

	got := s.FindByName("LAVENDER")
	require.Len(t, got, 1)
	assert.Equal(t, "Lavender Dream", got[0].Name)
	assert.Empty(t, s.FindByName("cedar"))
}

func TestFindByCategory(t *testing.T) {
	s, _ := newTestStore(t)
	addCandle(t, s, "Lavender", 350, "Candles")
	addCandle(t, s, "Rose Jar", 520, "Jars")

	got := s.FindByCategory("candles")
	require.Len(t, got, 1)
	assert.Equal(t, "Lavender", got[0].Name)
	assert.Empty(t, s.FindByCategory("Cand"))
	assert.Empty(t, s.FindByCategory("gifts"))
}
