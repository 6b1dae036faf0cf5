package catalog

import (
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/vdrcandles/catalog/internal/domain"
)

// Stats summarizes the current collection. An empty catalog returns
// ErrEmptyCatalog.
func (s *Store) Stats() (domain.CatalogStats, error) {
	if len(s.products) == 0 {
		s.notify(NoticeInfo, "No products")
		return domain.CatalogStats{}, ErrEmptyCatalog
	}
	return Summarize(s.products)
}

// Summarize computes price and stock figures over products. Categories are
// grouped by exact name and reported in sorted order.
func Summarize(products []domain.Product) (domain.CatalogStats, error) {
	if len(products) == 0 {
		return domain.CatalogStats{}, ErrEmptyCatalog
	}

	prices := make(stats.Float64Data, 0, len(products))
	byCategory := make(map[string]stats.Float64Data)
	st := domain.CatalogStats{Count: len(products)}
	for _, p := range products {
		prices = append(prices, float64(p.Price))
		byCategory[p.Category] = append(byCategory[p.Category], float64(p.Price))
		if p.InStock {
			st.InStock++
		}
	}
	st.OutOfStock = st.Count - st.InStock
	st.Categories = len(byCategory)

	total, err := prices.Sum()
	if err != nil {
		return st, errors.Wrap(err, "sum prices")
	}
	mean, err := prices.Mean()
	if err != nil {
		return st, errors.Wrap(err, "mean price")
	}
	lo, err := prices.Min()
	if err != nil {
		return st, errors.Wrap(err, "min price")
	}
	hi, err := prices.Max()
	if err != nil {
		return st, errors.Wrap(err, "max price")
	}
	st.Total = int64(total)
	st.Average = mean
	st.Min = int64(lo)
	st.Max = int64(hi)

	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		avg, err := byCategory[name].Mean()
		if err != nil {
			return st, errors.Wrapf(err, "mean price for %s", name)
		}
		st.PerCategory = append(st.PerCategory, domain.CategoryStats{
			Name:    name,
			Count:   len(byCategory[name]),
			Average: avg,
		})
	}
	return st, nil
}
