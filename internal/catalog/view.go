package catalog

import (
	"fmt"
	"io"
	"strings"

	"github.com/vdrcandles/catalog/internal/domain"
)

// List writes the product table to w.
func (s *Store) List(w io.Writer) {
	RenderTable(w, s.products, s.symbol)
}

// RenderTable prints products as a fixed-width table.
func RenderTable(w io.Writer, products []domain.Product, symbol string) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products found")
		return
	}

	rule := strings.Repeat("=", 80)
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-3s %-20s %-8s %-15s %-8s\n", "ID", "Name", "Price", "Category", "Stock")
	fmt.Fprintln(w, rule)
	for _, p := range products {
		stock := "✓ Yes"
		if !p.InStock {
			stock = "✗ No"
		}
		fmt.Fprintf(w, "%-3d %-20s %s%-7d %-15s %-8s\n", p.ID, p.Name, symbol, p.Price, p.Category, stock)
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total: %d products\n\n", len(products))
}

// RenderMatches prints a short "#id: name - price" line per product.
func RenderMatches(w io.Writer, products []domain.Product, symbol string) {
	for _, p := range products {
		fmt.Fprintf(w, "  #%d: %s - %s%d\n", p.ID, p.Name, symbol, p.Price)
	}
}

// RenderStats prints the statistics report.
func RenderStats(w io.Writer, st domain.CatalogStats, symbol string) {
	rule := strings.Repeat("=", 40)
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "PRODUCT STATISTICS")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total Products: %d\n", st.Count)
	fmt.Fprintf(w, "In Stock: %d\n", st.InStock)
	fmt.Fprintf(w, "Out of Stock: %d\n", st.OutOfStock)
	fmt.Fprintf(w, "Categories: %d\n", st.Categories)
	fmt.Fprintf(w, "Average Price: %s%.2f\n", symbol, st.Average)
	fmt.Fprintf(w, "Min Price: %s%d\n", symbol, st.Min)
	fmt.Fprintf(w, "Max Price: %s%d\n", symbol, st.Max)
	fmt.Fprintf(w, "Total Value: %s%d\n", symbol, st.Total)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Categories:")
	for _, c := range st.PerCategory {
		fmt.Fprintf(w, "  %s: %d products (avg: %s%.0f)\n", c.Name, c.Count, symbol, c.Average)
	}
}
