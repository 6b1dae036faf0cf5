package domain

import jsoniter "github.com/json-iterator/go"

const (
	DefaultBurnTime = "30-40 hours"
	DefaultWaxType  = "Soy Wax"
	DefaultSize     = "200g"
)

// Product is one sellable candle in the catalog
type Product struct {
	ID            int64  `json:"id" mapstructure:"id" csv:"id"`
	Name          string `json:"name" mapstructure:"name" csv:"name"`
	Price         int64  `json:"price" mapstructure:"price" csv:"price"`
	Currency      string `json:"currency" mapstructure:"currency" csv:"-"`
	Category      string `json:"category" mapstructure:"category" csv:"category"`
	Description   string `json:"description" mapstructure:"description" csv:"description"`
	BurnTime      string `json:"burn_time" mapstructure:"burn_time" csv:"burn_time"`
	WaxType       string `json:"wax_type" mapstructure:"wax_type" csv:"wax_type"`
	Size          string `json:"size" mapstructure:"size" csv:"size"`
	InStock       bool   `json:"in_stock" mapstructure:"in_stock" csv:"in_stock"`
	OriginalPrice *int64 `json:"original_price,omitempty" mapstructure:"original_price" csv:"-"` // shown struck through on the storefront
	Icon          string `json:"icon,omitempty" mapstructure:"icon" csv:"-"`                     // placeholder glyph when no image exists
}

// UnmarshalJSON treats a missing in_stock as true, matching records written
// before the field existed.
func (p *Product) UnmarshalJSON(data []byte) error {
	type product Product
	v := product{InStock: true}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Product(v)
	return nil
}

// NewProduct holds the caller supplied fields for a new product.
// Empty BurnTime, WaxType and Size take the catalog defaults.
type NewProduct struct {
	Name        string
	Price       int64
	Category    string
	Description string
	BurnTime    string
	WaxType     string
	Size        string
}

// Brand metadata written at the top of the catalog document
type Brand struct {
	Name    string `json:"name"`
	Tagline string `json:"tagline"`
}

// CatalogDocument is the on-disk shape of the catalog
type CatalogDocument struct {
	Brand       Brand     `json:"brand"`
	Products    []Product `json:"products"`
	LastUpdated string    `json:"last_updated"`
}

// CategoryStats aggregates one category
type CategoryStats struct {
	Name    string
	Count   int
	Average float64
}

// CatalogStats summarizes the whole catalog
type CatalogStats struct {
	Count       int
	InStock     int
	OutOfStock  int
	Categories  int
	Average     float64
	Min         int64
	Max         int64
	Total       int64
	PerCategory []CategoryStats
}
