package catalog

import (
	"os"
	"slices"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/asaskevich/EventBus"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/vdrcandles/catalog/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

// updatableFields lists the JSON field names Update accepts. id is left out
// so identifiers stay unique.
var updatableFields = map[string]bool{
	"name":           true,
	"price":          true,
	"currency":       true,
	"category":       true,
	"description":    true,
	"burn_time":      true,
	"wax_type":       true,
	"size":           true,
	"in_stock":       true,
	"original_price": true,
	"icon":           true,
}

// Store owns the in-memory product collection and its backing file.
// It has exactly one caller; there is no locking.
type Store struct {
	path        string
	brand       domain.Brand
	currency    string
	symbol      string
	now         func() time.Time
	bus         EventBus.Bus
	products    []domain.Product
	lastUpdated time.Time
}

type Option func(*Store)

func WithBrand(name, tagline string) Option {
	return func(s *Store) { s.brand = domain.Brand{Name: name, Tagline: tagline} }
}

// WithCurrency sets the currency code stored on new products and the symbol
// used in messages.
func WithCurrency(code, symbol string) Option {
	return func(s *Store) {
		s.currency = code
		s.symbol = symbol
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithBus publishes notices on bus instead of a private one.
func WithBus(bus EventBus.Bus) Option {
	return func(s *Store) { s.bus = bus }
}

// NewStore creates a store backed by path. Call Load before use.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:     path,
		brand:    domain.Brand{Name: "VDR Candle Crafts", Tagline: "Handcrafted Candles for Every Moment"},
		currency: "INR",
		symbol:   "₹",
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.bus == nil {
		s.bus = EventBus.New()
	}
	return s
}

func (s *Store) Path() string { return s.path }

func (s *Store) Bus() EventBus.Bus { return s.bus }

func (s *Store) CurrencySymbol() string { return s.symbol }

// LastUpdated reports the timestamp of the last load or save; zero if unknown.
func (s *Store) LastUpdated() time.Time { return s.lastUpdated }

// Load reads the catalog file. A missing file leaves the collection empty
// and is not an error.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.products = nil
		s.notify(NoticeWarn, "%s not found", s.path)
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "read %s", s.path)
	}

	var doc domain.CatalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrapf(err, "decode %s", s.path)
	}
	s.products = doc.Products

	if doc.LastUpdated != "" {
		ts, err := dateparse.ParseLocal(doc.LastUpdated)
		if err != nil {
			zap.L().Debug("unparseable last_updated", zap.String("value", doc.LastUpdated), zap.Error(err))
		} else {
			s.lastUpdated = ts
		}
	}

	s.notify(NoticeSuccess, "Loaded %d products", len(s.products))
	return nil
}

// Save overwrites the catalog file with the brand, every product and the
// current time.
func (s *Store) Save() error {
	now := s.now()
	products := s.products
	if products == nil {
		products = []domain.Product{}
	}
	doc := domain.CatalogDocument{
		Brand:       s.brand,
		Products:    products,
		LastUpdated: now.Format(lastUpdatedLayout),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode catalog")
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", s.path)
	}
	s.lastUpdated = now
	zap.L().Debug("catalog saved", zap.String("path", s.path), zap.Int("products", len(s.products)))
	s.notify(NoticeSuccess, "Saved %d products to %s", len(s.products), s.path)
	return nil
}

func (s *Store) nextID() int64 {
	var maxID int64
	for _, p := range s.products {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID + 1
}

// Add appends a product with the next identifier and saves. No field is
// validated.
func (s *Store) Add(np domain.NewProduct) (domain.Product, error) {
	p := domain.Product{
		ID:          s.nextID(),
		Name:        np.Name,
		Price:       np.Price,
		Currency:    s.currency,
		Category:    np.Category,
		Description: np.Description,
		BurnTime:    valueOr(np.BurnTime, domain.DefaultBurnTime),
		WaxType:     valueOr(np.WaxType, domain.DefaultWaxType),
		Size:        valueOr(np.Size, domain.DefaultSize),
		InStock:     true,
	}
	s.products = append(s.products, p)
	if err := s.Save(); err != nil {
		return p, err
	}
	s.notify(NoticeSuccess, "Added: #%d - %s (%s%d)", p.ID, p.Name, s.symbol, p.Price)
	return p, nil
}

// Update overwrites the named fields of product id and saves. Field names are
// the JSON names; values must already have the right type, though numeric
// strings are accepted for numeric fields.
func (s *Store) Update(id int64, fields map[string]interface{}) (domain.Product, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		s.notify(NoticeError, "Product #%d not found", id)
		return domain.Product{}, errors.Wrapf(ErrProductNotFound, "product #%d", id)
	}
	for name := range fields {
		if !updatableFields[name] {
			s.notify(NoticeError, "Unknown field '%s'", name)
			return domain.Product{}, errors.Wrapf(ErrUnknownField, "%q", name)
		}
	}

	updated := s.products[idx]
	if updated.OriginalPrice != nil {
		op := *updated.OriginalPrice
		updated.OriginalPrice = &op
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &updated,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return domain.Product{}, errors.Wrap(err, "update decoder")
	}
	if err := decoder.Decode(fields); err != nil {
		return domain.Product{}, errors.Wrapf(err, "update product #%d", id)
	}

	s.products[idx] = updated
	if err := s.Save(); err != nil {
		return updated, err
	}
	s.notify(NoticeSuccess, "Updated: %s", updated.Name)
	return updated, nil
}

// Delete removes product id and saves.
func (s *Store) Delete(id int64) error {
	before := len(s.products)
	s.products = slices.DeleteFunc(s.products, func(p domain.Product) bool { return p.ID == id })
	if len(s.products) == before {
		s.notify(NoticeError, "Product #%d not found", id)
		return errors.Wrapf(ErrProductNotFound, "product #%d", id)
	}
	if err := s.Save(); err != nil {
		return err
	}
	s.notify(NoticeSuccess, "Deleted product #%d", id)
	return nil
}

// Get returns product id.
func (s *Store) Get(id int64) (domain.Product, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Product{}, false
	}
	return s.products[idx], true
}

// Products returns a copy of the collection in file order.
func (s *Store) Products() []domain.Product {
	return slices.Clone(s.products)
}

func (s *Store) Len() int { return len(s.products) }

// FindByName matches q as a case-insensitive substring of product names.
func (s *Store) FindByName(q string) []domain.Product {
	fold := cases.Fold()
	needle := fold.String(q)
	var out []domain.Product
	for _, p := range s.products {
		if strings.Contains(fold.String(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out
}

// FindByCategory returns products whose category equals category, ignoring case.
func (s *Store) FindByCategory(category string) []domain.Product {
	fold := cases.Fold()
	want := fold.String(category)
	var out []domain.Product
	for _, p := range s.products {
		if fold.String(p.Category) == want {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) indexOf(id int64) int {
	return slices.IndexFunc(s.products, func(p domain.Product) bool { return p.ID == id })
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
