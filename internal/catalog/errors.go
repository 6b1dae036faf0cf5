package catalog

import "github.com/pkg/errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrUnknownField    = errors.New("unknown product field")
	ErrEmptyCatalog    = errors.New("no products")
	ErrMissingColumn   = errors.New("missing required column")
)
