package catalog

import jsoniter "github.com/json-iterator/go"

// json keeps non-ASCII names and descriptions readable in the catalog file.
var json = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

const lastUpdatedLayout = "2006-01-02T15:04:05.000000"
