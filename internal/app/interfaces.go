package app

import (
	"github.com/vdrcandles/catalog/config"
	"github.com/vdrcandles/catalog/internal/catalog"
)

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// CatalogProvider builds catalog stores from the application configuration
type CatalogProvider interface {
	NewStore(opts ...catalog.Option) *catalog.Store
}

// AppContext combines the provider interfaces used by the binaries
type AppContext interface {
	ConfigProvider
	CatalogProvider

	Init() error
	Release()
}
