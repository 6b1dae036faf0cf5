package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile = "candlecraft.yml"
	ConfigEnv         = "CANDLE_CONFIG"

	DefaultCatalogFile = "products.json"
	DefaultPort        = 8000
)

// SysConfig system settings
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"` // empty keeps the host time zone
	Workdir  string `yaml:"workdir"`
}

// CatalogConfig product catalog settings
type CatalogConfig struct {
	File           string `yaml:"file"`
	BrandName      string `yaml:"brand_name"`
	Tagline        string `yaml:"tagline"`
	Currency       string `yaml:"currency"`
	CurrencySymbol string `yaml:"currency_symbol"`
}

// WebConfig dev server settings
type WebConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	Root        string `yaml:"root"`
	OpenBrowser bool   `yaml:"open_browser"`
}

// LogConfig logging settings
type LogConfig struct {
	Mode       string `yaml:"mode"`
	Level      string `yaml:"level"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type AppConfig struct {
	System  SysConfig     `yaml:"system"`
	Catalog CatalogConfig `yaml:"catalog"`
	Web     WebConfig     `yaml:"web"`
	Logger  LogConfig     `yaml:"logger"`
}

// DefaultLevel fills in the log level when neither the file nor the
// environment chose one.
func (c *LogConfig) DefaultLevel(level string) {
	if c.Level == "" {
		c.Level = level
	}
}

// GetLogDir returns the directory holding rotated log files
func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

// CatalogPath resolves the catalog file against the workdir
func (c *AppConfig) CatalogPath() string {
	if filepath.IsAbs(c.Catalog.File) {
		return c.Catalog.File
	}
	return filepath.Join(c.System.Workdir, c.Catalog.File)
}

// DefaultAppConfig returns the built-in configuration
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		System: SysConfig{
			Appid:   "CandleCatalog",
			Workdir: ".",
		},
		Catalog: CatalogConfig{
			File:           DefaultCatalogFile,
			BrandName:      "VDR Candle Crafts",
			Tagline:        "Handcrafted Candles for Every Moment",
			Currency:       "INR",
			CurrencySymbol: "₹",
		},
		Web: WebConfig{
			Host:        "",
			Port:        DefaultPort,
			Root:        ".",
			OpenBrowser: true,
		},
		Logger: LogConfig{
			Mode:       "development",
			Level:      "",
			FileEnable: false,
			Filename:   filepath.Join("logs", "candlecraft.log"),
		},
	}
}

// LoadConfig loads the configuration file. An empty path falls back to
// $CANDLE_CONFIG and then to candlecraft.yml in the current directory;
// when no file exists the defaults are used.
func LoadConfig(cfile string) (*AppConfig, error) {
	if cfile == "" {
		cfile = os.Getenv(ConfigEnv)
	}
	explicit := cfile != ""
	if cfile == "" {
		cfile = DefaultConfigFile
	}

	cfg := DefaultAppConfig()
	data, err := os.ReadFile(cfile)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", cfile)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return nil, errors.Wrapf(err, "read config %s", cfile)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *AppConfig) applyEnvOverrides() {
	setEnvValue("CANDLE_SYSTEM_WORKDIR", &c.System.Workdir)
	setEnvValue("CANDLE_SYSTEM_LOCATION", &c.System.Location)
	setEnvValue("CANDLE_CATALOG_FILE", &c.Catalog.File)
	setEnvValue("CANDLE_WEB_HOST", &c.Web.Host)
	setEnvIntValue("CANDLE_WEB_PORT", &c.Web.Port)
	setEnvValue("CANDLE_WEB_ROOT", &c.Web.Root)
	setEnvBoolValue("CANDLE_WEB_OPEN_BROWSER", &c.Web.OpenBrowser)
	setEnvValue("CANDLE_LOGGER_MODE", &c.Logger.Mode)
	setEnvValue("CANDLE_LOGGER_LEVEL", &c.Logger.Level)
	setEnvBoolValue("CANDLE_LOGGER_FILE_ENABLE", &c.Logger.FileEnable)
}

func setEnvValue(name string, val *string) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = evalue == "true" || evalue == "1" || evalue == "on"
	}
}

func setEnvIntValue(name string, val *int) {
	var evalue = strings.TrimSpace(os.Getenv(name))
	if evalue == "" {
		return
	}
	if p, err := strconv.Atoi(evalue); err == nil {
		*val = p
	}
}
