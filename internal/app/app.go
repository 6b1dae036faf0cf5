package app

import (
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/pkg/errors"
	"github.com/vdrcandles/catalog/config"
	"github.com/vdrcandles/catalog/internal/catalog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Application struct {
	appConfig *config.AppConfig
	logger    *zap.Logger
}

// Ensure Application implements all interfaces
var (
	_ ConfigProvider  = (*Application)(nil)
	_ CatalogProvider = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Logger() *zap.Logger {
	return a.logger
}

// Init applies the configured time zone, if any, and installs the global zap logger.
func (a *Application) Init() error {
	cfg := a.appConfig
	if cfg.System.Location != "" {
		loc, err := time.LoadLocation(cfg.System.Location)
		if err != nil {
			zap.S().Error("timezone config error")
		} else {
			time.Local = loc
		}
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	a.logger = logger
	zap.ReplaceGlobals(logger)
	zap.L().Debug("application initialized",
		zap.String("appid", cfg.System.Appid),
		zap.String("workdir", cfg.System.Workdir))
	return nil
}

// newLogger writes to stderr so log lines never mix with prompts on stdout.
func newLogger(cfg *config.AppConfig) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	if cfg.Logger.Level != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(cfg.Logger.Level)); err != nil {
			return nil, errors.Wrapf(err, "logger level %q", cfg.Logger.Level)
		}
		zapConfig.Level = zap.NewAtomicLevelAt(level)
	}
	zapConfig.OutputPaths = []string{"stderr"}

	if !cfg.Logger.FileEnable {
		logger, err := zapConfig.Build(zap.AddCaller())
		if err != nil {
			return nil, errors.Wrap(err, "build logger")
		}
		return logger, nil
	}

	filename := cfg.Logger.Filename
	if !filepath.IsAbs(filename) {
		filename = filepath.Join(cfg.System.Workdir, filename)
	}
	lumberJackLogger := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    64,
		MaxBackups: 7,
		MaxAge:     7,
		Compress:   false,
	}

	core := zapcore.NewTee(
		zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(lumberJackLogger),
			zapConfig.Level,
		),
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(os.Stderr),
			zapConfig.Level,
		),
	)
	return zap.New(core, zap.AddCaller()), nil
}

// NewStore builds the catalog store described by the configuration.
func (a *Application) NewStore(opts ...catalog.Option) *catalog.Store {
	c := a.appConfig.Catalog
	base := []catalog.Option{
		catalog.WithBrand(c.BrandName, c.Tagline),
		catalog.WithCurrency(c.Currency, c.CurrencySymbol),
	}
	return catalog.NewStore(a.appConfig.CatalogPath(), append(base, opts...)...)
}

// Release flushes the logger.
func (a *Application) Release() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}
