package posts

import "github.com/goliatone/go-posts/internal/runtimeconfig"

var (
	ErrMissingContentDir         = runtimeconfig.ErrMissingContentDir
	ErrMissingOutputDir          = runtimeconfig.ErrMissingOutputDir
	ErrBaseURLRequired           = runtimeconfig.ErrBaseURLRequired
	ErrPersistenceRequiresSQLite = runtimeconfig.ErrPersistenceRequiresSQLite
	ErrStorageProviderUnknown    = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDSNRequired        = runtimeconfig.ErrStorageDSNRequired
	ErrWorkerCountInvalid        = runtimeconfig.ErrWorkerCountInvalid
	ErrLintThresholdInvalid      = runtimeconfig.ErrLintThresholdInvalid
	ErrDurationInvalid           = runtimeconfig.ErrDurationInvalid
	ErrLoggingProviderRequired   = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown    = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid       = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid      = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	ContentConfig = runtimeconfig.ContentConfig
	SiteConfig    = runtimeconfig.SiteConfig
	StorageConfig = runtimeconfig.StorageConfig
	CacheConfig   = runtimeconfig.CacheConfig
	LintConfig    = runtimeconfig.LintConfig
	ExportConfig  = runtimeconfig.ExportConfig
	WatchConfig   = runtimeconfig.WatchConfig
	Features      = runtimeconfig.Features
	LoggingConfig = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML configuration file and fills unset values with defaults.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}
