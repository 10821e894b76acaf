package docref

import "github.com/goliatone/go-docref/internal/runtimeconfig"

var (
	ErrScopeDirRequired     = runtimeconfig.ErrScopeDirRequired
	ErrLoggingLevelInvalid  = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid = runtimeconfig.ErrLoggingFormatInvalid
	ErrOutputFormatInvalid  = runtimeconfig.ErrOutputFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	ScopeConfig     = runtimeconfig.ScopeConfig
	ExtractorConfig = runtimeconfig.ExtractorConfig
	OutputConfig    = runtimeconfig.OutputConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
