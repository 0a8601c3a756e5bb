package logger

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/kuis-bot/internal/config"
)

// New builds the application logger. Production uses JSON output at info level,
// other environments use the console encoder at debug level. LogLevel overrides
// the level and Debug forces debug logs.
func New(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.Env == "production" {
		zcfg = zap.NewProductionConfig()
	}

	if cfg.LogLevel != "" {
		level, err := zap.ParseAtomicLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		zcfg.Level = level
	}
	if cfg.Debug {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	return zcfg.Build(zap.Fields(zap.String("env", cfg.Env)))
}
