package logger

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/amis-classroom-bot/internal/config"
)

// New builds a production logger for the production environment and a
// development logger otherwise. LogLevel overrides the preset level.
func New(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.Env == "production" {
		zcfg = zap.NewProductionConfig()
	}

	if cfg.LogLevel != "" {
		lvl, err := zap.ParseAtomicLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		zcfg.Level = lvl
	}

	return zcfg.Build(zap.Fields(zap.String("env", cfg.Env)))
}
