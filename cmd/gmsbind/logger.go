package main

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/gmsbind/config"
	"github.com/wippyai/gmsbind/discover/gosrc"
	"github.com/wippyai/gmsbind/emit"
	"github.com/wippyai/gmsbind/session"
)

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, err
		}
	}

	var zc zap.Config
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

func installLogger(l *zap.Logger) {
	session.SetLogger(l.Named("session"))
	emit.SetLogger(l.Named("emit"))
	gosrc.SetLogger(l.Named("gosrc"))
}
