package logger

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/eatshare/eats-back/internal/config"
)

var (
	Module = fx.Provide(
		NewLogger,
	)
)

func NewLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.SugaredLogger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if cfg.LogMode == config.LogModeProduction {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, errors.Wrap(err, "build zap logger")
	}

	s := l.Sugar()
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// stderr/stdout syncs fail on some terminals
			_ = s.Sync()
			return nil
		},
	})

	return s, nil
}
