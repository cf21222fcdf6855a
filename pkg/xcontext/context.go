package xcontext

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pointroulette/backend/config"
	"github.com/pointroulette/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	configsKey struct{}
	loggerKey  struct{}
	dbKey      struct{}
	dbTxKey    struct{}
	clockKey   struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsKey{}).(config.Configs)
	if !ok {
		return config.Default()
	}

	return cfg
}

func WithLogger(ctx context.Context, logger logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok {
		return logger.NewLogger("info", "text")
	}

	return l
}

func WithClock(ctx context.Context, clock clockwork.Clock) context.Context {
	return context.WithValue(ctx, clockKey{}, clock)
}

// Now returns the current time of the clock stored in ctx, in UTC.
func Now(ctx context.Context) time.Time {
	clock, ok := ctx.Value(clockKey{}).(clockwork.Clock)
	if !ok {
		return time.Now().UTC()
	}

	return clock.Now().UTC()
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the running transaction if there is one, otherwise the root
// database handle.
func DB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(dbTxKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}

	return ctx.Value(dbKey{}).(*gorm.DB).WithContext(ctx)
}
