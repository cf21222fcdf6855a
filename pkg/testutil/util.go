package testutil

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/pointroulette/backend/config"
	"github.com/pointroulette/backend/internal/entity"
	"github.com/pointroulette/backend/pkg/database"
	"github.com/pointroulette/backend/pkg/logger"
	"github.com/pointroulette/backend/pkg/xcontext"
)

// Now is the start time of every mock clock.
var Now = time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

// MockContext returns a context carrying a fresh migrated in-memory database,
// the default configs, a silent logger and a fake clock set to Now.
func MockContext() context.Context {
	ctx, _ := MockContextWithClock()
	return ctx
}

func MockContextWithClock() (context.Context, *clockwork.FakeClock) {
	// One connection makes concurrent transactions run one after another.
	db, err := database.Open(config.DatabaseConfigs{
		Driver:       "sqlite",
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		MaxOpenConns: 1,
	})
	if err != nil {
		panic(err)
	}

	clock := clockwork.NewFakeClockAt(Now)

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, config.Default())
	ctx = xcontext.WithLogger(ctx, logger.NewLoggerWithOutput("error", "text", io.Discard))
	ctx = xcontext.WithClock(ctx, clock)
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx, clock
}
