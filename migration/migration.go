package migration

import (
	"context"
	"time"

	"github.com/pointroulette/backend/internal/entity"
	"github.com/pointroulette/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm/clause"
)

// Migrators are selected by the --version flag of the migrate command.
var Migrators = map[string]func(context.Context) error{
	"auto":   AutoMigrate,
	"latest": Migrate,
}

// versions must only be appended to. A version which has been applied once
// is never run again.
var versions = map[string]func(context.Context) error{
	"0000": migrate0000,
}

type schemaMigration struct {
	Version   string `gorm:"primarykey;size:16"`
	AppliedAt time.Time
}

// AutoMigrate brings every table to the latest layout without recording
// versions. When this migrator is called, no need to call other migrators.
func AutoMigrate(ctx context.Context) error {
	return entity.MigrateTable(ctx)
}

// Migrate applies the pending versions in order.
func Migrate(ctx context.Context) error {
	db := xcontext.DB(ctx)
	if err := db.AutoMigrate(&schemaMigration{}); err != nil {
		return err
	}

	var applied []string
	if err := db.Model(&schemaMigration{}).Pluck("version", &applied).Error; err != nil {
		return err
	}

	pending := []string{}
	for version := range versions {
		if !slices.Contains(applied, version) {
			pending = append(pending, version)
		}
	}
	slices.Sort(pending)

	for _, version := range pending {
		xcontext.Logger(ctx).Infof("Applying migration %s", version)
		if err := versions[version](ctx); err != nil {
			return err
		}

		record := &schemaMigration{Version: version, AppliedAt: xcontext.Now(ctx)}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(record).Error; err != nil {
			return err
		}
	}

	return nil
}

// migrate0000 will create the database with the latest version.
func migrate0000(ctx context.Context) error {
	return entity.MigrateTable(ctx)
}
