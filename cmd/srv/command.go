package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "pointroulette"
	app.Usage = "Point roulette ledger"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "Path of the TOML config file",
			EnvVars: []string{"CONFIG_FILE"},
		},
		&cli.StringSliceFlag{
			Name:    "env-file",
			Usage:   "Env files loaded before the config",
			EnvVars: []string{"ENV_FILES"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "debug, info, warn or error",
			EnvVars: []string{"LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:    "db-driver",
			Usage:   "mysql, postgres or sqlite",
			EnvVars: []string{"DB_DRIVER"},
		},
		&cli.StringFlag{
			Name:    "db-dsn",
			Usage:   "Data source name of the database",
			EnvVars: []string{"DB_DSN"},
		},
	}
	app.Commands = []*cli.Command{
		{
			Action: s.startMigrate,
			Name:   "migrate",
			Usage:  "Migrate the database",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "version", Value: "auto", Usage: "Migrator version"},
			},
			Category:    "Database",
			Description: `Used to create or update the ledger tables.`,
		},
		{
			Action:      s.startCron,
			Name:        "cron",
			Usage:       "Start housekeeping cron jobs",
			Category:    "Worker",
			Description: `Used to provision daily budgets ahead of time and expire idle point units.`,
		},
		{
			Action:      s.startMetrics,
			Name:        "metrics",
			Usage:       "Serve prometheus metrics",
			Category:    "Worker",
			Description: `Used to expose ledger counters at /metrics.`,
		},
		{
			Action:      s.startEvents,
			Name:        "events",
			Usage:       "Print published ledger events",
			Category:    "Worker",
			Description: `Used to follow the ledger events of the configured publisher backend.`,
		},
		{
			Name:     "budget",
			Usage:    "Inspect or resize a daily budget",
			Category: "Admin",
			Subcommands: []*cli.Command{
				{
					Action: s.showBudget,
					Name:   "show",
					Flags:  []cli.Flag{dateFlag},
				},
				{
					Action: s.resizeBudget,
					Name:   "resize",
					Flags: []cli.Flag{
						dateFlag,
						&cli.Int64Flag{Name: "total", Required: true},
					},
				},
			},
		},
		{
			Name:     "participation",
			Usage:    "Inspect or cancel roulette participations",
			Category: "Admin",
			Subcommands: []*cli.Command{
				{
					Action: s.listParticipations,
					Name:   "list",
					Flags:  []cli.Flag{dateFlag},
				},
				{
					Action: s.cancelParticipation,
					Name:   "cancel",
					Flags:  []cli.Flag{idFlag},
				},
			},
		},
		{
			Name:     "order",
			Usage:    "Manage orders",
			Category: "Admin",
			Subcommands: []*cli.Command{
				{
					Action: s.listOrders,
					Name:   "list",
					Flags:  []cli.Flag{&cli.StringFlag{Name: "status"}},
				},
				{
					Action: s.cancelOrder,
					Name:   "cancel",
					Flags:  []cli.Flag{idFlag},
				},
				{
					Action: s.updateOrderStatus,
					Name:   "status",
					Flags: []cli.Flag{
						idFlag,
						&cli.StringFlag{Name: "status", Required: true},
					},
				},
			},
		},
		{
			Name:     "product",
			Usage:    "Manage the product catalog",
			Category: "Admin",
			Subcommands: []*cli.Command{
				{
					Action: s.listProducts,
					Name:   "list",
					Flags:  []cli.Flag{&cli.BoolFlag{Name: "active"}},
				},
				{
					Action: s.createProduct,
					Name:   "create",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "name", Required: true},
						&cli.StringFlag{Name: "description", Required: true},
						&cli.Int64Flag{Name: "price", Required: true},
						&cli.Int64Flag{Name: "stock", Required: true},
					},
				},
			},
		},
		{
			Name:     "point",
			Usage:    "Inspect the points of a user",
			Category: "Admin",
			Subcommands: []*cli.Command{
				{
					Action: s.showBalance,
					Name:   "balance",
					Flags:  []cli.Flag{userFlag},
				},
				{
					Action: s.listPointTransactions,
					Name:   "history",
					Flags:  []cli.Flag{userFlag},
				},
			},
		},
	}

	s.app = app
}

var (
	dateFlag = &cli.StringFlag{Name: "date", Usage: "UTC date as 2006-01-02, today if empty"}
	idFlag   = &cli.StringFlag{Name: "id", Required: true}
	userFlag = &cli.Int64Flag{Name: "user", Required: true}
)
