package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yigit/university/internal/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "university",
		Usage: "seed, backfill and query the university enrollment database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config-dir",
				Value: "configs",
				Usage: "directory holding config.yaml and config.<env>.yaml",
			},
			&cli.StringFlag{
				Name:    "env",
				Usage:   "environment overlay to load (overrides APP_ENV)",
				EnvVars: []string{"APP_ENV"},
			},
		},
		Action: queryAction,
		Commands: []*cli.Command{
			{
				Name:   "query",
				Usage:  "apply the schema and print the enrollment reports",
				Action: queryAction,
			},
			{
				Name:   "migrate",
				Usage:  "apply the schema",
				Action: migrateAction,
			},
			{
				Name:   "seed",
				Usage:  "apply the schema and insert the sample university",
				Action: seedAction,
			},
			{
				Name:   "update",
				Usage:  "apply the schema, backfill registration dates and print the enrollments",
				Action: updateAction,
			},
			{
				Name:   "serve",
				Usage:  "apply the schema and serve the read API over HTTP",
				Action: serveAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("university failed")
		os.Exit(1)
	}
}
