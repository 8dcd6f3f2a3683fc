package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	appServices "github.com/yigit/university/internal/app/services"
	"github.com/yigit/university/internal/bootstrap"
	"github.com/yigit/university/internal/config"
	"github.com/yigit/university/internal/db"
	"github.com/yigit/university/internal/pkg/console"
	"github.com/yigit/university/internal/seed"
	"github.com/yigit/university/internal/server"
)

// runtime is what every command needs once config is loaded and the schema
// is applied.
type runtime struct {
	cfg      *config.Config
	logger   zerolog.Logger
	database *db.PostgresDB
	service  appServices.UniversityService
}

func setup(c *cli.Context) (*runtime, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(c.String("config-dir"), c.String("env"))
	if err != nil {
		return nil, err
	}

	database, err := bootstrap.SetupDatabase(c.Context, cfg, lgr)
	if err != nil {
		return nil, err
	}

	return &runtime{
		cfg:      cfg,
		logger:   lgr,
		database: database,
		service:  appServices.NewUniversityService(database.Pool, lgr),
	}, nil
}

func migrateAction(c *cli.Context) error {
	rt, err := setup(c)
	if err != nil {
		return err
	}
	defer rt.database.Close()
	return nil
}

func seedAction(c *cli.Context) error {
	rt, err := setup(c)
	if err != nil {
		return err
	}
	defer rt.database.Close()
	return rt.service.Seed(c.Context)
}

func updateAction(c *cli.Context) error {
	rt, err := setup(c)
	if err != nil {
		return err
	}
	defer rt.database.Close()

	if err := rt.service.UpdateRegistrationDates(c.Context, seed.CanonicalRegistrations()); err != nil {
		return err
	}
	return console.WriteRegistrations(c.Context, os.Stdout, rt.service)
}

// queryAction prints the three reports, seeding and backfilling first when
// the workflow config asks for it.
func queryAction(c *cli.Context) error {
	rt, err := setup(c)
	if err != nil {
		return err
	}
	defer rt.database.Close()

	ctx := c.Context
	if rt.cfg.Workflow.Seed {
		if err := rt.service.Seed(ctx); err != nil {
			return err
		}
	}
	if rt.cfg.Workflow.Update {
		if err := rt.service.UpdateRegistrationDates(ctx, seed.CanonicalRegistrations()); err != nil {
			return err
		}
	}

	return console.WriteQueries(ctx, os.Stdout, rt.service)
}

func serveAction(c *cli.Context) error {
	rt, err := setup(c)
	if err != nil {
		return err
	}

	deps := bootstrap.BuildDependencies(rt.service, rt.logger)
	router := bootstrap.SetupRouter(rt.cfg, deps, rt.logger)

	return server.NewServer(rt.cfg, router, rt.database, rt.logger).Run(c.Context)
}
