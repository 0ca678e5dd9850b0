package main

import (
	"context"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/services"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/bootstrap"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/config"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/db"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// mockable
var (
	loadConfigFunc = bootstrap.LoadConfigAndSetupLogger
	connectFunc    = bootstrap.SetupDatabase
	migrateFunc    = bootstrap.RunMigrations
	servicesFunc   = buildServices
)

// buildServices wires the services over database. The returned func releases them.
func buildServices(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*services.Services, func(), error) {
	deps, err := bootstrap.BuildDependencies(ctx, cfg, database, lgr)
	if err != nil {
		return nil, nil, err
	}
	return deps.Services, deps.Close, nil
}

type commandLine struct {
	configPath string

	cfg *config.Config
	lgr zerolog.Logger
}

func newRootCmd() *cobra.Command {
	cli := &commandLine{}

	root := &cobra.Command{
		Use:           "admin",
		Short:         "Operator tasks for the scheduling and CPR service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, lgr, err := loadConfigFunc(cli.configPath)
			if err != nil {
				return err
			}
			cli.cfg, cli.lgr = cfg, lgr
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cli.configPath, "config", config.GetEnv("CONFIG_PATH", ""), "path to the YAML config file")

	root.AddCommand(
		cli.migrateCmd(),
		cli.recalculateCmd(),
		cli.tokenCmd(),
	)
	return root
}

// withDatabase connects, runs fn and closes the pool
func (cli *commandLine) withDatabase(ctx context.Context, fn func(database *db.PostgresDB) error) error {
	database, err := connectFunc(ctx, cli.cfg, cli.lgr)
	if err != nil {
		return err
	}
	defer database.Close()
	return fn(database)
}
