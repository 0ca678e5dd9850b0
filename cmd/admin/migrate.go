package main

import (
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/db"
	"github.com/spf13/cobra"
)

func (cli *commandLine) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return cli.withDatabase(ctx, func(database *db.PostgresDB) error {
				return migrateFunc(ctx, cli.cfg, database, cli.lgr)
			})
		},
	}
}
