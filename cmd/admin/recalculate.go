package main

import (
	"errors"
	"fmt"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/db"
	"github.com/spf13/cobra"
)

var errNoSubject = errors.New("--subject must be a positive subject id")

// recalculateCmd rederives planned CPR dates, e.g. after classes were edited by hand in SQL
func (cli *commandLine) recalculateCmd() *cobra.Command {
	var subjectID int64

	cmd := &cobra.Command{
		Use:   "recalculate",
		Short: "Recalculate planned sub-topic dates of a subject",
		Args:  cobra.NoArgs,
		PreRunE: func(*cobra.Command, []string) error {
			if subjectID <= 0 {
				return errNoSubject
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return cli.withDatabase(ctx, func(database *db.PostgresDB) error {
				svc, release, err := servicesFunc(ctx, cli.cfg, database, cli.lgr)
				if err != nil {
					return err
				}
				defer release()

				changed, err := svc.CPR.Recalculate(ctx, subjectID)
				if err != nil {
					return fmt.Errorf("recalculate subject %d: %w", subjectID, err)
				}
				cli.lgr.Info().Int64("subjectID", subjectID).Int("changed", changed).Msg("Recalculated planned dates")
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "subject %d: %d sub-topics changed\n", subjectID, changed)
				return err
			})
		},
	}
	cmd.Flags().Int64Var(&subjectID, "subject", 0, "subject id")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
