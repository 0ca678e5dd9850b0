package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/auth"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/helpers"
	"github.com/spf13/cobra"
)

// tokenCmd signs an access token. Login lives in another service; this is for operators and local testing.
func (cli *commandLine) tokenCmd() *cobra.Command {
	var (
		userID int64
		email  string
		role   string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign an access token for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			roleType := models.RoleType(strings.ToUpper(role))
			if roleType != models.RoleAdmin && roleType != models.RoleTeacher {
				return fmt.Errorf("--role must be %s or %s", models.RoleAdmin, models.RoleTeacher)
			}
			if userID <= 0 {
				return fmt.Errorf("--user must be a positive id")
			}

			jwtService := auth.NewJWTService(auth.JWTConfig{
				SecretKey:      cli.cfg.JWT.Secret,
				AccessTokenExp: helpers.ParseDuration(cli.cfg.JWT.AccessTokenExpiration, time.Hour),
				TokenIssuer:    cli.cfg.JWT.Issuer,
			})
			token, expiresAt, err := jwtService.GenerateAccessToken(userID, email, roleType)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, token)
			_, err = fmt.Fprintf(out, "expires %s\n", expiresAt.Format(time.RFC3339))
			return err
		},
	}
	cmd.Flags().Int64Var(&userID, "user", 0, "user id (the teacher id for TEACHER tokens)")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().StringVar(&role, "role", string(models.RoleAdmin), "ADMIN or TEACHER")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
