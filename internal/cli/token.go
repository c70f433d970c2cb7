package cli

import (
	"time"

	"github.com/spf13/cobra"

	"tldr-summary/internal/handler/http/auth"
)

func newTokenCommand(s *session) *cobra.Command {
	var (
		subject string
		role    string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the admin API, signed with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			cfg, err := s.config()
			if err != nil {
				return err
			}
			secret := []byte(cfg.Server.JWTSecret)
			if err := auth.ValidateSecret(secret); err != nil {
				return err
			}
			tok, err := auth.IssueToken(secret, subject, role, ttl)
			if err != nil {
				return err
			}
			s.printf("%s\n", tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "admin", "token subject")
	cmd.Flags().StringVar(&role, "role", auth.RoleAdmin, "token role")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
