package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newTestConnectionCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "test-connection",
		Short: "Send a test prompt to the selected platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := s.application(cmd.Context())
			if err != nil {
				return err
			}
			res := a.Service.TestConnection(cmd.Context())
			if s.jsonOutput {
				if err := s.printJSON(res); err != nil {
					return err
				}
			} else {
				s.printf("%s\n", res.Message)
				if res.Response != "" {
					s.printf("response: %s\n", res.Response)
				}
			}
			if !res.Success {
				return errors.New("connection test failed: " + string(res.Kind))
			}
			return nil
		},
	}
}
