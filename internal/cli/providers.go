package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tldr-summary/internal/domain/entity"
)

func newPlatformsCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "platforms",
		Short: "List AI platforms that are registered and configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := s.application(cmd.Context())
			if err != nil {
				return err
			}
			platforms := a.Service.ListAvailablePlatforms(cmd.Context())
			if s.jsonOutput {
				return s.printJSON(platforms)
			}
			if len(platforms) == 0 {
				s.printf("No AI platform is available.\n")
				return nil
			}
			tw := tabwriter.NewWriter(s.opts.Out, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "SLUG\tNAME")
			for _, p := range platforms {
				_, _ = fmt.Fprintf(tw, "%s\t%s\n", p.Slug, p.DisplayName)
			}
			return tw.Flush()
		},
	}
}

func newModelsCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "models [platform]",
		Short: "List text-generation models of a platform (default: the selected one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var slug entity.ProviderSlug
			if len(args) == 1 {
				raw := strings.ToLower(strings.TrimSpace(args[0]))
				if err := entity.ValidateSlug(raw); err != nil {
					return err
				}
				slug = entity.ProviderSlug(raw)
			}

			a, err := s.application(cmd.Context())
			if err != nil {
				return err
			}
			models := a.Service.ListAvailableModels(cmd.Context(), slug)
			if s.jsonOutput {
				return s.printJSON(models)
			}
			if len(models) == 0 {
				s.printf("No text-generation model is available.\n")
				return nil
			}
			tw := tabwriter.NewWriter(s.opts.Out, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "MODEL\tNAME")
			for _, m := range models {
				_, _ = fmt.Fprintf(tw, "%s\t%s\n", m.Slug, m.DisplayName)
			}
			return tw.Flush()
		},
	}
}
