package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tldr-summary/internal/domain/entity"
	"tldr-summary/internal/infra/preference"
)

type selectionView struct {
	Preference entity.Preference         `json:"preference"`
	Effective  entity.EffectiveSelection `json:"effective"`
}

func newSelectionCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selection",
		Short: "Show the stored and the effective platform/model selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := s.application(cmd.Context())
			if err != nil {
				return err
			}
			view := selectionView{
				Preference: a.Service.Preference(cmd.Context()),
				Effective:  a.Service.ResolveSelection(cmd.Context()),
			}
			if s.jsonOutput {
				return s.printJSON(view)
			}
			s.printf("stored:    %s\n", describe(string(view.Preference.Provider), view.Preference.Model))
			s.printf("effective: %s\n", describe(string(view.Effective.Provider), view.Effective.Model))
			return nil
		},
	}
	cmd.AddCommand(newSelectionSetCommand(s), newSelectionClearCommand(s))
	return cmd
}

func newSelectionSetCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "set <platform> [model]",
		Short: "Store the preferred platform and, optionally, model",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := strings.ToLower(strings.TrimSpace(args[0]))
			if err := entity.ValidateSlug(slug); err != nil {
				return err
			}
			pref := entity.Preference{Provider: entity.ProviderSlug(slug)}
			if len(args) == 2 {
				pref.Model = strings.TrimSpace(args[1])
			}
			return savePreference(cmd, s, pref)
		},
	}
}

func newSelectionClearCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored preference so the first available platform is used",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return savePreference(cmd, s, entity.Preference{})
		},
	}
}

func savePreference(cmd *cobra.Command, s *session, pref entity.Preference) error {
	a, err := s.application(cmd.Context())
	if err != nil {
		return err
	}
	if err := a.Preferences.Save(cmd.Context(), pref); err != nil {
		if errors.Is(err, preference.ErrReadOnly) {
			return fmt.Errorf("%w: set TLDR_AI_PLATFORM/TLDR_AI_MODEL or use TLDR_PREFERENCE_STORE=file|postgres", err)
		}
		return err
	}
	eff := a.Service.ResolveSelection(cmd.Context())
	s.printf("effective: %s\n", describe(string(eff.Provider), eff.Model))
	return nil
}

func describe(provider, model string) string {
	switch {
	case provider == "":
		return "(none)"
	case model == "":
		return provider + " (no model)"
	default:
		return provider + " / " + model
	}
}
