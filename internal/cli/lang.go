package cli

import (
	"fmt"
	"strings"

	"github.com/artpar/marquee/internal/locale"
	"github.com/spf13/cobra"
)

// NewLangCommand creates the lang command.
func NewLangCommand(g *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lang",
		Short: "Show or change the display language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := openApp(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer application.Close()

			p := application.Language().Projection()
			lang := application.Language().Value()
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, %s)\n", lang.Label(), p.Code, p.Dir)
			return nil
		},
	}

	cmd.AddCommand(newLangSetCommand(g))
	cmd.AddCommand(newLangListCommand(g))

	return cmd
}

func newLangSetCommand(g *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set CODE",
		Short: "Set the display language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, ok := locale.Parse(args[0])
			if !ok {
				return fmt.Errorf("unsupported language %q (supported: %s)", args[0], supportedCodes())
			}

			application, err := openApp(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer application.Close()

			application.Language().Set(cmd.Context(), lang)
			p := application.Language().Projection()
			fmt.Fprintf(cmd.OutOrStdout(), "Language set to %s (%s, %s)\n", lang.Label(), p.Code, p.Dir)
			return nil
		},
	}
}

func newLangListCommand(g *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List supported languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := openApp(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer application.Close()

			current := application.Language().Value()
			for _, lang := range locale.Supported {
				marker := " "
				if lang == current {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-3s %s (%s)\n", marker, lang, lang.Label(), locale.Project(lang).Dir)
			}
			return nil
		},
	}
}

func supportedCodes() string {
	codes := make([]string, 0, len(locale.Supported))
	for _, lang := range locale.Supported {
		codes = append(codes, string(lang))
	}
	return strings.Join(codes, ", ")
}
