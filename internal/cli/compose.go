package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"igpt/internal/catalog"
	"igpt/internal/composer"
	"igpt/internal/domain"
	"igpt/internal/selection"
)

type composeFlags struct {
	category    string
	subformat   string
	orientation string
	style       string
	palette     string
	expert      string
	lang        string
}

// ComposeCmd shows the request a chat submit would produce, without calling a provider.
func ComposeCmd() *cobra.Command {
	var f composeFlags
	cmd := &cobra.Command{
		Use:   "compose [text]",
		Short: "Dry-run prompt composition for a selection",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := composeFromFlags(catalog.Default(), f, strings.Join(args, " "))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			heading.Fprintln(out, "Prompt")
			fmt.Fprintf(out, "  %s\n", req.Prompt)
			heading.Fprintln(out, "Request")
			fmt.Fprintf(out, "  dimensions: %s\n", req.Dimensions)
			fmt.Fprintf(out, "  media:      %s\n", req.Metadata.MediaKind)
			fmt.Fprintf(out, "  expert:     %t\n", req.Metadata.ExpertMode)
			fmt.Fprintf(out, "  language:   %s\n", req.Metadata.Language)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.category, "category", "", "category id")
	cmd.Flags().StringVar(&f.subformat, "subformat", "", "sub-format id")
	cmd.Flags().StringVar(&f.orientation, "orientation", "", "orientation id")
	cmd.Flags().StringVar(&f.style, "style", "", "style id")
	cmd.Flags().StringVar(&f.palette, "palette", "", "palette id")
	cmd.Flags().StringVar(&f.expert, "expert", "", "force expert mode on or off (true/false) for toggleable categories")
	cmd.Flags().StringVar(&f.lang, "lang", catalog.LangFrench, "prompt language (fr or en)")
	return cmd
}

func composeFromFlags(c *catalog.Catalog, f composeFlags, text string) (domain.GenerationRequest, error) {
	st := selection.NewState(c)
	if f.category != "" {
		cat, err := c.LookupCategory(f.category)
		if err != nil {
			return domain.GenerationRequest{}, err
		}
		st.SelectCategory(cat)
		if f.expert != "" {
			want := strings.EqualFold(f.expert, "true") || f.expert == "1"
			if st.ExpertMode(cat.ID) != want {
				if _, err := st.ToggleExpertMode(cat.ID); err != nil {
					return domain.GenerationRequest{}, err
				}
			}
		}
	}
	if f.subformat != "" {
		if err := st.SelectSubformat(f.subformat); err != nil {
			return domain.GenerationRequest{}, err
		}
	}
	if f.orientation != "" {
		if err := st.SelectOrientation(f.orientation); err != nil {
			return domain.GenerationRequest{}, err
		}
	}
	if f.style != "" {
		style, err := c.LookupStyle(f.style)
		if err != nil {
			return domain.GenerationRequest{}, err
		}
		st.SetStyle(style)
	}
	if f.palette != "" {
		palette, err := c.LookupPalette(f.palette)
		if err != nil {
			return domain.GenerationRequest{}, err
		}
		st.SetPalette(palette)
	}
	return composer.Compose(text, st, f.lang)
}
