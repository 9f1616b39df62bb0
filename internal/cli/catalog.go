package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"igpt/internal/catalog"
)

// CatalogCmd prints the catalog tree after validating it.
func CatalogCmd() *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print and verify the built-in catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Load()
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s catalog invalid: %v\n", failMark, err)
				return err
			}
			printCatalog(cmd.OutOrStdout(), c, lang)
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s catalog valid: %d categories, %d styles, %d palettes\n",
				okMark, len(c.Categories()), len(c.Styles()), len(c.Palettes()))
			return nil
		},
	}
	cmd.Flags().StringVar(&lang, "lang", catalog.LangFrench, "display language (fr or en)")
	return cmd
}

func printCatalog(w io.Writer, c *catalog.Catalog, lang string) {
	heading.Fprintln(w, "Categories")
	for _, cat := range c.Categories() {
		fmt.Fprintf(w, "  %s %s [%s, %s]\n", cat.ID, dim.Sprintf("(%s)", cat.Name.In(lang)), cat.Kind, cat.ExpertMode)
		for _, sf := range cat.Subformats {
			fmt.Fprintf(w, "    - %s %s %s\n", sf.ID, sf.Dimensions, dim.Sprintf("(%s)", sf.Name.In(lang)))
			for _, o := range sf.Orientations {
				fmt.Fprintf(w, "        · %s %s\n", o.ID, o.Dimensions)
			}
		}
	}
	heading.Fprintln(w, "Styles")
	for _, s := range c.Styles() {
		fmt.Fprintf(w, "  %s %s\n", s.ID, dim.Sprintf("(%s)", s.Name.In(lang)))
	}
	heading.Fprintln(w, "Palettes")
	for _, p := range c.Palettes() {
		fmt.Fprintf(w, "  %s %v\n", p.ID, p.Colors)
	}
}
