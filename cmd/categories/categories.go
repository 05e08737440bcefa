// Package categories lists the category registry
package categories

import (
	"context"
	"fmt"
	"io"

	"fjacquet/mes-comptes/cmd/root"
	"fjacquet/mes-comptes/internal/models"
	"fjacquet/mes-comptes/internal/storage"
	"fjacquet/mes-comptes/internal/store"

	"github.com/spf13/cobra"
)

var writeDefaults bool

// Cmd represents the categories command
var Cmd = &cobra.Command{
	Use:   "categories",
	Short: "List the categories",
	Long: `List the categories stored in the document, or the default registry when
the document carries none. With --write-defaults the default registry is
written to the categories file so that it can be edited.`,
	RunE: categoriesFunc,
}

func init() {
	Cmd.Flags().BoolVarP(&writeDefaults, "write-defaults", "w", false, "Write the default registry to the categories file")
}

func categoriesFunc(cmd *cobra.Command, args []string) error {
	c, err := root.Container()
	if err != nil {
		return err
	}

	if writeDefaults {
		s := store.NewCategoryStore(c.GetConfig().Categories.File, c.GetLogger())
		return WriteDefaults(s, cmd.OutOrStdout(), c.GetRegistry())
	}
	return Run(cmd.Context(), c.GetStorage(), cmd.OutOrStdout(), c.GetRegistry())
}

// Run prints the effective categories of the stored document.
func Run(ctx context.Context, svc *storage.Service, out io.Writer, registry []models.CategoryDef) error {
	data := svc.LoadAppData(ctx)
	origin := "document"
	if !data.HasCategories() {
		origin = "defaults"
	}

	if _, err := fmt.Fprintf(out, "Categories (%s):\n", origin); err != nil {
		return err
	}
	for _, def := range data.EffectiveCategories(registry) {
		if _, err := fmt.Fprintf(out, "  %-38s %-20s %s\n", def.ID, def.Name, def.Color); err != nil {
			return err
		}
	}
	return nil
}

// WriteDefaults saves registry to the categories file.
func WriteDefaults(s *store.CategoryStore, out io.Writer, registry []models.CategoryDef) error {
	path, err := s.SaveCategories(registry)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Wrote %d categories to %s\n", len(registry), path)
	return err
}
