// Package migrate rewrites the stored document in the current format
package migrate

import (
	"context"
	"fmt"
	"io"

	"fjacquet/mes-comptes/cmd/root"
	"fjacquet/mes-comptes/internal/persistenceerror"
	"fjacquet/mes-comptes/internal/storage"

	"github.com/spf13/cobra"
)

// Cmd represents the migrate command
var Cmd = &cobra.Command{
	Use:   "migrate",
	Short: "Rewrite the stored document in the current format",
	Long: `Load the stored document, whatever generation wrote it, and save it back
encoded in the current format. Loading already migrates on the fly; this
command makes the change permanent.`,
	RunE: migrateFunc,
}

func migrateFunc(cmd *cobra.Command, args []string) error {
	c, err := root.Container()
	if err != nil {
		return err
	}
	return Run(cmd.Context(), c.GetStorage(), cmd.OutOrStdout())
}

// Run migrates the stored document and reports what was found.
func Run(ctx context.Context, svc *storage.Service, out io.Writer) error {
	res, err := svc.Migrate(ctx)
	if persistenceerror.IsAbsent(err) {
		_, err = fmt.Fprintf(out, "Nothing stored in %s, nothing to migrate\n", svc.Source())
		return err
	}
	if err != nil {
		return fmt.Errorf("migration of %s failed: %w", svc.Source(), err)
	}

	if res.UpToDate() {
		_, err = fmt.Fprintf(out, "%s is already in the current format: %d transactions, %d categories\n",
			svc.Source(), len(res.Data.Transactions), len(res.Data.Categories))
		return err
	}

	encoding := "encoded"
	if !res.Encoded {
		encoding = "plain JSON"
	}
	_, err = fmt.Fprintf(out, "Migrated %s from %s (%s): %d transactions, %d categories\n",
		svc.Source(), res.Generation, encoding, len(res.Data.Transactions), len(res.Data.Categories))
	return err
}
