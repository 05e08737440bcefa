// Package show prints the totals of the stored document
package show

import (
	"context"
	"io"
	"time"

	"fjacquet/mes-comptes/cmd/common"
	"fjacquet/mes-comptes/cmd/root"
	"fjacquet/mes-comptes/internal/dateutils"
	"fjacquet/mes-comptes/internal/models"
	"fjacquet/mes-comptes/internal/storage"

	"github.com/spf13/cobra"
)

var month string

// Cmd represents the show command
var Cmd = &cobra.Command{
	Use:   "show",
	Short: "Show the balance and totals",
	Long: `Load the stored document and print the initial balance, income, expense and balance totals.
With --month only the transactions of that month are counted.`,
	RunE: showFunc,
}

func init() {
	Cmd.Flags().StringVarP(&month, "month", "m", "", "Only count transactions of this month (YYYY-MM)")
}

func showFunc(cmd *cobra.Command, args []string) error {
	c, err := root.Container()
	if err != nil {
		return err
	}
	return Run(cmd.Context(), c.GetStorage(), cmd.OutOrStdout(), month)
}

// Run prints the summary. An unreadable document is shown as the empty
// state, the same way the application starts.
func Run(ctx context.Context, svc *storage.Service, out io.Writer, month string) error {
	data := svc.LoadAppData(ctx)

	if month != "" {
		start, err := dateutils.ParseMonth(month)
		if err != nil {
			return err
		}
		data = FilterMonth(data, start)
	}
	return common.PrintSummary(out, svc.Source(), data)
}

// FilterMonth keeps the transactions dated in the month starting at start.
func FilterMonth(data models.AppData, start time.Time) models.AppData {
	kept := make([]models.Transaction, 0, len(data.Transactions))
	for _, tx := range data.Transactions {
		if dateutils.InMonth(tx.Date, start) {
			kept = append(kept, tx)
		}
	}
	data.Transactions = kept
	return data
}
