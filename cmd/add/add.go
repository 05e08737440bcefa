// Package add records a new transaction
package add

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"fjacquet/mes-comptes/cmd/common"
	"fjacquet/mes-comptes/cmd/root"
	"fjacquet/mes-comptes/internal/currencyutils"
	"fjacquet/mes-comptes/internal/dateutils"
	"fjacquet/mes-comptes/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Flags holds the values of the add command flags
type Flags struct {
	Date        string
	Amount      string
	Description string
	Category    string
	Type        string
	Statement   string
}

var flags Flags

// Cmd represents the add command
var Cmd = &cobra.Command{
	Use:   "add",
	Short: "Add an income or expense transaction",
	Long: `Append a transaction to the stored document and save it.
The amount accepts a dot or a comma as decimal separator, thousands
separators and a currency symbol.`,
	RunE: addFunc,
}

func init() {
	Cmd.Flags().StringVarP(&flags.Date, "date", "t", "", "Transaction date, YYYY-MM-DD or DD.MM.YYYY (default: today)")
	Cmd.Flags().StringVarP(&flags.Amount, "amount", "a", "", "Transaction amount")
	Cmd.Flags().StringVarP(&flags.Description, "description", "m", "", "Description")
	Cmd.Flags().StringVarP(&flags.Category, "category", "c", models.CategoryOther, "Category name or id")
	Cmd.Flags().StringVarP(&flags.Type, "type", "y", string(models.TransactionTypeExpense), "income or expense")
	Cmd.Flags().StringVarP(&flags.Statement, "statement", "s", "", "Statement number (optional)")
	_ = Cmd.MarkFlagRequired("amount")
}

func addFunc(cmd *cobra.Command, args []string) error {
	c, err := root.Container()
	if err != nil {
		return err
	}

	tx, err := NewTransaction(flags, time.Now())
	if err != nil {
		return err
	}
	return Run(cmd.Context(), c.GetStorage(), cmd.OutOrStdout(), tx)
}

// NewTransaction builds a validated transaction from the flag values.
func NewTransaction(f Flags, now time.Time) (models.Transaction, error) {
	txType, err := models.ParseTransactionType(f.Type)
	if err != nil {
		return models.Transaction{}, err
	}

	amount, err := currencyutils.ParseAmount(f.Amount)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid amount %q: %w", f.Amount, err)
	}

	date := now.Format(models.DateLayoutISO)
	if strings.TrimSpace(f.Date) != "" {
		if date, err = dateutils.NormalizeDate(f.Date); err != nil {
			return models.Transaction{}, err
		}
	}

	tx := models.Transaction{
		ID:              uuid.NewString(),
		Date:            date,
		Amount:          amount.InexactFloat64(),
		Description:     strings.TrimSpace(f.Description),
		Category:        strings.TrimSpace(f.Category),
		Type:            txType,
		StatementNumber: strings.TrimSpace(f.Statement),
	}
	if err := tx.Validate(); err != nil {
		return models.Transaction{}, err
	}
	return tx, nil
}

// Run appends tx to the stored document.
func Run(ctx context.Context, docs common.Documents, out io.Writer, tx models.Transaction) error {
	data, err := common.Update(ctx, docs, func(d models.AppData) (models.AppData, error) {
		if _, exists := d.FindTransaction(tx.ID); exists {
			return d, fmt.Errorf("transaction %s already exists", tx.ID)
		}
		return d.WithTransaction(tx), nil
	})
	if err != nil {
		return err
	}

	root.Log.WithField("id", tx.ID).Debug("Transaction added")
	_, err = fmt.Fprintf(out, "Added %s %s %s (%d transactions)\n",
		tx.Type, common.FormatAmount(decimal.NewFromFloat(tx.Amount)), tx.Date, len(data.Transactions))
	return err
}
