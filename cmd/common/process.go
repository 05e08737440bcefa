// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"

	"fjacquet/mes-comptes/internal/currencyutils"
	"fjacquet/mes-comptes/internal/models"

	"github.com/shopspring/decimal"
)

// Documents is the part of the storage facade the commands use.
type Documents interface {
	Load(ctx context.Context) (models.AppData, error)
	Save(ctx context.Context, data models.AppData) error
	Source() string
}

// LoadForUpdate loads the stored document before a command modifies it.
// Unlike the application's total load it refuses to continue when the
// stored document exists but cannot be read, so that the following save
// does not replace it with an empty state.
func LoadForUpdate(ctx context.Context, docs Documents) (models.AppData, error) {
	data, err := docs.Load(ctx)
	if err != nil {
		return models.AppData{}, fmt.Errorf("cannot read the document stored in %s: %w", docs.Source(), err)
	}
	return data, nil
}

// Update loads the document, applies change and saves the result.
func Update(ctx context.Context, docs Documents, change func(models.AppData) (models.AppData, error)) (models.AppData, error) {
	data, err := LoadForUpdate(ctx, docs)
	if err != nil {
		return models.AppData{}, err
	}

	updated, err := change(data)
	if err != nil {
		return models.AppData{}, err
	}

	if err := docs.Save(ctx, updated); err != nil {
		return models.AppData{}, fmt.Errorf("failed to save document to %s: %w", docs.Source(), err)
	}
	return updated, nil
}

// FormatAmount renders an amount with two decimals.
func FormatAmount(d decimal.Decimal) string {
	return currencyutils.FormatAmount(d, "")
}

// PrintSummary writes the dashboard totals of data.
func PrintSummary(w io.Writer, source string, data models.AppData) error {
	s := models.Summarize(data)
	_, err := fmt.Fprintf(w,
		"Source:          %s\nTransactions:    %d\nInitial balance: %s\nIncome:          %s\nExpenses:        %s\nBalance:         %s\n",
		source,
		len(data.Transactions),
		FormatAmount(decimal.NewFromFloat(data.InitialBalance)),
		FormatAmount(s.TotalIncome),
		FormatAmount(s.TotalExpenses),
		FormatAmount(s.TotalBalance))
	return err
}
