// Package importer loads transactions from a JSON or CSV file into the stored document
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/mes-comptes/cmd/common"
	"fjacquet/mes-comptes/cmd/root"
	"fjacquet/mes-comptes/internal/codec"
	"fjacquet/mes-comptes/internal/export"
	"fjacquet/mes-comptes/internal/migration"
	"fjacquet/mes-comptes/internal/models"
	"fjacquet/mes-comptes/internal/storage"
	"fjacquet/mes-comptes/internal/validation"

	"github.com/spf13/cobra"
)

var (
	inputFile string
	replace   bool
)

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Import transactions from a JSON or CSV file",
	Long: `Import a document saved by any version of the application (plain JSON, a
base64 backup, or a bare transaction list) or a CSV file written by the
export command. Imported transactions whose id is already stored are skipped
unless --replace discards the stored document first.`,
	RunE: importFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file (.json or .csv)")
	Cmd.Flags().BoolVarP(&replace, "replace", "r", false, "Replace the stored document instead of merging")
	_ = Cmd.MarkFlagRequired("input")
}

func importFunc(cmd *cobra.Command, args []string) error {
	c, err := root.Container()
	if err != nil {
		return err
	}

	imported, err := ReadFile(inputFile, c.GetStorage().Normalizer(), export.NewCSV(c.GetConfig().CSVDelimiter(), c.GetLogger()))
	if err != nil {
		return err
	}
	return Run(cmd.Context(), c.GetStorage(), cmd.OutOrStdout(), imported, replace)
}

// ReadFile reads an import file. Files ending in .csv are parsed as a
// transaction list; anything else as a document of any known generation.
func ReadFile(path string, normalizer *migration.Normalizer, csvFormat *export.CSV) (models.AppData, error) {
	if err := validation.IsValidInputFile(path); err != nil {
		return models.AppData{}, err
	}

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		txs, err := csvFormat.ReadFile(path)
		if err != nil {
			return models.AppData{}, err
		}
		return normalizer.NormalizeData(models.AppData{Transactions: txs}), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return models.AppData{}, fmt.Errorf("error reading import file: %w", err)
	}
	return ParseDocument(string(content), normalizer)
}

// ParseDocument parses plain JSON first, then the encoded storage form.
func ParseDocument(text string, normalizer *migration.Normalizer) (models.AppData, error) {
	raw, plainErr := codec.ParsePlain(text)
	if plainErr != nil {
		var decodeErr error
		raw, decodeErr = codec.Decode(text)
		if decodeErr != nil {
			return models.AppData{}, fmt.Errorf("import file is neither JSON nor an encoded document: %w", errors.Join(plainErr, decodeErr))
		}
	}
	return normalizer.Normalize(raw), nil
}

// Merge adds the imported transactions to existing and returns the result
// with the number of transactions added. The stored balance and categories
// win; imported categories are only taken when none are stored.
func Merge(existing, imported models.AppData, replace bool) (models.AppData, int) {
	if replace {
		return imported, len(imported.Transactions)
	}

	seen := make(map[string]struct{}, len(existing.Transactions)+len(imported.Transactions))
	for _, tx := range existing.Transactions {
		seen[tx.ID] = struct{}{}
	}

	txs := make([]models.Transaction, 0, len(existing.Transactions)+len(imported.Transactions))
	txs = append(txs, existing.Transactions...)
	for _, tx := range imported.Transactions {
		if _, exists := seen[tx.ID]; exists && tx.ID != "" {
			continue
		}
		seen[tx.ID] = struct{}{}
		txs = append(txs, tx)
	}

	merged := existing
	merged.Transactions = txs
	added := len(txs) - len(existing.Transactions)
	if !merged.HasCategories() && imported.HasCategories() {
		merged.Categories = append([]models.CategoryDef(nil), imported.Categories...)
	}
	return merged, added
}

// Run merges imported into the stored document and saves it.
func Run(ctx context.Context, svc *storage.Service, out io.Writer, imported models.AppData, replace bool) error {
	var added int
	data, err := common.Update(ctx, svc, func(d models.AppData) (models.AppData, error) {
		var merged models.AppData
		merged, added = Merge(d, imported, replace)
		return merged, nil
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "Imported %d transactions (%d stored)\n", added, len(data.Transactions))
	return err
}
