// Package export writes the stored transactions to a CSV or JSON file
package export

import (
	"context"
	"fmt"
	"io"

	"fjacquet/mes-comptes/cmd/common"
	"fjacquet/mes-comptes/cmd/root"
	"fjacquet/mes-comptes/internal/codec"
	csvexport "fjacquet/mes-comptes/internal/export"
	"fjacquet/mes-comptes/internal/fileutils"
	"fjacquet/mes-comptes/internal/models"
	"fjacquet/mes-comptes/internal/validation"

	"github.com/spf13/cobra"
)

var (
	outputFile string
	format     string
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export transactions to CSV or JSON",
	Long: `Write the stored transactions to a CSV file using the configured delimiter,
or the whole document as plain JSON that the import command reads back.`,
	RunE: exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file")
	Cmd.Flags().StringVarP(&format, "format", "f", "csv", "Output format: csv or json")
	_ = Cmd.MarkFlagRequired("output")
}

func exportFunc(cmd *cobra.Command, args []string) error {
	c, err := root.Container()
	if err != nil {
		return err
	}
	csvFormat := csvexport.NewCSV(c.GetConfig().CSVDelimiter(), c.GetLogger())
	return Run(cmd.Context(), c.GetStorage(), cmd.OutOrStdout(), csvFormat, format, outputFile)
}

// Run writes the stored document to path in the given format. An unreadable
// document is reported instead of exporting an empty state.
func Run(ctx context.Context, docs common.Documents, out io.Writer, csvFormat *csvexport.CSV, format, path string) error {
	format, err := validation.IsValidExportFormat(format)
	if err != nil {
		return err
	}

	data, err := common.LoadForUpdate(ctx, docs)
	if err != nil {
		return err
	}

	if format == validation.FormatJSON {
		err = writeJSON(path, data)
	} else {
		err = csvFormat.WriteFile(path, data.Transactions)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "Exported %d transactions to %s\n", len(data.Transactions), path)
	return err
}

func writeJSON(path string, data models.AppData) error {
	payload, err := codec.Marshal(data)
	if err != nil {
		return err
	}
	if err := fileutils.WriteFileAtomic(path, payload, models.PermissionReportFile); err != nil {
		return fmt.Errorf("error writing JSON file: %w", err)
	}
	return nil
}
