// Package export writes and reads the transaction list as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"fjacquet/mes-comptes/internal/fileutils"
	"fjacquet/mes-comptes/internal/logging"
	"fjacquet/mes-comptes/internal/models"

	"github.com/gocarina/gocsv"
)

// CSV converts transactions to and from delimited text.
type CSV struct {
	delimiter rune
	logger    logging.Logger
}

// NewCSV returns a CSV writer/reader using delimiter.
func NewCSV(delimiter rune, logger logging.Logger) *CSV {
	if delimiter == 0 {
		delimiter = ','
	}
	return &CSV{delimiter: delimiter, logger: logging.OrDefault(logger)}
}

// Write marshals transactions to w with a header line.
func (c *CSV) Write(w io.Writer, transactions []models.Transaction) error {
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = c.delimiter

	if err := gocsv.MarshalCSV(transactions, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteFile writes transactions to csvFile, creating its directory when needed.
func (c *CSV) WriteFile(csvFile string, transactions []models.Transaction) error {
	c.logger.Info("Writing transactions to CSV file",
		logging.F(logging.FieldOutputFile, csvFile),
		logging.F(logging.FieldCount, len(transactions)),
		logging.F(logging.FieldDelimiter, string(c.delimiter)))

	file, err := fileutils.CreateFile(csvFile)
	if err != nil {
		c.logger.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			c.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := c.Write(file, transactions); err != nil {
		c.logger.WithError(err).Error("Failed to marshal transactions to CSV")
		return err
	}
	return nil
}

// Read parses a CSV transaction list with the header written by Write.
func (c *CSV) Read(r io.Reader) ([]models.Transaction, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = c.delimiter

	var rows []models.Transaction
	if err := gocsv.UnmarshalCSV(csvReader, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV data: %w", err)
	}
	return rows, nil
}

// ReadFile parses the CSV file at csvFile.
func (c *CSV) ReadFile(csvFile string) ([]models.Transaction, error) {
	c.logger.Info("Reading CSV file", logging.F(logging.FieldInputFile, csvFile))

	file, err := os.Open(csvFile)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			c.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	rows, err := c.Read(file)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Successfully read CSV data", logging.F(logging.FieldCount, len(rows)))
	return rows, nil
}
