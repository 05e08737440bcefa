// Package models provides the data structures used throughout the application.
package models

import (
	"fmt"
	"strings"
	"time"
)

// TransactionType tells whether money came in or went out.
type TransactionType string

// Transaction represents a single income or expense line recorded by the user.
// The JSON tags define the persisted document format and must not change.
type Transaction struct {
	ID              string          `json:"id" csv:"ID"`
	Date            string          `json:"date" csv:"Date"`               // ISO-8601 date (YYYY-MM-DD)
	Amount          float64         `json:"amount" csv:"Amount"`           // Signed amount in currency units
	Description     string          `json:"description" csv:"Description"` // Free text entered by the user
	Category        string          `json:"category" csv:"Category"`       // Category id or name
	Type            TransactionType `json:"type" csv:"Type"`
	StatementNumber string          `json:"statementNumber,omitempty" csv:"StatementNumber"`
}

// IsIncome reports whether the transaction adds to the balance.
func (t Transaction) IsIncome() bool {
	return t.Type == TransactionTypeIncome
}

// IsExpense reports whether the transaction subtracts from the balance.
func (t Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

// ParsedDate returns the transaction date as a time.Time.
func (t Transaction) ParsedDate() (time.Time, error) {
	return time.Parse(DateLayoutISO, t.Date)
}

// Validate checks the fields a newly entered transaction must carry.
// Stored transactions are never validated on load: old documents are kept as they are.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("transaction id is required")
	}
	if _, err := t.ParsedDate(); err != nil {
		return fmt.Errorf("transaction %s: invalid date %q (expected YYYY-MM-DD): %w", t.ID, t.Date, err)
	}
	if !t.Type.Valid() {
		return fmt.Errorf("transaction %s: invalid type %q (must be %q or %q)",
			t.ID, t.Type, TransactionTypeIncome, TransactionTypeExpense)
	}
	return nil
}

// Valid reports whether the type is one of the known transaction types.
func (tt TransactionType) Valid() bool {
	return tt == TransactionTypeIncome || tt == TransactionTypeExpense
}

// ParseTransactionType converts user input into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	tt := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !tt.Valid() {
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
	return tt, nil
}
