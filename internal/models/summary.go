package models

import (
	"github.com/shopspring/decimal"
)

// Summary holds the totals shown on the dashboard.
type Summary struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	TotalBalance  decimal.Decimal
}

// Summarize computes the income, expense and balance totals of d.
//
// Expenses are summed by absolute value so that both signed (-42) and
// unsigned (42) expense amounts found in older documents count the same.
// Transactions with an unknown type are ignored.
func Summarize(d AppData) Summary {
	income := decimal.Zero
	expenses := decimal.Zero

	for _, tx := range d.Transactions {
		amount := decimal.NewFromFloat(tx.Amount)
		switch {
		case tx.IsIncome():
			income = income.Add(amount)
		case tx.IsExpense():
			expenses = expenses.Add(amount.Abs())
		}
	}

	return Summary{
		TotalIncome:   income,
		TotalExpenses: expenses,
		TotalBalance:  decimal.NewFromFloat(d.InitialBalance).Add(income).Sub(expenses),
	}
}
