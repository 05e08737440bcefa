package models

// AppData is the whole document persisted by the application.
//
// Categories is optional: a nil slice means the document carries no registry
// and the caller applies DefaultCategories. It is omitted from the JSON form.
type AppData struct {
	Transactions   []Transaction `json:"transactions"`
	InitialBalance float64       `json:"initialBalance"`
	Categories     []CategoryDef `json:"categories,omitempty"`
}

// EmptyAppData returns the first-run state: no transactions, a zero balance
// and no category registry.
func EmptyAppData() AppData {
	return AppData{Transactions: []Transaction{}}
}

// HasCategories reports whether the document carries its own category registry.
func (d AppData) HasCategories() bool {
	return len(d.Categories) > 0
}

// EffectiveCategories returns the stored registry, or defaults when none is stored.
func (d AppData) EffectiveCategories(defaults []CategoryDef) []CategoryDef {
	if d.HasCategories() {
		return d.Categories
	}
	return defaults
}

// WithTransaction returns a copy of d with tx appended.
func (d AppData) WithTransaction(tx Transaction) AppData {
	txs := make([]Transaction, 0, len(d.Transactions)+1)
	txs = append(txs, d.Transactions...)
	d.Transactions = append(txs, tx)
	return d
}

// FindTransaction returns the transaction with the given id.
func (d AppData) FindTransaction(id string) (Transaction, bool) {
	for _, tx := range d.Transactions {
		if tx.ID == id {
			return tx, true
		}
	}
	return Transaction{}, false
}
