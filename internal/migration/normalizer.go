// Package migration turns any generation of the stored document into the
// current models.AppData shape.
//
// Three generations exist. The oldest stored a bare array of transactions.
// The second wrapped it in an object with an initial balance and a list of
// category names. The current one stores categories as {id, name, color}
// records. Each generation only added fields, so one pass over an ordered
// chain of shape detectors handles them all; the only real conversion is
// turning category names into records.
package migration

import (
	"encoding/json"
	"strconv"

	"fjacquet/mes-comptes/internal/logging"
	"fjacquet/mes-comptes/internal/models"

	"github.com/google/uuid"
)

// IDGenerator returns the id of a category migrated from a bare name found
// at the given position of the legacy list.
type IDGenerator func(index int, name string) string

var legacyCategoryNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:mes-comptes:legacy-category"))

// LegacyCategoryID derives a name-based (v5) UUID from the position and name
// of a legacy category. Distinct positions never collide, and migrating the
// same document twice yields the same ids.
func LegacyCategoryID(index int, name string) string {
	return uuid.NewSHA1(legacyCategoryNamespace, []byte(strconv.Itoa(index)+":"+name)).String()
}

// Normalizer maps decoded JSON to models.AppData. It never fails.
type Normalizer struct {
	registry []models.CategoryDef
	palette  []string
	newID    IDGenerator
	logger   logging.Logger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithRegistry sets the registry legacy category names are matched against.
func WithRegistry(defs []models.CategoryDef) Option {
	return func(n *Normalizer) {
		n.registry = append([]models.CategoryDef(nil), defs...)
	}
}

// WithPalette sets the colors cycled through for unknown legacy categories.
// An empty palette keeps the default one.
func WithPalette(colors []string) Option {
	return func(n *Normalizer) {
		if len(colors) > 0 {
			n.palette = append([]string(nil), colors...)
		}
	}
}

// WithIDGenerator replaces LegacyCategoryID.
func WithIDGenerator(gen IDGenerator) Option {
	return func(n *Normalizer) {
		if gen != nil {
			n.newID = gen
		}
	}
}

// NewNormalizer creates a Normalizer using the default registry and palette
// unless options say otherwise.
func NewNormalizer(logger logging.Logger, opts ...Option) *Normalizer {
	n := &Normalizer{
		registry: models.DefaultCategories(),
		palette:  models.Palette(),
		newID:    LegacyCategoryID,
		logger:   logging.OrDefault(logger),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// shapeDetector reports whether raw has its shape and, if so, the normalized data.
type shapeDetector struct {
	name   string
	detect func(raw json.RawMessage) (models.AppData, bool)
}

func (n *Normalizer) detectors() []shapeDetector {
	return []shapeDetector{
		{name: "transaction-list", detect: n.transactionList},
		{name: "document", detect: n.document},
	}
}

// Normalize returns the current-shape document for raw. Unrecognized input
// yields models.EmptyAppData.
func (n *Normalizer) Normalize(raw json.RawMessage) models.AppData {
	for _, d := range n.detectors() {
		if data, ok := d.detect(raw); ok {
			n.logger.Debug("Normalized stored document",
				logging.F("shape", d.name),
				logging.F(logging.FieldCount, len(data.Transactions)))
			return data
		}
	}

	n.logger.Warn("Unrecognized document shape, using empty state")
	return models.EmptyAppData()
}

// NormalizeData runs an in-memory document through Normalize, so that data
// built by hand gets the same guarantees as data read from storage.
func (n *Normalizer) NormalizeData(data models.AppData) models.AppData {
	raw, err := json.Marshal(data)
	if err != nil {
		n.logger.WithError(err).Warn("Could not serialize document for normalization")
		return models.EmptyAppData()
	}
	return n.Normalize(raw)
}

// transactionList handles the oldest generation: a bare array of transactions.
func (n *Normalizer) transactionList(raw json.RawMessage) (models.AppData, bool) {
	elems, ok := arrayElements(raw)
	if !ok {
		return models.AppData{}, false
	}

	data := models.EmptyAppData()
	data.Transactions = n.decodeTransactions(elems)
	return data, true
}

// document handles the object generations.
func (n *Normalizer) document(raw json.RawMessage) (models.AppData, bool) {
	fields, ok := objectFields(raw)
	if !ok {
		return models.AppData{}, false
	}

	data := models.EmptyAppData()

	if elems, ok := arrayElements(fields["transactions"]); ok {
		data.Transactions = n.decodeTransactions(elems)
	} else if k := kindOf(fields["transactions"]); k != kindInvalid && k != kindNull {
		n.logger.Warn("Stored transactions are not a list, ignoring them")
	}

	if kindOf(fields["initialBalance"]) == kindNumber {
		if balance, ok := numberField(fields["initialBalance"]); ok {
			data.InitialBalance = balance
		}
	}

	data.Categories = n.migrateCategories(fields["categories"])
	return data, true
}

func (n *Normalizer) decodeTransactions(elems []json.RawMessage) []models.Transaction {
	txs := make([]models.Transaction, 0, len(elems))
	for i, elem := range elems {
		tx, ok := n.decodeTransaction(i, elem)
		if !ok {
			n.logger.Warn("Dropping stored transaction that is not an object",
				logging.F(logging.FieldIndex, i))
			continue
		}
		txs = append(txs, tx)
	}
	return txs
}

func (n *Normalizer) decodeTransaction(index int, raw json.RawMessage) (models.Transaction, bool) {
	fields, ok := objectFields(raw)
	if !ok {
		return models.Transaction{}, false
	}

	tx := models.Transaction{
		ID:              textField(fields["id"]),
		Date:            textField(fields["date"]),
		Description:     textField(fields["description"]),
		Category:        textField(fields["category"]),
		Type:            models.TransactionType(textField(fields["type"])),
		StatementNumber: textField(fields["statementNumber"]),
	}

	amount, ok := numberField(fields["amount"])
	if !ok {
		n.logger.Warn("Stored transaction has a non-numeric amount, keeping it with amount 0",
			logging.F(logging.FieldIndex, index),
			logging.F(logging.FieldTransactionID, tx.ID))
	}
	tx.Amount = amount

	return tx, true
}

// migrateCategories returns nil when raw is absent, not an array or empty,
// which tells the caller to apply the default registry.
func (n *Normalizer) migrateCategories(raw json.RawMessage) []models.CategoryDef {
	elems, ok := arrayElements(raw)
	if !ok || len(elems) == 0 {
		return nil
	}

	var defs []models.CategoryDef
	if kindOf(elems[0]) == kindString {
		defs = n.migrateLegacyNames(elems)
	} else {
		defs = n.decodeCategoryDefs(elems)
	}

	if len(defs) == 0 {
		return nil
	}
	return defs
}

// migrateLegacyNames converts a list of bare category names. A name found in
// the registry takes that entry's id and color, even if the user had picked
// another color at the time: the legacy format never stored one.
func (n *Normalizer) migrateLegacyNames(elems []json.RawMessage) []models.CategoryDef {
	defs := make([]models.CategoryDef, 0, len(elems))
	for i, elem := range elems {
		if kindOf(elem) != kindString {
			if def, ok := decodeCategoryDef(elem); ok {
				defs = append(defs, def)
				continue
			}
			n.logger.Warn("Dropping legacy category that is neither a name nor a record",
				logging.F(logging.FieldIndex, i))
			continue
		}

		name := textField(elem)
		defs = append(defs, n.migrateLegacyName(i, name))
	}

	n.logger.Info("Migrated legacy category names",
		logging.F(logging.FieldCount, len(defs)))
	return defs
}

func (n *Normalizer) migrateLegacyName(index int, name string) models.CategoryDef {
	if def, ok := models.FindCategoryByName(n.registry, name); ok {
		return models.CategoryDef{ID: def.ID, Name: name, Color: def.Color}
	}
	return models.CategoryDef{
		ID:    n.newID(index, name),
		Name:  name,
		Color: n.palette[index%len(n.palette)],
	}
}

func (n *Normalizer) decodeCategoryDefs(elems []json.RawMessage) []models.CategoryDef {
	defs := make([]models.CategoryDef, 0, len(elems))
	for i, elem := range elems {
		def, ok := decodeCategoryDef(elem)
		if !ok {
			n.logger.Warn("Dropping stored category that is not a record",
				logging.F(logging.FieldIndex, i))
			continue
		}
		defs = append(defs, def)
	}
	return defs
}

func decodeCategoryDef(raw json.RawMessage) (models.CategoryDef, bool) {
	fields, ok := objectFields(raw)
	if !ok {
		return models.CategoryDef{}, false
	}
	return models.CategoryDef{
		ID:    textField(fields["id"]),
		Name:  textField(fields["name"]),
		Color: textField(fields["color"]),
	}, true
}
