package migration

import "encoding/json"

// Generation names the schema generation a stored document was written in.
type Generation string

const (
	GenerationUnknown          Generation = "unknown"
	GenerationTransactionList  Generation = "transaction-list"
	GenerationStringCategories Generation = "string-categories"
	GenerationCurrent          Generation = "current"
)

// NeedsMigration reports whether a document of this generation is rewritten
// when saved again.
func (g Generation) NeedsMigration() bool {
	return g == GenerationTransactionList || g == GenerationStringCategories
}

// DetectGeneration tells which generation raw was written in.
func DetectGeneration(raw json.RawMessage) Generation {
	if _, ok := arrayElements(raw); ok {
		return GenerationTransactionList
	}

	fields, ok := objectFields(raw)
	if !ok {
		return GenerationUnknown
	}

	if elems, ok := arrayElements(fields["categories"]); ok && len(elems) > 0 && kindOf(elems[0]) == kindString {
		return GenerationStringCategories
	}
	return GenerationCurrent
}
