package migration

import (
	"encoding/json"
	"fmt"
	"testing"

	"fjacquet/mes-comptes/internal/codec"
	"fjacquet/mes-comptes/internal/logging"
	"fjacquet/mes-comptes/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNormalizer(opts ...Option) (*Normalizer, *logging.MockLogger) {
	logger := logging.NewMockLogger()
	return NewNormalizer(logger, opts...), logger
}

func TestNormalize_LegacyTransactionArray(t *testing.T) {
	n, _ := newTestNormalizer()

	got := n.Normalize(json.RawMessage(`[{"id":"t1","date":"2024-01-01","amount":10,"description":"x","category":"Alimentation","type":"income"}]`))

	assert.Equal(t, models.AppData{
		Transactions: []models.Transaction{
			{ID: "t1", Date: "2024-01-01", Amount: 10, Description: "x", Category: "Alimentation", Type: models.TransactionTypeIncome},
		},
		InitialBalance: 0,
		Categories:     nil,
	}, got)
}

func TestNormalize_LegacyStringCategories(t *testing.T) {
	n, logger := newTestNormalizer()

	got := n.Normalize(json.RawMessage(`{"transactions":[],"initialBalance":0,"categories":["Alimentation","CustomCat"]}`))

	require.Len(t, got.Categories, 2)
	assert.Equal(t, models.CategoryDef{ID: "food", Name: "Alimentation", Color: "#ef4444"}, got.Categories[0])

	custom := got.Categories[1]
	assert.Equal(t, "CustomCat", custom.Name)
	assert.Equal(t, models.Palette()[1], custom.Color)
	assert.Equal(t, LegacyCategoryID(1, "CustomCat"), custom.ID)
	assert.NotEmpty(t, custom.ID)
	for _, def := range models.DefaultCategories() {
		assert.NotEqual(t, def.ID, custom.ID)
	}

	assert.True(t, logger.HasEntry("INFO", "Migrated legacy category names"))
	assert.Equal(t, []models.Transaction{}, got.Transactions)
}

func TestNormalize_LegacyNamesCyclePalette(t *testing.T) {
	palette := []string{"#111111", "#222222", "#333333"}
	n, _ := newTestNormalizer(
		WithPalette(palette),
		WithIDGenerator(func(index int, name string) string { return fmt.Sprintf("cat-%d", index) }),
	)

	got := n.Normalize(json.RawMessage(`{"categories":["A","B","C","D","Logement"]}`))

	require.Len(t, got.Categories, 5)
	assert.Equal(t, models.CategoryDef{ID: "cat-0", Name: "A", Color: "#111111"}, got.Categories[0])
	assert.Equal(t, models.CategoryDef{ID: "cat-3", Name: "D", Color: "#111111"}, got.Categories[3])
	assert.Equal(t, models.CategoryDef{ID: "housing", Name: "Logement", Color: "#3b82f6"}, got.Categories[4])
}

func TestNormalize_LegacyNameMatchTakesRegistryColor(t *testing.T) {
	registry := []models.CategoryDef{{ID: "groceries", Name: "Courses", Color: "#abcdef"}}
	n, _ := newTestNormalizer(WithRegistry(registry))

	got := n.Normalize(json.RawMessage(`{"categories":["Courses","Alimentation"]}`))

	require.Len(t, got.Categories, 2)
	assert.Equal(t, models.CategoryDef{ID: "groceries", Name: "Courses", Color: "#abcdef"}, got.Categories[0])
	assert.Equal(t, "Alimentation", got.Categories[1].Name)
	assert.NotEqual(t, "food", got.Categories[1].ID, "only the configured registry is consulted")
}

func TestNormalize_LegacyNamesWithStrayElements(t *testing.T) {
	n, logger := newTestNormalizer()

	got := n.Normalize(json.RawMessage(`{"categories":["Autre",42,{"id":"c9","name":"Vacances","color":"#000000"},"Extra"]}`))

	require.Len(t, got.Categories, 3)
	assert.Equal(t, "other", got.Categories[0].ID)
	assert.Equal(t, models.CategoryDef{ID: "c9", Name: "Vacances", Color: "#000000"}, got.Categories[1])
	assert.Equal(t, models.Palette()[3], got.Categories[2].Color, "palette index follows the original position")
	assert.Len(t, logger.GetEntriesByLevel("WARN"), 1)
}

func TestNormalize_StructuredCategoriesPassThrough(t *testing.T) {
	n, _ := newTestNormalizer()
	raw := json.RawMessage(`{"transactions":[],"initialBalance":12.5,"categories":[{"id":"x1","name":"Alimentation","color":"#123456"},{"id":"x2","name":"Chats","color":"#654321"}]}`)

	got := n.Normalize(raw)

	assert.Equal(t, 12.5, got.InitialBalance)
	assert.Equal(t, []models.CategoryDef{
		{ID: "x1", Name: "Alimentation", Color: "#123456"},
		{ID: "x2", Name: "Chats", Color: "#654321"},
	}, got.Categories)
}

func TestNormalize_CategoriesAbsentEmptyOrInvalid(t *testing.T) {
	n, _ := newTestNormalizer()

	for _, raw := range []string{
		`{"transactions":[]}`,
		`{"transactions":[],"categories":[]}`,
		`{"transactions":[],"categories":"Alimentation"}`,
		`{"transactions":[],"categories":null}`,
		`{"transactions":[],"categories":[1,2]}`,
	} {
		t.Run(raw, func(t *testing.T) {
			assert.Nil(t, n.Normalize(json.RawMessage(raw)).Categories)
		})
	}
}

func TestNormalize_FieldDefaults(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected models.AppData
	}{
		{
			name:     "transactions not an array",
			raw:      `{"transactions":{"id":"t1"},"initialBalance":3}`,
			expected: models.AppData{Transactions: []models.Transaction{}, InitialBalance: 3},
		},
		{
			name:     "initial balance as string",
			raw:      `{"transactions":[],"initialBalance":"100"}`,
			expected: models.EmptyAppData(),
		},
		{
			name:     "initial balance null",
			raw:      `{"initialBalance":null}`,
			expected: models.EmptyAppData(),
		},
		{
			name:     "object with no known field",
			raw:      `{"foo":"bar"}`,
			expected: models.EmptyAppData(),
		},
		{
			name:     "negative balance",
			raw:      `{"initialBalance":-1500.25}`,
			expected: models.AppData{Transactions: []models.Transaction{}, InitialBalance: -1500.25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, _ := newTestNormalizer()
			assert.Equal(t, tt.expected, n.Normalize(json.RawMessage(tt.raw)))
		})
	}
}

func TestNormalize_UnrecognizedShapes(t *testing.T) {
	for _, raw := range []string{`"hello"`, `42`, `true`, `null`, ``, `{broken`} {
		t.Run(raw, func(t *testing.T) {
			n, logger := newTestNormalizer()
			assert.Equal(t, models.EmptyAppData(), n.Normalize(json.RawMessage(raw)))
			assert.True(t, logger.HasEntry("WARN", "Unrecognized document shape, using empty state"))
		})
	}
}

func TestNormalize_LenientTransactionFields(t *testing.T) {
	n, logger := newTestNormalizer()

	got := n.Normalize(json.RawMessage(`[
		{"id":1700000000000,"date":"2024-02-01","amount":"12,50","description":"numeric id","category":"food","type":"expense"},
		"garbage",
		{"id":"t3","amount":"abc","type":"income"},
		{"id":"t4","amount":7,"type":"income","statementNumber":"RL-7","extra":"ignored"},
		{"id":"t5","amount":"1,234.50","type":"expense"},
		{"id":"t6","amount":"1'234.50 CHF","type":"expense"}
	]`))

	require.Len(t, got.Transactions, 5)
	assert.Equal(t, 1234.5, got.Transactions[3].Amount)
	assert.Equal(t, 1234.5, got.Transactions[4].Amount)
	assert.Equal(t, "1700000000000", got.Transactions[0].ID)
	assert.Equal(t, 12.5, got.Transactions[0].Amount)
	assert.Equal(t, "t3", got.Transactions[1].ID)
	assert.Equal(t, 0.0, got.Transactions[1].Amount)
	assert.Equal(t, "RL-7", got.Transactions[2].StatementNumber)
	assert.Len(t, logger.GetEntriesByLevel("WARN"), 2)
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		`[{"id":"t1","date":"2024-01-01","amount":10,"description":"x","category":"Alimentation","type":"income"}]`,
		`{"transactions":[],"initialBalance":0,"categories":["Alimentation","CustomCat"]}`,
		`{"transactions":[{"id":2,"amount":"3.5","type":"expense"}],"initialBalance":"x","categories":[{"id":"a","name":"b","color":"#ffffff"}]}`,
		`{"categories":["Santé",{"id":"z","name":"Z","color":"#000"},false]}`,
		`"unrecognized"`,
		`[]`,
	}

	for _, raw := range inputs {
		t.Run(raw, func(t *testing.T) {
			n, _ := newTestNormalizer()
			once := n.Normalize(json.RawMessage(raw))

			again, err := json.Marshal(once)
			require.NoError(t, err)
			assert.Equal(t, once, n.Normalize(again))
			assert.Equal(t, once, n.NormalizeData(once))
		})
	}
}

func TestNormalize_SameInputSameIDs(t *testing.T) {
	n, _ := newTestNormalizer()
	raw := json.RawMessage(`{"categories":["Chats","Chats"]}`)

	first := n.Normalize(raw)
	second := n.Normalize(raw)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first.Categories[0].ID, first.Categories[1].ID, "duplicate names at different positions get distinct ids")
}

func TestNormalize_CodecRoundTrip(t *testing.T) {
	n, _ := newTestNormalizer()
	data := models.AppData{
		Transactions: []models.Transaction{
			{ID: "a", Date: "2024-03-01", Amount: 0.1, Description: "Crème brûlée", Category: "food", Type: models.TransactionTypeExpense},
			{ID: "b", Date: "2024-03-02", Amount: 123456789.123456, Description: "Prime", Category: "salary", Type: models.TransactionTypeIncome, StatementNumber: "03"},
			{ID: "c", Date: "2024-03-03", Amount: -1e-7, Description: "", Category: "", Type: models.TransactionTypeExpense},
		},
		InitialBalance: 1.0 / 3.0,
		Categories:     models.DefaultCategories(),
	}

	encoded, err := codec.Encode(data)
	require.NoError(t, err)
	raw, err := codec.Decode(encoded)
	require.NoError(t, err)

	assert.Equal(t, data, n.Normalize(raw))
}

func TestDetectGeneration(t *testing.T) {
	tests := []struct {
		raw      string
		expected Generation
	}{
		{`[]`, GenerationTransactionList},
		{`{"transactions":[],"categories":["A"]}`, GenerationStringCategories},
		{`{"transactions":[],"categories":[{"id":"a"}]}`, GenerationCurrent},
		{`{"transactions":[]}`, GenerationCurrent},
		{`12`, GenerationUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectGeneration(json.RawMessage(tt.raw)))
		})
	}

	assert.True(t, GenerationTransactionList.NeedsMigration())
	assert.True(t, GenerationStringCategories.NeedsMigration())
	assert.False(t, GenerationCurrent.NeedsMigration())
}
