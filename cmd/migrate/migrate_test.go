package migrate_test

import (
	"bytes"
	"context"
	"testing"

	"fjacquet/mes-comptes/cmd/migrate"
	"fjacquet/mes-comptes/internal/blobstore"
	"fjacquet/mes-comptes/internal/codec"
	"fjacquet/mes-comptes/internal/logging"
	"fjacquet/mes-comptes/internal/migration"
	"fjacquet/mes-comptes/internal/models"
	"fjacquet/mes-comptes/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateCommand_Metadata(t *testing.T) {
	assert.Equal(t, "migrate", migrate.Cmd.Use)
	assert.NotNil(t, migrate.Cmd.RunE)
}

func encoded(t *testing.T, data models.AppData) string {
	t.Helper()
	text, err := codec.Encode(data)
	require.NoError(t, err)
	return text
}

func TestRun(t *testing.T) {
	current := models.AppData{
		Transactions:   []models.Transaction{{ID: "1", Date: "2024-01-01", Amount: 4, Type: models.TransactionTypeIncome}},
		InitialBalance: 2,
	}

	tests := []struct {
		name    string
		store   *blobstore.MemoryStore
		want    string
		wantErr bool
	}{
		{
			name:  "nothing stored",
			store: blobstore.NewMemoryStore(),
			want:  "nothing to migrate",
		},
		{
			name:  "legacy transaction array",
			store: blobstore.NewMemoryStoreWith(`[{"id":"1","amount":1,"type":"income"}]`),
			want:  "from transaction-list (plain JSON): 1 transactions, 0 categories",
		},
		{
			name:  "string categories",
			store: blobstore.NewMemoryStoreWith(`{"transactions":[],"initialBalance":0,"categories":["Autre","Chat"]}`),
			want:  "from string-categories (plain JSON): 0 transactions, 2 categories",
		},
		{
			name:  "already current",
			store: blobstore.NewMemoryStoreWith(encoded(t, current)),
			want:  "is already in the current format: 1 transactions, 0 categories",
		},
		{
			name:    "unreadable",
			store:   blobstore.NewMemoryStoreWith("@@@"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := storage.NewService(tt.store, nil, logging.NewMockLogger())
			var out bytes.Buffer

			err := migrate.Run(context.Background(), svc, &out)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out.String(), tt.want)

			if text, present := tt.store.Text(); present {
				raw, err := codec.Decode(text)
				require.NoError(t, err)
				assert.Equal(t, migration.GenerationCurrent, migration.DetectGeneration(raw))
			}
		})
	}
}
