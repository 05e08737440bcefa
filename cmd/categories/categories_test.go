package categories_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"fjacquet/mes-comptes/cmd/categories"
	"fjacquet/mes-comptes/internal/blobstore"
	"fjacquet/mes-comptes/internal/logging"
	"fjacquet/mes-comptes/internal/models"
	"fjacquet/mes-comptes/internal/storage"
	"fjacquet/mes-comptes/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesCommand_Metadata(t *testing.T) {
	assert.Equal(t, "categories", categories.Cmd.Use)
	assert.NotNil(t, categories.Cmd.Flags().Lookup("write-defaults"))
}

func TestRun_DefaultsWhenDocumentHasNone(t *testing.T) {
	svc := storage.NewService(blobstore.NewMemoryStore(), nil, logging.NewMockLogger())

	var out bytes.Buffer
	require.NoError(t, categories.Run(context.Background(), svc, &out, models.DefaultCategories()))

	assert.Contains(t, out.String(), "Categories (defaults):")
	assert.Contains(t, out.String(), "Alimentation")
	assert.Contains(t, out.String(), "#0ea5e9")
}

func TestRun_StoredRegistry(t *testing.T) {
	mem := blobstore.NewMemoryStoreWith(`{"transactions":[],"initialBalance":0,"categories":[{"id":"x1","name":"Vacances","color":"#abcdef"}]}`)
	svc := storage.NewService(mem, nil, logging.NewMockLogger())

	var out bytes.Buffer
	require.NoError(t, categories.Run(context.Background(), svc, &out, models.DefaultCategories()))

	assert.Contains(t, out.String(), "Categories (document):")
	assert.Contains(t, out.String(), "Vacances")
	assert.NotContains(t, out.String(), "Alimentation")
}

func TestWriteDefaults(t *testing.T) {
	file := filepath.Join(t.TempDir(), "categories.yaml")
	s := store.NewCategoryStore(file, logging.NewMockLogger())

	var out bytes.Buffer
	require.NoError(t, categories.WriteDefaults(s, &out, models.DefaultCategories()))
	assert.Contains(t, out.String(), file)

	loaded, err := s.LoadCategories()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCategories(), loaded)
}
