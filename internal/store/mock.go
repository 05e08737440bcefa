package store

import (
	"fjacquet/mes-comptes/internal/models"
)

// CategoryLoader is what the rest of the application needs from a registry source.
type CategoryLoader interface {
	LoadCategories() ([]models.CategoryDef, error)
}

// MockCategoryStore is a mock implementation of CategoryLoader for testing.
type MockCategoryStore struct {
	Categories []models.CategoryDef

	// Error flag for testing error conditions
	LoadCategoriesError error
}

// LoadCategories returns a copy of the mock categories.
func (m *MockCategoryStore) LoadCategories() ([]models.CategoryDef, error) {
	if m.LoadCategoriesError != nil {
		return nil, m.LoadCategoriesError
	}
	return append([]models.CategoryDef(nil), m.Categories...), nil
}
