// Package store loads and saves the category registry file that overrides
// the built-in default categories.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/mes-comptes/internal/fileutils"
	"fjacquet/mes-comptes/internal/logging"
	"fjacquet/mes-comptes/internal/models"

	"gopkg.in/yaml.v3"
)

// DefaultCategoriesFile is the registry file name looked up when none is configured.
const DefaultCategoriesFile = "categories.yaml"

// CategoryStore manages loading and saving of the category registry
type CategoryStore struct {
	CategoriesFile string
	logger         logging.Logger
}

// NewCategoryStore creates a new store for the registry file
func NewCategoryStore(categoriesFile string, logger logging.Logger) *CategoryStore {
	return &CategoryStore{
		CategoriesFile: categoriesFile,
		logger:         logging.OrDefault(logger),
	}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *CategoryStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if fileutils.FileExists(filename) {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".mes-comptes", filename))
	}

	for _, location := range locations {
		if fileutils.FileExists(location) {
			return location, nil
		}
	}

	return "", os.ErrNotExist
}

func (s *CategoryStore) filename() string {
	if s.CategoriesFile == "" {
		return DefaultCategoriesFile
	}
	return s.CategoriesFile
}

// LoadCategories returns the registry from the YAML file, or the built-in
// defaults when no file exists. Entries without a name are skipped; entries
// without an id or color get one derived from their name and position.
func (s *CategoryStore) LoadCategories() ([]models.CategoryDef, error) {
	filePath, err := s.FindConfigFile(s.filename())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("No categories file, using default registry",
				logging.F(logging.FieldLocation, s.filename()))
			return models.DefaultCategories(), nil
		}
		return nil, fmt.Errorf("error resolving categories file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	defs, err := parseCategories(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing categories file %s: %w", filePath, err)
	}
	if len(defs) == 0 {
		s.logger.Warn("Categories file is empty, using default registry",
			logging.F(logging.FieldLocation, filePath))
		return models.DefaultCategories(), nil
	}

	s.logger.Debug("Loaded category registry",
		logging.F(logging.FieldLocation, filePath),
		logging.F(logging.FieldCount, len(defs)))
	return defs, nil
}

// parseCategories accepts both a "categories:" document and a bare list.
// List items are either category entries or plain names.
func parseCategories(data []byte) ([]models.CategoryDef, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	var raw []models.CategoryDef
	switch root := doc.Content[0]; root.Kind {
	case yaml.MappingNode:
		var cfg models.CategoriesConfig
		if err := root.Decode(&cfg); err != nil {
			return nil, err
		}
		raw = cfg.Categories
	case yaml.SequenceNode:
		raw = make([]models.CategoryDef, 0, len(root.Content))
		for _, item := range root.Content {
			if item.Kind == yaml.ScalarNode {
				raw = append(raw, models.CategoryDef{Name: item.Value})
				continue
			}
			var def models.CategoryDef
			if err := item.Decode(&def); err != nil {
				return nil, err
			}
			raw = append(raw, def)
		}
	default:
		return nil, fmt.Errorf("expected a list of categories")
	}

	palette := models.Palette()
	defs := make([]models.CategoryDef, 0, len(raw))
	for i, def := range raw {
		def.Name = strings.TrimSpace(def.Name)
		if def.Name == "" {
			continue
		}
		if def.ID == "" {
			def.ID = slug(def.Name)
		}
		if def.Color == "" {
			def.Color = palette[i%len(palette)]
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func slug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// SaveCategories writes the registry to the configured file, creating its
// directory when needed.
func (s *CategoryStore) SaveCategories(defs []models.CategoryDef) (string, error) {
	filePath, err := s.FindConfigFile(s.filename())
	if err != nil {
		filePath = s.filename()
	}

	data, err := yaml.Marshal(models.CategoriesConfig{Categories: defs})
	if err != nil {
		return "", fmt.Errorf("error marshaling categories: %w", err)
	}

	if err := fileutils.WriteFileAtomic(filePath, data, models.PermissionConfigFile); err != nil {
		return "", fmt.Errorf("error writing categories file: %w", err)
	}

	s.logger.Info("Saved category registry",
		logging.F(logging.FieldLocation, filePath),
		logging.F(logging.FieldCount, len(defs)))
	return filePath, nil
}
