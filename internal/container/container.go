// Package container provides dependency injection for the mes-comptes application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"

	"fjacquet/mes-comptes/internal/blobstore"
	"fjacquet/mes-comptes/internal/config"
	"fjacquet/mes-comptes/internal/logging"
	"fjacquet/mes-comptes/internal/migration"
	"fjacquet/mes-comptes/internal/models"
	"fjacquet/mes-comptes/internal/storage"
	"fjacquet/mes-comptes/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation: all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	categories store.CategoryLoader
	registry   []models.CategoryDef
	blobs      blobstore.Store
	storage    *storage.Service
}

// Option customizes NewContainer.
type Option func(*options)

type options struct {
	logger     logging.Logger
	categories store.CategoryLoader
	blobs      blobstore.Store
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithCategoryLoader replaces the registry file loader.
func WithCategoryLoader(loader store.CategoryLoader) Option {
	return func(o *options) { o.categories = loader }
}

// WithStore replaces the blob store selected by the configuration.
func WithStore(s blobstore.Store) Option {
	return func(o *options) { o.blobs = s }
}

// NewContainer creates and wires all application dependencies.
// This is the main entry point for dependency injection in the application.
//
// The blob store is opened here, once; the rest of the application only
// sees the storage facade.
func NewContainer(ctx context.Context, cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))
	}

	loader := o.categories
	if loader == nil {
		loader = store.NewCategoryStore(cfg.Categories.File, logger)
	}
	registry, err := loader.LoadCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to load category registry: %w", err)
	}

	blobs := o.blobs
	if blobs == nil {
		blobs, err = blobstore.New(ctx, cfg.StorageOptions(), logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open storage: %w", err)
		}
	}

	normalizer := migration.NewNormalizer(logger, migration.WithRegistry(registry))
	svc := storage.NewService(blobs, normalizer, logger)

	logger.Debug("Container initialized",
		logging.F(logging.FieldBackend, cfg.Storage.Backend),
		logging.F(logging.FieldLocation, blobs.Location()),
		logging.F(logging.FieldCount, len(registry)))

	return &Container{
		logger:     logger,
		config:     cfg,
		categories: loader,
		registry:   registry,
		blobs:      blobs,
		storage:    svc,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetCategoryLoader returns the registry file loader.
func (c *Container) GetCategoryLoader() store.CategoryLoader {
	return c.categories
}

// GetRegistry returns a copy of the category registry used for migrations
// and as the default category list.
func (c *Container) GetRegistry() []models.CategoryDef {
	return append([]models.CategoryDef(nil), c.registry...)
}

// GetStorage returns the persistence facade.
func (c *Container) GetStorage() *storage.Service {
	return c.storage
}

// Close releases the blob store.
func (c *Container) Close() error {
	if err := c.blobs.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	c.logger.Debug("Container closed")
	return nil
}
