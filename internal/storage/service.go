// Package storage loads and saves the application document.
//
// It chains the blob store, the codec and the normalizer. Load and Save
// return classified errors for callers that want to report them;
// LoadAppData and SaveAppData are the total versions used by the
// application: they log failures and always return a value.
package storage

import (
	"context"
	"errors"
	"fmt"

	"fjacquet/mes-comptes/internal/blobstore"
	"fjacquet/mes-comptes/internal/codec"
	"fjacquet/mes-comptes/internal/logging"
	"fjacquet/mes-comptes/internal/migration"
	"fjacquet/mes-comptes/internal/models"
	"fjacquet/mes-comptes/internal/persistenceerror"
)

// Service is the persistence facade. It performs no locking: callers issue
// one load or save at a time, and the last save wins.
type Service struct {
	store      blobstore.Store
	normalizer *migration.Normalizer
	logger     logging.Logger
}

// NewService wires a Service. A nil normalizer gets the default one.
func NewService(store blobstore.Store, normalizer *migration.Normalizer, logger logging.Logger) *Service {
	logger = logging.OrDefault(logger)
	if normalizer == nil {
		normalizer = migration.NewNormalizer(logger)
	}
	return &Service{
		store:      store,
		normalizer: normalizer,
		logger:     logger,
	}
}

// Source describes where the document is stored.
func (s *Service) Source() string {
	return s.store.Location()
}

// LoadResult is a loaded document and how it was found.
type LoadResult struct {
	Data       models.AppData
	Generation migration.Generation
	Encoded    bool // false when the text was plain JSON
}

// UpToDate reports whether the stored text is already encoded in a format
// that needs no rewrite.
func (r LoadResult) UpToDate() bool {
	return r.Encoded && !r.Generation.NeedsMigration()
}

// Load reads and normalizes the stored document. A missing document yields
// the empty state and no error. A stored text that cannot be decoded either
// way yields the empty state and the decode error; a store failure yields
// the empty state and the *persistenceerror.StoreError.
func (s *Service) Load(ctx context.Context) (models.AppData, error) {
	res, err := s.load(ctx)
	if persistenceerror.IsAbsent(err) {
		s.logger.Info("No stored document, starting from empty state",
			logging.F(logging.FieldLocation, s.store.Location()))
		return models.EmptyAppData(), nil
	}
	if err != nil {
		return models.EmptyAppData(), err
	}
	return res.Data, nil
}

func (s *Service) load(ctx context.Context) (LoadResult, error) {
	text, err := s.store.Read(ctx)
	if err != nil {
		return LoadResult{Data: models.EmptyAppData()}, err
	}
	if text == "" {
		return LoadResult{Data: models.EmptyAppData()}, persistenceerror.ErrAbsent
	}

	raw, decodeErr := codec.Decode(text)
	encoded := decodeErr == nil
	if decodeErr != nil {
		s.logger.WithError(decodeErr).Debug("Stored text is not encoded, trying plain JSON",
			logging.F(logging.FieldLocation, s.store.Location()))

		var plainErr error
		raw, plainErr = codec.ParsePlain(text)
		if plainErr != nil {
			return LoadResult{Data: models.EmptyAppData()}, fmt.Errorf("stored document is unreadable: %w", errors.Join(decodeErr, plainErr))
		}
	}

	return LoadResult{
		Data:       s.normalizer.Normalize(raw),
		Generation: migration.DetectGeneration(raw),
		Encoded:    encoded,
	}, nil
}

// LoadAppData returns the stored document, or the empty state when there is
// none or it cannot be read. It never fails.
func (s *Service) LoadAppData(ctx context.Context) models.AppData {
	data, err := s.Load(ctx)
	if err != nil {
		s.logFailure(err, "load", "Failed to load app data, starting from empty state")
		return models.EmptyAppData()
	}
	return data
}

// Save encodes data and replaces the stored document.
func (s *Service) Save(ctx context.Context, data models.AppData) error {
	text, err := codec.Encode(data)
	if err != nil {
		return err
	}
	if err := s.store.Write(ctx, text); err != nil {
		return err
	}

	s.logger.Debug("Saved app data",
		logging.F(logging.FieldLocation, s.store.Location()),
		logging.F(logging.FieldCount, len(data.Transactions)))
	return nil
}

// SaveAppData saves data and reports whether it succeeded. A failed save
// leaves the previously stored document as it was.
func (s *Service) SaveAppData(ctx context.Context, data models.AppData) bool {
	if err := s.Save(ctx, data); err != nil {
		s.logFailure(err, "save", "Failed to save app data")
		return false
	}
	return true
}

// Migrate rewrites the stored document in the current format and returns
// what was found. It returns persistenceerror.ErrAbsent when nothing is stored,
// leaves unreadable documents untouched and does not write documents that are
// already up to date.
func (s *Service) Migrate(ctx context.Context) (LoadResult, error) {
	res, err := s.load(ctx)
	if err != nil {
		return res, err
	}

	if res.UpToDate() {
		s.logger.Info("Stored document already in current format",
			logging.F(logging.FieldLocation, s.store.Location()),
			logging.F("generation", string(res.Generation)))
		return res, nil
	}

	if err := s.Save(ctx, res.Data); err != nil {
		return res, err
	}

	s.logger.Info("Rewrote stored document in current format",
		logging.F(logging.FieldLocation, s.store.Location()),
		logging.F("generation", string(res.Generation)),
		logging.F("was_encoded", res.Encoded),
		logging.F(logging.FieldCount, len(res.Data.Transactions)))
	return res, nil
}

// Normalizer returns the normalizer used on load.
func (s *Service) Normalizer() *migration.Normalizer {
	return s.normalizer
}

func (s *Service) logFailure(err error, op, msg string) {
	entry := s.logger.WithError(err).WithFields(
		logging.F(logging.FieldOperation, op),
		logging.F(logging.FieldLocation, s.store.Location()))

	var decodeErr *persistenceerror.DecodeError
	if errors.As(err, &decodeErr) {
		entry = entry.WithField(logging.FieldStage, string(decodeErr.Stage))
	}
	entry.Error(msg)
}
