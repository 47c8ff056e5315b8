package db

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/terraincognita07/chemocompanion/internal/logger"
	"github.com/terraincognita07/chemocompanion/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const allBatchSize = 100

// CommitListener is told which kinds changed after a mutation commits.
type CommitListener interface {
	Committed(kinds ...models.Kind)
}

// Store is the keyed record store for sessions, checklist items and symptom
// logs. Mutations are serialized and committed before they return.
type Store struct {
	database  *gorm.DB
	fileLock  *flock.Flock
	mu        sync.Mutex
	listeners []CommitListener
}

// Open takes the single-writer lock for dbPath, then opens and migrates the
// database behind it.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	fileLock, err := acquireWriterLock(dbPath)
	if err != nil {
		return nil, err
	}

	database, err := OpenSQLite(dbPath)
	if err != nil {
		_ = fileLock.Unlock()
		return nil, err
	}

	store := NewStore(database)
	store.fileLock = fileLock
	return store, nil
}

// NewStore wraps an already opened database without taking a process lock.
func NewStore(database *gorm.DB) *Store {
	return &Store{database: database}
}

func (store *Store) DB() *gorm.DB {
	return store.database
}

func (store *Store) AddListener(listener CommitListener) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.listeners = append(store.listeners, listener)
}

func (store *Store) Close() error {
	var errs []error
	if sqlDB, err := store.database.DB(); err != nil {
		errs = append(errs, err)
	} else if err := sqlDB.Close(); err != nil {
		errs = append(errs, err)
	}
	if store.fileLock != nil {
		if err := store.fileLock.Unlock(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Put inserts the entity or replaces the stored record with the same id.
// Instants on the entity are converted to UTC in place.
func (store *Store) Put(ctx context.Context, entity models.Entity) error {
	if entity == nil || !entity.EntityKind().Valid() {
		return fmt.Errorf("%w: unsupported entity", models.ErrValidation)
	}
	if strings.TrimSpace(entity.EntityID()) == "" {
		return fmt.Errorf("%w: %s id is required", models.ErrValidation, entity.EntityKind())
	}

	normalizeInstants(entity)

	store.mu.Lock()
	defer store.mu.Unlock()

	err := store.database.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(entity).Error
	if err != nil {
		return storageError("put "+string(entity.EntityKind()), err)
	}

	store.notify(entity.EntityKind())
	return nil
}

// Update loads a record, applies mutate and writes it back while holding the
// writer lock, so concurrent read-modify-write cycles cannot interleave. An
// error from mutate aborts the update and is returned unchanged.
func (store *Store) Update(ctx context.Context, kind models.Kind, id string, mutate func(models.Entity) error) (models.Entity, error) {
	entity := models.NewEntity(kind)
	if entity == nil {
		return nil, fmt.Errorf("%w: unknown kind %q", models.ErrValidation, kind)
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	var mutateErr error
	err := store.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Limit(1).Find(entity)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return notFoundError(kind, id)
		}
		if mutateErr = mutate(entity); mutateErr != nil {
			return mutateErr
		}
		normalizeInstants(entity)
		return tx.Save(entity).Error
	})
	if err != nil {
		if mutateErr != nil || errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, storageError("update "+string(kind), err)
	}

	store.notify(kind)
	return entity, nil
}

// Delete removes a record. Deleting a session also deletes its checklist
// items in the same transaction. A missing id yields models.ErrNotFound.
func (store *Store) Delete(ctx context.Context, kind models.Kind, id string) error {
	target := models.NewEntity(kind)
	if target == nil {
		return fmt.Errorf("%w: unknown kind %q", models.ErrValidation, kind)
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	cascaded := false
	err := store.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if kind == models.KindSession {
			result := tx.Where("session_id = ?", id).Delete(&models.ChecklistItem{})
			if result.Error != nil {
				return result.Error
			}
			cascaded = result.RowsAffected > 0
		}

		result := tx.Where("id = ?", id).Delete(target)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return notFoundError(kind, id)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return err
		}
		return storageError("delete "+string(kind), err)
	}

	if cascaded {
		store.notify(kind, models.KindChecklistItem)
	} else {
		store.notify(kind)
	}
	return nil
}

// Get loads one record by kind and id.
func (store *Store) Get(ctx context.Context, kind models.Kind, id string) (models.Entity, error) {
	entity := models.NewEntity(kind)
	if entity == nil {
		return nil, fmt.Errorf("%w: unknown kind %q", models.ErrValidation, kind)
	}

	result := store.database.WithContext(ctx).Where("id = ?", id).Limit(1).Find(entity)
	if result.Error != nil {
		return nil, storageError("get "+string(kind), result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, notFoundError(kind, id)
	}
	return entity, nil
}

// All yields every record of a kind. Records are fetched lazily in batches
// keyed by id, so no connection is held between yields and ranging over the
// sequence again re-reads the store.
func (store *Store) All(ctx context.Context, kind models.Kind) iter.Seq2[models.Entity, error] {
	return func(yield func(models.Entity, error) bool) {
		if !kind.Valid() {
			yield(nil, fmt.Errorf("%w: unknown kind %q", models.ErrValidation, kind))
			return
		}

		afterID := ""
		for {
			batch, err := store.loadBatch(ctx, kind, afterID)
			if err != nil {
				yield(nil, storageError("list "+string(kind), err))
				return
			}
			for _, entity := range batch {
				if !yield(entity, nil) {
					return
				}
			}
			if len(batch) < allBatchSize {
				return
			}
			afterID = batch[len(batch)-1].EntityID()
		}
	}
}

func (store *Store) loadBatch(ctx context.Context, kind models.Kind, afterID string) ([]models.Entity, error) {
	query := store.database.WithContext(ctx).Where("id > ?", afterID).Order("id ASC").Limit(allBatchSize)

	switch kind {
	case models.KindSession:
		rows := make([]models.Session, 0, allBatchSize)
		if err := query.Find(&rows).Error; err != nil {
			return nil, err
		}
		return toEntities(rows), nil
	case models.KindChecklistItem:
		rows := make([]models.ChecklistItem, 0, allBatchSize)
		if err := query.Find(&rows).Error; err != nil {
			return nil, err
		}
		return toEntities(rows), nil
	default:
		rows := make([]models.SymptomLog, 0, allBatchSize)
		if err := query.Find(&rows).Error; err != nil {
			return nil, err
		}
		return toEntities(rows), nil
	}
}

func toEntities[T any, P interface {
	*T
	models.Entity
}](rows []T) []models.Entity {
	entities := make([]models.Entity, 0, len(rows))
	for index := range rows {
		entities = append(entities, P(&rows[index]))
	}
	return entities
}

func normalizeInstants(entity models.Entity) {
	switch record := entity.(type) {
	case *models.Session:
		record.Date = utc(record.Date)
	case *models.SymptomLog:
		record.Date = utc(record.Date)
	}
}

func (store *Store) notify(kinds ...models.Kind) {
	for _, listener := range store.listeners {
		listener.Committed(kinds...)
	}
}

func notFoundError(kind models.Kind, id string) error {
	return fmt.Errorf("%w: %s %s", models.ErrNotFound, kind, id)
}

func storageError(operation string, err error) error {
	logger.Error("storage operation failed", "operation", operation, "error", err)
	return fmt.Errorf("%w: %s: %v", models.ErrStorage, operation, err)
}
