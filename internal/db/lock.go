package db

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrStoreLocked is returned when another process already holds the database.
var ErrStoreLocked = errors.New("store is locked by another process")

func lockPath(dbPath string) string {
	return dbPath + ".lock"
}

// acquireWriterLock takes the exclusive process lock that makes this process
// the only writer of dbPath.
func acquireWriterLock(dbPath string) (*flock.Flock, error) {
	fileLock := flock.New(lockPath(dbPath))
	locked, err := fileLock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", fileLock.Path(), err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrStoreLocked, fileLock.Path())
	}
	return fileLock, nil
}
