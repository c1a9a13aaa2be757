package storage

import (
	"fmt"
	"strings"
)

// Store is a key-value persistence backend. Values are whole documents; there
// are no partial writes.
type Store interface {
	// Load returns the value for key. ok is false when the key was never saved.
	Load(key string) (value []byte, ok bool, err error)
	Save(key string, value []byte) error
	Close() error
}

// Open builds the store selected by driver: "file" (dir), "sqlite" (path) or
// "memory".
func Open(driver, dir, sqlitePath string) (Store, error) {
	switch driver {
	case "file", "":
		return NewFileStore(dir)
	case "sqlite":
		return NewSQLiteStore(sqlitePath)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

func checkKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return fmt.Errorf("invalid storage key %q", key)
	}
	return nil
}
