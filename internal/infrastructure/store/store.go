// Package store provides the durable key-value backends used for history and preferences.
package store

import (
	"fmt"
	"path/filepath"

	"github.com/doeshing/sensi-go/internal/domain"
	"github.com/doeshing/sensi-go/internal/pkg/filesystem"
	"github.com/doeshing/sensi-go/internal/ports"
)

// Open builds the backend named in the storage settings.
func Open(settings domain.StorageSettings) (ports.KeyValueStore, error) {
	dir := filesystem.ExpandPath(settings.Dir)
	if dir == "" {
		dir = filepath.Join(filesystem.UserHomeDir(), ".sensi")
	}
	switch settings.Backend {
	case "", domain.StorageBackendFile:
		return NewFileStore(filepath.Join(dir, "store")), nil
	case domain.StorageBackendSQLite:
		return NewSQLiteStore(dir), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", settings.Backend)
	}
}
