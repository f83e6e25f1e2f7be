package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/influence-roster/internal/config"
	"github.com/MKhiriev/influence-roster/internal/logger"
)

// Storages bundles the persistence dependencies of the services.
type Storages struct {
	Profiles PersistenceBackend
	Blobs    BlobStore
	Images   *ImageCache
}

func NewStorages(profiles PersistenceBackend, blobs BlobStore) *Storages {
	return &Storages{
		Profiles: profiles,
		Blobs:    blobs,
		Images:   NewImageCache(blobs),
	}
}

// NewPersistenceBackend opens the roster backend named by cfg.Backend,
// migrating the schema of the SQL backends.
func NewPersistenceBackend(ctx context.Context, cfg config.Storage, log *logger.Logger) (PersistenceBackend, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return NewFileProfileStorage(cfg.File.Path, log), nil

	case config.BackendSQLite, config.BackendPostgres:
		var (
			db  *DB
			err error
		)
		if cfg.Backend == config.BackendSQLite {
			db, err = NewConnectSQLite(ctx, cfg.DB, log)
		} else {
			db, err = NewConnectPostgres(ctx, cfg.DB, log)
		}
		if err != nil {
			return nil, err
		}
		if err = db.Migrate(); err != nil {
			db.Close()
			return nil, err
		}
		return NewProfileRepository(db, log), nil

	case config.BackendRedis:
		return NewConnectRedis(ctx, cfg.Redis, log)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
