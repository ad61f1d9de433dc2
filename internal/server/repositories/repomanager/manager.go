// Package repomanager selects and owns the storage backend: JSON flat files
// by default, PostgreSQL when a DSN is configured.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/gallery/internal/server/config"
	"github.com/dmitrijs2005/gallery/internal/server/repositories/uploads"
	"github.com/dmitrijs2005/gallery/internal/server/repositories/users"
)

// RepositoryManager hands out the process-wide stores.
type RepositoryManager interface {
	Users() users.Repository
	Uploads() uploads.Repository
	Close() error
}

// Open picks the backend from configuration.
func Open(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	if cfg.UsePostgres() {
		return OpenPostgres(ctx, cfg.DatabaseDSN)
	}
	return NewJSONRepositoryManager(cfg.DataDir)
}
