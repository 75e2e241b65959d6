// filepath: internal/repository/repository.go
package repository

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"petsapp/internal/config"
	"petsapp/internal/logging"
	"petsapp/internal/models"
	"petsapp/internal/shared"

	"github.com/Masterminds/squirrel"
	"github.com/patrickmn/go-cache"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

const defaultBusyTimeoutMs = 5000

// Repository owns the SQLite database file holding the pets table.
// It is the only component that talks SQL.
type Repository struct {
	DB      *sql.DB
	Cache   *cache.Cache                  // nil when caching is disabled
	Builder squirrel.StatementBuilderType // SQL Query Builder
	Path    string
}

// NewRepository connects to the database file named in cfg, creating the parent
// directory when needed. It does not touch the schema; see Open.
func NewRepository(cfg *config.Config) (*Repository, error) {
	path := cfg.Database.Path
	if path == "" {
		return nil, fmt.Errorf("%w: empty database path", shared.ErrStorageUnavailable)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: create parent dir: %w", shared.ErrStorageUnavailable, err)
		}
	}

	busyTimeout := cfg.Database.BusyTimeoutMs
	if busyTimeout == 0 {
		busyTimeout = defaultBusyTimeoutMs
	}
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)", path, busyTimeout)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", shared.ErrStorageUnavailable, path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: open %s: %w", shared.ErrStorageUnavailable, path, err)
	}

	repo := &Repository{
		DB:      db,
		Builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		Path:    path,
	}
	if cfg.CacheTTL > 0 {
		repo.Cache = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}

	logging.Log.Debugf("Repository: connected to %s (busy_timeout=%dms, cache_ttl=%v)", path, busyTimeout, cfg.CacheTTL)
	return repo, nil
}

// Open connects to the database and guarantees the pets table exists.
// A fresh file gets the schema created exactly once. Every failure is
// reported as shared.ErrStorageUnavailable and leaves no open handle behind.
func Open(cfg *config.Config) (*Repository, error) {
	repo, err := NewRepository(cfg)
	if err != nil {
		return nil, err
	}

	if err := repo.EnsureSchemaBootstrapped(); err != nil {
		repo.Close()
		return nil, fmt.Errorf("%w: bootstrap schema: %w", shared.ErrStorageUnavailable, err)
	}
	if err := repo.ValidateSchema(); err != nil {
		repo.Close()
		return nil, fmt.Errorf("%w: %w", shared.ErrStorageUnavailable, err)
	}

	return repo, nil
}

// Close releases the underlying database handle.
func (s *Repository) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// FileSize returns the size of the database file on disk.
func (s *Repository) FileSize() (int64, error) {
	info, err := os.Stat(s.Path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// cachedPet returns a copy of a cached pet, if present.
func (s *Repository) cachedPet(id int64) (models.Pet, bool) {
	if s.Cache == nil {
		return models.Pet{}, false
	}
	v, ok := s.Cache.Get(petCacheKey(id))
	if !ok {
		return models.Pet{}, false
	}
	return v.(models.Pet), true
}

// cachePet stores the pet by value so callers can never mutate the cache.
func (s *Repository) cachePet(pet models.Pet) {
	if s.Cache == nil {
		return
	}
	s.Cache.Set(petCacheKey(pet.ID), pet, cache.DefaultExpiration)
}

func (s *Repository) invalidatePet(id int64) {
	if s.Cache == nil {
		return
	}
	s.Cache.Delete(petCacheKey(id))
}

func (s *Repository) invalidateAll() {
	if s.Cache == nil {
		return
	}
	s.Cache.Flush()
}

func petCacheKey(id int64) string {
	return fmt.Sprintf("pet_by_id_%d", id)
}
