// filepath: internal/services/info_service.go
package services

import (
	"fmt"
	"os"

	"petsapp/internal/config"
	"petsapp/internal/logging"
	"petsapp/internal/models"
	"petsapp/internal/repository"
)

var _ InfoService = (*infoService)(nil)

type infoService struct {
	Repo    *repository.Repository
	Version string
}

// NewInfoService creates a new InfoService.
func NewInfoService(repo *repository.Repository, version string) *infoService {
	return &infoService{
		Repo:    repo,
		Version: version,
	}
}

// OpenInfoService opens an existing database named in cfg for reporting.
// Unlike OpenPetService it never creates the file or its schema.
// The caller must Close the service.
func OpenInfoService(cfg *config.Config, version string) (*infoService, error) {
	if _, err := os.Stat(cfg.Database.Path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no database at %s", ErrStorageUnavailable, cfg.Database.Path)
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	repo, err := repository.NewRepository(cfg)
	if err != nil {
		logging.Log.Errorf("InfoService: failed to open storage: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := repo.ValidateSchema(); err != nil {
		repo.Close()
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return NewInfoService(repo, version), nil
}

// Close releases the underlying database handle.
func (s *infoService) Close() error {
	return s.Repo.Close()
}

// GetInfo reports the database location, size, schema version and row count.
func (s *infoService) GetInfo() (models.Info, error) {
	info := models.Info{
		Version:      s.Version,
		DatabasePath: s.Repo.Path,
	}

	size, err := s.Repo.FileSize()
	if err != nil {
		return models.Info{}, translateError(err)
	}
	info.FileSizeBytes = size

	version, err := s.Repo.SchemaVersion()
	if err != nil {
		return models.Info{}, translateError(err)
	}
	info.SchemaVersion = version

	count, err := s.Repo.CountPets()
	if err != nil {
		return models.Info{}, translateError(err)
	}
	info.PetCount = count

	return info, nil
}
