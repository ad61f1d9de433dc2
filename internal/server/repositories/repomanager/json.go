package repomanager

import (
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/gallery/internal/server/models"
	"github.com/dmitrijs2005/gallery/internal/server/repositories/jsonfile"
	"github.com/dmitrijs2005/gallery/internal/server/repositories/uploads"
	"github.com/dmitrijs2005/gallery/internal/server/repositories/users"
)

const (
	UsersFileName   = "users.json"
	UploadsFileName = "data.json"
)

// JSONRepositoryManager stores users and uploads as two JSON files in dataDir.
type JSONRepositoryManager struct {
	users   *users.JSONRepository
	uploads *uploads.JSONRepository
}

func NewJSONRepositoryManager(dataDir string) (*JSONRepositoryManager, error) {
	uc, err := jsonfile.Open[models.User](filepath.Join(dataDir, UsersFileName))
	if err != nil {
		return nil, fmt.Errorf("open users store: %w", err)
	}

	dc, err := jsonfile.Open[models.Upload](filepath.Join(dataDir, UploadsFileName))
	if err != nil {
		return nil, fmt.Errorf("open uploads store: %w", err)
	}

	return &JSONRepositoryManager{
		users:   users.NewJSONRepository(uc),
		uploads: uploads.NewJSONRepository(dc),
	}, nil
}

func (m *JSONRepositoryManager) Users() users.Repository     { return m.users }
func (m *JSONRepositoryManager) Uploads() uploads.Repository { return m.uploads }
func (m *JSONRepositoryManager) Close() error                { return nil }
