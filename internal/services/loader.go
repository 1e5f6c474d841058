package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gorm.io/gorm"

	"alfredoptarigan/compliance-dashboard/internal/repositories"
)

// SourceLoader fetches the raw bytes of a named source. Implementations
// report ErrSourceNotFound for unknown or missing sources and ErrSourceIO for
// any other read failure, both wrapped in a *SourceError.
type SourceLoader interface {
	Load(ctx context.Context, name string) ([]byte, error)
}

type fileLoader struct {
	dataDir string
	files   map[string]string
}

// NewFileLoader serves a fixed set of named sources, each backed by a file
// inside dataDir.
func NewFileLoader(dataDir string, files map[string]string) SourceLoader {
	return &fileLoader{
		dataDir: dataDir,
		files:   files,
	}
}

// Load implements SourceLoader.
func (l *fileLoader) Load(ctx context.Context, name string) ([]byte, error) {
	filename, ok := l.files[name]
	if !ok {
		return nil, newSourceError(name, ErrSourceNotFound, errors.New("source is not configured"))
	}

	if err := ctx.Err(); err != nil {
		return nil, newSourceError(name, ErrSourceIO, err)
	}

	path := resolvePath(l.dataDir, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newSourceError(name, ErrSourceNotFound, fmt.Errorf("file not found at %s", path))
		}
		return nil, newSourceError(name, ErrSourceIO, err)
	}

	return data, nil
}

type repositoryLoader struct {
	sourceRepo repositories.SourceRepository
}

// NewRepositoryLoader serves sources stored in the database.
func NewRepositoryLoader(sourceRepo repositories.SourceRepository) SourceLoader {
	return &repositoryLoader{sourceRepo: sourceRepo}
}

// Load implements SourceLoader.
func (l *repositoryLoader) Load(ctx context.Context, name string) ([]byte, error) {
	source, err := l.sourceRepo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newSourceError(name, ErrSourceNotFound, errors.New("no stored source with this name"))
		}
		return nil, newSourceError(name, ErrSourceIO, err)
	}

	return []byte(source.Content), nil
}

type staticLoader struct {
	sources map[string][]byte
}

// NewStaticLoader serves in-process data.
func NewStaticLoader(sources map[string][]byte) SourceLoader {
	return &staticLoader{sources: sources}
}

// Load implements SourceLoader.
func (l *staticLoader) Load(_ context.Context, name string) ([]byte, error) {
	data, ok := l.sources[name]
	if !ok {
		return nil, newSourceError(name, ErrSourceNotFound, errors.New("source is not configured"))
	}
	return data, nil
}

func resolvePath(baseDir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(baseDir, name)
}
