package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"alfredoptarigan/compliance-dashboard/internal/repositories"
)

// SourceWriter replaces the stored content of a named source.
type SourceWriter interface {
	Save(ctx context.Context, name string, content []byte) error
}

type StorageService interface {
	SourceWriter
	GetFilePath(name string) (string, error)
	EnsureDataDir() error
}

type storageService struct {
	dataDir string
	files   map[string]string
}

// NewStorageService writes sources into the same files the file loader reads.
func NewStorageService(dataDir string, files map[string]string) StorageService {
	return &storageService{
		dataDir: dataDir,
		files:   files,
	}
}

func (s *storageService) EnsureDataDir() error {
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	return nil
}

func (s *storageService) GetFilePath(name string) (string, error) {
	filename, ok := s.files[name]
	if !ok {
		return "", newSourceError(name, ErrSourceNotFound, errors.New("source is not configured"))
	}
	return resolvePath(s.dataDir, filename), nil
}

// Save writes content through a temporary file so readers never observe a
// partially written source.
func (s *storageService) Save(ctx context.Context, name string, content []byte) error {
	path, err := s.GetFilePath(name)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write source: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close source: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace source: %w", err)
	}

	return nil
}

type repositorySourceWriter struct {
	sourceRepo repositories.SourceRepository
}

// NewRepositorySourceWriter stores uploaded sources in the database.
func NewRepositorySourceWriter(sourceRepo repositories.SourceRepository) SourceWriter {
	return &repositorySourceWriter{sourceRepo: sourceRepo}
}

func (w *repositorySourceWriter) Save(ctx context.Context, name string, content []byte) error {
	if err := w.sourceRepo.Upsert(ctx, name, string(content)); err != nil {
		return fmt.Errorf("failed to store source: %w", err)
	}
	return nil
}
