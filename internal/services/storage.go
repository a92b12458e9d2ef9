package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StorageService persists uploaded multipart files into the temp dir so the
// extraction pipeline can work on a local path. Files are short-lived and
// removed after extraction.
type StorageService interface {
	SaveUpload(file *multipart.FileHeader) (string, error)
	Remove(filePath string)
	EnsureTempDir() error
}

type storageService struct {
	tempDir string
}

func NewStorageService(tempDir string) StorageService {
	return &storageService{
		tempDir: tempDir,
	}
}

func (s *storageService) EnsureTempDir() error {
	if err := os.MkdirAll(s.tempDir, 0755); err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	return nil
}

func (s *storageService) SaveUpload(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	filePath := filepath.Join(s.tempDir, fmt.Sprintf("upload_%s%s", uuid.New().String(), ext))

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return filePath, nil
}

func (s *storageService) Remove(filePath string) {
	os.Remove(filePath)
}
