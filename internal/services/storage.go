package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var pdfMagic = []byte("%PDF-")

// StoredFile describes a resume written to the upload area. Key is relative
// to the upload root and is what Remove expects back.
type StoredFile struct {
	Key  string
	Path string
	Size int64
}

type ResumeStorage interface {
	SaveResume(candidateID uuid.UUID, file *multipart.FileHeader) (*StoredFile, error)
	Remove(key string) error
	EnsureUploadDir() error
}

type diskResumeStorage struct {
	root        string
	maxFileSize int64
}

func NewResumeStorage(root string, maxFileSize int64) ResumeStorage {
	return &diskResumeStorage{root: root, maxFileSize: maxFileSize}
}

func (s *diskResumeStorage) EnsureUploadDir() error {
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	return nil
}

// SaveResume writes the upload to candidates/<id>/resume-<uuid>.pdf so every
// upload gets its own file and older resumes stay readable until replaced.
func (s *diskResumeStorage) SaveResume(candidateID uuid.UUID, file *multipart.FileHeader) (*StoredFile, error) {
	if err := s.checkUpload(file); err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	head := make([]byte, len(pdfMagic))
	n, _ := io.ReadFull(src, head)
	if !bytes.Equal(head[:n], pdfMagic) {
		return nil, fmt.Errorf("%w: content is not a PDF", ErrInvalidFile)
	}

	key := path.Join("candidates", candidateID.String(), "resume-"+uuid.NewString()+".pdf")
	dstPath := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create candidate directory: %w", err)
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}

	written, err := io.Copy(dst, io.MultiReader(bytes.NewReader(head[:n]), src))
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &StoredFile{Key: key, Path: dstPath, Size: written}, nil
}

func (s *diskResumeStorage) checkUpload(file *multipart.FileHeader) error {
	if file == nil {
		return fmt.Errorf("%w: no file provided", ErrInvalidFile)
	}
	if ext := strings.ToLower(filepath.Ext(file.Filename)); ext != ".pdf" {
		return fmt.Errorf("%w: extension %q is not .pdf", ErrInvalidFile, ext)
	}
	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		return fmt.Errorf("%w: file too large, max size %d bytes", ErrInvalidFile, s.maxFileSize)
	}
	return nil
}

// Remove deletes a stored resume by key. Keys that escape the upload root
// are refused.
func (s *diskResumeStorage) Remove(key string) error {
	clean := path.Clean("/" + key)
	if clean == "/" || strings.Contains(key, "..") {
		return fmt.Errorf("%w: bad storage key %q", ErrInvalidFile, key)
	}
	if err := os.Remove(filepath.Join(s.root, filepath.FromSlash(clean))); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
