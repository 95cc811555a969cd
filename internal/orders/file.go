package orders

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/docker/go-units"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// AllowedExtensions lists the file types the print shop accepts.
var AllowedExtensions = []string{"pdf", "jpg", "jpeg"}

// UploadedFile is a file selected for printing.
type UploadedFile struct {
	Name      string
	Extension string
	Size      int64
	Content   []byte

	// PageCount is the number of pages of a PDF, or 0 when unknown.
	PageCount int
}

// Extension returns the lowercase extension of name without its dot.
func Extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// Allowed reports whether ext is an accepted file type.
func Allowed(ext string) bool {
	return slices.Contains(AllowedExtensions, strings.ToLower(ext))
}

// InspectFile checks name and content against the accepted types and maxSize
// (0 disables the size check) and counts the pages of PDFs.
func InspectFile(name string, content []byte, maxSize int64) (*UploadedFile, error) {
	ext := Extension(name)
	if !Allowed(ext) {
		return nil, unsupported()
	}

	size := int64(len(content))
	if maxSize > 0 && size > maxSize {
		return nil, tooLarge(size, maxSize)
	}

	f := &UploadedFile{
		Name:      filepath.Base(name),
		Extension: ext,
		Size:      size,
		Content:   content,
	}

	if ext == "pdf" {
		if n, err := api.PageCount(bytes.NewReader(content), model.NewDefaultConfiguration()); err == nil {
			f.PageCount = n
		}
	}

	return f, nil
}

// ReadFile loads and inspects the file at path. The size limit is checked
// before the content is read.
func ReadFile(path string, maxSize int64) (*UploadedFile, error) {
	if !Allowed(Extension(path)) {
		return nil, unsupported()
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if maxSize > 0 && info.Size() > maxSize {
		return nil, tooLarge(info.Size(), maxSize)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return InspectFile(path, content, maxSize)
}

func unsupported() *ValidationError {
	return &ValidationError{
		Step:   StepFileUpload,
		Field:  "file",
		Reason: ErrUnsupportedExtension.Error(),
		Err:    ErrUnsupportedExtension,
	}
}

func tooLarge(size, maxSize int64) *ValidationError {
	return &ValidationError{
		Step:   StepFileUpload,
		Field:  "file",
		Reason: fmt.Sprintf("%s : %s (maximum %s)", ErrFileTooLarge, units.HumanSize(float64(size)), units.HumanSize(float64(maxSize))),
		Err:    ErrFileTooLarge,
	}
}
