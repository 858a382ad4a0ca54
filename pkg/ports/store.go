package ports

import (
	"context"
	"errors"
)

// ErrDocumentNotFound is returned by DocumentStore.Load when no document has the given name.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentStore persists rendered schema documents.
// Names are flat identifiers such as "csdl.xml"; stores must reject empty names.
type DocumentStore interface {
	// Save writes the document, replacing any previous content.
	Save(ctx context.Context, name string, data []byte) error

	// Load retrieves a document.
	// Returns ErrDocumentNotFound if the document does not exist.
	Load(ctx context.Context, name string) ([]byte, error)

	// List returns the stored document names, sorted.
	List(ctx context.Context) ([]string, error)

	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, name string) error
}

// ErrInvalidName is returned when a document name is empty or contains a path separator.
var ErrInvalidName = errors.New("invalid document name")

// ValidateName checks a document name.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return ErrInvalidName
	}
	for _, r := range name {
		if r == '/' || r == '\\' {
			return ErrInvalidName
		}
	}
	return nil
}
