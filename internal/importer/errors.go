package importer

import (
	"errors"
	"net/http"

	"github.com/caretide/triage/pkg/storage"
)

var (
	// ErrEmptyUpload indicates the multipart request carried no file part.
	ErrEmptyUpload = errors.New("import upload contains no file")

	// ErrBadArchive indicates the uploaded file is not a readable
	// gzip-compressed JSONL archive.
	ErrBadArchive = errors.New("import archive is not gzip-compressed JSONL")

	// ErrImportFailed wraps failures partway through an import run.
	// Batches committed before the failure remain committed.
	ErrImportFailed = errors.New("import run failed")
)

// MapHTTPStatus translates importer errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrEmptyUpload), errors.Is(err, ErrBadArchive):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrEmptyKey), errors.Is(err, storage.ErrInvalidKey):
		return storage.MapHTTPStatus(err)
	case errors.Is(err, ErrImportFailed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
