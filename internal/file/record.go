// Package file implements the upload, retrieval, and deletion workflows for
// stored media files: metadata lives in Postgres, content in object storage.
package file

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileRecord is the persisted metadata for one stored file. ID is assigned by
// the metadata store on insert and identifies the file to all external
// callers; StorageKey identifies the content inside the object store.
type FileRecord struct {
	ID           int64     `json:"id"`
	StorageKey   string    `json:"storageKey"`
	OriginalName string    `json:"originalName"`
	Extension    string    `json:"extension"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewFileRecord builds an unsaved record for the given client-declared
// filename. The storage key is always freshly generated (uuid, suffixed with
// the extension when there is one); when declaredName is empty the key doubles
// as the original name.
func NewFileRecord(declaredName string) FileRecord {
	key := uuid.NewString()

	name := declaredName
	if name == "" {
		name = key
	}

	ext := ExtractExtension(name)
	if ext != "" {
		key = key + "." + ext
	}

	return FileRecord{
		StorageKey:   key,
		OriginalName: name,
		Extension:    ext,
	}
}

// ExtractExtension returns the lowercased substring after the last '.' in
// name, or "" when there is no dot.
func ExtractExtension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}
