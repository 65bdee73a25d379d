// Package attachment turns attachment rows of the legacy store into inline
// base64 payloads. Files live in fixed legacy directories, one per owner kind.
package attachment

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"

	"github.com/osse101/inventory-migrator/internal/domain"
	"github.com/osse101/inventory-migrator/internal/metrics"
)

// Encoder resolves stored file names and encodes their content
type Encoder struct {
	dirs     map[string]string
	readFile func(string) ([]byte, error)
}

// NewEncoder creates an encoder for the template and instruction attachment directories
func NewEncoder(templateDir, instructionDir string) *Encoder {
	return &Encoder{
		dirs: map[string]string{
			domain.AttachmentKindTemplate:    templateDir,
			domain.AttachmentKindInstruction: instructionDir,
		},
		readFile: os.ReadFile,
	}
}

// Resolve returns the on-disk path for a stored name, or false when the name
// would escape the kind's directory or the kind is unknown.
func (e *Encoder) Resolve(kind, storedName string) (string, bool) {
	dir, ok := e.dirs[kind]
	if !ok || dir == "" {
		return "", false
	}
	if storedName == "" || storedName == "." || storedName == ".." ||
		strings.ContainsAny(storedName, `/\`) || filepath.IsAbs(storedName) {
		return "", false
	}
	return filepath.Join(dir, storedName), true
}

// Encode reads the whole file into memory and returns it base64-encoded.
// Missing, unreadable and empty files report ok=false.
func (e *Encoder) Encode(kind, storedName string) (string, bool) {
	path, ok := e.Resolve(kind, storedName)
	if !ok {
		metrics.AttachmentsDropped.WithLabelValues(kind).Inc()
		return "", false
	}

	data, err := e.readFile(path)
	if err != nil || len(data) == 0 {
		metrics.AttachmentsDropped.WithLabelValues(kind).Inc()
		return "", false
	}

	metrics.AttachmentsEncoded.WithLabelValues(kind).Inc()
	return base64.StdEncoding.EncodeToString(data), true
}
