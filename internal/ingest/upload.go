package ingest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Stage copies an uploaded file into dir so it can be read like any other
// document. The original name is kept as the document identifier; the on-disk
// name is made unique by index.
func Stage(dir string, index int, name string, r io.Reader) (Document, error) {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = fmt.Sprintf("upload-%d.pdf", index)
	}
	path := filepath.Join(dir, fmt.Sprintf("%03d-%s", index, base))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return Document{}, fmt.Errorf("stage %s: %w", base, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return Document{}, fmt.Errorf("stage %s: %w", base, err)
	}
	if err := f.Close(); err != nil {
		return Document{}, fmt.Errorf("stage %s: %w", base, err)
	}
	return Document{Name: base, Path: path}, nil
}
