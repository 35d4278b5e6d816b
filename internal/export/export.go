// Package export writes analysis history as zstd-compressed JSON for
// offline review or transfer between machines.
package export

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	deterr "aidetect/internal/errors"
	"aidetect/internal/storage"
	"aidetect/internal/version"
)

// Archive is the export file layout.
type Archive struct {
	Version    string           `json:"version"`
	ExportedAt time.Time        `json:"exported_at"`
	Records    []storage.Record `json:"records"`
}

// Write compresses the records to w.
func Write(w io.Writer, records []storage.Record) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return deterr.New(deterr.InternalError, "init compressor", err)
	}

	archive := Archive{
		Version:    version.Version,
		ExportedAt: time.Now().UTC(),
		Records:    records,
	}
	if err := json.NewEncoder(enc).Encode(archive); err != nil {
		enc.Close()
		return deterr.New(deterr.InternalError, "encode archive", err)
	}
	return enc.Close()
}

// Read decompresses an archive from r.
func Read(r io.Reader) (*Archive, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, deterr.New(deterr.InvalidRequest, "init decompressor", err)
	}
	defer dec.Close()

	var archive Archive
	if err := json.NewDecoder(dec.IOReadCloser()).Decode(&archive); err != nil {
		return nil, deterr.New(deterr.InvalidRequest, "decode archive", err)
	}
	return &archive, nil
}

// WriteFile exports the records to path, creating parent files atomically
// via a temp file and rename.
func WriteFile(path string, records []storage.Record) error {
	// Same directory as the target so the rename never crosses filesystems.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".aidetect-export-*")
	if err != nil {
		return deterr.New(deterr.InternalError, "create temp file", err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, records); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return deterr.New(deterr.InternalError, "close temp file", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return deterr.New(deterr.InternalError, "move export into place", err)
	}
	return nil
}
