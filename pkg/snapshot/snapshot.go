// Package snapshot reads and writes the canonical JSON form of a BOM
// snapshot: the flat component records of one BOM version plus the
// product-to-product reference edges needed by the cycle guard.
//
// The format is human-readable and round-trip faithful: read → transform →
// write → re-read produces identical records. It is the interchange format
// used by the CLI and the file-backed node store.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom/guard"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/errors"
)

// Snapshot is one BOM version's records plus the product reference graph.
type Snapshot struct {
	// BOMID identifies the snapshot's BOM.
	BOMID string `json:"bom_id"`

	// ProductID is the product owning the BOM.
	ProductID string `json:"product_id"`

	// Version is the optimistic-concurrency version the records were read at.
	Version int64 `json:"version"`

	// Nodes are the flat component records.
	Nodes []bom.ComponentNode `json:"nodes"`

	// ProductEdges is the product reference graph, possibly spanning
	// products beyond this BOM.
	ProductEdges []guard.Edge `json:"product_edges,omitempty"`
}

// Marshal converts a snapshot to indented JSON bytes.
func Marshal(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := write(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes a snapshot as JSON to w.
func Write(s *Snapshot, w io.Writer) error {
	return write(s, w)
}

// WriteFile writes a snapshot to a JSON file with 0644 permissions.
func WriteFile(s *Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return write(s, f)
}

// Read decodes a JSON snapshot from r and validates every record at the
// boundary. Field violations surface as INVALID_FIELD errors before any
// engine code sees the records.
func Read(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode snapshot")
	}
	if err := bom.ValidateNodes(s.Nodes); err != nil {
		return nil, err
	}
	return &s, nil
}

// ReadFile reads and validates a snapshot file.
func ReadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

func write(s *Snapshot, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}
