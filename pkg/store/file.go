package store

import (
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/snapshot"
)

// File wraps a Memory store loaded from a snapshot file, for CLI usage.
// Mutations happen in memory; Flush writes the current state back.
type File struct {
	*Memory
	path  string
	bomID string
}

// OpenFile loads a snapshot file into a fresh in-memory store.
func OpenFile(path string, limits bom.Limits) (*File, error) {
	s, err := snapshot.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := NewMemory(limits)
	if err := m.Seed(s); err != nil {
		return nil, err
	}
	return &File{Memory: m, path: path, bomID: s.BOMID}, nil
}

// BOMID returns the BOM loaded from the file.
func (f *File) BOMID() string { return f.bomID }

// Flush writes the store's current state back to the snapshot file.
func (f *File) Flush() error {
	s, err := f.SnapshotBOM(f.bomID)
	if err != nil {
		return err
	}
	return snapshot.WriteFile(s, f.path)
}
