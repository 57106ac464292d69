// internal/snapshot/sink.go
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileSink publishes snapshots to a well-known path, replacing the
// previous document wholesale.
type FileSink struct {
	Path string
}

// Publish writes the snapshot to a temp file in the target directory
// and renames it into place, so a reader never observes a torn
// document.
func (s *FileSink) Publish(snap *Snapshot) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if err := Encode(tmp, snap); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace snapshot: %w", err)
	}

	return nil
}
