package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"git.sr.ht/~whereswaldon/curvechart/chart"
)

// restoreState applies the snapshot at path. A missing file is not an error.
func restoreState(path string, ui *UI) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("opening view state: %w", err)
	}
	defer f.Close()
	s, err := chart.DecodeSnapshot(f)
	if err != nil {
		return err
	}
	return ui.Restore(s)
}

// saveState writes s to path, replacing any previous state only once the
// new one is complete.
func saveState(path string, s chart.Snapshot) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating view state: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := s.Encode(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing view state: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing view state: %w", err)
	}
	return nil
}
