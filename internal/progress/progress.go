// Package progress stores per-level best completion times in a JSON save file.
package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Data is the save file contents. Times are whole seconds keyed by level index.
type Data struct {
	LevelBestTimes map[int]int64 `json:"level_best_times"`
}

// New returns empty progress.
func New() *Data {
	return &Data{LevelBestTimes: make(map[int]int64)}
}

// Load reads the save file at path. A missing or unreadable file yields
// empty progress; it never fails.
func Load(path string) *Data {
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("cannot read save file, starting fresh", "path", path, "err", err)
		}
		return New()
	}

	d, err := Parse(raw)
	if err != nil {
		log.Warn("corrupt save file, starting fresh", "path", path, "err", err)
		return New()
	}
	return d
}

// Parse decodes save file contents.
func Parse(raw []byte) (*Data, error) {
	d := New()
	if err := json.Unmarshal(raw, d); err != nil {
		return nil, fmt.Errorf("progress: decode: %w", err)
	}
	if d.LevelBestTimes == nil {
		d.LevelBestTimes = make(map[int]int64)
	}
	return d, nil
}

// BestTime returns the best completion time of level.
func (d *Data) BestTime(level int) (time.Duration, bool) {
	secs, ok := d.LevelBestTimes[level]
	if !ok {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

// Completed returns the number of levels with a recorded time.
func (d *Data) Completed() int {
	return len(d.LevelBestTimes)
}

// MaybeWriteNewTime records t for level if there is no time yet or t is
// strictly better. Reports whether the record changed.
func (d *Data) MaybeWriteNewTime(level int, t time.Duration) bool {
	secs := int64(t / time.Second)
	if best, ok := d.LevelBestTimes[level]; ok && best <= secs {
		return false
	}
	d.LevelBestTimes[level] = secs
	return true
}

// Save writes the save file, creating parent directories as needed.
// The file is replaced atomically.
func (d *Data) Save(path string) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("progress: encode: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("progress: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("progress: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("progress: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("progress: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("progress: replace %s: %w", path, err)
	}
	return nil
}
