package level

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/vovakirdan/dataloss/internal/geom"
)

//go:embed data
var embedded embed.FS

// IndexFile lists the level directory names in play order.
const IndexFile = "levels.json"

// ErrNoLevels is returned when the index names no levels.
var ErrNoLevels = errors.New("level: no levels")

// Embedded returns the levels built into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err) // static path
	}
	return sub
}

// Loader reads levels from a filesystem laid out as:
//
//	levels.json            ["name", ...]
//	<name>/colliders.json  [{x, y, width, height}, ...]
//	<name>/zones.json      {appear, disappear, kill, win}
//	<name>/background.txt  optional art
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a loader over fsys.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// Open returns a loader for dir, or for the embedded levels if dir is empty.
func Open(dir string) *Loader {
	if dir == "" {
		return NewLoader(Embedded())
	}
	return NewLoader(os.DirFS(dir))
}

// Names returns the level names from the index, in play order.
func (l *Loader) Names() ([]string, error) {
	var names []string
	if err := l.readJSON(IndexFile, &names); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrNoLevels
	}
	return names, nil
}

// LoadAll loads every level named in the index.
func (l *Loader) LoadAll() ([]*Level, error) {
	names, err := l.Names()
	if err != nil {
		return nil, err
	}

	levels := make([]*Level, 0, len(names))
	for _, name := range names {
		lvl, err := l.Load(name)
		if err != nil {
			return nil, err
		}
		levels = append(levels, lvl)
	}
	return levels, nil
}

// Load reads a single level directory.
func (l *Loader) Load(name string) (*Level, error) {
	lvl := &Level{Name: name}

	if err := l.readJSON(path.Join(name, "colliders.json"), &lvl.Colliders); err != nil {
		return nil, err
	}
	if err := l.readJSON(path.Join(name, "zones.json"), &lvl.Zones); err != nil {
		return nil, err
	}

	art, err := fs.ReadFile(l.fsys, path.Join(name, "background.txt"))
	switch {
	case err == nil:
		lvl.Background = strings.Split(strings.TrimRight(string(art), "\n"), "\n")
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("level: %s: background: %w", name, err)
	}

	return lvl, nil
}

func (l *Loader) readJSON(name string, v any) error {
	raw, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return fmt.Errorf("level: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("level: decode %s: %w", name, err)
	}
	return nil
}

// MarshalColliders encodes the level's colliders in colliders.json form.
func (l *Level) MarshalColliders() ([]byte, error) {
	rects := l.Colliders
	if rects == nil {
		rects = []geom.Rect{}
	}
	return json.MarshalIndent(rects, "", "  ")
}

// MarshalZones encodes the level's zones in zones.json form.
func (l *Level) MarshalZones() ([]byte, error) {
	z := l.Zones
	for _, list := range []*[]geom.Rect{&z.Appear, &z.Disappear, &z.Kill} {
		if *list == nil {
			*list = []geom.Rect{}
		}
	}
	return json.MarshalIndent(z, "", "  ")
}
