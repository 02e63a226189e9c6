package level

import (
	"encoding/json"
	"errors"
	"io/fs"
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/dataloss/internal/character"
	"github.com/vovakirdan/dataloss/internal/geom"
)

func fixtureFS() fstest.MapFS {
	return fstest.MapFS{
		"levels.json": {Data: []byte(`["first", "second"]`)},
		"first/colliders.json": {Data: []byte(`[
			{"x": 0, "y": 90, "width": 500, "height": 10},
			{"y": 40, "x": 600, "height": 60, "width": 20}
		]`)},
		"first/zones.json": {Data: []byte(`{
			"appear": [{"x": 500, "y": 90, "width": 100, "height": 10}],
			"disappear": [{"x": 700, "y": 50, "width": 50, "height": 5}],
			"kill": [{"x": 300, "y": 80, "width": 10, "height": 10}],
			"win": {"x": 900, "y": 0, "width": 10, "height": 120}
		}`)},
		"first/background.txt":  {Data: []byte("ab\ncd\n")},
		"second/colliders.json": {Data: []byte(`[]`)},
		"second/zones.json":     {Data: []byte(`{"win": {"x": 1, "y": 2, "width": 3, "height": 4}}`)},
	}
}

func TestLoadAll(t *testing.T) {
	levels, err := NewLoader(fixtureFS()).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}
	if len(levels) != 2 {
		t.Fatalf("loaded %d levels, expected 2", len(levels))
	}

	first := levels[0]
	if first.Name != "first" {
		t.Errorf("Name = %q, expected first", first.Name)
	}
	if len(first.Colliders) != 2 {
		t.Errorf("Colliders = %d, expected 2", len(first.Colliders))
	}
	if first.Colliders[1] != (geom.Rect{X: 600, Y: 40, Width: 20, Height: 60}) {
		t.Errorf("Colliders[1] = %+v", first.Colliders[1])
	}
	if !reflect.DeepEqual(first.Background, []string{"ab", "cd"}) {
		t.Errorf("Background = %q", first.Background)
	}

	if levels[1].Background != nil {
		t.Error("missing background.txt should leave Background empty")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(fstest.MapFS)
		is     error
	}{
		{"missing index", func(m fstest.MapFS) { delete(m, "levels.json") }, fs.ErrNotExist},
		{"empty index", func(m fstest.MapFS) { m["levels.json"] = &fstest.MapFile{Data: []byte(`[]`)} }, ErrNoLevels},
		{"missing zones", func(m fstest.MapFS) { delete(m, "second/zones.json") }, fs.ErrNotExist},
		{"corrupt colliders", func(m fstest.MapFS) {
			m["first/colliders.json"] = &fstest.MapFile{Data: []byte(`{`)}
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fixtureFS()
			tt.mutate(fsys)
			_, err := NewLoader(fsys).LoadAll()
			if err == nil {
				t.Fatal("LoadAll() should fail")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("LoadAll() error = %v, expected %v", err, tt.is)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	fsys := fixtureFS()
	lvl, err := NewLoader(fsys).Load("first")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	colliders, err := lvl.MarshalColliders()
	if err != nil {
		t.Fatalf("MarshalColliders() failed: %v", err)
	}
	zones, err := lvl.MarshalZones()
	if err != nil {
		t.Fatalf("MarshalZones() failed: %v", err)
	}

	var origColliders, gotColliders []geom.Rect
	json.Unmarshal(fsys["first/colliders.json"].Data, &origColliders)
	if err := json.Unmarshal(colliders, &gotColliders); err != nil {
		t.Fatalf("re-serialized colliders are not valid JSON: %v", err)
	}
	if !reflect.DeepEqual(origColliders, gotColliders) {
		t.Errorf("colliders changed:\n%+v\n%+v", origColliders, gotColliders)
	}

	var origZones, gotZones Zones
	json.Unmarshal(fsys["first/zones.json"].Data, &origZones)
	if err := json.Unmarshal(zones, &gotZones); err != nil {
		t.Fatalf("re-serialized zones are not valid JSON: %v", err)
	}
	if !reflect.DeepEqual(origZones, gotZones) {
		t.Errorf("zones changed:\n%+v\n%+v", origZones, gotZones)
	}
}

func TestSolidsAndHeight(t *testing.T) {
	lvl, err := NewLoader(fixtureFS()).Load("first")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	solids := lvl.Solids()
	if len(solids) != 3 {
		t.Fatalf("Solids() = %d rects, expected colliders plus appear zones", len(solids))
	}
	for _, r := range solids {
		if r == lvl.Zones.Disappear[0] {
			t.Error("disappear zones must not be solid")
		}
	}
	if len(lvl.Colliders) != 2 {
		t.Error("Solids() must not modify the collider list")
	}

	// Win zone reaches y = 120
	if h := lvl.Height(); h != 120 {
		t.Errorf("Height() = %v, expected 120", h)
	}
	if off := lvl.Offset(15); off != (mgl64.Vec2{15, -120}) {
		t.Errorf("Offset() = %v", off)
	}

	geo := lvl.Geometry(15, 600)
	if len(geo.Colliders) != 3 || len(geo.KillZones) != 1 || geo.FallLimit != 600 {
		t.Errorf("Geometry() = %+v", geo)
	}
}

func TestWon(t *testing.T) {
	lvl := &Level{Zones: Zones{Win: geom.Rect{X: 900}}}
	if lvl.Won(900, 0) {
		t.Error("standing on the win line is not a win")
	}
	if !lvl.Won(901, 0) {
		t.Error("passing the win line is a win")
	}
	if lvl.Won(901, 10) {
		t.Error("the world offset moves the win line")
	}
}

func TestEmbeddedLevels(t *testing.T) {
	levels, err := Open("").LoadAll()
	if err != nil {
		t.Fatalf("embedded levels failed to load: %v", err)
	}
	if len(levels) < 2 {
		t.Fatalf("expected several embedded levels, got %d", len(levels))
	}

	start := character.DefaultConfig()
	for _, lvl := range levels {
		geo := lvl.Geometry(0, 600)

		// The spawn point must rest on solid ground.
		c := character.New(start)
		c.RequestState(character.Running)
		report := c.Step(geo)
		if report.Dead() || !report.Grounded {
			t.Errorf("%s: spawn is not on the floor: %+v", lvl.Name, report)
		}

		if lvl.Zones.Win.X <= start.StartPosition.X() {
			t.Errorf("%s: win zone is behind the spawn", lvl.Name)
		}
	}
}

func TestBootSectorNeedsInput(t *testing.T) {
	lvl, err := Open("").Load("boot_sector")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	geo := lvl.Geometry(0, 600)

	c := character.New(character.DefaultConfig())
	c.RequestState(character.Running)
	for tick := 0; tick < 1000; tick++ {
		report := c.Step(geo)
		if report.Dead() {
			if report.Cause != character.CauseFell {
				t.Errorf("cause = %v, expected to fall into the first gap", report.Cause)
			}
			return
		}
		if lvl.Won(c.Position.X(), 0) {
			t.Fatal("level finished without any input")
		}
	}
	t.Fatal("runner survived 1000 ticks without input")
}

func TestBootSectorGapIsJumpable(t *testing.T) {
	lvl, err := Open("").Load("boot_sector")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	geo := lvl.Geometry(0, 600)

	cfg := character.DefaultConfig()
	cfg.StartPosition = mgl64.Vec2{2950, -85}
	c := character.New(cfg)
	c.RequestState(character.Running)
	c.Step(geo)

	c.RequestState(character.Jumping)
	for tick := 0; tick < 100; tick++ {
		report := c.Step(geo)
		if report.Dead() {
			t.Fatalf("died mid-jump at tick %d: %v at %v", tick, report.Cause, c.Position)
		}
		if c.State() == character.Running {
			if c.Position.X() < 3300 {
				t.Errorf("landed at x=%v, before the far side of the gap", c.Position.X())
			}
			if c.Position.Y() != -85 {
				t.Errorf("landed at y=%v, expected -85", c.Position.Y())
			}
			return
		}
	}
	t.Fatal("jump never landed")
}
