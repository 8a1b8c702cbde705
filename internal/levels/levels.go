// Package levels reads and writes level files in YAML form.
// A level file lists each container's segments bottom to top as
// "color:volume" entries, so hand-written and generated levels share
// one format.
package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-liquidsort/internal/engine"
)

// File is the on-disk YAML representation of a level.
type File struct {
	ID         string     `yaml:"id"`
	Difficulty string     `yaml:"difficulty,omitempty"`
	Capacity   int        `yaml:"capacity"`
	Tags       []string   `yaml:"tags,omitempty"`
	Containers [][]string `yaml:"containers"`
}

// Encode serializes a level to YAML.
func Encode(l engine.Level) ([]byte, error) {
	f := File{
		ID:         l.ID,
		Difficulty: l.Difficulty,
		Capacity:   l.Capacity,
		Tags:       l.Tags,
		Containers: make([][]string, len(l.Containers)),
	}
	for i, c := range l.Containers {
		segs := make([]string, 0, len(c.Segments))
		for _, s := range c.Segments {
			segs = append(segs, s.Color.String()+":"+strconv.Itoa(s.Volume))
		}
		f.Containers[i] = segs
	}
	return yaml.Marshal(f)
}

// Decode parses a YAML level file and validates its structure.
// Adjacent same-color segments are merged so hand-written files need not
// be normalized.
func Decode(data []byte) (engine.Level, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return engine.Level{}, fmt.Errorf("failed to parse level: %w", err)
	}
	if f.Capacity <= 0 {
		return engine.Level{}, fmt.Errorf("level %s: capacity must be positive, got %d", f.ID, f.Capacity)
	}
	if len(f.Containers) == 0 {
		return engine.Level{}, fmt.Errorf("level %s: no containers", f.ID)
	}

	l := engine.Level{
		ID:         f.ID,
		Difficulty: f.Difficulty,
		Capacity:   f.Capacity,
		Tags:       f.Tags,
		Containers: make([]engine.Container, len(f.Containers)),
	}
	colors := map[engine.Color]bool{}
	for i, entries := range f.Containers {
		c := engine.Container{ID: i, Capacity: f.Capacity}
		for _, entry := range entries {
			seg, err := parseSegment(entry)
			if err != nil {
				return engine.Level{}, fmt.Errorf("level %s container %d: %w", f.ID, i, err)
			}
			c.Segments = append(c.Segments, seg)
			colors[seg.Color] = true
		}
		c.MergeAdjacent()
		if c.Volume() > c.Capacity {
			return engine.Level{}, fmt.Errorf("level %s container %d: volume %d exceeds capacity %d",
				f.ID, i, c.Volume(), c.Capacity)
		}
		l.Containers[i] = c
	}
	l.ColorCount = len(colors)
	return l, nil
}

// parseSegment parses a "color:volume" entry. A bare color name means
// one unit.
func parseSegment(entry string) (engine.Segment, error) {
	name := entry
	volume := 1
	if idx := strings.IndexByte(entry, ':'); idx >= 0 {
		name = entry[:idx]
		v, err := strconv.Atoi(strings.TrimSpace(entry[idx+1:]))
		if err != nil {
			return engine.Segment{}, fmt.Errorf("bad volume in %q: %w", entry, err)
		}
		volume = v
	}
	if volume <= 0 {
		return engine.Segment{}, fmt.Errorf("volume must be positive in %q", entry)
	}
	color, ok := engine.ParseColor(strings.TrimSpace(name))
	if !ok {
		return engine.Segment{}, fmt.Errorf("unknown color %q", name)
	}
	return engine.Segment{Color: color, Volume: volume}, nil
}

// Read loads a level from a file path.
func Read(path string) (engine.Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return engine.Level{}, fmt.Errorf("failed to read level %s: %w", path, err)
	}
	l, err := Decode(data)
	if err != nil {
		return engine.Level{}, err
	}
	if l.ID == "" {
		base := filepath.Base(path)
		l.ID = strings.TrimSuffix(strings.TrimSuffix(base, ".yaml"), ".yml")
	}
	return l, nil
}

// ReadDir loads every .yaml/.yml level in a directory, sorted by file name.
// A single bad file fails the whole load so problems do not pass silently.
func ReadDir(dir string) ([]engine.Level, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read level directory %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	levels := make([]engine.Level, 0, len(paths))
	for _, p := range paths {
		l, err := Read(p)
		if err != nil {
			return nil, err
		}
		levels = append(levels, l)
	}
	return levels, nil
}

// Write serializes a level to a file path.
func Write(path string, l engine.Level) error {
	data, err := Encode(l)
	if err != nil {
		return fmt.Errorf("failed to encode level %s: %w", l.ID, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write level %s: %w", path, err)
	}
	return nil
}
