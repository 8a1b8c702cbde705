package levels

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-liquidsort/internal/engine"
)

func TestDecodeValid(t *testing.T) {
	data := []byte(`
id: test-1
difficulty: normal
capacity: 4
containers:
  - [red:2, green:2]
  - [green:2, red:2]
  - [blue:2]
  - [blue:2]
  - []
`)
	l, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if l.ID != "test-1" || l.Difficulty != "normal" || l.Capacity != 4 {
		t.Errorf("header fields wrong: %+v", l)
	}
	if l.ContainerCount() != 5 {
		t.Fatalf("ContainerCount = %d, want 5", l.ContainerCount())
	}
	if l.ColorCount != 3 {
		t.Errorf("ColorCount = %d, want 3", l.ColorCount)
	}
	first := l.Containers[0]
	if len(first.Segments) != 2 || first.Segments[0].Color != engine.ColorRed || first.Segments[0].Volume != 2 {
		t.Errorf("container 0 segments wrong: %+v", first.Segments)
	}
	if !l.Containers[4].IsEmpty() {
		t.Error("container 4 should be empty")
	}
}

func TestDecodeBareColorIsOneUnit(t *testing.T) {
	data := []byte("id: t\ncapacity: 4\ncontainers:\n  - [red, red, blue]\n")
	l, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	segs := l.Containers[0].Segments
	if len(segs) != 2 {
		t.Fatalf("adjacent same-color entries should merge, got %+v", segs)
	}
	if segs[0].Color != engine.ColorRed || segs[0].Volume != 2 {
		t.Errorf("bottom segment = %+v, want red:2", segs[0])
	}
	if segs[1].Color != engine.ColorBlue || segs[1].Volume != 1 {
		t.Errorf("top segment = %+v, want blue:1", segs[1])
	}
}

func TestDecodeRejections(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"zero capacity", "id: t\ncontainers:\n  - []\n", "capacity"},
		{"no containers", "id: t\ncapacity: 4\n", "no containers"},
		{"unknown color", "id: t\ncapacity: 4\ncontainers:\n  - [chartreuse:2]\n", "unknown color"},
		{"bad volume", "id: t\ncapacity: 4\ncontainers:\n  - [red:x]\n", "bad volume"},
		{"zero volume", "id: t\ncapacity: 4\ncontainers:\n  - [red:0]\n", "volume must be positive"},
		{"overfilled", "id: t\ncapacity: 4\ncontainers:\n  - [red:3, blue:2]\n", "exceeds capacity"},
		{"not yaml", "{{{", "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			if err == nil {
				t.Fatal("Decode should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	orig := engine.FallbackLevel("rt-1")
	data, err := Encode(orig)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if got.Signature() != orig.Signature() {
		t.Errorf("round trip changed content:\n got %s\nwant %s", got.Signature(), orig.Signature())
	}
	if got.ID != orig.ID || got.Difficulty != orig.Difficulty {
		t.Errorf("round trip changed header: %+v", got)
	}
}

func TestReadWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "level.yaml")

	l := engine.FallbackLevel("file-1")
	if err := Write(path, l); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if got.Signature() != l.Signature() {
		t.Error("file round trip changed level content")
	}
}

func TestReadFillsMissingID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("capacity: 4\ncontainers:\n  - [red:4]\n  - []\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if got.ID == "" || strings.HasSuffix(got.ID, ".yaml") {
		t.Errorf("Read should derive an ID from the path, got %q", got.ID)
	}
}

func TestReadDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.yml"} {
		l := engine.FallbackLevel(strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml"))
		if err := Write(filepath.Join(dir, name), l); err != nil {
			t.Fatalf("Write returned error: %v", err)
		}
	}
	// Non-level files are ignored
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ReadDir loaded %d levels, want 2", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("levels not sorted by file name: %q, %q", got[0].ID, got[1].ID)
	}
}

func TestReadDirBadFileFails(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("{{{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadDir(dir); err == nil {
		t.Error("ReadDir should fail when a level file is invalid")
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read("/nonexistent/level.yaml"); err == nil {
		t.Error("Read should fail for a missing file")
	}
}
