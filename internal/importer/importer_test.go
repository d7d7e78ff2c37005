package importer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nerrad567/hasp-designer/internal/hasp"
)

const sampleConfig = `{"page": 1, "obj": "page"}
{"page": 1, "id": 1, "obj": "btn", "x": 10, "y": 10, "w": 100, "h": 50, "entity": "light.hall", "text": "Hall"}

# hand-written note
{"page": 2, "id": 2, "obj": "slider", "x": 0, "y": 0, "w": 200, "h": 40, "min": 0, "max": 255}
not json at all
{"page": 2, "id": 3, "obj": "vendor_widget", "x": 0, "y": 60}
`

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
}

func TestListConfigs(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "plate01.jsonl", "")
	writeConfig(t, dir, "plate02.jsonl", "")
	writeConfig(t, dir, "notes.txt", "")

	names, err := New(dir).ListConfigs()
	if err != nil {
		t.Fatalf("ListConfigs() error = %v", err)
	}
	want := []string{"plate01.jsonl", "plate02.jsonl"}
	if len(names) != 2 || names[0] != want[0] || names[1] != want[1] {
		t.Errorf("ListConfigs() = %v, want %v", names, want)
	}
}

func TestListConfigsMissingDirectory(t *testing.T) {
	names, err := New(filepath.Join(t.TempDir(), "missing")).ListConfigs()
	if err != nil {
		t.Fatalf("ListConfigs() error = %v", err)
	}
	if len(names) != 0 {
		t.Errorf("ListConfigs() = %v, want empty", names)
	}
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "plate01.jsonl", sampleConfig)

	l, err := New(dir).Import("plate01.jsonl")
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if l.ID != "plate01" {
		t.Errorf("ID = %q, want %q", l.ID, "plate01")
	}
	if !strings.Contains(l.Name, "plate01.jsonl") {
		t.Errorf("Name = %q, want filename mentioned", l.Name)
	}
	if len(l.Pages) != 2 {
		t.Fatalf("Pages = %d, want 2", len(l.Pages))
	}

	// Page 1: the page marker plus the button.
	if got := len(l.Pages[0].Objects); got != 2 {
		t.Fatalf("page 1 objects = %d, want 2", got)
	}
	btn := l.Pages[0].Objects[1]
	if btn.Kind != hasp.KindButton || btn.Entity != "light.hall" {
		t.Errorf("imported button = %+v", btn)
	}

	// Page 2: the slider plus the degraded vendor widget; the invalid
	// line is dropped.
	if got := len(l.Pages[1].Objects); got != 2 {
		t.Fatalf("page 2 objects = %d, want 2", got)
	}
	if l.Pages[1].Objects[0].Max != 255 {
		t.Errorf("slider max = %d, want 255", l.Pages[1].Objects[0].Max)
	}
	degraded := l.Pages[1].Objects[1]
	if degraded.Kind != hasp.KindButton {
		t.Errorf("unknown kind = %q, want degraded to button", degraded.Kind)
	}
	if degraded.W != defaultWidth || degraded.H != defaultHeight {
		t.Errorf("degraded geometry = %dx%d, want defaults", degraded.W, degraded.H)
	}
}

func TestImportNotFound(t *testing.T) {
	_, err := New(t.TempDir()).Import("missing.jsonl")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("Import() error = %v, want ErrConfigNotFound", err)
	}
}

func TestParseSkipsAnnotations(t *testing.T) {
	content := `{"comment": "exported by designer", "project_name": "Hall"}
{"page": 1, "id": 1, "obj": "btn", "x": 0, "y": 0, "w": 10, "h": 10}
`
	objects, err := New(t.TempDir()).Parse(strings.NewReader(content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(objects) != 1 || objects[0].ID != 1 {
		t.Fatalf("Parse() = %+v, want the button only", objects)
	}
}

func TestCalculateStats(t *testing.T) {
	objects := []hasp.Object{
		{Page: 1, Kind: hasp.KindPage},
		{ID: 1, Page: 1, Kind: hasp.KindButton, Entity: "light.a"},
		{ID: 2, Page: 1, Kind: hasp.KindButton, Entity: "light.a"},
		{ID: 3, Page: 1, Kind: hasp.KindLabel, Entity: "sensor.t"},
	}
	stats := CalculateStats(objects)
	if stats.Pages != 1 || stats.Objects != 3 || stats.Entities != 2 {
		t.Errorf("CalculateStats() = %+v, want 1 page, 3 objects, 2 entities", stats)
	}
}

func TestMerge(t *testing.T) {
	existing := []hasp.Object{
		{ID: 1, Page: 1, Kind: hasp.KindButton},
		{ID: 5, Page: 1, Kind: hasp.KindLabel},
	}
	imported := []hasp.Object{
		{ID: 1, Page: 2, Kind: hasp.KindSlider},
		{Page: 2, Kind: hasp.KindPage},
	}

	merged, mapping := Merge(existing, imported)
	if len(merged) != 4 {
		t.Fatalf("Merge() returned %d objects, want 4", len(merged))
	}
	if mapping[1] != 6 {
		t.Errorf("mapping[1] = %d, want 6", mapping[1])
	}
	if merged[2].ID != 6 {
		t.Errorf("remapped slider ID = %d, want 6", merged[2].ID)
	}
	if merged[3].ID != 0 {
		t.Errorf("page marker ID = %d, want untouched 0", merged[3].ID)
	}
}
