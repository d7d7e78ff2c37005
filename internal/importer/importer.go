package importer

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nerrad567/hasp-designer/internal/hasp"
	"github.com/nerrad567/hasp-designer/internal/layout"
)

// ErrConfigNotFound is returned when the named config file does not exist.
var ErrConfigNotFound = errors.New("importer: config file not found")

// Default geometry for imported objects missing placement fields.
const (
	defaultWidth  = 100
	defaultHeight = 50
)

// Logger is the logging interface used by the importer.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Warn(string, ...any)  {}

// Importer converts on-disk openHASP JSONL configs into layouts.
type Importer struct {
	configPath string
	logger     Logger
}

// New creates an importer reading from the given config directory.
func New(configPath string) *Importer {
	return &Importer{
		configPath: configPath,
		logger:     noopLogger{},
	}
}

// SetLogger sets the logger for the importer.
func (imp *Importer) SetLogger(logger Logger) {
	imp.logger = logger
}

// ListConfigs returns the JSONL config filenames available for import,
// sorted. A missing config directory yields an empty list.
func (imp *Importer) ListConfigs() ([]string, error) {
	entries, err := os.ReadDir(imp.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("reading config directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jsonl") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Import reads a JSONL config file and converts it into a layout with
// objects grouped by page. The layout ID is the filename without its
// extension, so re-importing the same file updates the same layout.
func (imp *Importer) Import(filename string) (*layout.Layout, error) {
	path := filepath.Join(imp.configPath, filepath.Base(filename))
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, filename)
		}
		return nil, fmt.Errorf("opening config %s: %w", filename, err)
	}
	defer f.Close()

	objects, err := imp.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", filename, err)
	}

	return &layout.Layout{
		ID:          strings.TrimSuffix(filepath.Base(filename), ".jsonl"),
		Name:        fmt.Sprintf("Imported from %s", filename),
		Description: fmt.Sprintf("Imported configuration from %s", filename),
		Pages:       layout.GroupPages(objects),
	}, nil
}

// rawObject is the lenient wire shape for hand-edited config lines.
// Unlike the strict codec, missing geometry gets editor defaults and
// unknown fields are ignored.
type rawObject struct {
	Page     *int   `json:"page"`
	ID       int    `json:"id"`
	Obj      string `json:"obj"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	W        *int   `json:"w"`
	H        *int   `json:"h"`
	Entity   string `json:"entity"`
	Text     string `json:"text"`
	Color    string `json:"color"`
	BgColor  string `json:"bg_color"`
	FontSize int    `json:"font_size"`
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Val      int    `json:"val"`
	Options  string `json:"options"`
	Comment  string `json:"comment"`
}

// Parse reads JSONL content leniently: blank lines and #-comments are
// skipped, unparseable lines are skipped with a warning, and objects of
// unknown kind degrade to buttons so they stay editable.
func (imp *Importer) Parse(r io.Reader) ([]hasp.Object, error) {
	var objects []hasp.Object
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		var raw rawObject
		if err := json.Unmarshal([]byte(text), &raw); err != nil {
			imp.logger.Warn("skipping invalid JSONL line", "line", line, "error", err)
			continue
		}
		// Annotation-only lines carry no renderable object.
		if raw.Comment != "" && raw.Obj == "" {
			continue
		}
		objects = append(objects, toObject(raw))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return objects, nil
}

func toObject(raw rawObject) hasp.Object {
	kind := hasp.ObjectKind(raw.Obj)
	if err := hasp.ValidateKind(kind); err != nil {
		kind = hasp.KindButton
	}

	obj := hasp.Object{
		ID:       raw.ID,
		Kind:     kind,
		X:        raw.X,
		Y:        raw.Y,
		W:        defaultWidth,
		H:        defaultHeight,
		Entity:   raw.Entity,
		Text:     raw.Text,
		Color:    raw.Color,
		BgColor:  raw.BgColor,
		FontSize: raw.FontSize,
		Min:      raw.Min,
		Max:      raw.Max,
		Val:      raw.Val,
		Options:  raw.Options,
	}
	obj.Page = 1
	if raw.Page != nil {
		obj.Page = *raw.Page
	}
	if raw.W != nil {
		obj.W = *raw.W
	}
	if raw.H != nil {
		obj.H = *raw.H
	}
	if kind == hasp.KindPage {
		obj.X, obj.Y, obj.W, obj.H = 0, 0, 0, 0
	}
	return obj
}

// Stats summarises a configuration for import previews.
type Stats struct {
	Pages    int `json:"pages"`
	Objects  int `json:"objects"`
	Entities int `json:"entities"`
}

// CalculateStats counts pages, placed objects and distinct entity
// references in a configuration.
func CalculateStats(objects []hasp.Object) Stats {
	var stats Stats
	entities := make(map[string]struct{})
	for _, obj := range objects {
		if obj.IsPage() {
			stats.Pages++
		} else {
			stats.Objects++
		}
		if obj.Entity != "" {
			entities[obj.Entity] = struct{}{}
		}
	}
	stats.Entities = len(entities)
	return stats
}

// Merge appends imported objects to an existing configuration, remapping
// imported IDs above the existing maximum so nothing collides. The
// returned mapping records old ID to new ID for caller bookkeeping.
func Merge(existing, imported []hasp.Object) ([]hasp.Object, map[int]int) {
	maxID := 0
	for _, obj := range existing {
		if obj.ID > maxID {
			maxID = obj.ID
		}
	}

	mapping := make(map[int]int)
	merged := make([]hasp.Object, 0, len(existing)+len(imported))
	merged = append(merged, existing...)
	for _, obj := range imported {
		if obj.ID != 0 {
			maxID++
			mapping[obj.ID] = maxID
			obj.ID = maxID
		}
		merged = append(merged, obj)
	}
	return merged, mapping
}
