// Package catalog loads the roster of characters shown by peek from YAML.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tinytelemetry/peek/internal/model"
)

// ErrInvalidCatalog is wrapped by every validation error.
var ErrInvalidCatalog = errors.New("invalid catalog")

//go:embed sample/sample.yml sample/*.png
var sampleFS embed.FS

// Catalog is a titled list of sections.
type Catalog struct {
	Title    string
	Sections []Section
}

// Section is one group of entries, rendered as one column.
type Section struct {
	Title   string
	Entries []model.Descriptor
}

type fileCatalog struct {
	Title    string        `yaml:"title"`
	Sections []fileSection `yaml:"sections"`
}

type fileSection struct {
	Title   string      `yaml:"title"`
	Entries []fileEntry `yaml:"entries"`
}

type fileEntry struct {
	Name        string `yaml:"name"`
	Image       string `yaml:"image"`
	Kind        string `yaml:"kind"`
	Species     string `yaml:"species"`
	Speed       *int   `yaml:"speed"`
	Wins        *int   `yaml:"wins"`
	Level       *int   `yaml:"level"`
	Owner       string `yaml:"owner"`
	Description string `yaml:"description"`
}

// Load reads a catalog file. Relative image paths are resolved against the
// directory holding the file.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("reading catalog: %w", err)
	}
	cat, err := Parse(data)
	if err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i := range cat.Sections {
		for j := range cat.Sections[i].Entries {
			e := &cat.Sections[i].Entries[j]
			e.ImageSource = resolveImage(dir, e.ImageSource)
		}
	}
	return cat, nil
}

// Parse decodes and validates catalog YAML. Image paths are left as written.
func Parse(data []byte) (Catalog, error) {
	var raw fileCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Catalog{}, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if len(raw.Sections) == 0 {
		return Catalog{}, fmt.Errorf("%w: no sections", ErrInvalidCatalog)
	}

	cat := Catalog{Title: strings.TrimSpace(raw.Title)}
	for si, rs := range raw.Sections {
		title := strings.TrimSpace(rs.Title)
		if title == "" {
			title = fmt.Sprintf("Section %d", si+1)
		}
		sec := Section{Title: title, Entries: make([]model.Descriptor, 0, len(rs.Entries))}
		for ei, re := range rs.Entries {
			d, err := re.descriptor()
			if err != nil {
				return Catalog{}, fmt.Errorf("%w: section %q entry %d: %v", ErrInvalidCatalog, title, ei, err)
			}
			sec.Entries = append(sec.Entries, d)
		}
		cat.Sections = append(cat.Sections, sec)
	}
	return cat, nil
}

func (e fileEntry) descriptor() (model.Descriptor, error) {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return model.Descriptor{}, errors.New("name is required")
	}
	if strings.ContainsAny(name, "\r\n") {
		return model.Descriptor{}, errors.New("name must be a single line")
	}
	kind, err := model.ParseKind(e.Kind)
	if err != nil {
		return model.Descriptor{}, err
	}
	return model.Descriptor{
		Name:        name,
		ImageSource: strings.TrimSpace(e.Image),
		Kind:        kind,
		Species:     strings.TrimSpace(e.Species),
		SpeedStat:   e.Speed,
		WinCount:    e.Wins,
		Level:       e.Level,
		OwnerName:   strings.TrimSpace(e.Owner),
		Description: strings.TrimSpace(e.Description),
	}, nil
}

func resolveImage(dir, src string) string {
	if src == "" || filepath.IsAbs(src) || strings.Contains(src, "://") || strings.HasPrefix(src, "~/") {
		return src
	}
	return filepath.Join(dir, src)
}

// Sample returns the built-in demo catalog. Its image paths resolve inside
// SampleFS.
func Sample() Catalog {
	data, err := sampleFS.ReadFile("sample/sample.yml")
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded sample missing: %v", err))
	}
	cat, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded sample invalid: %v", err))
	}
	return cat
}

// SampleFS holds the images referenced by Sample.
func SampleFS() fs.FS {
	return sampleFS
}
