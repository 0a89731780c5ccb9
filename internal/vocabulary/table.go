package vocabulary

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"reviewlens/internal/aspect"
)

// Table maps each aspect to its allowed reason tags. A Table is immutable
// after construction and safe for concurrent use.
type Table struct {
	tags map[aspect.ID][]string
	sets map[aspect.ID]map[string]struct{}
}

// Default returns the built-in table.
func Default() *Table {
	return newTable(builtin)
}

func newTable(src map[aspect.ID][]string) *Table {
	t := &Table{
		tags: make(map[aspect.ID][]string, len(src)),
		sets: make(map[aspect.ID]map[string]struct{}, len(src)),
	}
	for id, tags := range src {
		list := make([]string, 0, len(tags))
		set := make(map[string]struct{}, len(tags))
		for _, tag := range tags {
			if _, dup := set[tag]; dup {
				continue
			}
			set[tag] = struct{}{}
			list = append(list, tag)
		}
		t.tags[id] = list
		t.sets[id] = set
	}
	return t
}

// Allowed reports whether tag is permitted for the given aspect. Unknown
// aspects allow nothing.
func (t *Table) Allowed(id aspect.ID, tag string) bool {
	set, ok := t.sets[id]
	if !ok {
		return false
	}
	_, ok = set[tag]
	return ok
}

// Tags returns a copy of the allowed tags for an aspect in table order.
func (t *Table) Tags(id aspect.ID) []string {
	return slices.Clone(t.tags[id])
}

// Size returns the total number of aspect/tag entries.
func (t *Table) Size() int {
	n := 0
	for _, tags := range t.tags {
		n += len(tags)
	}
	return n
}

// AspectsFor lists the aspects that accept tag, in ascending order.
func (t *Table) AspectsFor(tag string) []aspect.ID {
	var out []aspect.ID
	for _, a := range aspect.All() {
		if t.Allowed(a.ID, tag) {
			out = append(out, a.ID)
		}
	}
	return out
}

type overrideFile struct {
	Replace bool                `yaml:"replace"`
	Aspects map[string][]string `yaml:"aspects"`
}

// LoadTable returns the built-in table, optionally overridden by a YAML file.
// Aspects listed in the file replace their built-in tag list; with
// `replace: true` unlisted aspects are emptied instead of kept.
//
//	aspects:
//	  temizlik: [oda_temiz, oda_kirli]
//	  "14": [wifi_hizli, wifi_yok]
func LoadTable(path string) (*Table, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary %q: %w", path, err)
	}
	var file overrideFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse vocabulary %q: %w", path, err)
	}
	if len(file.Aspects) == 0 {
		return nil, errors.New("vocabulary override lists no aspects")
	}

	merged := make(map[aspect.ID][]string, aspect.Count)
	if !file.Replace {
		for id, tags := range builtin {
			merged[id] = tags
		}
	}
	for key, tags := range file.Aspects {
		id, ok := aspect.Parse(strings.TrimSpace(key))
		if !ok {
			return nil, fmt.Errorf("vocabulary override: unknown aspect %q", key)
		}
		cleaned := make([]string, 0, len(tags))
		for _, tag := range tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				return nil, fmt.Errorf("vocabulary override: aspect %q has an empty tag", key)
			}
			cleaned = append(cleaned, tag)
		}
		merged[id] = cleaned
	}
	return newTable(merged), nil
}
