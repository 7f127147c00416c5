package data

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/l1jgo/spawnd/internal/item"
)

const defaultMaxStack = 64

// ItemInfo holds item template data.
type ItemInfo struct {
	ID          item.Type
	Name        string // snake_case key used by scripts
	DisplayName string
	MaxStack    uint8
}

// ItemTable is the loaded item catalog. Read-only after load, safe for
// concurrent readers.
type ItemTable struct {
	items  map[item.Type]*ItemInfo
	byName map[string]*ItemInfo
}

func (t *ItemTable) Get(id item.Type) *ItemInfo {
	return t.items[id]
}

// ByName looks up an item by its snake_case name, case-insensitively.
func (t *ItemTable) ByName(name string) *ItemInfo {
	return t.byName[strings.ToLower(name)]
}

// DisplayName returns the catalog display name, falling back to the type's
// own name for unknown IDs.
func (t *ItemTable) DisplayName(id item.Type) string {
	if info := t.items[id]; info != nil {
		return info.DisplayName
	}
	return id.String()
}

func (t *ItemTable) Count() int {
	return len(t.items)
}

type itemEntry struct {
	ID          int32  `yaml:"item_id"`
	Name        string `yaml:"name"`
	DisplayName string `yaml:"display_name"`
	MaxStack    int    `yaml:"max_stack"`
}

type itemListFile struct {
	Items []itemEntry `yaml:"items"`
}

// LoadItemTable reads the YAML item catalog at path.
func LoadItemTable(path string) (*ItemTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	t, err := ParseItemTable(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ParseItemTable decodes a YAML item catalog.
func ParseItemTable(raw []byte) (*ItemTable, error) {
	var f itemListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse items: %w", err)
	}
	t := &ItemTable{
		items:  make(map[item.Type]*ItemInfo, len(f.Items)),
		byName: make(map[string]*ItemInfo, len(f.Items)),
	}
	title := cases.Title(language.English)
	for i := range f.Items {
		e := &f.Items[i]
		name := strings.ToLower(strings.TrimSpace(e.Name))
		if name == "" {
			return nil, fmt.Errorf("item %d: missing name", e.ID)
		}
		if _, dup := t.items[item.Type(e.ID)]; dup {
			return nil, fmt.Errorf("item %d: duplicate id", e.ID)
		}
		if _, dup := t.byName[name]; dup {
			return nil, fmt.Errorf("item %q: duplicate name", name)
		}
		maxStack := e.MaxStack
		if maxStack <= 0 {
			maxStack = defaultMaxStack
		}
		if maxStack > 255 {
			return nil, fmt.Errorf("item %q: max_stack %d out of range", name, maxStack)
		}
		display := e.DisplayName
		if display == "" {
			display = title.String(strings.ReplaceAll(name, "_", " "))
		}
		info := &ItemInfo{
			ID:          item.Type(e.ID),
			Name:        name,
			DisplayName: display,
			MaxStack:    uint8(maxStack),
		}
		t.items[info.ID] = info
		t.byName[name] = info
	}
	return t, nil
}
