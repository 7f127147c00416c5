package data

import (
	"fmt"
	"math/rand"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/l1jgo/spawnd/internal/item"
)

// ChanceScale is the denominator of LootEntry.Chance (1,000,000 = always).
const ChanceScale = 1_000_000

// LootEntry is one possible stack of a loot table.
type LootEntry struct {
	Item   string `yaml:"item"`
	Min    int    `yaml:"min"`
	Max    int    `yaml:"max"`
	Chance int    `yaml:"chance"` // out of ChanceScale

	info *ItemInfo
}

type lootTableEntry struct {
	Name    string      `yaml:"name"`
	Entries []LootEntry `yaml:"entries"`
}

type lootListFile struct {
	Tables []lootTableEntry `yaml:"tables"`
}

// LootTables holds named loot tables whose items resolve against the item
// catalog at load time.
type LootTables struct {
	tables map[string][]LootEntry
}

// Get returns the entries of a table, or nil if none defined.
func (t *LootTables) Get(name string) []LootEntry {
	return t.tables[strings.ToLower(name)]
}

// Count returns the number of tables.
func (t *LootTables) Count() int {
	return len(t.tables)
}

// Roll draws every entry of the named table independently and returns the
// stacks that hit. Unknown tables roll nothing.
func (t *LootTables) Roll(name string, rng *rand.Rand) []item.Stack {
	var out []item.Stack
	for _, e := range t.Get(name) {
		if e.Chance < ChanceScale && rng.Intn(ChanceScale) >= e.Chance {
			continue
		}
		n := e.Min
		if e.Max > e.Min {
			n += rng.Intn(e.Max - e.Min + 1)
		}
		out = append(out, item.NewStack(e.info.ID, uint8(n)))
	}
	return out
}

// LoadLootTables loads loot tables from a YAML file.
func LoadLootTables(path string, items *ItemTable) (*LootTables, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read loot_list: %w", err)
	}
	t, err := ParseLootTables(raw, items)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ParseLootTables decodes loot tables. Every entry must name a catalog item
// and a count range within the item's max stack.
func ParseLootTables(raw []byte, items *ItemTable) (*LootTables, error) {
	var f lootListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse loot_list: %w", err)
	}
	t := &LootTables{tables: make(map[string][]LootEntry, len(f.Tables))}
	for _, tbl := range f.Tables {
		name := strings.ToLower(strings.TrimSpace(tbl.Name))
		if name == "" {
			return nil, fmt.Errorf("loot table without name")
		}
		if _, dup := t.tables[name]; dup {
			return nil, fmt.Errorf("loot table %q: duplicate", name)
		}
		entries := make([]LootEntry, 0, len(tbl.Entries))
		for _, e := range tbl.Entries {
			info := items.ByName(e.Item)
			if info == nil {
				return nil, fmt.Errorf("loot table %q: unknown item %q", name, e.Item)
			}
			if e.Min <= 0 {
				e.Min = 1
			}
			if e.Max < e.Min {
				e.Max = e.Min
			}
			if e.Max > int(info.MaxStack) {
				return nil, fmt.Errorf("loot table %q: %s max %d exceeds stack size %d", name, info.Name, e.Max, info.MaxStack)
			}
			if e.Chance <= 0 || e.Chance > ChanceScale {
				return nil, fmt.Errorf("loot table %q: %s chance %d out of range", name, info.Name, e.Chance)
			}
			e.info = info
			entries = append(entries, e)
		}
		t.tables[name] = entries
	}
	return t, nil
}
