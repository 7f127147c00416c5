package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/l1jgo/spawnd/internal/item"
)

const testCatalog = `
items:
  - item_id: 368
    name: ender_pearl
    max_stack: 16
  - item_id: 264
    name: diamond
    display_name: Shiny Diamond
  - item_id: 1
    name: Stone
`

func TestParseItemTable(t *testing.T) {
	tbl, err := ParseItemTable([]byte(testCatalog))
	if err != nil {
		t.Fatalf("ParseItemTable: %v", err)
	}
	if tbl.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", tbl.Count())
	}

	pearl := tbl.Get(item.EnderPearl)
	if pearl == nil {
		t.Fatalf("ender pearl missing")
	}
	if pearl.DisplayName != "Ender Pearl" {
		t.Errorf("DisplayName = %q, want %q", pearl.DisplayName, "Ender Pearl")
	}
	if pearl.MaxStack != 16 {
		t.Errorf("MaxStack = %d, want 16", pearl.MaxStack)
	}

	if got := tbl.DisplayName(item.Diamond); got != "Shiny Diamond" {
		t.Errorf("DisplayName(diamond) = %q", got)
	}
	if got := tbl.Get(item.Diamond).MaxStack; got != defaultMaxStack {
		t.Errorf("default MaxStack = %d, want %d", got, defaultMaxStack)
	}
	if info := tbl.ByName("STONE"); info == nil || info.ID != item.Stone {
		t.Errorf("ByName(STONE) = %+v", info)
	}
	if tbl.ByName("nether_star") != nil {
		t.Errorf("ByName(nether_star) found an item")
	}
	if got := tbl.DisplayName(item.Type(9999)); got != "item#9999" {
		t.Errorf("DisplayName(unknown) = %q", got)
	}
}

func TestParseItemTableErrors(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"missing name", "items:\n  - item_id: 1\n"},
		{"duplicate id", "items:\n  - {item_id: 1, name: a}\n  - {item_id: 1, name: b}\n"},
		{"duplicate name", "items:\n  - {item_id: 1, name: a}\n  - {item_id: 2, name: A}\n"},
		{"stack too large", "items:\n  - {item_id: 1, name: a, max_stack: 300}\n"},
		{"bad yaml", "items: [\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseItemTable([]byte(tc.yaml)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadItemTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.yaml")
	if err := os.WriteFile(path, []byte(testCatalog), 0o644); err != nil {
		t.Fatal(err)
	}
	tbl, err := LoadItemTable(path)
	if err != nil {
		t.Fatalf("LoadItemTable: %v", err)
	}
	if tbl.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", tbl.Count())
	}
	if _, err := LoadItemTable(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
