// Package item defines item types and stacks carried by item entities.
package item

import "fmt"

// Type identifies an item template. Values match the item catalog IDs.
type Type int32

const (
	Air        Type = 0
	Stone      Type = 1
	Dirt       Type = 3
	OakPlanks  Type = 5
	Stick      Type = 280
	Diamond    Type = 264
	IronIngot  Type = 265
	GoldIngot  Type = 266
	Arrow      Type = 262
	Apple      Type = 260
	EnderPearl Type = 368
)

var builtinNames = map[Type]string{
	Air:        "air",
	Stone:      "stone",
	Dirt:       "dirt",
	OakPlanks:  "oak_planks",
	Stick:      "stick",
	Diamond:    "diamond",
	IronIngot:  "iron_ingot",
	GoldIngot:  "gold_ingot",
	Arrow:      "arrow",
	Apple:      "apple",
	EnderPearl: "ender_pearl",
}

// String returns the snake_case name of built-in types, or "item#<id>".
func (t Type) String() string {
	if n, ok := builtinNames[t]; ok {
		return n
	}
	return fmt.Sprintf("item#%d", int32(t))
}

// Stack is a quantity of one item type.
type Stack struct {
	Type  Type
	Count uint8
}

func NewStack(t Type, count uint8) Stack {
	return Stack{Type: t, Count: count}
}

// Empty reports whether the stack holds nothing.
func (s Stack) Empty() bool { return s.Type == Air || s.Count == 0 }

// Clone returns a pointer to a copy of s.
func (s Stack) Clone() *Stack {
	c := s
	return &c
}

func (s Stack) String() string {
	return fmt.Sprintf("%s x%d", s.Type, s.Count)
}
