package component

import "github.com/l1jgo/spawnd/internal/item"

// EntityFlags is the shared status bit field of every entity.
type EntityFlags uint8

const (
	FlagOnFire EntityFlags = 1 << iota
	FlagCrouched
	_
	FlagSprinting
	FlagSwimming
	FlagInvisible
	FlagGlowing
)

const DefaultAir = 300

// EntityBase is the metadata every kind shares.
type EntityBase struct {
	Flags       EntityFlags
	Air         int
	CustomName  string
	NameVisible bool
	Silent      bool
	NoGravity   bool
}

func defaultBase() EntityBase {
	return EntityBase{Air: DefaultAir}
}

// Metadata is the kind-tagged renderable state of an entity. Each kind has
// exactly one implementation, built by its constructor.
type Metadata interface {
	Kind() EntityKind
	Base() *EntityBase
}

// ItemMetadata is the metadata of an item entity.
type ItemMetadata struct {
	EntityBase
	Stack *item.Stack
}

// NewItemMetadata derives item entity metadata from the carried stack.
func NewItemMetadata(s item.Stack) *ItemMetadata {
	return &ItemMetadata{
		EntityBase: defaultBase(),
		Stack:      s.Clone(),
	}
}

func (m *ItemMetadata) Kind() EntityKind  { return KindItem }
func (m *ItemMetadata) Base() *EntityBase { return &m.EntityBase }

// SetItem replaces the carried stack.
func (m *ItemMetadata) SetItem(s *item.Stack) { m.Stack = s }
