package component

// EntityKind is the closed set of entity categories.
type EntityKind uint8

const (
	KindItem EntityKind = iota
	KindExperienceOrb
	KindArrow
	KindPlayer
	KindZombie
)

var kindNames = [...]string{"item", "experience_orb", "arrow", "player", "zombie"}

func (k EntityKind) String() string {
	if int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}
