package item

import "testing"

func TestTypeString(t *testing.T) {
	if got := EnderPearl.String(); got != "ender_pearl" {
		t.Errorf("EnderPearl.String() = %q", got)
	}
	if got := Type(9999).String(); got != "item#9999" {
		t.Errorf("unknown type String() = %q", got)
	}
}

func TestStackClone(t *testing.T) {
	s := NewStack(Diamond, 3)
	c := s.Clone()
	c.Count = 64
	if s.Count != 3 {
		t.Fatalf("Clone shares storage with the original")
	}
	if !NewStack(Air, 5).Empty() || !NewStack(Stone, 0).Empty() || s.Empty() {
		t.Fatalf("Empty() wrong")
	}
}
