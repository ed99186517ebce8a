package ident

import "testing"

func TestValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"foo", true},
		{"_foo", true},
		{"foo_bar2", true},
		{"", false},
		{"2foo", false},
		{"foo-bar", false},
		{"foo bar", false},
	}
	for _, tt := range tests {
		if got := Valid(tt.in); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNamespaceString(t *testing.T) {
	ns := Namespace{"a", "b", "c"}
	if got := ns.String(); got != "a::b::c" {
		t.Errorf("String() = %q, want %q", got, "a::b::c")
	}
}

func TestNamespaceAppendDoesNotMutateReceiver(t *testing.T) {
	base := Namespace{"a"}
	appended := base.Append("b")
	if len(base) != 1 {
		t.Fatalf("Append mutated the receiver: len(base) = %d, want 1", len(base))
	}
	if appended.String() != "a::b" {
		t.Errorf("Append result = %q, want %q", appended.String(), "a::b")
	}
}

func TestNamespaceEmpty(t *testing.T) {
	if !(Namespace{}).Empty() {
		t.Error("empty Namespace reports Empty() = false")
	}
	if (Namespace{"a"}).Empty() {
		t.Error("non-empty Namespace reports Empty() = true")
	}
}
