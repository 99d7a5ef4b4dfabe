package term

import "testing"

func TestNew(t *testing.T) {
	cases := []struct {
		raw   string
		set   bool
		value string
	}{
		{"blue shoes", true, "blue shoes"},
		{"  blue shoes  ", true, "blue shoes"},
		{"", false, ""},
		{"   ", false, ""},
		{"\t\n", false, ""},
	}

	for _, tc := range cases {
		got := New(tc.raw)
		if got.IsSet() != tc.set {
			t.Errorf("New(%q).IsSet() = %v, want %v", tc.raw, got.IsSet(), tc.set)
		}
		if got.Value() != tc.value {
			t.Errorf("New(%q).Value() = %q, want %q", tc.raw, got.Value(), tc.value)
		}
	}
}

func TestNone(t *testing.T) {
	if None().IsSet() {
		t.Error("None() must be unset")
	}
}
