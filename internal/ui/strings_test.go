package ui

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"fits", "Tree Pose", 20, "Tree Pose"},
		{"trims", "  Tree  ", 20, "Tree"},
		{"ellipsis", "Downward-Facing Dog", 10, "Downwar..."},
		{"tiny", "abcdef", 2, "ab"},
		{"no_limit", "abcdef", 0, "abcdef"},
		{"wide_runes", "下犬式下犬式", 7, "下犬..."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := truncate(tc.in, tc.limit); got != tc.want {
				t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q, want %q", got, "ab  ")
	}
	if got := padRight("樹式", 6); got != "樹式  " {
		t.Fatalf("padRight wide = %q, want %q", got, "樹式  ")
	}
	if got := padRight("abcdef", 3); got != "abcdef" {
		t.Fatalf("padRight longer = %q, want unchanged", got)
	}
}

func TestMinMax(t *testing.T) {
	if maxInt(2, 5) != 5 || minInt(2, 5) != 2 {
		t.Fatalf("minInt/maxInt broken")
	}
}
