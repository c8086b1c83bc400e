package router

import "testing"

func TestCompareSpecificity(t *testing.T) {
	tests := []struct {
		a, b string
		want int // sign only
	}{
		{"/a/b", "/a/:x", -1},
		{"/a/:x", "/a/b", 1},
		{"/a/b/c", "/a/b", -1},
		{"/a/:x", "/docs/:rest*", -1},
		{"/docs/:rest*", "/a", 1},
		{"/a/b", "/c/d", 0},
		{"/a/:x/c", "/a/b/:y", 1},
		{"/x", "/x", 0},
	}

	for _, tt := range tests {
		got := CompareSpecificity(MustParsePattern(tt.a), MustParsePattern(tt.b))
		if sign(got) != tt.want {
			t.Errorf("CompareSpecificity(%q, %q) = %d, want sign %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func TestCompareSpecificityIsAntisymmetric(t *testing.T) {
	patterns := []string{"/", "/a", "/a/b", "/a/:x", "/:x/b", "/a/:x/c", "/docs/:rest*", "/:all*"}
	for _, a := range patterns {
		for _, b := range patterns {
			ab := CompareSpecificity(MustParsePattern(a), MustParsePattern(b))
			ba := CompareSpecificity(MustParsePattern(b), MustParsePattern(a))
			if sign(ab) != -sign(ba) {
				t.Errorf("CompareSpecificity(%q, %q) = %d but reverse = %d", a, b, ab, ba)
			}
		}
	}
}

func TestSortBySpecificity(t *testing.T) {
	m := NewManifest()
	for _, p := range []string{"/docs/:rest*", "/a/:x", "/a/b", "/a/b/c", "/about"} {
		if err := m.AddPage(p, p); err != nil {
			t.Fatal(err)
		}
	}

	SortBySpecificity(m.Routes)

	want := []string{"/a/b/c", "/a/b", "/a/:x", "/about", "/docs/:rest*"}
	for i, entry := range m.Routes {
		if entry.Path != want[i] {
			t.Errorf("sorted[%d] = %q, want %q", i, entry.Path, want[i])
		}
	}
}

func TestSortBySpecificityIsStable(t *testing.T) {
	m := NewManifest()
	if err := m.AddPage("/a/:x", "first"); err != nil {
		t.Fatal(err)
	}
	if err := m.AddPage("/b/:y", "second"); err != nil {
		t.Fatal(err)
	}

	SortBySpecificity(m.Routes)

	if m.Routes[0].Module != "first" || m.Routes[1].Module != "second" {
		t.Errorf("equally specific routes reordered: %s, %s", m.Routes[0].Module, m.Routes[1].Module)
	}
}

// TestComparatorAgreesWithTrie checks that for pattern pairs where both
// match the same path, the trie returns the one the comparator ranks
// more specific.
func TestComparatorAgreesWithTrie(t *testing.T) {
	cases := []struct {
		patterns []string
		path     string
	}{
		{[]string{"/a/b", "/a/:x"}, "/a/b"},
		{[]string{"/a/:x", "/a/b"}, "/a/b"},
		{[]string{"/files/:id/edit", "/files/:rest*"}, "/files/1/edit"},
		{[]string{"/docs", "/docs/:rest*"}, "/docs"},
		{[]string{"/:x/c", "/a/:y"}, "/a/c"},
	}

	for _, tc := range cases {
		root := buildTree(t, tc.patterns...)
		entry, _, ok := resolvePath(root, tc.path)
		if !ok {
			t.Errorf("patterns %v: no match for %q", tc.patterns, tc.path)
			continue
		}

		best := tc.patterns[0]
		for _, p := range tc.patterns[1:] {
			if CompareSpecificity(MustParsePattern(p), MustParsePattern(best)) < 0 {
				best = p
			}
		}
		if entry.Path != best {
			t.Errorf("patterns %v, path %q: trie chose %q, comparator prefers %q",
				tc.patterns, tc.path, entry.Path, best)
		}
	}
}

func TestManifestAddRedirect(t *testing.T) {
	m := NewManifest()
	if err := m.AddRedirect("/old", "/new"); err != nil {
		t.Fatal(err)
	}
	if len(m.Routes) != 1 {
		t.Fatalf("len(Routes) = %d, want 1", len(m.Routes))
	}
	entry := m.Routes[0]
	if entry.Kind != KindRedirect {
		t.Errorf("Kind = %v, want KindRedirect", entry.Kind)
	}
	if entry.RedirectTo != "/new" {
		t.Errorf("RedirectTo = %q, want %q", entry.RedirectTo, "/new")
	}
}

func TestManifestAddPageMalformed(t *testing.T) {
	m := NewManifest()
	if err := m.AddPage("/:a*/b", "bad"); err == nil {
		t.Error("expected error for malformed pattern")
	}
	if len(m.Routes) != 0 {
		t.Errorf("malformed pattern was registered")
	}
}
