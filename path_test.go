package urlobject_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/urlobject"
)

func TestPath_Segments(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path urlobject.Path
		want []string
	}{
		{"", nil},
		{"/", []string{""}},
		{"/a/b", []string{"a", "b"}},
		{"/a/b/", []string{"a", "b", ""}},
		{"a/b", []string{"a", "b"}},
	}
	for _, c := range cases {
		t.Run(string(c.path), func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(c.path.Segments(), c.want); diff != "" {
				t.Errorf("Path(%q).Segments() mismatch\ndiff (-got +want):\n%v", c.path, diff)
			}
		})
	}
}

func TestPath_Predicates(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path         urlobject.Path
		wantAbsolute bool
		wantLeaf     bool
	}{
		{"", false, false},
		{"/", true, false},
		{"/a/b", true, true},
		{"/a/b/", true, false},
		{"a", false, true},
	}
	for _, c := range cases {
		t.Run(string(c.path), func(t *testing.T) {
			t.Parallel()

			if got := c.path.IsAbsolute(); got != c.wantAbsolute {
				t.Errorf("Path(%q).IsAbsolute() = %v, want %v", c.path, got, c.wantAbsolute)
			}
			if got := c.path.IsLeaf(); got != c.wantLeaf {
				t.Errorf("Path(%q).IsLeaf() = %v, want %v", c.path, got, c.wantLeaf)
			}
		})
	}
}

func TestPath_Parent(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path, want urlobject.Path
	}{
		{"", ""},
		{"/", "/"},
		{"/a", "/"},
		{"/a/b/c", "/a/b/"},
		{"/a/b/", "/a/"},
		{"a", ""},
		{"a/b", "a/"},
	}
	for _, c := range cases {
		t.Run(string(c.path), func(t *testing.T) {
			t.Parallel()

			if got := c.path.Parent(); got != c.want {
				t.Errorf("Path(%q).Parent() = %q, want %q", c.path, got, c.want)
			}
		})
	}
}

func TestPath_Add(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		path    urlobject.Path
		partial string
		want    urlobject.Path
	}{
		{"empty partial", "/a", "", "/a"},
		{"empty path", "", "a/b", "/a/b"},
		{"leaf", "/a", "b", "/a/b"},
		{"trailing slash", "/a/", "b", "/a/b"},
		{"leading slash", "/a", "/b/c", "/a/b/c"},
		{"trailing slash kept", "/a", "b/", "/a/b/"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.path.Add(c.partial); got != c.want {
				t.Errorf("Path(%q).Add(%q) = %q, want %q", c.path, c.partial, got, c.want)
			}
		})
	}
}

func TestPath_AddSegment(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path urlobject.Path
		seg  string
		want urlobject.Path
	}{
		{"/a", "b", "/a/b"},
		{"/a/", "x/y", "/a/x%2Fy"},
		{"", "q?#", "/q%3F%23"},
		{"/a", "b c", "/a/b c"},
	}
	for _, c := range cases {
		t.Run(c.seg, func(t *testing.T) {
			t.Parallel()

			if got := c.path.AddSegment(c.seg); got != c.want {
				t.Errorf("Path(%q).AddSegment(%q) = %q, want %q", c.path, c.seg, got, c.want)
			}
		})
	}
}

func TestPath_Root(t *testing.T) {
	t.Parallel()

	if got, want := urlobject.Path("/a/b").Root(), urlobject.Path("/"); got != want {
		t.Errorf("Path.Root() = %q, want %q", got, want)
	}
}
