package urlobject

import "strings"

// Path is the path component of a URL as written in the URL.
type Path string

// String returns the path.
func (p Path) String() string { return string(p) }

// Segments returns the path split by '/'. The leading empty segment of an absolute path is omitted,
// a trailing slash results in a trailing empty segment.
//
//	Path("/a/b/").Segments() // ["a", "b", ""]
func (p Path) Segments() []string {
	if p == "" {
		return nil
	}
	return strings.Split(strings.TrimPrefix(string(p), "/"), "/")
}

// IsAbsolute reports whether the path starts with '/'.
func (p Path) IsAbsolute() bool { return strings.HasPrefix(string(p), "/") }

// IsLeaf reports whether the path points to a leaf, i.e. its last segment is not empty.
func (p Path) IsLeaf() bool {
	segs := p.Segments()
	return len(segs) > 0 && segs[len(segs)-1] != ""
}

// Root returns the root path "/".
func (Path) Root() Path { return "/" }

// Parent returns the parent path, keeping the trailing slash.
//
//	Path("/a/b/c").Parent() // "/a/b/"
//	Path("/a/b/").Parent()  // "/a/"
//	Path("/").Parent()      // "/"
func (p Path) Parent() Path {
	s := string(p)
	if s == "" || s == "/" {
		return p
	}
	if !p.IsLeaf() {
		s = s[:len(s)-1]
	}
	i := strings.LastIndexByte(s, '/')
	if i < 0 {
		return ""
	}
	return Path(s[:i+1])
}

var segEscaper = strings.NewReplacer("/", "%2F", "?", "%3F", "#", "%23")

// AddSegment returns the path with a single segment appended.
// Characters that would split the segment or end the path ('/', '?', '#') are percent-encoded,
// everything else is kept as is.
func (p Path) AddSegment(seg string) Path { return p.Add(segEscaper.Replace(seg)) }

// Add returns the path with the partial path appended, joined by exactly one '/'.
func (p Path) Add(partial string) Path {
	if partial == "" {
		return p
	}
	partial = strings.TrimLeft(partial, "/")
	switch {
	case p == "":
		return Path("/" + partial)
	case strings.HasSuffix(string(p), "/"):
		return p + Path(partial)
	default:
		return p + "/" + Path(partial)
	}
}
