// Package pathutil validates and decomposes folder paths.
//
// A path is absolute and slash-terminated: "/" is the root, "/a/b/" names folder b
// inside folder a. Every component is one or more lowercase ASCII letters.
// All functions except [Limits.Valid] assume their input is already valid.
package pathutil

import "strings"

const (
	// DefaultMaxPathLength is the longest accepted path, slashes included
	DefaultMaxPathLength = 4095
	// DefaultMaxNameLength is the longest accepted single component
	DefaultMaxNameLength = 255
)

// Root is the path of the root folder
const Root = "/"

// Limits bounds the size of accepted paths.
type Limits struct {
	MaxPathLength int
	MaxNameLength int
}

// DefaultLimits are the limits used when none are configured
var DefaultLimits = Limits{
	MaxPathLength: DefaultMaxPathLength,
	MaxNameLength: DefaultMaxNameLength,
}

// Valid reports whether p is a well-formed path within the limits.
func (l Limits) Valid(p string) bool {
	n := len(p)
	if n == 0 || n > l.MaxPathLength {
		return false
	}
	if p[0] != '/' || p[n-1] != '/' {
		return false
	}
	start := 1 // first byte of the current component
	for i := 1; i < n; i++ {
		c := p[i]
		if c == '/' {
			if i == start || i-start > l.MaxNameLength {
				return false
			}
			start = i + 1
			continue
		}
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}

// Valid reports whether p is well-formed under [DefaultLimits].
func Valid(p string) bool {
	return DefaultLimits.Valid(p)
}

// Split returns the first component of p and the path that remains below it.
//
//	Split("/a/b/") == "a", "/b/", true
//	Split("/") == "", "", false
func Split(p string) (name, rest string, ok bool) {
	if len(p) <= 1 {
		return "", "", false
	}
	end := strings.IndexByte(p[1:], '/') + 1
	return p[1:end], p[end:], true
}

// Components returns the names along p from the root down. nil for the root.
func Components(p string) []string {
	trimmed := strings.Trim(p, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// Parent splits p into the path of its parent and its own name.
//
//	Parent("/a/b/") == "/a/", "b", true
//	Parent("/") == "", "", false
func Parent(p string) (parent, name string, ok bool) {
	if len(p) <= 1 {
		return "", "", false
	}
	trimmed := p[:len(p)-1]
	i := strings.LastIndexByte(trimmed, '/')
	return p[:i+1], trimmed[i+1:], true
}

// LCA returns the path of the deepest folder that is an ancestor-or-self of
// both the parent of a and the parent of b. Neither a nor b may be the root.
// Paths are compared whole component at a time, so "/ab/x/" and "/ac/y/"
// meet at "/".
func LCA(a, b string) string {
	pa, _, _ := Parent(a)
	pb, _, _ := Parent(b)
	n := min(len(pa), len(pb))
	last := 0 // index of the last slash both parents agree up to
	for i := 0; i < n; i++ {
		if pa[i] != pb[i] {
			break
		}
		if pa[i] == '/' {
			last = i
		}
	}
	return pa[:last+1]
}

// IsStrictAncestor reports whether a names a folder strictly above b.
// The trailing slash keeps the prefix test aligned to components.
func IsStrictAncestor(a, b string) bool {
	return len(a) < len(b) && strings.HasPrefix(b, a)
}

// Rel returns the part of p below anchor as an absolute path, where anchor is
// p itself or one of its ancestors.
//
//	Rel("/a/", "/a/b/c/") == "/b/c/"
//	Rel("/a/", "/a/") == "/"
func Rel(anchor, p string) string {
	return p[len(anchor)-1:]
}
