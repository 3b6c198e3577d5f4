package pathutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	t.Parallel()

	name255 := strings.Repeat("a", 255)
	name256 := strings.Repeat("a", 256)
	// 1 + 15*(255+1) + 255 + 1 = 4097, trim the tail component to hit exact totals
	long := "/" + strings.Repeat(name255+"/", 15)
	pathOf := func(total int) string {
		return long + strings.Repeat("b", total-len(long)-1) + "/"
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"empty", "", false},
		{"root", "/", true},
		{"single", "/a/", true},
		{"nested", "/abc/def/", true},
		{"missing leading slash", "a/", false},
		{"missing trailing slash", "/a", false},
		{"double slash", "//", false},
		{"empty component", "/a//b/", false},
		{"uppercase", "/A/", false},
		{"digit", "/a1/", false},
		{"dot", "/./", false},
		{"space", "/a b/", false},
		{"max name", "/" + name255 + "/", true},
		{"name too long", "/" + name256 + "/", false},
		{"max path", pathOf(DefaultMaxPathLength), true},
		{"path too long", pathOf(DefaultMaxPathLength + 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.path))
		})
	}
}

func TestValid_PathOfLengthHelper(t *testing.T) {
	name255 := strings.Repeat("a", 255)
	long := "/" + strings.Repeat(name255+"/", 15)
	p := long + strings.Repeat("b", DefaultMaxPathLength-len(long)-1) + "/"
	assert.Len(t, p, DefaultMaxPathLength)
}

func TestLimits_Custom(t *testing.T) {
	t.Parallel()
	l := Limits{MaxPathLength: 8, MaxNameLength: 3}

	assert.True(t, l.Valid("/abc/"))
	assert.False(t, l.Valid("/abcd/"))
	assert.True(t, l.Valid("/ab/cd/"))
	assert.False(t, l.Valid("/ab/cd/e/"))
}

func TestSplit(t *testing.T) {
	t.Parallel()

	name, rest, ok := Split("/a/b/")
	assert.True(t, ok)
	assert.Equal(t, "a", name)
	assert.Equal(t, "/b/", rest)

	name, rest, ok = Split("/abc/")
	assert.True(t, ok)
	assert.Equal(t, "abc", name)
	assert.Equal(t, "/", rest)

	_, _, ok = Split("/")
	assert.False(t, ok)
}

func TestComponents(t *testing.T) {
	t.Parallel()
	assert.Nil(t, Components("/"))
	assert.Equal(t, []string{"a"}, Components("/a/"))
	assert.Equal(t, []string{"a", "bc", "d"}, Components("/a/bc/d/"))
}

func TestParent(t *testing.T) {
	t.Parallel()

	parent, name, ok := Parent("/a/b/")
	assert.True(t, ok)
	assert.Equal(t, "/a/", parent)
	assert.Equal(t, "b", name)

	parent, name, ok = Parent("/a/")
	assert.True(t, ok)
	assert.Equal(t, "/", parent)
	assert.Equal(t, "a", name)

	_, _, ok = Parent("/")
	assert.False(t, ok)
}

func TestLCA(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want string
	}{
		{"/a/", "/b/", "/"},
		{"/a/x/", "/a/y/", "/a/"},
		{"/a/x/", "/a/b/y/", "/a/"},
		{"/a/b/x/", "/a/y/", "/a/"},
		{"/ab/x/", "/ac/y/", "/"},
		{"/ab/x/", "/abc/y/", "/"},
		{"/a/b/c/x/", "/a/b/c/y/", "/a/b/c/"},
		{"/a/", "/a/", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.a+"|"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, LCA(tt.a, tt.b))
			assert.Equal(t, tt.want, LCA(tt.b, tt.a))
		})
	}
}

func TestIsStrictAncestor(t *testing.T) {
	t.Parallel()
	assert.True(t, IsStrictAncestor("/", "/a/"))
	assert.True(t, IsStrictAncestor("/a/", "/a/b/"))
	assert.False(t, IsStrictAncestor("/a/", "/a/"))
	assert.False(t, IsStrictAncestor("/a/", "/ab/"))
	assert.False(t, IsStrictAncestor("/a/b/", "/a/"))
}

func TestRel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "/b/c/", Rel("/a/", "/a/b/c/"))
	assert.Equal(t, "/", Rel("/a/", "/a/"))
	assert.Equal(t, "/a/", Rel("/", "/a/"))
}
