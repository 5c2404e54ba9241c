package keys

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShard(t *testing.T) {
	tests := []struct {
		first    string
		expected string
	}{
		{"a", "a"},
		{"ab", "ab"},
		{"abc", "ab/c"},
		{"abcd", "ab/cd"},
		{"abcde", "ab/cd/e"},
		{"abcdef", "ab/cd/ef"},
		{"tuna-fish", "tu/na/-fish"},
		{"e769fcec-3d1a", "e7/69/fcec-3d1a"},
	}

	for _, tt := range tests {
		t.Run(tt.first, func(t *testing.T) {
			assert.Equal(t, tt.expected, Shard(tt.first))
		})
	}
}

func TestTranslate(t *testing.T) {
	root := filepath.Join("var", "silo")

	tests := []struct {
		path     string
		expected string
	}{
		{"/abcdef/g1", filepath.Join(root, "ab", "cd", "ef", "g1")},
		{"/ABCDEF/G1", filepath.Join(root, "ab", "cd", "ef", "g1")},
		{"/abcdef", filepath.Join(root, "ab", "cd", "ef")},
		{"/abcdef/", filepath.Join(root, "ab", "cd", "ef")},
		{"/ab/x/y/", filepath.Join(root, "ab", "x", "y")},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			key, err := Parse(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, Translate(root, key))
		})
	}
}

func TestTranslate_Deterministic(t *testing.T) {
	key, err := Parse("/e769fcec-3d1a-4d53-8fc7-bb3b0bbafbea/a/b/c")
	require.NoError(t, err)

	first := Translate("/data", key)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Translate("/data", key))
	}
}

func TestObjectFiles(t *testing.T) {
	assert.Equal(t, "/data/ab/cd/ef/g1.data", DataFile("/data/ab/cd/ef/g1"))
	assert.Equal(t, "/data/ab/cd/ef/g1.meta", MetaFile("/data/ab/cd/ef/g1"))
}

func TestChildName(t *testing.T) {
	tests := []struct {
		entry string
		name  string
		ok    bool
	}{
		{"foo", "foo", true},
		{"foo.data", "foo", true},
		{"foo.meta", "foo", true},
		{"FOO.DATA", "foo", true},
		{"%24x.meta", "%24x", true},
		{"foo.txt", "", false},
		{".hidden", "", false},
		{".tmp-6d1b0c5e.data", "", false},
		{"foo.data.meta", "", false},
		{"a b", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.entry, func(t *testing.T) {
			name, ok := ChildName(tt.entry)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.name, name)
		})
	}
}
