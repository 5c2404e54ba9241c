package keys

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ruteri/silo/interfaces"
)

const (
	// DataSuffix marks the file holding an object's bytes.
	DataSuffix = ".data"
	// MetaSuffix marks the file holding an object's metadata record.
	MetaSuffix = ".meta"

	shardWidth  = 2
	shardLevels = 2
)

var childRegexp = regexp.MustCompile(`(?i)^(` + segmentPattern + `)(\.data|\.meta)?$`)

// Shard spreads the first key segment over two extra directory levels:
// a separator goes after each of the first two 2-character groups, as long
// as more characters follow ("abcdef" -> "ab/cd/ef", "abc" -> "ab/c").
func Shard(first string) string {
	var b strings.Builder
	b.Grow(len(first) + shardLevels)

	rest := first
	for i := 0; i < shardLevels && len(rest) > shardWidth; i++ {
		b.WriteString(rest[:shardWidth])
		b.WriteByte('/')
		rest = rest[shardWidth:]
	}
	b.WriteString(rest)
	return b.String()
}

// Translate maps a key onto its location under root: the collection directory
// for a collection key, the shared stem of the data and metadata files otherwise.
func Translate(root string, key interfaces.Key) string {
	parts := make([]string, 0, len(key.Rest)+2)
	parts = append(parts, root, filepath.FromSlash(Shard(key.First)))
	parts = append(parts, key.Rest...)
	return filepath.Join(parts...)
}

// DataFile returns the data file for a stem.
func DataFile(stem string) string {
	return stem + DataSuffix
}

// MetaFile returns the metadata file for a stem.
func MetaFile(stem string) string {
	return stem + MetaSuffix
}

// ChildName reports whether a directory entry belongs to the store and
// returns the child name it contributes to a listing, suffix stripped.
func ChildName(entry string) (string, bool) {
	m := childRegexp.FindStringSubmatch(entry)
	if m == nil {
		return "", false
	}
	return strings.ToLower(m[1]), true
}
