package keys

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ruteri/silo/interfaces"
)

// segmentPattern is the character class every path segment is drawn from.
// '.' is absent, so traversal sequences cannot be spelled.
const segmentPattern = `[-+_0-9a-z%]+`

var pathRegexp = regexp.MustCompile(fmt.Sprintf(`^/(%s)((?:/%s){0,%d})(/?)$`,
	segmentPattern, segmentPattern, interfaces.MaxSegments-1))

// Parse validates a raw request path and splits it into a key.
// The path is lowercased first, so keys are case-insensitive.
func Parse(rawPath string) (interfaces.Key, error) {
	path := strings.ToLower(rawPath)

	m := pathRegexp.FindStringSubmatch(path)
	if m == nil {
		return interfaces.Key{}, fmt.Errorf("%w: %q", interfaces.ErrMalformedPath, path)
	}

	var rest []string
	if m[2] != "" {
		rest = strings.Split(strings.TrimPrefix(m[2], "/"), "/")
	}

	return interfaces.Key{
		First:        m[1],
		Rest:         rest,
		IsCollection: m[3] == "/",
	}, nil
}
