package store

import "strings"

// Match reports whether path contains every keyword in order, each found
// after the end of the previous one. The last keyword must additionally
// occur in the final path component, counted from the last '/' or '\'.
// An empty keyword list matches everything.
func Match(path string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	pos := 0
	for _, kw := range keywords {
		i := strings.Index(path[pos:], kw)
		if i < 0 {
			return false
		}
		pos += i + len(kw)
	}

	sep := strings.LastIndexAny(path, `/\`)
	if sep < 0 {
		return true
	}
	return strings.Contains(path[sep:], keywords[len(keywords)-1])
}
