package kvs

import (
	"fmt"
	"regexp"
	"sort"
)

// Find returns every live key matching the regular expression pattern,
// sorted for deterministic output. It scans the in-memory index's key
// set directly rather than the log — a pure read over state already
// held in memory, not a persisted secondary index.
func (s *Store) Find(pattern string) ([]string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("kvs: find: %w", err)
	}

	var matches []string
	for k := range s.index {
		if re.MatchString(k) {
			matches = append(matches, k)
		}
	}
	sort.Strings(matches)
	return matches, nil
}
