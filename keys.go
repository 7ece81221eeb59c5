package kvs

// Keys returns every live key, in no particular order. It walks the
// in-memory index directly rather than scanning the log — the index
// already holds every live key.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.index))
	for k := range s.index {
		keys = append(keys, k)
	}
	return keys
}
