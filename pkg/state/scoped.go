package state

// scoped is a table whose local assignments are undone when the group they
// were made in ends. Each open group has an overlay map; lookups go from the
// innermost overlay outwards.
type scoped[K comparable, V any] struct {
	levels []map[K]V
}

func newScoped[K comparable, V any]() *scoped[K, V] {
	return &scoped[K, V]{levels: []map[K]V{{}}}
}

func (s *scoped[K, V]) get(k K) (V, bool) {
	for i := len(s.levels) - 1; i >= 0; i-- {
		if v, ok := s.levels[i][k]; ok {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// set makes a local assignment.
func (s *scoped[K, V]) set(k K, v V) {
	s.levels[len(s.levels)-1][k] = v
}

// setGlobal makes an assignment that survives the end of all groups.
func (s *scoped[K, V]) setGlobal(k K, v V) {
	for _, level := range s.levels[1:] {
		delete(level, k)
	}
	s.levels[0][k] = v
}

// replace changes the value in the innermost level that has one, without
// saving the old value.
func (s *scoped[K, V]) replace(k K, v V) {
	for i := len(s.levels) - 1; i > 0; i-- {
		if _, ok := s.levels[i][k]; ok {
			s.levels[i][k] = v
			return
		}
	}
	s.levels[0][k] = v
}

func (s *scoped[K, V]) push() {
	s.levels = append(s.levels, map[K]V{})
}

func (s *scoped[K, V]) pop() {
	s.levels = s.levels[:len(s.levels)-1]
}
