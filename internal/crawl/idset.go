package crawl

// idSet is a set of ids that remembers first-insertion order.
type idSet struct {
	seen  map[int64]struct{}
	order []int64
}

func newIDSet() *idSet {
	return &idSet{seen: make(map[int64]struct{})}
}

// add inserts ids and returns how many were new.
func (s *idSet) add(ids ...int64) int {
	added := 0
	for _, id := range ids {
		if _, ok := s.seen[id]; ok {
			continue
		}
		s.seen[id] = struct{}{}
		s.order = append(s.order, id)
		added++
	}
	return added
}

// first returns up to n ids in insertion order.
func (s *idSet) first(n int) []int64 {
	if n > len(s.order) {
		n = len(s.order)
	}
	out := make([]int64, n)
	copy(out, s.order[:n])
	return out
}

func (s *idSet) list() []int64 {
	out := make([]int64, len(s.order))
	copy(out, s.order)
	return out
}

func (s *idSet) len() int {
	return len(s.order)
}
