package watch

// seenSet records listing links already processed this run. It is bounded:
// once capacity is reached the oldest entries are evicted first, so a
// long-running process cannot grow without limit. Single-writer, owned by
// the watch loop.
type seenSet struct {
	members  map[string]struct{}
	order    []string
	capacity int
}

func newSeenSet(capacity int) *seenSet {
	if capacity <= 0 {
		capacity = 10000
	}
	return &seenSet{
		members:  make(map[string]struct{}, capacity),
		order:    make([]string, 0, capacity),
		capacity: capacity,
	}
}

func (s *seenSet) Contains(link string) bool {
	_, ok := s.members[link]
	return ok
}

// Add marks a link as seen, evicting the oldest entry at capacity.
func (s *seenSet) Add(link string) {
	if s.Contains(link) {
		return
	}
	if len(s.order) >= s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.members, oldest)
	}
	s.members[link] = struct{}{}
	s.order = append(s.order, link)
}

func (s *seenSet) Len() int {
	return len(s.members)
}
