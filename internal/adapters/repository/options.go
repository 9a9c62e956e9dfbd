package repository

// Option configures a MemStore.
type Option func(*MemStore)

// WithInitialCapacity pre-sizes the id index for an expected pool
// size. Values below one are ignored.
func WithInitialCapacity(n int) Option {
	return func(s *MemStore) {
		if n > 0 {
			s.byID = make(map[string]int, n)
		}
	}
}
