package bridge

// Local is storage private to one context. It is filled from a Slot on first use and
// never touches the slot again.
type Local[T any] struct {
	ok    bool
	value T
}

// Get returns the context's handle, claiming it from s on the first call.
func (l *Local[T]) Get(s *Slot[T], ctx Context) T {
	if !l.ok {
		l.value = s.Claim(ctx)
		l.ok = true
	}
	return l.value
}

// Claimed reports whether the handle has been taken yet.
func (l *Local[T]) Claimed() bool { return l.ok }
