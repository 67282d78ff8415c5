package bridge

// Slot is a boot-time staging area for one handle. It is filled once and emptied once.
type Slot[T any] struct {
	name  string
	owner Context
	full  bool
	value T
}

// NewSlot returns an empty slot. The name shows up in fatal messages.
func NewSlot[T any](name string) *Slot[T] {
	return &Slot[T]{name: name}
}

// Stage places v in the slot for owner. Staging into a full slot panics.
func (s *Slot[T]) Stage(owner Context, v T) {
	Critical(func() {
		if s.full {
			panic("bridge: slot " + s.name + " staged twice")
		}
		s.owner = owner
		s.value = v
		s.full = true
	})
}

// Claim moves the handle out of the slot, leaving it empty. Claiming an empty slot, or
// claiming from a context other than the one the handle was staged for, panics.
func (s *Slot[T]) Claim(ctx Context) T {
	var v T
	Critical(func() {
		if !s.full {
			panic("bridge: slot " + s.name + " claimed while empty by " + ctx.String())
		}
		if s.owner != ctx {
			panic("bridge: slot " + s.name + " belongs to " + s.owner.String() + ", claimed by " + ctx.String())
		}
		v = s.value
		var zero T
		s.value = zero
		s.full = false
	})
	return v
}

// Staged reports whether the slot currently holds a handle.
func (s *Slot[T]) Staged() bool {
	var full bool
	Critical(func() { full = s.full })
	return full
}
