package handle

// Closer is a handle that can be released.
type Closer interface {
	Close() error
}

// Ref is a sub-handle held by a composite handle. An owned Ref is released
// together with its parent, a borrowed one stays with the caller.
type Ref[T Closer] struct {
	v     T
	owned bool
	bound bool
}

// Own returns a Ref that releases v when the holder releases it.
func Own[T Closer](v T) Ref[T] { return Ref[T]{v: v, owned: true, bound: true} }

// Borrow returns a Ref that never releases v.
func Borrow[T Closer](v T) Ref[T] { return Ref[T]{v: v, bound: true} }

// Get returns the referenced handle.
func (r Ref[T]) Get() T { return r.v }

// Owned reports whether the holder is responsible for releasing the handle.
func (r Ref[T]) Owned() bool { return r.owned }

// Bound reports whether the Ref holds a handle.
func (r Ref[T]) Bound() bool { return r.bound }

// Release closes the handle when it is owned and unbinds the Ref.
func (r *Ref[T]) Release() error {
	var err error
	if r.bound && r.owned {
		err = r.v.Close()
	}
	*r = Ref[T]{}
	return err
}

// Replace releases the current handle and binds next.
func (r *Ref[T]) Replace(next Ref[T]) error {
	err := r.Release()
	*r = next
	return err
}
