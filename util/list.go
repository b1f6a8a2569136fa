package util

//*******************************************
// list
//*******************************************

// Growable slice with value semantics on the header (like the builtin slice).
type List[T any] []T

func NewList[T any](cap int) List[T] {
	return make([]T, 0, cap)
}

func (self *List[T]) Add(value T) {
	*self = append(*self, value)
}
func (self List[T]) Get(index int) T {
	return self[index]
}
func (self List[T]) Set(index int, value T) {
	self[index] = value
}
func (self List[T]) Length() int {
	return len(self)
}

// Removes the element at index, keeping the order of the remaining elements.
func (self *List[T]) Remove(index int) {
	l := *self
	copy(l[index:], l[index+1:])
	var zero T
	l[len(l)-1] = zero
	*self = l[:len(l)-1]
}

// Removes all elements matching pred, returns the number of removed elements.
func (self *List[T]) RemoveWhere(pred func(T) bool) int {
	l := *self
	n := 0
	for _, v := range l {
		if !pred(v) {
			l[n] = v
			n += 1
		}
	}
	removed := len(l) - n
	var zero T
	for i := n; i < len(l); i++ {
		l[i] = zero
	}
	*self = l[:n]
	return removed
}
func (self List[T]) Copy() List[T] {
	c := make([]T, len(self))
	copy(c, self)
	return c
}
