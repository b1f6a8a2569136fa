package util

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

//*******************************************
// dict
//*******************************************

type Dict[K comparable, V any] map[K]V

func NewDict[K comparable, V any](cap int) Dict[K, V] {
	return make(map[K]V, cap)
}

func (self Dict[K, V]) ContainsKey(key K) bool {
	_, ok := self[key]
	return ok
}
func (self Dict[K, V]) Get(key K) V {
	return self[key]
}
func (self Dict[K, V]) Set(key K, value V) {
	self[key] = value
}
func (self Dict[K, V]) Delete(key K) {
	delete(self, key)
}
func (self Dict[K, V]) Length() int {
	return len(self)
}
func (self Dict[K, V]) Keys() List[K] {
	keys := NewList[K](len(self))
	for k := range self {
		keys.Add(k)
	}
	return keys
}

// Returns the keys of an ordered dict in ascending order.
func SortedKeys[K constraints.Ordered, V any](dict Dict[K, V]) List[K] {
	keys := dict.Keys()
	slices.Sort(keys)
	return keys
}

//*******************************************
// tuple
//*******************************************

type Tuple[A any, B any] struct {
	A A
	B B
}

func MakeTuple[A any, B any](a A, b B) Tuple[A, B] {
	return Tuple[A, B]{A: a, B: b}
}

type Triple[A any, B any, C any] struct {
	A A
	B B
	C C
}

func MakeTriple[A any, B any, C any](a A, b B, c C) Triple[A, B, C] {
	return Triple[A, B, C]{A: a, B: b, C: c}
}

//*******************************************
// optional
//*******************************************

type Optional[T any] struct {
	Value     T
	has_value bool
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{Value: value, has_value: true}
}
func None[T any]() Optional[T] {
	return Optional[T]{}
}

func (self Optional[T]) HasValue() bool {
	return self.has_value
}
