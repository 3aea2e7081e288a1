package main

import (
	"github.com/pavanmanishd/memres"
)

// vector is the smallest container worth stressing an allocator with: it
// doubles its resource when full and keeps its elements across the grow.
type vector[T any] struct {
	res *memres.Mutable[T, memres.Allocator]
}

func newVector[T any](a memres.Allocator) (*vector[T], error) {
	res, err := memres.NewMutable[T](a)
	if err != nil {
		return nil, err
	}
	return &vector[T]{res: res}, nil
}

func (v *vector[T]) push(x T) error {
	if !v.res.HasSpace(1) {
		n := v.res.Len()
		if err := v.res.Expand(2 * v.res.Cap()); err != nil {
			return err
		}
		v.res.SetLen(n)
	}
	v.res.Raw()[v.res.Len()] = x
	v.res.SetLen(v.res.Len() + 1)
	return nil
}

func (v *vector[T]) clone() (*vector[T], error) {
	res, err := v.res.Clone()
	if err != nil {
		return nil, err
	}
	return &vector[T]{res: res}, nil
}

func (v *vector[T]) elems() []T { return v.res.Elems() }

func (v *vector[T]) free() { v.res.Free() }
