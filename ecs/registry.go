package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry maps component types to column factories. A Storage only
// accepts component types registered with its registry.
type ComponentRegistry struct {
	factories map[reflect.Type]func() column
}

// NewComponentRegistry returns an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent makes T usable as a component in storages built from r.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() column {
		return &blockColumn[T]{}
	}
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) newColumn(t reflect.Type) column {
	factory, ok := r.factories[t]
	if !ok {
		panic("component type " + t.String() + " not registered")
	}
	return factory()
}

// column is the type-erased storage for one component type inside an
// archetype. Slot indices are shared by every column of the archetype.
type column interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Iter() iter.Seq[int]
}

const columnBlockSize = 64

type columnBlock[T any] struct {
	items  [columnBlockSize]T
	filled [columnBlockSize]bool
}

// blockColumn stores components in fixed-size heap blocks so pointers handed
// out by Get stay valid while the column grows.
type blockColumn[T any] struct {
	blocks    []*columnBlock[T]
	freeSlots []int
	next      int
	count     int
}

func (c *blockColumn[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case T:
		value = v
	case *T:
		value = *v
	default:
		panic("component of type " + reflect.TypeOf(item).String() + " appended to column of " + reflect.TypeFor[T]().String())
	}

	var index int
	if n := len(c.freeSlots); n > 0 {
		index = c.freeSlots[n-1]
		c.freeSlots = c.freeSlots[:n-1]
	} else {
		index = c.next
		c.next++
		if index/columnBlockSize >= len(c.blocks) {
			c.blocks = append(c.blocks, &columnBlock[T]{})
		}
	}

	block := c.blocks[index/columnBlockSize]
	block.items[index%columnBlockSize] = value
	block.filled[index%columnBlockSize] = true
	c.count++
	return index
}

func (c *blockColumn[T]) Get(index int) any {
	if !c.Has(index) {
		return nil
	}
	return &c.blocks[index/columnBlockSize].items[index%columnBlockSize]
}

func (c *blockColumn[T]) Has(index int) bool {
	if index < 0 || index >= c.next {
		return false
	}
	return c.blocks[index/columnBlockSize].filled[index%columnBlockSize]
}

func (c *blockColumn[T]) Delete(index int) {
	if !c.Has(index) {
		return
	}
	block := c.blocks[index/columnBlockSize]
	var zero T
	block.items[index%columnBlockSize] = zero
	block.filled[index%columnBlockSize] = false
	c.freeSlots = append(c.freeSlots, index)
	c.count--
}

func (c *blockColumn[T]) Len() int {
	return c.count
}

func (c *blockColumn[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < c.next; i++ {
			if !c.blocks[i/columnBlockSize].filled[i%columnBlockSize] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
