package ecs

import (
	"reflect"
	"unsafe"
)

// Singleton is a typed handle on a storage-wide value that belongs to no
// entity, such as session state or configuration.
type Singleton[T any] struct {
	storage *Storage
	ptr     unsafe.Pointer
}

// NewSingleton returns a handle on the T singleton, creating it from
// initializer (or the zero value) when storage has none yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if storage.getSingletonEntry(reflect.TypeFor[T]()) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}

	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init binds the handle to storage. Called by Scheduler.Register.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.refresh()
}

// Get returns the singleton, or nil if storage has none.
func (s *Singleton[T]) Get() *T {
	s.refresh()
	if s.ptr == nil {
		return nil
	}
	return (*T)(s.ptr)
}

// Exists reports whether the singleton is present.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

// refresh follows AddSingleton replacements.
func (s *Singleton[T]) refresh() {
	if s.storage == nil {
		return
	}
	if entry := s.storage.getSingletonEntry(reflect.TypeFor[T]()); entry != nil {
		s.ptr = entry.dataPtr
	} else {
		s.ptr = nil
	}
}
