package ecs

import "unsafe"

// iface mirrors the runtime layout of a non-empty interface value so the data
// pointer of a boxed component can be read without reflection.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

func dataPointer(v any) unsafe.Pointer {
	return (*iface)(unsafe.Pointer(&v)).data
}
