package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// View projects entities onto a struct T whose fields are pointers to
// component types. A field of type EntityId (embedded or named) receives the
// entity's id. Named pointer fields tagged `ecs:"optional"` are nil when the
// entity lacks that component; every other pointer field is required.
type View[T any] struct {
	storage *Storage
	fields  []viewField
	idField int
}

type viewField struct {
	typ      reflect.Type
	offset   uintptr
	optional bool
}

// NewView builds a view for the struct type T.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage, idField: -1}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			v.idField = int(field.Offset)
			continue
		}
		if field.Type.Kind() != reflect.Pointer {
			panic("View struct fields must be pointer types or EntityId")
		}

		optional := false
		if tag := field.Tag.Get("ecs"); tag != "" {
			if tag != "optional" || field.Anonymous {
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" on named fields is supported)")
			}
			optional = true
		}

		v.fields = append(v.fields, viewField{
			typ:      field.Type.Elem(),
			offset:   field.Offset,
			optional: optional,
		})
	}
	return v
}

// Get returns the projection of id, or nil if the entity is missing a
// required component.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// GetRef is Get through an EntityRef.
func (v *View[T]) GetRef(ref *EntityRef) *T {
	id, ok := v.storage.ResolveEntityRef(ref)
	if !ok {
		return nil
	}
	return v.Get(id)
}

// Fill writes the projection of id into ptr.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	archetype, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok || !archetype.Has(id.Index()) || !v.matches(archetype) {
		return false
	}
	return v.populate(unsafe.Pointer(ptr), archetype, v.columnsFor(archetype), int(id.Index()))
}

// Iter yields every matching entity with its projection.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.archetypes {
			if !v.matches(archetype) {
				continue
			}
			for id, item := range v.iterArchetype(archetype) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}

// Values yields only the projections.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range v.Iter() {
			if !yield(item) {
				return
			}
		}
	}
}

func (v *View[T]) matches(archetype *Archetype) bool {
	for _, f := range v.fields {
		if !f.optional && !archetype.HasComponent(f.typ) {
			return false
		}
	}
	return true
}

func (v *View[T]) columnsFor(archetype *Archetype) []int {
	cols := make([]int, len(v.fields))
	for i, f := range v.fields {
		cols[i] = archetype.columnIndex(f.typ)
	}
	return cols
}

func (v *View[T]) iterArchetype(archetype *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		if len(archetype.columns) == 0 {
			return
		}
		cols := v.columnsFor(archetype)

		var result T
		for index := range archetype.columns[0].Iter() {
			if !v.populate(unsafe.Pointer(&result), archetype, cols, index) {
				continue
			}
			if !yield(NewEntityId(archetype.id, uint32(index)), result) {
				return
			}
		}
	}
}

func (v *View[T]) populate(dst unsafe.Pointer, archetype *Archetype, cols []int, index int) bool {
	for i, f := range v.fields {
		fieldPtr := (*unsafe.Pointer)(unsafe.Add(dst, f.offset))

		var component any
		if cols[i] >= 0 {
			component = archetype.columns[cols[i]].Get(index)
		}
		if component == nil {
			if !f.optional {
				return false
			}
			*fieldPtr = nil
			continue
		}
		*fieldPtr = dataPointer(component)
	}
	if v.idField >= 0 {
		*(*EntityId)(unsafe.Add(dst, v.idField)) = NewEntityId(archetype.id, uint32(index))
	}
	return true
}
