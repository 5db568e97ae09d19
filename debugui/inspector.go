package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/snapfit/ecs"
)

// renderEntity draws every component of id as a tree. Numeric and boolean
// fields are editable in place.
func renderEntity(storage *ecs.Storage, id ecs.EntityId) {
	archetype := storage.GetArchetypeById(id.ArchetypeId())
	if archetype == nil || !storage.Alive(id) {
		imgui.Text(fmt.Sprintf("Entity %d not found", id))
		return
	}

	imgui.Text(fmt.Sprintf("Entity %d  archetype 0x%X", id, archetype.ID()))
	for _, compType := range archetype.Types() {
		component := storage.GetComponent(id, compType)
		if component == nil {
			continue
		}
		if imgui.TreeNodeStr(compType.Name()) {
			renderValue(reflect.ValueOf(component).Elem(), compType.Name())
			imgui.TreePop()
		}
	}
}

func renderValue(val reflect.Value, scope string) {
	for _, field := range globalReflectionCache.GetFields(val.Type()) {
		fv := val.Field(field.Index)
		if field.IsPointer {
			if fv.IsNil() {
				imgui.Text(field.Name + ": nil")
				continue
			}
			fv = fv.Elem()
		}
		renderField(field.Name, fv, scope+"."+field.Name)
	}
}

func renderField(name string, val reflect.Value, id string) {
	label := "##" + id

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		fieldLabel(name)
		if imgui.InputInt(label, &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		imgui.Text(fmt.Sprintf("%s: %d", name, val.Uint()))

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		fieldLabel(name)
		if imgui.InputFloat(label, &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name+label, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			renderValue(val, id)
			imgui.TreePop()
		}

	case reflect.Array:
		imgui.Text(fmt.Sprintf("%s: %s", name, formatArray(val)))

	case reflect.Func:
		imgui.Text(name + ": func")

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

func fieldLabel(name string) {
	imgui.Text(name + ":")
	imgui.SameLine()
	imgui.SetNextItemWidth(150)
}

// formatArray prints float arrays (vectors) with fixed precision.
func formatArray(val reflect.Value) string {
	if val.Len() == 0 {
		return "[]"
	}
	switch val.Index(0).Kind() {
	case reflect.Float32, reflect.Float64:
		out := "("
		for i := range val.Len() {
			if i > 0 {
				out += ", "
			}
			out += fmt.Sprintf("%.3f", val.Index(i).Float())
		}
		return out + ")"
	}
	return fmt.Sprint(val.Interface())
}
