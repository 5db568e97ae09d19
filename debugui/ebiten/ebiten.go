// Package ebiten runs the debugui windows on top of an Ebiten game.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/snapfit/debugui"
	"github.com/plus3/snapfit/ecs"
)

// ImguiBackend wraps the Ebiten Dear ImGui backend so it can live in
// storage as a singleton.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// Overlay owns a small storage of ImguiItem windows and the scheduler that
// renders them. Call Update from the game's Update and Draw last in Draw.
type Overlay struct {
	storage    *ecs.Storage
	scheduler  *ecs.Scheduler
	backend    *ecs.Singleton[ImguiBackend]
	input      *ecs.Singleton[debugui.ImguiInputState]
	visibility *ecs.Singleton[debugui.Visibility]
}

// NewOverlay creates the ImGui context and the game window. The overlay
// starts hidden.
func NewOverlay(title string, width, height int) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	registry := ecs.NewComponentRegistry()
	debugui.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	o := &Overlay{
		storage:    storage,
		scheduler:  ecs.NewScheduler(storage),
		backend:    ecs.NewSingleton(storage, ImguiBackend{EbitenBackend: backend}),
		input:      ecs.NewSingleton(storage, debugui.ImguiInputState{}),
		visibility: ecs.NewSingleton(storage, debugui.Visibility{Hidden: true}),
	}
	o.scheduler.Register(&debugui.ImguiSystem{})
	return o
}

// Add spawns a window.
func (o *Overlay) Add(item debugui.ImguiItem) ecs.EntityId {
	return o.storage.Spawn(item)
}

// Remove deletes a window added with Add.
func (o *Overlay) Remove(id ecs.EntityId) {
	o.storage.Delete(id)
}

// Toggle shows or hides every window.
func (o *Overlay) Toggle() {
	v := o.visibility.Get()
	v.Hidden = !v.Hidden
}

// Visible reports whether the windows are shown.
func (o *Overlay) Visible() bool {
	return !o.visibility.Get().Hidden
}

// WantsInput reports whether ImGui captured the mouse or keyboard last frame.
func (o *Overlay) WantsInput() (mouse, keyboard bool) {
	state := o.input.Get()
	return state.WantCaptureMouse, state.WantCaptureKeyboard
}

// Update builds one ImGui frame.
func (o *Overlay) Update(dt float64) {
	backend := o.backend.Get()
	backend.BeginFrame()
	o.scheduler.Once(dt)
	backend.EndFrame()
}

// Draw renders the ImGui frame over screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.Visible() {
		return
	}
	o.backend.Get().Draw(screen)
}

// Layout forwards the window size to ImGui.
func (o *Overlay) Layout(width, height int) {
	o.backend.Get().Layout(width, height)
}
