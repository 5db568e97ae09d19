package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/snapfit/debugui"
	"github.com/plus3/snapfit/ecs"
	"github.com/plus3/snapfit/puzzle"
)

var (
	background = color.RGBA{245, 245, 240, 255}
	buttonFill = color.RGBA{70, 140, 230, 255}
)

type menuScene struct {
	game   *Game
	button rect
}

func newMenuScene(game *Game) *menuScene {
	return &menuScene{
		game:   game,
		button: rect{X: ScreenWidth/2 - 100, Y: ScreenHeight/2 - 30, W: 200, H: 60},
	}
}

func (s *menuScene) Update(dt float64) error {
	clicked := false
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		clicked = s.button.Contains(float32(mx), float32(my))
	}
	if clicked || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		puzzle.SelectPuzzle(s.game)
	}
	return nil
}

func (s *menuScene) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	vector.DrawFilledRect(screen, s.button.X, s.button.Y, s.button.W, s.button.H, buttonFill, false)
	ebitenutil.DebugPrintAt(screen, "Select puzzle", int(s.button.X)+56, int(s.button.Y)+22)
	ebitenutil.DebugPrintAt(screen, "Enter or click to start, Esc to quit", int(s.button.X)-10, int(s.button.Y)+80)
}

func (s *menuScene) Unload() {}

// puzzleScene runs one World and renders it from above and from the side.
type puzzleScene struct {
	game     *Game
	world    *puzzle.World
	view     view
	text     string
	lastSeq  uint64
	grabbed  puzzle.PieceID
	hovered  puzzle.PieceID
	overlays []ecs.EntityId
}

func newPuzzleScene(game *Game) (*puzzleScene, error) {
	s := &puzzleScene{game: game, view: defaultView()}

	world, err := puzzle.NewWorld(game.cfg,
		puzzle.WithLogger(game.logger),
		puzzle.WithDisplay(puzzle.DisplayFunc(func(text string) { s.text = text })),
	)
	if err != nil {
		return nil, fmt.Errorf("new world: %w", err)
	}
	world.DefaultPieces()
	world.Start()
	s.world = world
	s.lastSeq = world.Journal().LastSeq()

	s.overlays = append(s.overlays,
		game.overlay.Add(debugui.SessionWindow(world)),
		game.overlay.Add(debugui.StatsWindow(world.Storage(), world.Scheduler(), debugui.NewFrameHistory(120))),
	)
	return s, nil
}

func (s *puzzleScene) Update(dt float64) error {
	mouseCaptured, keyboardCaptured := s.game.overlay.WantsInput()

	mx, my := ebiten.CursorPosition()
	s.hovered = 0
	if x, z, ok := s.view.TopToWorld(float32(mx), float32(my)); ok {
		if id, found := s.world.PieceAt(x, z, pickRadius); found {
			s.hovered = id
		}
	}

	var sample puzzle.InputSample
	if !mouseCaptured {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && s.hovered != 0 {
			s.grabbed = s.hovered
			sample.Pressed = append(sample.Pressed, s.grabbed)
		}
		if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && s.grabbed != 0 {
			sample.Released = append(sample.Released, s.grabbed)
			s.grabbed = 0
		}
	}
	if !keyboardCaptured {
		sample.Move = heldDirection()
		sample.Rotations = rotationPresses()

		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			s.world.Start()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyR) && s.hovered != 0 {
			if err := s.world.ResetPiece(s.hovered); err != nil {
				s.game.logger.Printf("reset: %v", err)
			}
		}
	}

	s.world.Tick(dt, sample)

	journal := s.world.Journal()
	for _, e := range journal.Since(s.lastSeq) {
		s.game.player.Cue(e.Kind)
	}
	s.lastSeq = journal.LastSeq()
	return nil
}

func (s *puzzleScene) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	s.view.DrawFrames(screen)
	for _, st := range s.world.Pieces() {
		s.view.DrawPiece(screen, st, st.ID == s.hovered)
	}

	ebitenutil.DebugPrintAt(screen, s.text, 20, 20)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Placed %d / %d", s.world.Session().Correct, s.world.Session().Required), 20, 36)
	ebitenutil.DebugPrintAt(screen, "drag: mouse  move: A/D W/S Q/E  rotate: arrows PgUp/PgDn  R reset  Enter replay  F1 debug", 20, ScreenHeight-30)
}

func (s *puzzleScene) Unload() {
	for _, id := range s.overlays {
		s.game.overlay.Remove(id)
	}
}

func heldDirection() puzzle.Direction {
	var d puzzle.Direction
	keys := []struct {
		key ebiten.Key
		dir puzzle.Direction
	}{
		{ebiten.KeyA, puzzle.MoveLeft},
		{ebiten.KeyD, puzzle.MoveRight},
		{ebiten.KeyW, puzzle.MoveUp},
		{ebiten.KeyS, puzzle.MoveDown},
		{ebiten.KeyQ, puzzle.MoveForward},
		{ebiten.KeyE, puzzle.MoveBack},
	}
	for _, k := range keys {
		if ebiten.IsKeyPressed(k.key) {
			d |= k.dir
		}
	}
	return d
}

func rotationPresses() []puzzle.RotationCommand {
	var cmds []puzzle.RotationCommand
	keys := []struct {
		key ebiten.Key
		cmd puzzle.RotationCommand
	}{
		{ebiten.KeyArrowLeft, puzzle.RotateLeft},
		{ebiten.KeyArrowRight, puzzle.RotateRight},
		{ebiten.KeyArrowUp, puzzle.RotateUp},
		{ebiten.KeyArrowDown, puzzle.RotateDown},
		{ebiten.KeyPageUp, puzzle.RotateRollPos},
		{ebiten.KeyPageDown, puzzle.RotateRollNeg},
	}
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k.key) {
			cmds = append(cmds, k.cmd)
		}
	}
	return cmds
}
