package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	debugebiten "github.com/plus3/snapfit/debugui/ebiten"
	"github.com/plus3/snapfit/puzzle"
	"github.com/plus3/snapfit/sound"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
	tps          = 60
)

func main() {
	cfg, err := puzzle.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	seed := flag.Uint64("seed", cfg.Seed, "spawn seed (0 picks one)")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()
	cfg.Seed = *seed

	logger := log.New(os.Stderr, "", log.LstdFlags)

	player := sound.NewPlayer()
	if !*mute {
		if err := player.Init(); err != nil {
			logger.Printf("audio initialization failed: %v", err)
		}
	}
	defer player.Close()

	overlay := debugebiten.NewOverlay("snapfit", ScreenWidth, ScreenHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(tps)

	game := &Game{
		cfg:     cfg,
		logger:  logger,
		player:  player,
		overlay: overlay,
	}
	game.current = newMenuScene(game)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal(err)
	}
}

type scene interface {
	Update(dt float64) error
	Draw(screen *ebiten.Image)
	Unload()
}

// Game switches between the menu and the puzzle scene and draws the debug
// overlay on top.
type Game struct {
	cfg     puzzle.Config
	logger  *log.Logger
	player  *sound.Player
	overlay *debugebiten.Overlay
	current scene
}

// LoadScene replaces the current scene.
func (g *Game) LoadScene(name string) {
	switch name {
	case puzzle.PuzzleSceneName:
		next, err := newPuzzleScene(g)
		if err != nil {
			g.logger.Printf("load %s: %v", name, err)
			return
		}
		g.current.Unload()
		g.current = next
		g.logger.Printf("scene %s loaded", name)
	default:
		g.logger.Printf("unknown scene %q", name)
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.overlay.Toggle()
	}

	dt := 1.0 / float64(ebiten.TPS())
	g.overlay.Update(dt)
	return g.current.Update(dt)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
	g.overlay.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.overlay.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
