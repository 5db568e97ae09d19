package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/snapfit/puzzle"
	"github.com/plus3/snapfit/sound"
)

const frameInterval = 50 * time.Millisecond

func main() {
	cfg, err := puzzle.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	seed := flag.Uint64("seed", cfg.Seed, "spawn seed (0 picks one)")
	logPath := flag.String("log", "", "append session events to this file")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()
	cfg.Seed = *seed

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := log.New(logOut, "", log.LstdFlags)

	player := sound.NewPlayer()
	if !*mute {
		if err := player.Init(); err != nil {
			logger.Printf("audio initialization failed: %v", err)
		}
	}
	defer player.Close()

	app, err := newApp(cfg, logger, player)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer app.screen.Fini()

	app.run()
}

type app struct {
	screen tcell.Screen
	world  *puzzle.World
	player *sound.Player
	logger *log.Logger

	pieces  []puzzle.PieceID
	cursor  int
	grabbed bool
	text    string
	lastSeq uint64

	pending puzzle.InputSample
}

func newApp(cfg puzzle.Config, logger *log.Logger, player *sound.Player) (*app, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	a := &app{screen: screen, player: player, logger: logger}
	world, err := puzzle.NewWorld(cfg,
		puzzle.WithLogger(logger),
		puzzle.WithDisplay(puzzle.DisplayFunc(func(text string) { a.text = text })),
	)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	a.world = world
	a.pieces = world.DefaultPieces()
	world.Start()
	a.lastSeq = world.Journal().LastSeq()
	return a, nil
}

func (a *app) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			if !a.handle(ev) {
				return
			}
		case now := <-ticker.C:
			a.tick(now.Sub(last).Seconds())
			last = now
			a.draw()
		}
	}
}

func (a *app) current() puzzle.PieceID {
	return a.pieces[a.cursor]
}

// handle folds one terminal event into the pending sample. It returns false
// to quit.
func (a *app) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyTab:
			a.release()
			a.cursor = (a.cursor + 1) % len(a.pieces)
		case tcell.KeyEnter:
			a.release()
			a.world.Start()
		case tcell.KeyLeft:
			a.rotate(puzzle.RotateLeft)
		case tcell.KeyRight:
			a.rotate(puzzle.RotateRight)
		case tcell.KeyUp:
			a.rotate(puzzle.RotateUp)
		case tcell.KeyDown:
			a.rotate(puzzle.RotateDown)
		case tcell.KeyPgUp:
			a.rotate(puzzle.RotateRollPos)
		case tcell.KeyPgDn:
			a.rotate(puzzle.RotateRollNeg)
		case tcell.KeyRune:
			a.handleRune(ev.Rune())
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *app) handleRune(r rune) {
	if d, ok := moveKeys[r]; ok {
		a.pending.Move |= d
		return
	}
	switch r {
	case ' ':
		if a.grabbed {
			a.release()
		} else {
			a.grabbed = true
			a.pending.Pressed = append(a.pending.Pressed, a.current())
		}
	case 'r':
		if err := a.world.ResetPiece(a.current()); err != nil {
			a.logger.Printf("reset: %v", err)
		}
	}
}

var moveKeys = map[rune]puzzle.Direction{
	'a': puzzle.MoveLeft,
	'd': puzzle.MoveRight,
	'w': puzzle.MoveUp,
	's': puzzle.MoveDown,
	'q': puzzle.MoveForward,
	'e': puzzle.MoveBack,
}

func (a *app) release() {
	if a.grabbed {
		a.pending.Released = append(a.pending.Released, a.current())
		a.grabbed = false
	}
}

func (a *app) rotate(cmd puzzle.RotationCommand) {
	a.pending.Rotations = append(a.pending.Rotations, cmd)
}

func (a *app) tick(dt float64) {
	a.world.Tick(dt, a.pending)
	a.pending = puzzle.InputSample{}

	journal := a.world.Journal()
	for _, e := range journal.Since(a.lastSeq) {
		a.player.Cue(e.Kind)
	}
	a.lastSeq = journal.LastSeq()
}
