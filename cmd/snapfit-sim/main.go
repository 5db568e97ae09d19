package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/snapfit/puzzle"
)

func main() {
	cfg, err := puzzle.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	pieces := flag.Int("pieces", 5, "number of pieces (the first five use the stock layout)")
	dt := flag.Float64("dt", 1.0/60.0, "seconds per frame")
	seed := flag.Uint64("seed", 1, "spawn seed")
	solve := flag.Int("solve", -1, "pieces the autopilot places (-1 for all)")
	duration := flag.Duration("duration", cfg.SessionDuration, "session length")
	quiet := flag.Bool("quiet", false, "do not log journal events")
	flag.Parse()

	cfg.Seed = *seed
	cfg.SessionDuration = *duration
	cfg.RequiredCorrect = min(cfg.RequiredCorrect, *pieces)
	if *pieces <= 0 || *dt <= 0 {
		log.Fatalf("need -pieces > 0 and -dt > 0")
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	opts := []puzzle.Option{}
	if !*quiet {
		opts = append(opts, puzzle.WithLogger(logger))
	}
	world, err := puzzle.NewWorld(cfg, opts...)
	if err != nil {
		log.Fatalf("world: %v", err)
	}
	ids := addPieces(world, *pieces)

	targets := ids
	if *solve >= 0 && *solve < len(ids) {
		targets = ids[:*solve]
	}

	logger.Printf("Running %d pieces, autopilot on %d, dt=%gs, session %s...", len(ids), len(targets), *dt, cfg.SessionDuration)
	world.Start()

	report := &Report{
		Pieces:   len(ids),
		Solving:  len(targets),
		Seed:     cfg.Seed,
		Dt:       *dt,
		Session:  cfg.SessionDuration,
		Required: cfg.RequiredCorrect,
	}

	pilot := newAutopilot(world, targets)
	start := time.Now()
	for world.Session().Phase == puzzle.PhaseRunning {
		world.Tick(*dt, pilot.Next())
		report.Frames++
	}
	report.WallTime = time.Since(start)

	session := world.Session()
	report.Outcome = session.Phase.String()
	report.Correct = session.Correct
	report.Elapsed = session.Duration - session.Remaining
	for _, e := range world.Journal().Since(0) {
		if e.Kind == puzzle.EventPiecePlaced {
			report.Placements = append(report.Placements, Placement{Piece: e.Piece, Frame: e.Frame, At: session.Duration - e.Remaining})
		}
	}
	report.Systems = world.Scheduler().GetStats().Systems
	report.Storage = world.Storage().CollectStats()

	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("failed to generate report: %v", err)
	}
}

// addPieces adds the stock five pieces and spaces any extra ones on a line.
func addPieces(world *puzzle.World, n int) []puzzle.PieceID {
	ids := world.DefaultPieces()
	if n < len(ids) {
		return ids[:n]
	}
	for i := len(ids); i < n; i++ {
		pos := mgl64.Vec3{float64(i-len(ids)) - 2, 0, -4}
		ids = append(ids, world.AddPiece(fmt.Sprintf("extra-%d", i), puzzle.NewPose(pos)))
	}
	return ids
}
