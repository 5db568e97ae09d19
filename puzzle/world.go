package puzzle

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/kamstrup/intmap"
	"github.com/plus3/snapfit/ecs"
)

// ErrUnknownPiece is returned for ids that were never added to the world.
var ErrUnknownPiece = errors.New("unknown piece")

// World owns the entity storage, the session and the frame systems of one
// puzzle. It is not safe for concurrent use.
type World struct {
	cfg       Config
	logger    *log.Logger
	rng       *rand.Rand
	storage   *ecs.Storage
	scheduler *ecs.Scheduler

	session *ecs.Singleton[Session]
	input   *ecs.Singleton[Input]
	journal *ecs.Singleton[Journal]
	pieces  *ecs.View[pieceItem]

	refs   *intmap.Map[PieceID, *ecs.EntityRef]
	order  []PieceID
	nextID PieceID

	logged uint64
}

// Option configures a World.
type Option func(*World)

// WithLogger sends session events to logger. A nil logger discards them.
func WithLogger(logger *log.Logger) Option {
	return func(w *World) {
		if logger == nil {
			logger = log.New(io.Discard, "", 0)
		}
		w.logger = logger
	}
}

// WithDisplay sets the sink for countdown and result text.
func WithDisplay(sink Display) Option {
	return func(w *World) {
		w.session.Get().Sink = sink
	}
}

// WithRand overrides the spawn random source.
func WithRand(rng *rand.Rand) Option {
	return func(w *World) {
		w.rng = rng
	}
}

// NewWorld validates cfg and builds an empty world in NotStarted.
func NewWorld(cfg Config, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	registry := ecs.NewComponentRegistry()
	registerComponents(registry)
	storage := ecs.NewStorage(registry)

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	w := &World{
		cfg:       cfg,
		logger:    log.New(io.Discard, "", 0),
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		session:   ecs.NewSingleton(storage, NewSession(cfg.SessionDuration, cfg.RequiredCorrect, nil)),
		input:     ecs.NewSingleton(storage, Input{}),
		journal:   ecs.NewSingleton(storage, Journal{}),
		pieces:    ecs.NewView[pieceItem](storage),
		refs:      intmap.New[PieceID, *ecs.EntityRef](8),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.scheduler.Register(&SessionTimerSystem{})
	w.scheduler.Register(&InputSystem{})
	w.scheduler.Register(&PlacementSystem{})
	w.scheduler.Register(&RotationSystem{})

	return w, nil
}

// Config returns the tuning the world was built with.
func (w *World) Config() Config {
	return w.cfg
}

// AddPiece spawns a piece whose current pose is correct. The correct pose
// is recorded on the first Start; until then the piece sits at correct.
func (w *World) AddPiece(name string, correct Pose) PieceID {
	return w.AddPieceColor(name, correct, [3]uint8{200, 200, 200})
}

// AddPieceColor is AddPiece with a display color.
func (w *World) AddPieceColor(name string, correct Pose, color [3]uint8) PieceID {
	w.nextID++
	id := w.nextID
	if correct.Orientation == (mgl64.Quat{}) {
		correct.Orientation = mgl64.QuatIdent()
	}

	rotator := NewRotator(w.cfg.RotationSpeed)
	rotator.Align(correct.Orientation)

	entity := w.storage.Spawn(
		Piece{ID: id, Name: name, Color: color},
		Transform{Position: correct.Position, Orientation: correct.Orientation},
		NewPlacement(w.cfg),
		rotator,
	)
	w.refs.Put(id, w.storage.CreateEntityRef(entity))
	w.order = append(w.order, id)
	return id
}

// AddRotator spawns a free-standing rotator entity, such as a turntable,
// and returns its entity id.
func (w *World) AddRotator(orientation mgl64.Quat) ecs.EntityId {
	rotator := NewRotator(w.cfg.RotationSpeed)
	rotator.Align(orientation)
	return w.storage.Spawn(rotator, Transform{Orientation: orientation})
}

// DefaultPieces adds the stock set of five pieces laid out on a ring.
func (w *World) DefaultPieces() []PieceID {
	colors := [][3]uint8{
		{230, 80, 70},
		{240, 180, 60},
		{90, 190, 100},
		{70, 140, 230},
		{170, 100, 210},
	}
	names := []string{"red", "amber", "green", "blue", "violet"}

	ids := make([]PieceID, 0, len(names))
	for i, name := range names {
		angle := float64(i) * 2 * math.Pi / float64(len(names))
		correct := NewPose(mgl64.Vec3{2 * math.Cos(angle), 0, 2 * math.Sin(angle)})
		ids = append(ids, w.AddPieceColor(name, correct, colors[i]))
	}
	return ids
}

// Start begins a play-through: every piece records its correct pose (first
// time only) and is moved to a fresh random spawn pose, then the session
// starts. Start may be called again from any phase to replay.
func (w *World) Start() {
	bounds := w.cfg.Bounds()
	for _, id := range w.order {
		item := w.item(id)
		if item == nil {
			continue
		}
		item.Placement.OnSessionStart(item.Transform, w.rng, bounds)
		if item.Rotator != nil {
			item.Rotator.Align(item.Transform.Orientation)
		}
	}

	session := w.session.Get()
	session.Start()
	w.journal.Get().Record(Event{Kind: EventSessionStarted, Remaining: session.Remaining})
	w.drainLog()
}

// Tick runs one frame of dt seconds with the given input.
func (w *World) Tick(dt float64, sample InputSample) {
	w.input.Get().Sample = sample
	w.scheduler.Once(dt)
	w.input.Get().Sample = InputSample{}
	w.drainLog()
}

// Press designates the piece: drag and rotation input now apply to it.
func (w *World) Press(id PieceID) error {
	if err := w.SetDragging(id, true); err != nil {
		return err
	}
	return w.SetSelected(id, true)
}

// Release ends the designation of the piece.
func (w *World) Release(id PieceID) error {
	if err := w.SetDragging(id, false); err != nil {
		return err
	}
	return w.SetSelected(id, false)
}

// SetDragging toggles drag movement for one piece.
func (w *World) SetDragging(id PieceID, active bool) error {
	item, err := w.lookup(id)
	if err != nil {
		return err
	}
	item.Placement.SetDragging(active)
	return nil
}

// SetSelected toggles rotation input for one piece.
func (w *World) SetSelected(id PieceID, active bool) error {
	item, err := w.lookup(id)
	if err != nil {
		return err
	}
	if item.Rotator != nil {
		item.Rotator.SetSelected(active)
	}
	return nil
}

// ResetPiece returns one piece to its spawn pose. A piece that was already
// counted this session is not counted again when it re-snaps.
func (w *World) ResetPiece(id PieceID) error {
	item, err := w.lookup(id)
	if err != nil {
		return err
	}
	item.Placement.Reset(item.Transform)
	if item.Rotator != nil {
		item.Rotator.Align(item.Transform.Orientation)
	}

	session := w.session.Get()
	w.journal.Get().Record(Event{Kind: EventPieceReset, Piece: id, Remaining: session.Remaining, Correct: session.Correct})
	w.drainLog()
	return nil
}

// Piece returns a snapshot of one piece.
func (w *World) Piece(id PieceID) (PieceState, error) {
	item, err := w.lookup(id)
	if err != nil {
		return PieceState{}, err
	}
	return item.state(), nil
}

// Pieces returns snapshots of every piece in insertion order.
func (w *World) Pieces() []PieceState {
	states := make([]PieceState, 0, len(w.order))
	for _, id := range w.order {
		if item := w.item(id); item != nil {
			states = append(states, item.state())
		}
	}
	return states
}

// PieceAt returns the piece whose position is nearest to (x, z) on the
// ground plane within radius.
func (w *World) PieceAt(x, z, radius float64) (PieceID, bool) {
	var (
		best     PieceID
		bestDist = radius
		found    bool
	)
	for _, id := range w.order {
		item := w.item(id)
		if item == nil {
			continue
		}
		p := item.Transform.Position
		d := math.Hypot(p.X()-x, p.Z()-z)
		if d <= bestDist {
			best, bestDist, found = id, d, true
		}
	}
	return best, found
}

// Entity returns the entity id backing a piece.
func (w *World) Entity(id PieceID) (ecs.EntityId, bool) {
	ref, ok := w.refs.Get(id)
	if !ok {
		return 0, false
	}
	return w.storage.ResolveEntityRef(ref)
}

// Session returns the live session state.
func (w *World) Session() *Session {
	return w.session.Get()
}

// Journal returns the live event journal.
func (w *World) Journal() *Journal {
	return w.journal.Get()
}

// Storage exposes the entity storage for inspectors.
func (w *World) Storage() *ecs.Storage {
	return w.storage
}

// Scheduler exposes the frame scheduler for inspectors.
func (w *World) Scheduler() *ecs.Scheduler {
	return w.scheduler
}

func (w *World) item(id PieceID) *pieceItem {
	ref, ok := w.refs.Get(id)
	if !ok {
		return nil
	}
	return w.pieces.GetRef(ref)
}

func (w *World) lookup(id PieceID) (*pieceItem, error) {
	item := w.item(id)
	if item == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPiece, id)
	}
	return item, nil
}

func (w *World) drainLog() {
	journal := w.journal.Get()
	for _, e := range journal.Since(w.logged) {
		w.logger.Printf("snapfit: %s", e)
	}
	w.logged = journal.LastSeq()
}
