package game

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// DefaultSnapshotKey is the storage key the game is saved under.
const DefaultSnapshotKey = "callbreak_game"

var (
	ErrHandIndex    = errors.New("hand index out of range")
	ErrFinalized    = errors.New("game is finalized")
	ErrNotFinalized = errors.New("game is not finalized")
)

// Phase is the tracker's position in the Editing <-> Finalized cycle.
type Phase int

const (
	Editing Phase = iota
	Finalized
)

func (p Phase) String() string {
	switch p {
	case Editing:
		return "editing"
	case Finalized:
		return "finalized"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// KV is the key-value storage the tracker persists its snapshot into.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Archive records finished games when a new game is started.
type Archive interface {
	Record(ctx context.Context, players []string, final []RoundEntry) error
}

// Option configures a Tracker.
type Option func(*Tracker)

func WithLogger(log *zap.Logger) Option {
	return func(t *Tracker) {
		if log != nil {
			t.log = log
		}
	}
}

func WithSnapshotKey(key string) Option {
	return func(t *Tracker) {
		if key != "" {
			t.key = key
		}
	}
}

func WithArchive(a Archive) Option {
	return func(t *Tracker) { t.archive = a }
}

// Tracker owns the game state. Mutations happen only through the Editor and
// Result handles; each one is saved before the call returns.
type Tracker struct {
	players []string
	state   GameState
	kv      KV
	key     string
	archive Archive
	log     *zap.Logger
}

// NewTracker builds a tracker for players and restores the saved snapshot
// from kv when one exists. Unreadable or malformed snapshots are ignored and
// the game starts fresh.
func NewTracker(ctx context.Context, players []string, kv KV, opts ...Option) (*Tracker, error) {
	names, err := CheckPlayers(players)
	if err != nil {
		return nil, err
	}
	if kv == nil {
		return nil, fmt.Errorf("tracker: storage not configured")
	}
	t := &Tracker{
		players: names,
		state:   NewState(len(names)),
		kv:      kv,
		key:     DefaultSnapshotKey,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.load(ctx)
	return t, nil
}

func (t *Tracker) load(ctx context.Context) {
	data, ok, err := t.kv.Get(ctx, t.key)
	if err != nil {
		t.log.Warn("read snapshot; starting fresh", zap.String("key", t.key), zap.Error(err))
		return
	}
	if !ok {
		t.log.Info("no saved game", zap.String("key", t.key))
		return
	}
	st, err := DecodeSnapshot(data, len(t.players))
	if err != nil {
		t.log.Warn("discarding saved game", zap.String("key", t.key), zap.Error(err))
		return
	}
	t.state = st
	t.log.Info("restored saved game",
		zap.String("key", t.key),
		zap.Int("round", st.Round),
		zap.Bool("submitted", st.IsSubmitted),
	)
}

func (t *Tracker) save(ctx context.Context) error {
	data, err := EncodeSnapshot(t.state)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := t.kv.Put(ctx, t.key, data); err != nil {
		t.log.Error("save snapshot", zap.String("key", t.key), zap.Error(err))
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (t *Tracker) Players() []string {
	out := make([]string, len(t.players))
	copy(out, t.players)
	return out
}

func (t *Tracker) Round() int { return t.state.Round }

// Scores returns a copy of the committed rounds.
func (t *Tracker) Scores() []RoundEntry { return cloneEntries(t.state.Scores) }

// Hands returns a copy of the in-progress hand.
func (t *Tracker) Hands() Hand { return t.state.Hands.clone() }

// State returns a deep copy of the full state.
func (t *Tracker) State() GameState { return t.state.Clone() }

func (t *Tracker) Phase() Phase {
	if t.state.IsSubmitted {
		return Finalized
	}
	return Editing
}

// Editor returns the editing handle, or ErrFinalized while the result is shown.
func (t *Tracker) Editor() (*Editor, error) {
	if t.state.IsSubmitted {
		return nil, ErrFinalized
	}
	return &Editor{t: t}, nil
}

// Result returns the result handle, or ErrNotFinalized while editing.
func (t *Tracker) Result() (*Result, error) {
	if !t.state.IsSubmitted {
		return nil, ErrNotFinalized
	}
	return &Result{t: t}, nil
}

// Editor exposes the commands available while scores are being entered.
type Editor struct {
	t *Tracker
}

func (e *Editor) check() error {
	if e.t.state.IsSubmitted {
		return ErrFinalized
	}
	return nil
}

// SetHand replaces one slot of the in-progress hand with the parsed raw text.
func (e *Editor) SetHand(ctx context.Context, index int, raw string) error {
	if err := e.check(); err != nil {
		return err
	}
	if index < 0 || index >= len(e.t.players) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrHandIndex, index, len(e.t.players))
	}
	e.t.state.Hands[index] = ParseSlot(raw)
	return e.t.save(ctx)
}

// CommitRound appends the coerced hand to the scores and starts the next round.
func (e *Editor) CommitRound(ctx context.Context) error {
	if err := e.check(); err != nil {
		return err
	}
	st := &e.t.state
	st.Scores = append(st.Scores, st.Hands.Coerce())
	st.Hands = NewHand(len(e.t.players))
	st.Round++
	e.t.log.Debug("round committed", zap.Int("round", st.Round-1))
	return e.t.save(ctx)
}

// UndoLastRound drops the most recent committed round. With nothing committed
// it reports false and leaves state and storage untouched.
func (e *Editor) UndoLastRound(ctx context.Context) (bool, error) {
	if err := e.check(); err != nil {
		return false, err
	}
	st := &e.t.state
	if len(st.Scores) == 0 {
		return false, nil
	}
	st.Scores = st.Scores[:len(st.Scores)-1]
	st.Round--
	e.t.log.Debug("round undone", zap.Int("round", st.Round))
	return true, e.t.save(ctx)
}

// Finalize moves the game to the result view. Round, scores and hands are kept.
func (e *Editor) Finalize(ctx context.Context) error {
	if err := e.check(); err != nil {
		return err
	}
	e.t.state.IsSubmitted = true
	e.t.log.Info("game finalized", zap.Int("rounds", len(e.t.state.Scores)))
	return e.t.save(ctx)
}

// Result is the read-only summary of a finalized game.
type Result struct {
	t *Tracker
}

func (r *Result) check() error {
	if !r.t.state.IsSubmitted {
		return ErrNotFinalized
	}
	return nil
}

func (r *Result) Players() []string { return r.t.Players() }

// FinalScores returns the committed rounds followed by the coerced
// in-progress hand.
func (r *Result) FinalScores() []RoundEntry { return r.t.state.FinalScores() }

func (r *Result) Totals() []int {
	return Totals(r.t.state.FinalScores(), len(r.t.players))
}

func (r *Result) Leaders() []int { return Leaders(r.Totals()) }

// Resume returns to editing with the state exactly as it was.
func (r *Result) Resume(ctx context.Context) error {
	if err := r.check(); err != nil {
		return err
	}
	r.t.state.IsSubmitted = false
	r.t.log.Info("game resumed", zap.Int("round", r.t.state.Round))
	return r.t.save(ctx)
}

// NewGame archives the finished game, when an archive is configured, and
// replaces the state with a fresh one.
func (r *Result) NewGame(ctx context.Context) error {
	if err := r.check(); err != nil {
		return err
	}
	if r.t.archive != nil {
		if err := r.t.archive.Record(ctx, r.t.Players(), r.FinalScores()); err != nil {
			return fmt.Errorf("archive game: %w", err)
		}
	}
	r.t.state = NewState(len(r.t.players))
	r.t.log.Info("new game started")
	return r.t.save(ctx)
}
