// Package session holds the state of one Shape Explorers game: the current
// level, score and difficulty, the shapes on the board, and the statistics
// that feed difficulty adjustment.
//
// A Session is owned by a single update loop and is not safe for concurrent
// use. Difficulty adjustment is the only asynchronous step; its result is
// applied through ApplyAdjustment, which discards results that belong to an
// earlier game (see Epoch).
package session

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/shape-explorers/internal/adjust"
	"github.com/vovakirdan/shape-explorers/internal/config"
	"github.com/vovakirdan/shape-explorers/internal/level"
	"github.com/vovakirdan/shape-explorers/internal/narration"
	"github.com/vovakirdan/shape-explorers/internal/stats"
)

// Status is the phase of the game.
type Status int

const (
	StatusStart Status = iota
	StatusPlaying
	StatusLevelComplete
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusStart:
		return "start"
	case StatusPlaying:
		return "playing"
	case StatusLevelComplete:
		return "level-complete"
	default:
		return "unknown"
	}
}

// TapOutcome describes what a tap did.
type TapOutcome int

const (
	TapIgnored TapOutcome = iota // Not playing, unknown shape, or already found
	TapCorrect
	TapWrong
	TapLevelComplete // Correct tap on the last remaining shape
)

// Options configures a new Session.
type Options struct {
	Config   config.Config
	Seed     int64
	Narrator narration.Narrator
	Now      func() time.Time // Defaults to time.Now
}

// Session is the state of one game.
type Session struct {
	cfg      config.Config
	gen      *level.Generator
	rng      *rand.Rand
	narrator narration.Narrator
	now      func() time.Time
	stats    *stats.Aggregator

	status     Status
	level      int
	score      int
	difficulty config.DifficultyLevel

	shapes     []level.Shape
	target     int // Index into shapes, -1 when there is none
	identified map[string]bool
	promptedAt time.Time

	epoch    uint64
	pending  bool // Adjustment in flight
	adjusted bool // Adjustment already requested for this completion
}

// New creates a session in the start state.
func New(opts Options) *Session {
	if opts.Config.Difficulty == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Narrator == nil {
		opts.Narrator = narration.Discard
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	return &Session{
		cfg:        opts.Config,
		gen:        level.NewGenerator(opts.Config.Difficulty, opts.Seed),
		rng:        rand.New(rand.NewSource(opts.Seed ^ 0x5eed)),
		narrator:   opts.Narrator,
		now:        opts.Now,
		stats:      stats.NewAggregator(),
		status:     StatusStart,
		level:      1,
		difficulty: opts.Config.StartDifficulty,
		target:     -1,
		identified: make(map[string]bool),
	}
}

// Start begins a new game at level 1 and the configured start difficulty.
// Any adjustment still in flight from a previous game becomes stale.
func (s *Session) Start() {
	s.epoch++
	s.level = 1
	s.score = 0
	s.difficulty = s.cfg.StartDifficulty
	s.pending = false
	s.adjusted = false
	s.stats.Reset()
	s.status = StatusPlaying
	s.setupLevel()
}

// ReturnToMenu abandons the current game.
// Any adjustment still in flight becomes stale.
func (s *Session) ReturnToMenu() {
	s.epoch++
	s.status = StatusStart
	s.pending = false
	s.adjusted = false
	s.shapes = nil
	s.target = -1
}

// NextLevel advances to the next level using the current difficulty.
// It is refused unless a level was just completed and no adjustment is pending.
func (s *Session) NextLevel() bool {
	if s.status != StatusLevelComplete || s.pending {
		return false
	}
	s.level++
	s.adjusted = false
	s.stats.Reset()
	s.status = StatusPlaying
	s.setupLevel()
	return true
}

// Replay narrates the current prompt again.
func (s *Session) Replay() {
	if t, ok := s.Target(); ok && s.status == StatusPlaying {
		s.narrator.Narrate(narration.TapPrompt(t.Type.String()))
	}
}

// Tap handles the player tapping the shape with the given ID.
func (s *Session) Tap(shapeID string) TapOutcome {
	if s.status != StatusPlaying || s.target < 0 || s.identified[shapeID] {
		return TapIgnored
	}
	idx := s.indexOf(shapeID)
	if idx < 0 {
		return TapIgnored
	}

	tapped := s.shapes[idx]
	target := s.shapes[s.target]

	if idx != s.target {
		s.score = max(0, s.score-s.cfg.Scoring.WrongPenalty)
		s.stats.RecordMiss(tapped.Type, target.Type)
		s.narrator.Narrate(narration.WrongTap)
		return TapWrong
	}

	s.score += s.cfg.Scoring.CorrectPoints
	s.stats.RecordHit(s.now().Sub(s.promptedAt))
	s.identified[shapeID] = true

	if len(s.identified) == len(s.shapes) {
		s.status = StatusLevelComplete
		s.target = -1
		return TapLevelComplete
	}

	s.pickTarget()
	return TapCorrect
}

// setupLevel generates the board for the current level and difficulty.
func (s *Session) setupLevel() {
	s.shapes = s.gen.Generate(s.level, s.difficulty)
	s.identified = make(map[string]bool, len(s.shapes))
	s.pickTarget()
}

// pickTarget chooses a random remaining shape and prompts for it.
func (s *Session) pickTarget() {
	remaining := make([]int, 0, len(s.shapes))
	for i, sh := range s.shapes {
		if !s.identified[sh.ID] {
			remaining = append(remaining, i)
		}
	}
	if len(remaining) == 0 {
		s.target = -1
		return
	}

	s.target = remaining[s.rng.Intn(len(remaining))]
	s.promptedAt = s.now()
	s.narrator.Narrate(narration.TapPrompt(s.shapes[s.target].Type.String()))
}

func (s *Session) indexOf(id string) int {
	for i, sh := range s.shapes {
		if sh.ID == id {
			return i
		}
	}
	return -1
}

// Status returns the current phase.
func (s *Session) Status() Status { return s.status }

// Level returns the current level number (1-based).
func (s *Session) Level() int { return s.level }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Difficulty returns the difficulty used for the next generated level.
func (s *Session) Difficulty() config.DifficultyLevel { return s.difficulty }

// LevelConfig returns the resolved parameters of the current level.
func (s *Session) LevelConfig() config.LevelConfig {
	return s.gen.Config(s.level, s.difficulty)
}

// Epoch identifies the current game; it changes on Start and ReturnToMenu.
func (s *Session) Epoch() uint64 { return s.epoch }

// Pending reports whether a difficulty adjustment is in flight.
func (s *Session) Pending() bool { return s.pending }

// Stats returns the performance summary of the current level so far.
func (s *Session) Stats() stats.Snapshot { return s.stats.Snapshot() }

// Shapes returns the shapes of the current level.
func (s *Session) Shapes() []level.Shape {
	out := make([]level.Shape, len(s.shapes))
	copy(out, s.shapes)
	return out
}

// Remaining returns the shapes not yet identified, in board order.
func (s *Session) Remaining() []level.Shape {
	out := make([]level.Shape, 0, len(s.shapes))
	for _, sh := range s.shapes {
		if !s.identified[sh.ID] {
			out = append(out, sh)
		}
	}
	return out
}

// Identified reports whether the shape was already found this level.
func (s *Session) Identified(id string) bool { return s.identified[id] }

// Target returns the shape the player is asked to find.
func (s *Session) Target() (level.Shape, bool) {
	if s.target < 0 || s.target >= len(s.shapes) {
		return level.Shape{}, false
	}
	return s.shapes[s.target], true
}

// Progress returns the fraction of the level's shapes found, in [0, 1].
func (s *Session) Progress() float64 {
	if len(s.shapes) == 0 {
		return 0
	}
	return float64(len(s.identified)) / float64(len(s.shapes))
}

// AdjustmentRequest carries everything an asynchronous adjustment needs.
// Epoch ties the eventual result to the game that asked for it.
type AdjustmentRequest struct {
	Epoch    uint64
	Level    int
	Snapshot stats.Snapshot
	Current  config.DifficultyLevel
}

// Adjustment notices shown on the level-complete screen.
const (
	NoticeAdjusted = "Difficulty Adjusted!"
	NoticeFailed   = "Could not adjust difficulty. Sticking to current level."
)

// Notice is the user-facing outcome of an adjustment.
type Notice struct {
	Title     string
	Reasoning string
	Failed    bool
	From, To  config.DifficultyLevel
}

// BeginAdjustment marks an adjustment as pending and returns the request to
// run. It returns false if the level is not complete or an adjustment was
// already requested for this completion.
func (s *Session) BeginAdjustment() (AdjustmentRequest, bool) {
	if s.status != StatusLevelComplete || s.adjusted {
		return AdjustmentRequest{}, false
	}
	s.adjusted = true
	s.pending = true
	return AdjustmentRequest{
		Epoch:    s.epoch,
		Level:    s.level,
		Snapshot: s.stats.Snapshot(),
		Current:  s.difficulty,
	}, true
}

// ApplyAdjustment applies the result of a request started by BeginAdjustment.
// Results from an earlier epoch are dropped and reported with ok=false; they
// change nothing.
func (s *Session) ApplyAdjustment(req AdjustmentRequest, res adjust.Result, err error) (Notice, bool) {
	if req.Epoch != s.epoch || !s.pending {
		return Notice{}, false
	}
	s.pending = false

	from := s.difficulty
	s.difficulty = adjust.Apply(from, res, err)

	if err != nil {
		return Notice{Title: NoticeFailed, Failed: true, From: from, To: from}, true
	}
	return Notice{
		Title:     NoticeAdjusted,
		Reasoning: res.Reasoning,
		From:      from,
		To:        s.difficulty,
	}, true
}
