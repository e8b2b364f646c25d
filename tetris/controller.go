// Package tetris is the game controller: piece spawning, gravity, input repeat,
// locking, scoring and the idle/playing/paused/game-over lifecycle.
//
// Every method must run on the scheduler goroutine. Timer callbacks and input
// share that goroutine, so state is never locked; each mutation re-validates the
// piece against the board immediately before acting.
package tetris

import (
	"fmt"
	"log"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/kamstrup/intmap"

	"github.com/lixenwraith/termtris/audio"
	"github.com/lixenwraith/termtris/constants"
	"github.com/lixenwraith/termtris/engine"
	"github.com/lixenwraith/termtris/events"
	"github.com/lixenwraith/termtris/figure"
	"github.com/lixenwraith/termtris/history"
	"github.com/lixenwraith/termtris/matrix"
	"github.com/lixenwraith/termtris/status"
)

// Deps are the collaborators of a controller; nil fields get inert defaults
type Deps struct {
	Scheduler engine.Scheduler // Required
	Renderer  Renderer
	Cues      audio.Cues
	History   HistoryStore
	Confirmer Confirmer // nil quits without asking
	Idle      Animator
	GameOver  GameOverAnimator // nil returns to idle right after GAME_OVER
	Events    *events.Router
	Metrics   *status.Registry
	Rand      *rand.Rand
}

// Controller runs one game at a time
type Controller struct {
	opts  Options
	sched engine.Scheduler
	rng   *rand.Rand

	renderer  Renderer
	cues      audio.Cues
	history   HistoryStore
	confirmer Confirmer
	idle      Animator
	over      GameOverAnimator
	bus       *events.Router

	board   *matrix.Board
	preview *matrix.Board
	current *figure.Piece
	next    *figure.Piece

	state       State
	level       int
	score       int
	rowsCleared int
	clock       *engine.PausableClock
	summary     string

	// game increments per launched game so late prompt answers can detect a stale game
	game       uint64
	confirming bool

	descendTimer engine.TimerID
	repeats      *intmap.Map[Direction, *repeat]

	// Cached metric pointers
	mTicks     *atomic.Int64
	mGames     *atomic.Int64
	mLocks     *atomic.Int64
	mRows      *atomic.Int64
	mTetrises  *atomic.Int64
	mGameOvers *atomic.Int64
	mHistErrs  *atomic.Int64
	mPaused    *atomic.Bool
	mState     *status.AtomicString
}

// New creates an idle controller; call Start to show the idle animation
func New(opts Options, deps Deps) *Controller {
	if deps.Scheduler == nil {
		panic("tetris: scheduler is required")
	}
	if deps.Renderer == nil {
		deps.Renderer = nopRenderer{}
	}
	if deps.Cues == nil {
		deps.Cues = &audio.Silent{}
	}
	if deps.History == nil {
		deps.History = history.NewMemoryStore()
	}
	if deps.Idle == nil {
		deps.Idle = nopAnimator{}
	}
	if deps.Events == nil {
		deps.Events = events.NewRouter()
	}
	if deps.Metrics == nil {
		deps.Metrics = status.NewRegistry()
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	c := &Controller{
		opts:      opts,
		sched:     deps.Scheduler,
		rng:       deps.Rand,
		renderer:  deps.Renderer,
		cues:      deps.Cues,
		history:   deps.History,
		confirmer: deps.Confirmer,
		idle:      deps.Idle,
		over:      deps.GameOver,
		bus:       deps.Events,
		board:     matrix.New(opts.Width, opts.Height),
		preview:   matrix.New(opts.PreviewSize, opts.PreviewSize),
		state:     StateIdle,
		level:     1,
		clock:     engine.NewPausableClock(deps.Scheduler),
		repeats:   intmap.New[Direction, *repeat](int(dirCount)),

		mTicks:     deps.Metrics.Ints.Get(status.KeyTicks),
		mGames:     deps.Metrics.Ints.Get(status.KeyGames),
		mLocks:     deps.Metrics.Ints.Get(status.KeyLocks),
		mRows:      deps.Metrics.Ints.Get(status.KeyRows),
		mTetrises:  deps.Metrics.Ints.Get(status.KeyTetrises),
		mGameOvers: deps.Metrics.Ints.Get(status.KeyGameOvers),
		mHistErrs:  deps.Metrics.Ints.Get(status.KeyHistoryErrs),
		mPaused:    deps.Metrics.Bools.Get(status.KeyPaused),
		mState:     deps.Metrics.Strings.Get(status.KeyState),
	}
	c.mState.Store(c.state.String())
	return c
}

// Events returns the lifecycle bus
func (c *Controller) Events() *events.Router {
	return c.bus
}

// State returns the lifecycle phase
func (c *Controller) State() State {
	return c.state
}

// Snapshot returns the current counters
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		State:       c.state,
		Score:       c.score,
		Level:       c.level,
		RowsCleared: c.rowsCleared,
		Muted:       c.cues.Muted(),
		Summary:     c.summary,
	}
	if c.state == StatePlaying || c.state == StatePaused {
		s.Elapsed = c.clock.Elapsed()
	}
	return s
}

// Board returns the playfield composed with the falling piece
func (c *Controller) Board() [][]int {
	if c.current == nil {
		return c.board.Cells()
	}
	return c.board.ComposeWith(c.current)
}

// Start enters idle and shows the idle animation
func (c *Controller) Start() {
	c.enterIdle()
}

// Stop cancels every timer and animation; the controller stays in its current state
func (c *Controller) Stop() {
	c.stopTimers()
	c.idle.Stop()
	if c.over != nil {
		c.over.Stop()
	}
}

// LaunchNewGame resets the boards and counters and starts dropping pieces
// Ignored while a game is running or paused
func (c *Controller) LaunchNewGame() {
	switch c.state {
	case StatePlaying, StatePaused:
		return
	case StateGameOver:
		// Skip the rest of the wipe but keep GAME_OVER before QUIT
		if c.over != nil {
			c.over.Stop()
		}
		c.finishGameOver()
	}

	c.idle.Stop()
	c.board.Reset()
	c.preview.Reset()
	c.score = 0
	c.rowsCleared = 0
	c.level = 1
	c.current = nil
	c.next = nil
	c.game++
	c.clock.Restart()

	c.spawn()
	c.setState(StatePlaying)
	c.startDescend()
	c.mGames.Add(1)
	c.cues.Intro()

	log.Printf("tetris: new game %d", c.game)
	c.publish(events.EventNewGame, nil)
	c.renderAll()
}

// PauseOrResume toggles the pause flag of a running game
// The descend timer keeps firing and skips its ticks while paused
func (c *Controller) PauseOrResume() {
	switch c.state {
	case StatePlaying:
		c.cancelRepeats()
		c.clock.Pause()
		c.setState(StatePaused)
	case StatePaused:
		c.clock.Resume()
		c.setState(StatePlaying)
	default:
		return
	}
	paused := c.state == StatePaused
	c.mPaused.Store(paused)
	c.publish(events.EventPlayPause, &events.PlayPausePayload{Paused: paused})
	c.renderStats()
}

// Quit abandons the running game, asking first once QuitConfirmAfter has passed
// since the game started; paused time counts
func (c *Controller) Quit() {
	if c.state != StatePlaying && c.state != StatePaused {
		return
	}
	if c.confirming {
		return
	}
	if c.confirmer == nil || c.sched.Now().Sub(c.clock.StartedAt()) < c.opts.QuitConfirmAfter {
		c.quitNow()
		return
	}

	wasPlaying := c.state == StatePlaying
	if wasPlaying {
		c.PauseOrResume()
	}
	c.confirming = true
	game := c.game
	c.confirmer.Confirm("Quit the current game? (y/n)", func(yes bool) {
		if game != c.game || !c.confirming {
			return
		}
		c.confirming = false
		if yes {
			c.quitNow()
			return
		}
		if wasPlaying && c.state == StatePaused {
			c.PauseOrResume()
		}
	})
}

func (c *Controller) quitNow() {
	c.stopTimers()
	c.confirming = false
	c.score = 0
	c.rowsCleared = 0
	c.level = 1
	c.current = nil
	c.next = nil
	c.board.Reset()
	c.preview.Reset()
	c.mPaused.Store(false)
	c.setState(StateIdle)

	log.Printf("tetris: game %d quit", c.game)
	c.publish(events.EventQuit, nil)
	c.enterIdle()
}

// Rotate turns the falling piece; blocked rotations still play the cue
func (c *Controller) Rotate() {
	if c.state != StatePlaying {
		return
	}
	if c.current.CanRotate(c.board) {
		c.current.Rotate(c.board)
		c.renderPlayfield()
	}
	c.cues.FigureRotated()
}

// ToggleMute flips the cue player's mute flag
func (c *Controller) ToggleMute() {
	c.cues.ToggleMute()
	c.renderStats()
}

// spawn promotes the next piece to the playfield and draws a new next piece
func (c *Controller) spawn() {
	if c.next == nil {
		c.current = figure.Spawn(c.board, c.rng)
	} else {
		c.current = c.next
		c.current.Respawn(c.board, c.rng)
	}
	c.next = figure.Spawn(c.preview, c.rng)
}

// startDescend replaces the gravity timer with one sized for the current level
func (c *Controller) startDescend() {
	c.sched.Cancel(c.descendTimer)
	c.descendTimer = c.sched.Every(c.opts.DescendPeriod(c.level), c.descend)
}

func (c *Controller) descend() {
	c.mTicks.Add(1)
	if c.state != StatePlaying {
		return
	}
	if c.current.CanMove(c.board, figure.Down) {
		c.current.Move(figure.Down)
		c.renderPlayfield()
		c.renderStats()
		return
	}
	c.lock()
}

// lock merges the falling piece, clears rows, scores and spawns the next piece
// All timers bound to the old piece are cancelled before it is discarded
func (c *Controller) lock() {
	c.stopTimers()

	if !c.current.FitsInto(c.board) {
		x, y := c.current.Position()
		panic(fmt.Sprintf("tetris: locking %s at (%d,%d) that does not fit", c.current.Kind(), x, y))
	}
	c.board.Merge(c.current)
	c.mLocks.Add(1)

	cleared := c.board.ClearFilledRows()
	c.score += Points(cleared, c.level)
	if cleared > 0 {
		c.rowsCleared += cleared
		c.level = LevelFor(c.rowsCleared)
		c.mRows.Add(int64(cleared))
		if cleared >= 4 {
			c.mTetrises.Add(1)
		}
		c.cues.RowCleared()
	}

	c.spawn()
	if !c.current.FitsInto(c.board) {
		c.gameOver()
		return
	}
	c.startDescend()
	c.renderAll()
}

func (c *Controller) gameOver() {
	c.stopTimers()
	c.setState(StateGameOver)
	c.mGameOvers.Add(1)

	// Wall time since start; the stats clock shows play time instead
	duration := c.sched.Now().Sub(c.clock.StartedAt())
	previous, err := c.history.List()
	if err != nil {
		c.mHistErrs.Add(1)
		log.Printf("tetris: read history: %v", err)
	}
	rec := history.NewRecord(c.sched.Now(), duration, history.Results{
		Score:       c.score,
		Level:       c.level,
		RowsCleared: c.rowsCleared,
	}, previous)
	if err := c.history.Append(rec); err != nil {
		c.mHistErrs.Add(1)
		log.Printf("tetris: append history: %v", err)
	}
	c.summary = history.Summary(rec)

	log.Printf("tetris: game %d over: %s", c.game, c.summary)
	c.publish(events.EventGameOver, &events.GameOverPayload{
		Score:       c.score,
		Level:       c.level,
		RowsCleared: c.rowsCleared,
		Duration:    duration,
		Summary:     c.summary,
	})
	c.cues.GameOver()
	c.renderAll()

	if c.over == nil {
		c.finishGameOver()
		return
	}
	c.over.Start(c.Board(), c.renderer.RenderPlayfield, c.finishGameOver)
}

// finishGameOver returns to idle once the wipe ends
func (c *Controller) finishGameOver() {
	if c.state != StateGameOver {
		return
	}
	c.score = 0
	c.rowsCleared = 0
	c.level = 1
	c.current = nil
	c.next = nil
	c.board.Reset()
	c.preview.Reset()
	c.setState(StateIdle)
	c.publish(events.EventQuit, nil)
	c.enterIdle()
}

func (c *Controller) enterIdle() {
	c.renderer.RenderPreview(c.preview.Cells())
	c.renderStats()
	c.idle.Start(c.renderer.RenderPlayfield)
}

func (c *Controller) stopTimers() {
	c.sched.Cancel(c.descendTimer)
	c.descendTimer = 0
	c.cancelRepeats()
}

func (c *Controller) setState(s State) {
	c.state = s
	c.mState.Store(s.String())
}

func (c *Controller) publish(t events.EventType, payload any) {
	c.bus.Publish(events.GameEvent{Type: t, Payload: payload, Timestamp: c.sched.Now()})
}

func (c *Controller) renderPlayfield() {
	c.renderer.RenderPlayfield(c.Board())
}

func (c *Controller) renderStats() {
	c.renderer.RenderStats(c.Snapshot())
}

func (c *Controller) renderAll() {
	c.renderPlayfield()
	if c.next != nil {
		c.preview.Reset()
		c.renderer.RenderPreview(c.preview.ComposeWith(c.next))
	} else {
		c.renderer.RenderPreview(c.preview.Cells())
	}
	c.renderStats()
}

// Points returns the score for one lock clearing rows rows at level
func Points(rows, level int) int {
	if rows <= 0 {
		return constants.ScorePerLock * level
	}
	table := constants.ScoreForRows
	return table[min(rows, len(table)-1)] * level
}

// LevelFor returns the level reached after rows total cleared rows
func LevelFor(rows int) int {
	return rows/constants.RowsPerLevel + 1
}
