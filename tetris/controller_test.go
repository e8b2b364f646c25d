package tetris

import (
	"math/rand"
	"testing"
	"time"

	"github.com/lixenwraith/termtris/animation"
	"github.com/lixenwraith/termtris/engine"
	"github.com/lixenwraith/termtris/events"
	"github.com/lixenwraith/termtris/figure"
	"github.com/lixenwraith/termtris/history"
	"github.com/lixenwraith/termtris/input"
	"github.com/lixenwraith/termtris/matrix"
	"github.com/lixenwraith/termtris/status"
)

type fakeRenderer struct {
	playfield [][]int
	preview   [][]int
	stats     Snapshot
	message   string
	paints    int
}

func (r *fakeRenderer) RenderPlayfield(cells [][]int) { r.playfield = cells; r.paints++ }
func (r *fakeRenderer) RenderPreview(cells [][]int)   { r.preview = cells }
func (r *fakeRenderer) RenderStats(s Snapshot)        { r.stats = s }
func (r *fakeRenderer) RenderMessage(text string)     { r.message = text }

type fakeCues struct {
	moved, rotated, dropped, cleared, over, intro int
	muted                                         bool
}

func (c *fakeCues) FigureMoved()     { c.moved++ }
func (c *fakeCues) FigureRotated()   { c.rotated++ }
func (c *fakeCues) FigureDropped()   { c.dropped++ }
func (c *fakeCues) RowCleared()      { c.cleared++ }
func (c *fakeCues) GameOver()        { c.over++ }
func (c *fakeCues) Intro()           { c.intro++ }
func (c *fakeCues) ToggleMute() bool { c.muted = !c.muted; return c.muted }
func (c *fakeCues) Muted() bool      { return c.muted }

type fakeIdle struct {
	starts, stops int
}

func (a *fakeIdle) Start(animation.Sink) { a.starts++ }
func (a *fakeIdle) Stop()                { a.stops++ }

type fakeWipe struct {
	from [][]int
	done func()
}

func (w *fakeWipe) Start(from [][]int, sink animation.Sink, done func()) {
	w.from = from
	w.done = done
}
func (w *fakeWipe) Stop() { w.done = nil }

type fakeConfirmer struct {
	question string
	answer   func(bool)
}

func (f *fakeConfirmer) Confirm(question string, answer func(bool)) {
	f.question = question
	f.answer = answer
}

type harness struct {
	sched   *engine.ManualScheduler
	ctrl    *Controller
	render  *fakeRenderer
	cues    *fakeCues
	store   *history.MemoryStore
	idle    *fakeIdle
	metrics *status.Registry
	events  []string
	payload []any
}

func newHarness(t *testing.T, configure func(*Options, *Deps)) *harness {
	t.Helper()
	h := &harness{
		sched:   engine.NewManualScheduler(time.Unix(1700000000, 0)),
		render:  &fakeRenderer{},
		cues:    &fakeCues{},
		store:   history.NewMemoryStore(),
		idle:    &fakeIdle{},
		metrics: status.NewRegistry(),
	}
	opts := DefaultOptions()
	deps := Deps{
		Scheduler: h.sched,
		Renderer:  h.render,
		Cues:      h.cues,
		History:   h.store,
		Idle:      h.idle,
		Metrics:   h.metrics,
		Rand:      rand.New(rand.NewSource(7)),
	}
	if configure != nil {
		configure(&opts, &deps)
	}
	h.ctrl = New(opts, deps)

	for _, typ := range []events.EventType{events.EventNewGame, events.EventPlayPause, events.EventGameOver, events.EventQuit} {
		h.ctrl.Events().On(typ, func(ev events.GameEvent) {
			h.events = append(h.events, ev.Type.String())
			h.payload = append(h.payload, ev.Payload)
		})
	}
	h.ctrl.Start()
	return h
}

// place replaces the falling piece
func (h *harness) place(kind figure.Kind, rotation, x, y int) *figure.Piece {
	p := figure.New(kind, rotation)
	p.SetPosition(x, y)
	h.ctrl.current = p
	return p
}

// fillRows fills columns [from, to] of each row
func fillRows(b *matrix.Board, from, to int, rows ...int) {
	for _, y := range rows {
		for x := from; x <= to; x++ {
			b.Fill(x, y, 9)
		}
	}
}

func (h *harness) tick() {
	h.sched.Advance(h.ctrl.opts.DescendPeriod(h.ctrl.level))
}

func equalEvents(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// TestStartShowsIdleAnimation verifies a new controller idles with the screen saver
func TestStartShowsIdleAnimation(t *testing.T) {
	h := newHarness(t, nil)
	if h.ctrl.State() != StateIdle {
		t.Errorf("Expected idle, got %s", h.ctrl.State())
	}
	if h.idle.starts != 1 {
		t.Errorf("Expected idle animation started once, got %d", h.idle.starts)
	}
	if h.sched.Pending() != 0 {
		t.Errorf("Expected no timers while idle, got %d", h.sched.Pending())
	}
}

// TestLaunchNewGame verifies reset, spawn, descend timer and NEW_GAME
func TestLaunchNewGame(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.LaunchNewGame()

	if h.ctrl.State() != StatePlaying {
		t.Fatalf("Expected playing, got %s", h.ctrl.State())
	}
	if h.idle.stops != 1 {
		t.Errorf("Expected idle animation stopped, got %d stops", h.idle.stops)
	}
	s := h.ctrl.Snapshot()
	if s.Score != 0 || s.Level != 1 || s.RowsCleared != 0 {
		t.Errorf("Expected zeroed counters at level 1, got %+v", s)
	}
	if h.ctrl.current == nil || h.ctrl.next == nil {
		t.Fatal("Expected current and next pieces")
	}
	if _, y := h.ctrl.current.Position(); y != 0 {
		t.Errorf("Expected spawn on row 0, got %d", y)
	}
	if h.sched.Pending() != 1 {
		t.Errorf("Expected exactly the descend timer, got %d timers", h.sched.Pending())
	}
	if !equalEvents(h.events, []string{"NEW_GAME"}) {
		t.Errorf("Expected [NEW_GAME], got %v", h.events)
	}
	if h.cues.intro != 1 {
		t.Errorf("Expected intro cue, got %d", h.cues.intro)
	}
	if h.render.preview == nil || h.render.playfield == nil {
		t.Error("Expected playfield and preview rendered")
	}
	if got := h.metrics.Ints.Get(status.KeyGames).Load(); got != 1 {
		t.Errorf("Expected games metric 1, got %d", got)
	}
}

// TestLaunchIgnoredWhilePlaying verifies a running game is not restarted
func TestLaunchIgnoredWhilePlaying(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.LaunchNewGame()
	p := h.place(figure.KindO, 0, 4, 5)
	h.ctrl.LaunchNewGame()

	if h.ctrl.current != p {
		t.Error("Expected the falling piece to survive a second launch")
	}
	if len(h.events) != 1 {
		t.Errorf("Expected one NEW_GAME, got %v", h.events)
	}
}

// TestDescendTickMovesPiece verifies gravity moves the piece one row per period
func TestDescendTickMovesPiece(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.LaunchNewGame()
	p := h.place(figure.KindO, 0, 4, 0)

	h.sched.Advance(999 * time.Millisecond)
	if _, y := p.Position(); y != 0 {
		t.Fatalf("Expected no move before the period, got y=%d", y)
	}
	h.sched.Advance(time.Millisecond)
	if _, y := p.Position(); y != 1 {
		t.Errorf("Expected y=1 after one tick, got %d", y)
	}
	h.sched.Advance(3 * time.Second)
	if _, y := p.Position(); y != 4 {
		t.Errorf("Expected y=4 after four ticks, got %d", y)
	}
	if h.render.playfield[5][4] == 0 {
		t.Error("Expected rendered playfield to include the piece")
	}
}

// TestPausedTicksAreSkipped verifies the timer keeps firing but does nothing while paused
func TestPausedTicksAreSkipped(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.LaunchNewGame()
	p := h.place(figure.KindO, 0, 4, 0)

	h.ctrl.PauseOrResume()
	if h.ctrl.State() != StatePaused {
		t.Fatalf("Expected paused, got %s", h.ctrl.State())
	}
	h.sched.Advance(5 * time.Second)
	if _, y := p.Position(); y != 0 {
		t.Errorf("Expected piece frozen while paused, got y=%d", y)
	}
	if h.sched.Pending() != 1 {
		t.Errorf("Expected descend timer still live, got %d timers", h.sched.Pending())
	}
	if got := h.metrics.Ints.Get(status.KeyTicks).Load(); got != 5 {
		t.Errorf("Expected 5 skipped ticks counted, got %d", got)
	}

	h.ctrl.PauseOrResume()
	h.tick()
	if _, y := p.Position(); y != 1 {
		t.Errorf("Expected descent after resume, got y=%d", y)
	}

	if !equalEvents(h.events, []string{"NEW_GAME", "PLAY_PAUSE", "PLAY_PAUSE"}) {
		t.Fatalf("Unexpected events %v", h.events)
	}
	if pp := h.payload[1].(*events.PlayPausePayload); !pp.Paused {
		t.Error("Expected first PLAY_PAUSE paused=true")
	}
	if pp := h.payload[2].(*events.PlayPausePayload); pp.Paused {
		t.Error("Expected second PLAY_PAUSE paused=false")
	}
}

// TestPauseIgnoredWhenIdle verifies pausing needs a running game
func TestPauseIgnoredWhenIdle(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.PauseOrResume()
	if h.ctrl.State() != StateIdle || len(h.events) != 0 {
		t.Errorf("Expected idle without events, got %s %v", h.ctrl.State(), h.events)
	}
}

// TestLockWithoutClearScoresPerLevel verifies a plain lock adds 10 per level
func TestLockWithoutClearScoresPerLevel(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.LaunchNewGame()
	h.ctrl.level = 3
	h.ctrl.rowsCleared = 20
	h.ctrl.startDescend()
	h.place(figure.KindO, 0, 4, 18)

	h.tick()

	if h.ctrl.score != 30 {
		t.Errorf("Expected score 30, got %d", h.ctrl.score)
	}
	if h.ctrl.board.At(4, 18) == 0 || h.ctrl.board.At(5, 19) == 0 {
		t.Error("Expected O merged into the bottom rows")
	}
	if got := h.metrics.Ints.Get(status.KeyLocks).Load(); got != 1 {
		t.Errorf("Expected one lock, got %d", got)
	}
	if h.sched.Pending() != 1 {
		t.Errorf("Expected one descend timer after lock, got %d", h.sched.Pending())
	}
}

// TestTetrisClear verifies four rows in one lock score 1200 at level 1
func TestTetrisClear(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.LaunchNewGame()
	fillRows(h.ctrl.board, 1, 9, 16, 17, 18, 19)
	h.place(figure.KindI, 0, 0, 16)

	h.tick()

	if h.ctrl.score != 1200 {
		t.Errorf("Expected score 1200, got %d", h.ctrl.score)
	}
	if h.ctrl.rowsCleared != 4 {
		t.Errorf("Expected 4 rows cleared, got %d", h.ctrl.rowsCleared)
	}
	for y := 0; y < h.ctrl.board.Height(); y++ {
		if matrix.IsRowFilled(h.ctrl.board.Cells()[y]) {
			t.Errorf("Row %d still filled", y)
		}
		for x := 0; x < h.ctrl.board.Width(); x++ {
			if h.ctrl.board.At(x, y) != 0 {
				t.Errorf("Expected empty board, cell (%d,%d)=%d", x, y, h.ctrl.board.At(x, y))
			}
		}
	}
	if h.cues.cleared != 1 {
		t.Errorf("Expected one row-cleared cue, got %d", h.cues.cleared)
	}
	if got := h.metrics.Ints.Get(status.KeyTetrises).Load(); got != 1 {
		t.Errorf("Expected tetris metric 1, got %d", got)
	}
}

// TestTwoRowsAtLevelThree verifies the clear bonus uses the level before the clear
func TestTwoRowsAtLevelThree(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.LaunchNewGame()
	h.ctrl.level = 3
	h.ctrl.rowsCleared = 28
	h.ctrl.startDescend()
	fillRows(h.ctrl.board, 2, 9, 18, 19)
	h.place(figure.KindO, 0, 0, 18)

	h.tick()

	if h.ctrl.score != 300 {
		t.Errorf("Expected score 300, got %d", h.ctrl.score)
	}
	if h.ctrl.level != 4 {
		t.Errorf("Expected level 4 after 30 rows, got %d", h.ctrl.level)
	}
}

// TestLevelUpShortensDescend verifies the new descend timer uses the new level
func TestLevelUpShortensDescend(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.LaunchNewGame()
	h.ctrl.rowsCleared = 9
	fillRows(h.ctrl.board, 2, 9, 19)
	h.place(figure.KindO, 0, 0, 18)

	h.tick()
	if h.ctrl.level != 2 {
		t.Fatalf("Expected level 2, got %d", h.ctrl.level)
	}

	p := h.place(figure.KindO, 0, 4, 0)
	h.sched.Advance(925 * time.Millisecond)
	if _, y := p.Position(); y != 1 {
		t.Errorf("Expected a tick after 925ms at level 2, got y=%d", y)
	}
}

// TestScoringTable verifies points per lock
func TestScoringTable(t *testing.T) {
	cases := []struct {
		rows, level, want int
	}{
		{0, 1, 10},
		{0, 3, 30},
		{1, 1, 50},
		{2, 3, 300},
		{3, 2, 600},
		{4, 1, 1200},
		{5, 1, 1200},
	}
	for _, tc := range cases {
		if got := Points(tc.rows, tc.level); got != tc.want {
			t.Errorf("Points(%d, %d): expected %d, got %d", tc.rows, tc.level, tc.want, got)
		}
	}
}

// TestLevelProgression verifies level is rows/10 + 1
func TestLevelProgression(t *testing.T) {
	cases := map[int]int{0: 1, 9: 1, 10: 2, 19: 2, 20: 3, 30: 4}
	for rows, want := range cases {
		if got := LevelFor(rows); got != want {
			t.Errorf("LevelFor(%d): expected %d, got %d", rows, want, got)
		}
	}
}

// TestDescendPeriodFloor verifies the period shrinks per level down to the floor
func TestDescendPeriodFloor(t *testing.T) {
	o := DefaultOptions()
	if got := o.DescendPeriod(1); got != time.Second {
		t.Errorf("Expected 1s at level 1, got %v", got)
	}
	if got := o.DescendPeriod(3); got != 850*time.Millisecond {
		t.Errorf("Expected 850ms at level 3, got %v", got)
	}
	if got := o.DescendPeriod(100); got != o.DescendFloor {
		t.Errorf("Expected floor %v, got %v", o.DescendFloor, got)
	}
}

// blockSpawnRows fills the top two rows so no piece can spawn without the rows being full
func blockSpawnRows(b *matrix.Board) {
	fillRows(b, 0, b.Width()-2, 0)
	fillRows(b, 1, b.Width()-1, 1)
}

// TestSpawnBlockedGameOver verifies a blocked spawn ends the game and records history
func TestSpawnBlockedGameOver(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.LaunchNewGame()
	blockSpawnRows(h.ctrl.board)
	h.place(figure.KindO, 0, 4, 18)

	h.tick()

	if !equalEvents(h.events, []string{"NEW_GAME", "GAME_OVER", "QUIT"}) {
		t.Fatalf("Expected NEW_GAME, GAME_OVER, QUIT; got %v", h.events)
	}
	over := h.payload[1].(*events.GameOverPayload)
	if over.Score != 10 || over.Level != 1 {
		t.Errorf("Expected final score 10 at level 1, got %+v", over)
	}
	if over.Summary == "" || h.ctrl.Snapshot().Summary != over.Summary {
		t.Errorf("Expected summary kept for the stats panel, got %q", over.Summary)
	}
	if h.ctrl.State() != StateIdle {
		t.Errorf("Expected idle after game over without animation, got %s", h.ctrl.State())
	}
	if h.sched.Pending() != 0 {
		t.Errorf("Expected all timers stopped, got %d", h.sched.Pending())
	}
	if h.cues.over != 1 {
		t.Errorf("Expected game-over cue, got %d", h.cues.over)
	}
	if h.idle.starts != 2 {
		t.Errorf("Expected idle animation restarted, got %d starts", h.idle.starts)
	}

	records, _ := h.store.List()
	if len(records) != 1 {
		t.Fatalf("Expected one history record, got %d", len(records))
	}
	if records[0].Results.Score != 10 || !records[0].IsHighest.Score {
		t.Errorf("Expected first record to be highest with score 10, got %+v", records[0])
	}
}

// TestGameOverRecordsWallDuration verifies the recorded duration runs from game start, pauses included
func TestGameOverRecordsWallDuration(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.LaunchNewGame()
	h.ctrl.PauseOrResume()
	h.sched.Advance(30 * time.Second)
	h.ctrl.PauseOrResume()

	blockSpawnRows(h.ctrl.board)
	h.place(figure.KindO, 0, 4, 18)
	h.tick()

	over := h.payload[len(h.payload)-2].(*events.GameOverPayload)
	if over.Duration != 31*time.Second {
		t.Errorf("Expected 31s from start, got %v", over.Duration)
	}
	records, _ := h.store.List()
	if len(records) != 1 || records[0].DurationMs != 31000 {
		t.Errorf("Expected record duration 31000ms, got %+v", records)
	}
}

// TestGameOverWaitsForAnimation verifies QUIT follows the wipe completion
func TestGameOverWaitsForAnimation(t *testing.T) {
	wipe := &fakeWipe{}
	h := newHarness(t, func(_ *Options, d *Deps) { d.GameOver = wipe })
	h.ctrl.LaunchNewGame()
	blockSpawnRows(h.ctrl.board)
	h.place(figure.KindO, 0, 4, 18)

	h.tick()

	if h.ctrl.State() != StateGameOver {
		t.Fatalf("Expected game over during the wipe, got %s", h.ctrl.State())
	}
	if !equalEvents(h.events, []string{"NEW_GAME", "GAME_OVER"}) {
		t.Errorf("Expected QUIT to wait for the wipe, got %v", h.events)
	}
	if wipe.from == nil || wipe.from[19][4] == 0 {
		t.Error("Expected wipe to start from the final board")
	}

	// Input is ignored during the wipe
	h.ctrl.Press(input.ActionLeft)
	h.ctrl.Rotate()
	if h.ctrl.Repeating(DirLeft) || h.cues.rotated != 0 {
		t.Error("Expected input ignored after game over")
	}

	wipe.done()
	if h.ctrl.State() != StateIdle {
		t.Errorf("Expected idle after the wipe, got %s", h.ctrl.State())
	}
	if !equalEvents(h.events, []string{"NEW_GAME", "GAME_OVER", "QUIT"}) {
		t.Errorf("Expected QUIT after the wipe, got %v", h.events)
	}
}

// TestNewGameDuringWipe verifies launching mid-wipe still emits QUIT before NEW_GAME
func TestNewGameDuringWipe(t *testing.T) {
	wipe := &fakeWipe{}
	h := newHarness(t, func(_ *Options, d *Deps) { d.GameOver = wipe })
	h.ctrl.LaunchNewGame()
	blockSpawnRows(h.ctrl.board)
	h.place(figure.KindO, 0, 4, 18)
	h.tick()

	h.ctrl.LaunchNewGame()

	if !equalEvents(h.events, []string{"NEW_GAME", "GAME_OVER", "QUIT", "NEW_GAME"}) {
		t.Errorf("Unexpected events %v", h.events)
	}
	if wipe.done != nil {
		t.Error("Expected wipe stopped")
	}
	if h.ctrl.State() != StatePlaying {
		t.Errorf("Expected playing, got %s", h.ctrl.State())
	}
}

// TestLockPanicsOnInvalidPiece verifies merging a non-fitting piece is refused
func TestLockPanicsOnInvalidPiece(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.LaunchNewGame()
	h.ctrl.board.Fill(4, 10, 1)
	h.place(figure.KindO, 0, 4, 10)

	defer func() {
		if recover() == nil {
			t.Error("Expected panic locking an overlapping piece")
		}
	}()
	h.ctrl.lock()
}

// TestRotate verifies rotation applies when free and always plays the cue
func TestRotate(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.LaunchNewGame()
	p := h.place(figure.KindI, 0, 4, 5)

	h.ctrl.Rotate()
	if p.Rotation() != 1 {
		t.Errorf("Expected rotation 1, got %d", p.Rotation())
	}

	// Horizontal I at the floor cannot turn vertical
	p.SetPosition(3, 19)
	h.ctrl.Rotate()
	if p.Rotation() != 1 {
		t.Errorf("Expected blocked rotation to keep state 1, got %d", p.Rotation())
	}
	if h.cues.rotated != 2 {
		t.Errorf("Expected cue for both attempts, got %d", h.cues.rotated)
	}

	h.ctrl.PauseOrResume()
	p.SetPosition(3, 5)
	h.ctrl.Rotate()
	if p.Rotation() != 1 || h.cues.rotated != 2 {
		t.Error("Expected rotation ignored while paused")
	}
}

// TestRepeatAcceleration verifies the immediate move, the slow interval and the switch to fast
func TestRepeatAcceleration(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.LaunchNewGame()
	p := h.place(figure.KindO, 0, 4, 0)

	h.ctrl.Press(input.ActionDown)
	if _, y := p.Position(); y != 1 {
		t.Fatalf("Expected immediate move, got y=%d", y)
	}

	// Moves at 120 and 240 on the slow interval, then every 16ms
	h.sched.Advance(300 * time.Millisecond)
	if _, y := p.Position(); y != 6 {
		t.Errorf("Expected y=6 after 300ms, got %d", y)
	}

	h.ctrl.Release(input.ActionDown)
	h.sched.Advance(200 * time.Millisecond)
	if _, y := p.Position(); y != 6 {
		t.Errorf("Expected no moves after release, got y=%d", y)
	}
	if h.ctrl.Repeating(DirDown) {
		t.Error("Expected repeat state dropped on release")
	}
	if h.sched.Pending() != 1 {
		t.Errorf("Expected only the descend timer, got %d", h.sched.Pending())
	}
}

// TestRepeatIgnoresSecondPress verifies a held direction is not restarted
func TestRepeatIgnoresSecondPress(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.LaunchNewGame()
	p := h.place(figure.KindO, 0, 4, 5)

	h.ctrl.Press(input.ActionLeft)
	h.ctrl.Press(input.ActionLeft)
	if x, _ := p.Position(); x != 3 {
		t.Errorf("Expected a single immediate move, got x=%d", x)
	}
}

// TestBlockedSidewaysRepeatStops verifies a wall bump plays the cue and stops repeating
func TestBlockedSidewaysRepeatStops(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.LaunchNewGame()
	p := h.place(figure.KindO, 0, 1, 5)

	h.ctrl.Press(input.ActionLeft)
	h.sched.Advance(100 * time.Millisecond)
	if x, _ := p.Position(); x != 0 {
		t.Fatalf("Expected x=0 at the wall, got %d", x)
	}
	if h.cues.moved != 1 {
		t.Errorf("Expected one bump cue, got %d", h.cues.moved)
	}
	h.sched.Advance(500 * time.Millisecond)
	if h.cues.moved != 1 {
		t.Errorf("Expected repeat stopped after the bump, got %d cues", h.cues.moved)
	}
	if !h.ctrl.Repeating(DirLeft) {
		t.Error("Expected repeat state kept until release")
	}
}

// TestBlockedSoftDropLocks verifies a failed soft-drop repeat locks immediately
func TestBlockedSoftDropLocks(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.LaunchNewGame()
	p := h.place(figure.KindO, 0, 4, 17)

	h.ctrl.Press(input.ActionDown)
	h.sched.Advance(120 * time.Millisecond)

	if h.ctrl.current == p {
		t.Fatal("Expected the piece locked and replaced")
	}
	if h.ctrl.board.At(4, 19) == 0 {
		t.Error("Expected O merged at the floor")
	}
	if h.cues.dropped != 1 {
		t.Errorf("Expected drop cue, got %d", h.cues.dropped)
	}
	if h.ctrl.Repeating(DirDown) {
		t.Error("Expected repeat state cleared by the lock")
	}
}

// TestLockCancelsRepeats verifies a pending repeat cannot touch the next piece
func TestLockCancelsRepeats(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.LaunchNewGame()
	h.place(figure.KindO, 0, 4, 18)

	h.ctrl.Press(input.ActionLeft)
	h.ctrl.Press(input.ActionRight)
	h.ctrl.lock()

	next := h.ctrl.current
	x0, y0 := next.Position()
	if h.ctrl.Repeating(DirLeft) || h.ctrl.Repeating(DirRight) {
		t.Error("Expected repeats dropped at lock")
	}
	if h.sched.Pending() != 1 {
		t.Errorf("Expected only the new descend timer, got %d", h.sched.Pending())
	}

	h.sched.Advance(500 * time.Millisecond)
	if x, y := next.Position(); x != x0 || y != y0 {
		t.Errorf("Expected new piece untouched, moved from (%d,%d) to (%d,%d)", x0, y0, x, y)
	}
}

// TestPauseCancelsRepeats verifies held keys stop moving the piece on pause
func TestPauseCancelsRepeats(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.LaunchNewGame()
	p := h.place(figure.KindO, 0, 4, 5)

	h.ctrl.Press(input.ActionRight)
	h.ctrl.PauseOrResume()
	h.ctrl.Press(input.ActionLeft)
	h.sched.Advance(time.Second)

	if x, _ := p.Position(); x != 5 {
		t.Errorf("Expected only the pre-pause move, got x=%d", x)
	}
}

// TestQuitBelowThreshold verifies a young game quits without asking
func TestQuitBelowThreshold(t *testing.T) {
	confirm := &fakeConfirmer{}
	h := newHarness(t, func(_ *Options, d *Deps) { d.Confirmer = confirm })
	h.ctrl.LaunchNewGame()
	h.sched.Advance(3 * time.Second)

	h.ctrl.Quit()

	if confirm.answer != nil {
		t.Error("Expected no confirmation below the threshold")
	}
	if h.ctrl.State() != StateIdle {
		t.Errorf("Expected idle, got %s", h.ctrl.State())
	}
	if !equalEvents(h.events, []string{"NEW_GAME", "QUIT"}) {
		t.Errorf("Expected NEW_GAME, QUIT; got %v", h.events)
	}
	if h.ctrl.Snapshot().Score != 0 || h.sched.Pending() != 0 {
		t.Error("Expected score reset and timers stopped")
	}
	if h.idle.starts != 2 {
		t.Errorf("Expected idle animation resumed, got %d starts", h.idle.starts)
	}
}

// TestQuitAsksAfterThreshold verifies confirmation pauses the game and honours the answer
func TestQuitAsksAfterThreshold(t *testing.T) {
	confirm := &fakeConfirmer{}
	h := newHarness(t, func(o *Options, d *Deps) {
		o.Descend = time.Hour
		o.DescendFloor = time.Hour
		d.Confirmer = confirm
	})
	h.ctrl.LaunchNewGame()
	h.sched.Advance(11 * time.Second)

	h.ctrl.Quit()
	if confirm.answer == nil {
		t.Fatal("Expected a confirmation request")
	}
	if h.ctrl.State() != StatePaused {
		t.Errorf("Expected paused while asking, got %s", h.ctrl.State())
	}

	confirm.answer(false)
	if h.ctrl.State() != StatePlaying {
		t.Errorf("Expected play resumed after no, got %s", h.ctrl.State())
	}

	confirm.answer = nil
	h.ctrl.Quit()
	confirm.answer(true)
	if h.ctrl.State() != StateIdle {
		t.Errorf("Expected idle after yes, got %s", h.ctrl.State())
	}
	if h.events[len(h.events)-1] != "QUIT" {
		t.Errorf("Expected QUIT last, got %v", h.events)
	}
}

// TestQuitThresholdCountsPausedTime verifies the confirmation threshold runs from game start, pauses included
func TestQuitThresholdCountsPausedTime(t *testing.T) {
	confirm := &fakeConfirmer{}
	h := newHarness(t, func(o *Options, d *Deps) {
		o.Descend = time.Hour
		o.DescendFloor = time.Hour
		d.Confirmer = confirm
	})
	h.ctrl.LaunchNewGame()
	h.sched.Advance(time.Second)
	h.ctrl.PauseOrResume()
	h.sched.Advance(60 * time.Second)

	h.ctrl.Quit()
	if confirm.answer == nil {
		t.Fatal("Expected a confirmation request after 61s since start")
	}
	if h.ctrl.State() != StatePaused {
		t.Errorf("Expected paused while asking, got %s", h.ctrl.State())
	}

	confirm.answer(false)
	if h.ctrl.State() != StatePaused {
		t.Errorf("Expected still paused after no, got %s", h.ctrl.State())
	}
}

// TestQuitKeepsPauseWhenAlreadyPaused verifies a declined quit leaves a paused game paused
func TestQuitKeepsPauseWhenAlreadyPaused(t *testing.T) {
	confirm := &fakeConfirmer{}
	h := newHarness(t, func(o *Options, d *Deps) {
		o.QuitConfirmAfter = 0
		d.Confirmer = confirm
	})
	h.ctrl.LaunchNewGame()
	h.ctrl.PauseOrResume()
	h.ctrl.Quit()
	confirm.answer(false)

	if h.ctrl.State() != StatePaused {
		t.Errorf("Expected still paused, got %s", h.ctrl.State())
	}
}

// TestElapsedExcludesPauses verifies play time stops while paused
func TestElapsedExcludesPauses(t *testing.T) {
	h := newHarness(t, func(o *Options, _ *Deps) {
		o.Descend = time.Hour
		o.DescendFloor = time.Hour
	})
	h.ctrl.LaunchNewGame()
	h.sched.Advance(4 * time.Second)
	h.ctrl.PauseOrResume()
	h.sched.Advance(10 * time.Second)
	h.ctrl.PauseOrResume()
	h.sched.Advance(time.Second)

	if got := h.ctrl.Snapshot().Elapsed; got != 5*time.Second {
		t.Errorf("Expected 5s play time, got %v", got)
	}
}

// TestToggleMute verifies the mute action reaches the cue player and the stats
func TestToggleMute(t *testing.T) {
	h := newHarness(t, nil)
	h.ctrl.Press(input.ActionMute)
	if !h.cues.muted || !h.render.stats.Muted {
		t.Error("Expected muted cues and stats")
	}
}

// TestStateMetric verifies the state gauge follows transitions
func TestStateMetric(t *testing.T) {
	h := newHarness(t, nil)
	gauge := h.metrics.Strings.Get(status.KeyState)
	if gauge.Load() != "idle" {
		t.Errorf("Expected idle, got %q", gauge.Load())
	}
	h.ctrl.LaunchNewGame()
	h.ctrl.PauseOrResume()
	if gauge.Load() != "paused" {
		t.Errorf("Expected paused, got %q", gauge.Load())
	}
	if !h.metrics.Bools.Get(status.KeyPaused).Load() {
		t.Error("Expected paused flag set")
	}
}
