package core

import (
	"errors"
)

// Options configures a run. Zero values take the defaults noted per field.
type Options struct {
	Mode         Mode
	Level        *Level       // Required for Adventure; optional layout for other modes
	Cols         int          // Default 8
	Rows         int          // Row capacity, default 14
	FillRows     int          // Rows filled at start without a level, default 5
	Parity       int          // Initial row parity
	Metrics      BoardMetrics // Zero value uses DefaultMetrics
	Speed        float64      // Projectile speed in metric units per second, default 30
	Substeps     int          // Collision sub-steps per tick, default 4
	Scoring      Scoring      // Zero value uses DefaultScoring
	Params       ModeParams   // Zero value uses DefaultModeParams
	Palette      []Color      // Colors used without a level, default first five normal colors
	Shots        int          // Adventure budget when the level has none, default 30
	SpecialEvery int          // Every Nth loaded bubble is special; 0 disables
	Rand         Source       // Default NewRNG(1)
}

func (o Options) withDefaults() Options {
	if o.Cols <= 0 {
		o.Cols = 8
	}
	if o.Rows <= 0 {
		o.Rows = 14
	}
	if o.FillRows <= 0 {
		o.FillRows = 5
	}
	if o.FillRows > o.Rows-1 {
		o.FillRows = o.Rows - 1
	}
	if o.Metrics == (BoardMetrics{}) {
		o.Metrics = DefaultMetrics(o.Cols, o.Rows)
	}
	if o.Speed <= 0 {
		o.Speed = 30
	}
	if o.Substeps <= 0 {
		o.Substeps = 4
	}
	if o.Scoring == (Scoring{}) {
		o.Scoring = DefaultScoring()
	}
	if o.Params == (ModeParams{}) {
		o.Params = DefaultModeParams()
	}
	if len(o.Palette) == 0 {
		o.Palette = NormalColors[:5]
	}
	if o.Shots <= 0 {
		o.Shots = 30
	}
	if o.Rand == nil {
		o.Rand = NewRNG(1)
	}
	return o
}

// Game is one run of the bubble shooter: the board, the cannon, the shot in
// flight and the progression rules. It is not safe for concurrent use; the
// engine package serializes access.
type Game struct {
	opts    Options
	rng     Source
	board   *Board
	shot    *ShotResolver
	ctrl    Controller
	palette []Color

	current Ammo
	next    Ammo
	loaded  Ammo
	drawn   int

	score      int
	shotsFired int
	shotsLeft  int
	overflow   int
	collected  map[Color]int
	outcome    Outcome
	stars      int
	paused     bool
	ticks      int
	events     []Event
	earned     map[string]bool
}

// NewGame creates a run ready for the first shot.
func NewGame(opts Options) (*Game, error) {
	opts = opts.withDefaults()
	g := &Game{opts: opts, rng: opts.Rand}
	if err := g.Reset(); err != nil {
		return nil, err
	}
	return g, nil
}

// Reset restarts the run with the current options. On error the game is
// left unchanged. A board that already meets a win or loss condition ends
// the run immediately.
func (g *Game) Reset() error {
	o := g.opts
	if o.Mode == ModeAdventure && o.Level == nil {
		return invalidState("adventure mode requires a level")
	}

	ctrl, err := NewController(o.Mode, o.Params)
	if err != nil {
		return err
	}

	var board *Board
	palette := o.Palette
	if o.Level != nil {
		board, err = o.Level.Build(o.Cols, o.Rows, o.Parity)
		if err != nil {
			return err
		}
		palette = o.Level.Palette()
	} else {
		board = NewBoard(o.Cols, o.Rows, o.Parity)
		if err := board.Fill(o.FillRows, o.Cols, palette, g.rng); err != nil {
			return err
		}
	}

	g.board = board
	g.ctrl = ctrl
	g.palette = palette
	g.shot = NewShotResolver(o.Metrics, o.Scoring, o.Speed, o.Substeps)
	g.score = 0
	g.shotsFired = 0
	g.overflow = 0
	g.collected = make(map[Color]int)
	g.outcome = OutcomePlaying
	g.stars = 0
	g.paused = false
	g.ticks = 0
	g.events = nil
	g.earned = make(map[string]bool)
	g.drawn = 0

	g.shotsLeft = -1
	if o.Mode == ModeAdventure {
		g.shotsLeft = o.Shots
		if o.Level.Shots > 0 {
			g.shotsLeft = o.Level.Shots
		}
	}

	g.current = g.draw()
	g.next = g.draw()
	g.evaluate()
	return nil
}

// LoadLevel switches to a new level and restarts. A nil level fails with
// ErrInvalidState and leaves the current run untouched.
func (g *Game) LoadLevel(l *Level) error {
	if l == nil {
		return invalidState("load level: nil level")
	}
	prev := g.opts.Level
	g.opts.Level = l
	if err := g.Reset(); err != nil {
		g.opts.Level = prev
		return err
	}
	return nil
}

// draw picks the next bubble for the cannon, favoring colors still on the
// board so every shot can make progress.
func (g *Game) draw() Ammo {
	g.drawn++
	if n := g.opts.SpecialEvery; n > 0 && g.drawn%n == 0 {
		switch g.rng.Intn(3) {
		case 0:
			return Ammo{Color: ColorBomb}
		case 1:
			return Ammo{Color: ColorRainbow}
		default:
			a := g.drawNormal()
			a.Fireball = true
			return a
		}
	}
	return g.drawNormal()
}

func (g *Game) drawNormal() Ammo {
	colors := g.board.ColorsPresent()
	if len(colors) == 0 {
		colors = normalPool(g.palette)
	}
	if len(colors) == 0 {
		colors = NormalColors
	}
	return Ammo{Color: colors[g.rng.Intn(len(colors))]}
}

func (g *Game) requirePlaying(op string) error {
	if g.outcome != OutcomePlaying {
		return invalidState("%s: run is %s", op, g.outcome)
	}
	if g.paused {
		return invalidState("%s: game is paused", op)
	}
	return nil
}

// Aim sets the cannon angle in degrees from vertical.
func (g *Game) Aim(deg float64) error {
	if err := g.requirePlaying("aim"); err != nil {
		return err
	}
	g.shot.SetAngle(deg)
	return nil
}

// AimAt points the cannon at a pixel in board space.
func (g *Game) AimAt(x, y float64) error {
	if err := g.requirePlaying("aim"); err != nil {
		return err
	}
	g.shot.AimAt(x, y)
	return nil
}

// Nudge rotates the cannon by delta degrees.
func (g *Game) Nudge(delta float64) error {
	return g.Aim(g.shot.Angle() + delta)
}

// Fire launches the loaded bubble.
func (g *Game) Fire() error {
	if err := g.requirePlaying("fire"); err != nil {
		return err
	}
	if g.opts.Mode == ModeAdventure && g.shotsLeft <= 0 {
		return invalidState("fire: no shots left")
	}
	evs, err := g.shot.Fire(g.current)
	if err != nil {
		return err
	}
	g.loaded = g.current
	g.current = g.next
	g.next = g.draw()
	g.events = append(g.events, evs...)
	return nil
}

// Swap exchanges the loaded and next bubbles.
func (g *Game) Swap() error {
	if err := g.requirePlaying("swap"); err != nil {
		return err
	}
	g.current, g.next = g.next, g.current
	return nil
}

// Tick advances the projectile by dt seconds. A shot with nowhere to land
// returns ErrCapacityExceeded and its bubble goes back into the cannon.
func (g *Game) Tick(dt float64) error {
	if g.paused || g.outcome != OutcomePlaying {
		return nil
	}
	g.ticks++
	if g.shot.Phase() != PhaseFlying {
		return nil
	}

	res, err := g.shot.Advance(dt, g.board)
	if err != nil {
		if errors.Is(err, ErrCapacityExceeded) {
			g.next = g.current
			g.current = g.loaded
		}
		return err
	}
	if res == nil {
		return nil
	}
	g.applyShot(res)
	g.shot.Rearm()
	return nil
}

// TimerTick advances the mode timer by one unit. It is driven by a clock
// independent of the frame rate.
func (g *Game) TimerTick() {
	if g.paused || g.outcome != OutcomePlaying {
		return
	}
	if rows := g.ctrl.OnRowDropTick(); rows > 0 {
		g.insertRows(rows)
	}
	g.evaluate()
}

func (g *Game) applyShot(res *ShotResult) {
	g.events = append(g.events, res.Events...)
	g.score += res.ScoreDelta
	for c, n := range res.Removed {
		g.collected[c] += n
	}
	g.shotsFired++
	if g.opts.Mode == ModeAdventure {
		g.shotsLeft--
	}

	if res.Cleared() > 0 {
		g.earn(AchievementFirstPop)
	}
	if len(res.Matched) >= 10 {
		g.earn(AchievementBigCombo)
	}
	if len(res.Floating) >= 10 {
		g.earn(AchievementAvalanche)
	}
	if g.score >= 5000 {
		g.earn(AchievementScore5000)
	}

	if rows := g.ctrl.OnShotResolved(*res); rows > 0 {
		g.insertRows(rows)
	}

	if g.board.IsEmpty() {
		g.earn(AchievementCleanSweep)
		if g.opts.Mode != ModeAdventure {
			g.insertRows(g.opts.FillRows)
		}
	}
	g.evaluate()
}

func (g *Game) insertRows(n int) {
	overflow, err := g.board.InsertRows(n, g.palette, g.rng)
	if err != nil {
		return
	}
	g.overflow += overflow
	g.events = append(g.events, RowsInsertedEvent{Rows: n, Overflow: overflow})
}

func (g *Game) earn(id string) {
	if g.earned[id] {
		return
	}
	g.earned[id] = true
	g.events = append(g.events, AchievementEvent{ID: id})
}

func (g *Game) status() Status {
	return Status{
		Board:     g.board,
		Level:     g.opts.Level,
		Score:     g.score,
		ShotsLeft: g.shotsLeft,
		Overflow:  g.overflow,
		Collected: g.collected,
	}
}

func (g *Game) evaluate() {
	if g.outcome != OutcomePlaying {
		return
	}
	st := g.status()
	switch {
	case g.ctrl.IsWon(st):
		g.finish(OutcomeWon)
	case g.ctrl.IsLost(st):
		g.finish(OutcomeLost)
	}
}

func (g *Game) finish(o Outcome) {
	g.outcome = o
	g.shot.Reset()

	levelID := ""
	coins := 0
	if g.opts.Level != nil {
		levelID = g.opts.Level.ID
	}
	if o == OutcomeWon {
		if g.opts.Level != nil {
			g.stars = g.opts.Level.StarsFor(g.score)
		}
		coins = 10 + 5*g.stars
		g.events = append(g.events, SoundEvent{Sound: SoundWin})
	} else {
		coins = g.score / 100
		g.events = append(g.events, SoundEvent{Sound: SoundLose})
	}

	g.events = append(g.events, OutcomeEvent{
		Outcome: o,
		Mode:    g.opts.Mode,
		LevelID: levelID,
		Score:   g.score,
		Stars:   g.stars,
	})
	if coins > 0 {
		g.events = append(g.events, CoinsEvent{Amount: coins})
	}
}

// Pause suspends projectile motion and the mode timer.
func (g *Game) Pause() error {
	if g.outcome != OutcomePlaying {
		return invalidState("pause: run is %s", g.outcome)
	}
	g.paused = true
	return nil
}

// Resume continues a paused run.
func (g *Game) Resume() error {
	if g.outcome != OutcomePlaying {
		return invalidState("resume: run is %s", g.outcome)
	}
	g.paused = false
	return nil
}

// SetDifficulty passes a difficulty level in [0, 1] to the mode strategy.
func (g *Game) SetDifficulty(level float64) {
	g.ctrl.SetDifficulty(level)
}

// SetSpeed changes the launch speed of later shots.
func (g *Game) SetSpeed(speed float64) {
	g.shot.SetSpeed(speed)
}

// DrainEvents returns and clears the events produced since the last call.
func (g *Game) DrainEvents() []Event {
	evs := g.events
	g.events = nil
	return evs
}

func (g *Game) Board() *Board         { return g.board }
func (g *Game) Mode() Mode            { return g.opts.Mode }
func (g *Game) Level() *Level         { return g.opts.Level }
func (g *Game) Score() int            { return g.score }
func (g *Game) Outcome() Outcome      { return g.outcome }
func (g *Game) ShotsLeft() int        { return g.shotsLeft }
func (g *Game) ShotsFired() int       { return g.shotsFired }
func (g *Game) Phase() ShotPhase      { return g.shot.Phase() }
func (g *Game) Angle() float64        { return g.shot.Angle() }
func (g *Game) Current() Ammo         { return g.current }
func (g *Game) Next() Ammo            { return g.next }
func (g *Game) Paused() bool          { return g.paused }
func (g *Game) TimeLeft() int         { return g.ctrl.TimeLeft() }
func (g *Game) Stars() int            { return g.stars }
func (g *Game) Metrics() BoardMetrics { return g.opts.Metrics }
func (g *Game) Collected(c Color) int { return g.collected[c] }
func (g *Game) Ticks() int            { return g.ticks }
