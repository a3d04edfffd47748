package shmup

import (
	"io"
	"math"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shmup/internal/config"
	"github.com/vovakirdan/tui-shmup/internal/core"
	"github.com/vovakirdan/tui-shmup/internal/games/shmup/nway"
	"github.com/vovakirdan/tui-shmup/internal/games/shmup/stage"
)

// Phase is the state of a play session.
type Phase int

const (
	PhasePlaying    Phase = iota
	PhaseStageClear       // Boss down, waiting before the next stage
	PhaseGameOver
	PhaseGameClear
)

// String returns a human-readable name for the phase.
func (ph Phase) String() string {
	switch ph {
	case PhasePlaying:
		return "playing"
	case PhaseStageClear:
		return "stage clear"
	case PhaseGameOver:
		return "game over"
	case PhaseGameClear:
		return "game clear"
	default:
		return "unknown"
	}
}

// Options configures a play session's collaborators.
type Options struct {
	Logger   *log.Logger  // Diagnostics; nil discards
	HiScores HiScoreStore // Read at start, written at the end of a game; may be nil
	Audio    BGMPlayer    // Receives stage music changes; may be nil
	Seed     uint64       // Seeds the enemy RNG
	Stage    int          // Zero-based stage to start on

	// Difficulty overrides the preset set with SetDifficultyPreset.
	// Read by Game.Reset only.
	Difficulty config.DifficultyPreset
}

// Diagnostics counts conditions that were handled by dropping something.
type Diagnostics struct {
	Dropped        map[string]int // Failed acquisitions per pool
	InvalidSpecies int
	InvalidKinds   int
	SkippedEvents  int
}

// PlayData owns a play session: the pools, the player, the stage script and
// the session counters. It is the World entities see and the Sink the stage
// script drives. All methods must be called from a single goroutine.
type PlayData struct {
	cfg        config.ShmupConfig
	logger     *log.Logger
	rng        *rand.Rand
	difficulty *config.DifficultyManager
	hiStore    HiScoreStore
	audio      BGMPlayer

	stages     []*stage.Stage
	stageIndex int
	script     *stage.Script

	player         *Player
	options        *Pool[*Option]
	playerShots    *Pool[*Shot]
	reflectedShots *Pool[*Shot]
	enemies        *Pool[*Enemy]
	enemyShots     *Pool[*EnemyShot]
	effects        *Pool[*Effect]
	blocks         *Pool[*Block]
	backs          *Pool[*Back]

	scrollX, scrollY float64
	phase            Phase
	paused           bool
	lives            int
	score            int
	hiScore          int
	clearWait        float64
	rebirthWait      float64
	ticks            int
	bgm              int

	grazes         int
	reflected      int
	invalidSpecies int
	invalidKinds   int
	scratch        []float64
}

// NewPlayData starts a session on the given stages. It panics when stages
// is empty or the configuration has a non-positive pool capacity.
func NewPlayData(cfg config.ShmupConfig, stages []*stage.Stage, opts Options) *PlayData {
	if len(stages) == 0 {
		panic("shmup: play data needs at least one stage")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	audio := opts.Audio
	if audio == nil {
		audio = nopBGM{}
	}

	p := &PlayData{
		cfg:        cfg,
		logger:     logger,
		rng:        rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		hiStore:    opts.HiScores,
		audio:      audio,
		stages:     stages,
		player:     &Player{},
		lives:      cfg.Player.Lives,
		scratch:    make([]float64, 0, 32),
	}

	pc := cfg.Pools
	p.options = NewPool("options", max(cfg.Options.MaxOptions, 1), func() *Option { return &Option{} })
	p.playerShots = NewPool("player_shots", pc.PlayerShots, func() *Shot { return &Shot{} })
	p.reflectedShots = NewPool("reflected_shots", pc.ReflectedShots, func() *Shot { return &Shot{} })
	p.enemies = NewPool("enemies", pc.Enemies, func() *Enemy { return &Enemy{} })
	p.enemyShots = NewPool("enemy_shots", pc.EnemyShots, func() *EnemyShot { return &EnemyShot{} })
	p.effects = NewPool("effects", pc.Effects, func() *Effect { return &Effect{} })
	p.blocks = NewPool("blocks", pc.Blocks, func() *Block { return &Block{} })
	p.backs = NewPool("backs", pc.Backs, func() *Back { return &Back{} })

	if p.hiStore != nil {
		hi, err := p.hiStore.ReadHiScore()
		if err != nil {
			p.logger.Warn("cannot read hi-score", "err", err)
		} else {
			p.hiScore = hi
		}
	}

	p.loadStage(min(max(opts.Stage, 0), len(stages)-1))
	return p
}

// loadStage clears the field and starts stage i.
func (p *PlayData) loadStage(i int) {
	p.options.ReleaseAll()
	p.playerShots.ReleaseAll()
	p.reflectedShots.ReleaseAll()
	p.enemies.ReleaseAll()
	p.enemyShots.ReleaseAll()
	p.effects.ReleaseAll()
	p.blocks.ReleaseAll()
	p.backs.ReleaseAll()

	p.stageIndex = i
	p.phase = PhasePlaying
	p.scrollX, p.scrollY = 0, 0
	p.clearWait = 0
	p.rebirthWait = 0
	p.player.spawn(&p.cfg, 0)

	st := p.stages[i]
	p.logger.Info("stage start", "stage", st.ID, "name", st.Name, "events", st.EventCount())
	p.script = stage.NewScript(st, p.cfg.Field.Width, p.logger)
	p.script.Start(p)
}

// Update advances the session by dt seconds. Nothing happens for a
// non-positive dt, while paused, or once the game has ended.
func (p *PlayData) Update(dt float64) {
	if dt <= 0 || p.paused || p.Ended() {
		return
	}
	p.ticks++

	switch p.phase {
	case PhasePlaying:
		p.script.Update(dt, p)
	case PhaseStageClear:
		p.clearWait -= dt
		if p.clearWait <= 0 {
			p.nextStage()
			return
		}
	}

	// The view holds still while the script sleeps
	sx, sy := p.scrollX, p.scrollY
	if p.script.Sleeping() || p.phase != PhasePlaying {
		sx, sy = 0, 0
	}

	p.move(dt, sx, sy)
	p.act(dt)
	p.syncOptions()
	p.releaseOutOfStage()
	p.collide()
	p.updateRebirth(dt)
}

// move advances every entity. The player and options follow input and the
// trail instead of speed.
func (p *PlayData) move(dt, sx, sy float64) {
	if p.player.Staged {
		p.player.moveWithin(dt, p.cfg.Field.Width, p.cfg.Field.Height)
	}
	for h, o := range p.options.All() {
		o.follow(p.player.Trail((int(h) + 1) * p.cfg.Options.TrailFrames))
	}
	moveAll(p.playerShots, dt, sx, sy)
	moveAll(p.reflectedShots, dt, sx, sy)
	moveAll(p.enemies, dt, sx, sy)
	moveAll(p.enemyShots, dt, sx, sy)
	moveAll(p.effects, dt, sx, sy)
	moveAll(p.blocks, dt, sx, sy)
	moveAll(p.backs, dt, sx, sy)
}

// act runs every entity's behavior in a fixed pool order.
func (p *PlayData) act(dt float64) {
	if p.player.Staged {
		p.player.Action(p, dt)
	}
	actAll(p.options, p, dt)
	actAll(p.playerShots, p, dt)
	actAll(p.reflectedShots, p, dt)
	actAll(p.enemies, p, dt)
	actAll(p.enemyShots, p, dt)
	actAll(p.effects, p, dt)
	actAll(p.blocks, p, dt)
	actAll(p.backs, p, dt)
}

func moveAll[T Actor](pool *Pool[T], dt, sx, sy float64) {
	for _, it := range pool.All() {
		it.Chara().Move(dt, sx, sy)
	}
}

func actAll[T Actor](pool *Pool[T], w World, dt float64) {
	for _, it := range pool.All() {
		it.Action(w, dt)
	}
}

func releaseOut[T Actor](pool *Pool[T], fieldW, fieldH float64) {
	for h, it := range pool.All() {
		if it.Chara().IsOutOfStage(fieldW, fieldH) {
			pool.Release(h)
		}
	}
}

// releaseOutOfStage frees entities that have left the field.
func (p *PlayData) releaseOutOfStage() {
	fw, fh := p.cfg.Field.Width, p.cfg.Field.Height
	releaseOut(p.playerShots, fw, fh)
	releaseOut(p.reflectedShots, fw, fh)
	releaseOut(p.enemies, fw, fh)
	releaseOut(p.enemyShots, fw, fh)
	releaseOut(p.effects, fw, fh)
	releaseOut(p.blocks, fw, fh)
	releaseOut(p.backs, fw, fh)
}

// syncOptions matches the live options to what the gauge supports. Options
// occupy the lowest slots, so slot order is trail order.
func (p *PlayData) syncOptions() {
	want := p.player.OptionCount(&p.cfg)
	live := p.options.LiveCount()
	for live < want {
		o, h, ok := p.options.Acquire()
		if !ok {
			break
		}
		o.X, o.Y = p.player.Trail((int(h) + 1) * p.cfg.Options.TrailFrames)
		o.PrevX, o.PrevY = o.X, o.Y
		o.Width, o.Height = 10, 10
		o.Sprite = SpriteOption
		o.Z = 9
		o.AnimPattern, o.AnimInterval = 2, 0.2
		live++
	}
	for live > want {
		live--
		p.options.Release(Handle(live))
	}
}

// updateRebirth brings the ship back after a miss.
func (p *PlayData) updateRebirth(dt float64) {
	if p.player.Staged || p.lives <= 0 || p.Ended() {
		return
	}
	p.rebirthWait -= dt
	if p.rebirthWait <= 0 {
		p.player.spawn(&p.cfg, p.cfg.Player.InvincibleTime)
	}
}

// nextStage moves on after a stage clear, or ends the game after the last stage.
func (p *PlayData) nextStage() {
	if p.stageIndex+1 >= len(p.stages) {
		p.finish(PhaseGameClear)
		return
	}
	p.loadStage(p.stageIndex + 1)
}

// finish ends the game and records the hi-score.
func (p *PlayData) finish(ph Phase) {
	p.phase = ph
	p.logger.Info("game end", "phase", ph, "score", p.score, "stage", p.stageIndex+1)
	if p.score <= p.hiScore {
		return
	}
	p.hiScore = p.score
	if p.hiStore == nil {
		return
	}
	if err := p.hiStore.WriteHiScore(p.score); err != nil {
		p.logger.Warn("cannot write hi-score", "err", err)
	}
}

// ReloadStage replaces a stage with a fresh copy of the same ID. When it is
// the stage in play, the stage restarts.
func (p *PlayData) ReloadStage(st *stage.Stage) bool {
	for i, old := range p.stages {
		if old.ID != st.ID {
			continue
		}
		p.stages[i] = st
		if i == p.stageIndex && !p.Ended() {
			p.logger.Info("stage reloaded", "stage", st.ID)
			p.loadStage(i)
		}
		return true
	}
	return false
}

// MovePlayer requests a displacement of the ship, applied on the next
// update and kept inside the field.
func (p *PlayData) MovePlayer(dx, dy float64) {
	if p.player.Staged {
		p.player.request(dx, dy)
	}
}

// SetShield raises or lowers the shield. It only rises with gauge to spend.
func (p *PlayData) SetShield(on bool) {
	p.player.setShield(on)
}

// Pause halts updates.
func (p *PlayData) Pause() { p.paused = true }

// Resume continues updates.
func (p *PlayData) Resume() { p.paused = false }

// Paused reports whether updates are halted.
func (p *PlayData) Paused() bool { return p.paused }

// Phase returns the session phase.
func (p *PlayData) Phase() Phase { return p.phase }

// Ended reports whether the game is over, won or lost.
func (p *PlayData) Ended() bool {
	return p.phase == PhaseGameOver || p.phase == PhaseGameClear
}

// Score returns the current score.
func (p *PlayData) Score() int { return p.score }

// HiScore returns the best score, including the one in progress.
func (p *PlayData) HiScore() int { return max(p.hiScore, p.score) }

// Lives returns the remaining ships, the one in play included.
func (p *PlayData) Lives() int { return p.lives }

// Progress returns the progress made in the current stage.
func (p *PlayData) Progress() int { return p.script.Progress() }

// StageIndex returns the zero-based stage in play.
func (p *PlayData) StageIndex() int { return p.stageIndex }

// StageName returns the name of the stage in play.
func (p *PlayData) StageName() string { return p.stages[p.stageIndex].Name }

// StageCount returns the number of stages in the session.
func (p *PlayData) StageCount() int { return len(p.stages) }

// Ticks returns the number of updates applied.
func (p *PlayData) Ticks() int { return p.ticks }

// BGM returns the last track the stage asked for.
func (p *PlayData) BGM() int { return p.bgm }

// State summarizes the session for the platform.
func (p *PlayData) State() core.GameState {
	return core.GameState{
		Score:    p.score,
		HiScore:  p.HiScore(),
		Stage:    p.stageIndex + 1,
		Lives:    p.lives,
		GameOver: p.Ended(),
		Cleared:  p.phase == PhaseGameClear,
		Paused:   p.paused,
	}
}

// Diagnostics returns drop and skip counters.
func (p *PlayData) Diagnostics() Diagnostics {
	d := Diagnostics{
		Dropped:        make(map[string]int),
		InvalidSpecies: p.invalidSpecies,
		InvalidKinds:   p.invalidKinds,
		SkippedEvents:  p.script.Skipped(),
	}
	for name, n := range map[string]int{
		p.options.Name():        p.options.Dropped(),
		p.playerShots.Name():    p.playerShots.Dropped(),
		p.reflectedShots.Name(): p.reflectedShots.Dropped(),
		p.enemies.Name():        p.enemies.Dropped(),
		p.enemyShots.Name():     p.enemyShots.Dropped(),
		p.effects.Name():        p.effects.Dropped(),
		p.blocks.Name():         p.blocks.Dropped(),
		p.backs.Name():          p.backs.Dropped(),
	} {
		if n > 0 {
			d.Dropped[name] = n
		}
	}
	return d
}

// poolFull logs a failed acquisition. The pool counts it.
func (p *PlayData) poolFull(name string) {
	p.logger.Debug("pool full", "pool", name)
}

// World implementation.

// Config returns the session configuration.
func (p *PlayData) Config() *config.ShmupConfig { return &p.cfg }

// Player returns the player ship.
func (p *PlayData) Player() *Player { return p.player }

// Rand returns the session RNG.
func (p *PlayData) Rand() *rand.Rand { return p.rng }

// EnemyShotSpeed scales the configured bullet speed by scale and difficulty.
func (p *PlayData) EnemyShotSpeed(scale float64) float64 {
	return p.difficulty.ShotSpeed(p.cfg.Enemies.ShotSpeed*scale, p.script.Progress(), p.ticks)
}

// FireInterval shortens an enemy firing interval by difficulty.
func (p *PlayData) FireInterval(base float64) float64 {
	return p.difficulty.FireInterval(base, p.script.Progress(), p.ticks)
}

// FirePlayerShot launches a player bullet to the right.
func (p *PlayData) FirePlayerShot(x, y float64) {
	s, _, ok := p.playerShots.Acquire()
	if !ok {
		p.poolFull(p.playerShots.Name())
		return
	}
	s.X, s.Y = x, y
	s.PrevX, s.PrevY = x, y
	s.Width, s.Height = 8, 4
	s.SpeedX = p.cfg.Player.ShotSpeed
	s.Power = p.cfg.Player.ShotPower
	s.HitPoint = 1
	s.Sprite = SpritePlayerShot
	s.Z = 8
	s.BlockHit = BlockHitDisappear
}

// fireReflected launches a bullet turned around by the shield.
func (p *PlayData) fireReflected(x, y, angle, speed float64) {
	s, _, ok := p.reflectedShots.Acquire()
	if !ok {
		p.poolFull(p.reflectedShots.Name())
		return
	}
	s.X, s.Y = x, y
	s.PrevX, s.PrevY = x, y
	s.Width, s.Height = p.cfg.Enemies.ShotHit, p.cfg.Enemies.ShotHit
	s.SpeedX = math.Cos(angle) * speed
	s.SpeedY = math.Sin(angle) * speed
	s.Power = p.cfg.Options.ReflectPower
	s.HitPoint = 1
	s.Reflected = true
	s.Sprite = SpriteReflectedShot
	s.Z = 8
	s.BlockHit = BlockHitDisappear
}

// FireEnemyShot launches one enemy bullet. It returns nil when the pool is full.
func (p *PlayData) FireEnemyShot(x, y, angle, speed float64) *EnemyShot {
	s, _, ok := p.enemyShots.Acquire()
	if !ok {
		p.poolFull(p.enemyShots.Name())
		return nil
	}
	s.X, s.Y = x, y
	s.PrevX, s.PrevY = x, y
	s.Width, s.Height = p.cfg.Enemies.ShotHit, p.cfg.Enemies.ShotHit
	s.Power = 1
	s.HitPoint = 1
	s.GrazePoint = p.cfg.Enemies.GrazePoint
	s.Sprite = SpriteEnemyShot
	s.Z = 7
	s.AnimPattern, s.AnimInterval = 2, 0.1
	s.BlockHit = BlockHitDisappear
	s.aim(angle, speed)
	return s
}

// FireNWay launches count bullets spread around center.
func (p *PlayData) FireNWay(x, y, center float64, count int, spacing, speed float64) {
	p.scratch = nway.AppendFromCenter(p.scratch[:0], center, count, spacing)
	for _, a := range p.scratch {
		p.FireEnemyShot(x, y, a, speed)
	}
}

// FireRadial launches a full ring of count bullets.
func (p *PlayData) FireRadial(x, y, start float64, count int, speed float64) {
	p.scratch = nway.AppendRadial(p.scratch[:0], start, count)
	for _, a := range p.scratch {
		p.FireEnemyShot(x, y, a, speed)
	}
}

// FireGroup launches a tight cluster of bullets travelling side by side.
func (p *PlayData) FireGroup(x, y, angle float64, count int, spacing, speed float64) {
	xs, ys := nway.GroupOffsets(angle, count, spacing)
	for i := range xs {
		p.FireEnemyShot(x+xs[i], y+ys[i], angle, speed)
	}
}

// FireBurst launches a bullet that later splits into a spread.
func (p *PlayData) FireBurst(x, y, angle, speed float64, b Burst) {
	s := p.FireEnemyShot(x, y, angle, speed)
	if s == nil {
		return
	}
	s.burst = b
	s.bursting = true
	s.Sprite = SpriteBurstShot
	s.Width, s.Height = s.Width*1.5, s.Height*1.5
}

// SpawnEffect starts a visual effect.
func (p *PlayData) SpawnEffect(kind EffectKind, x, y float64) {
	def, ok := effectDefs[kind]
	if !ok {
		p.invalidKinds++
		p.logger.Warn("unknown effect kind", "kind", kind)
		return
	}
	e, _, ok := p.effects.Acquire()
	if !ok {
		p.poolFull(p.effects.Name())
		return
	}
	e.X, e.Y = x, y
	e.PrevX, e.PrevY = x, y
	e.Sprite = def.sprite
	e.Z = 20
	e.AnimPattern, e.AnimInterval, e.AnimRepeat = def.pattern, def.interval, def.repeat
	e.life = def.life
}

// AddScore adds points to the score.
func (p *PlayData) AddScore(n int) { p.score += n }

// AddProgress advances the stage progress.
func (p *PlayData) AddProgress(n int) { p.script.AddProgress(n) }

// Miss destroys the ship. The game ends when no ships remain; otherwise a
// new ship arrives after the rebirth wait.
func (p *PlayData) Miss() {
	pl := p.player
	if !pl.Staged {
		return
	}
	p.SpawnEffect(EffectMiss, pl.X, pl.Y)
	pl.Staged = false
	pl.shield = false
	pl.gauge = 0
	p.options.ReleaseAll()

	p.lives--
	p.logger.Debug("miss", "lives", p.lives)
	if p.lives <= 0 {
		p.finish(PhaseGameOver)
		return
	}
	p.rebirthWait = p.cfg.Timing.RebirthWait
}

// BossDefeated starts the stage clear wait and clears enemy bullets.
func (p *PlayData) BossDefeated() {
	if p.phase != PhasePlaying {
		return
	}
	p.phase = PhaseStageClear
	p.clearWait = p.cfg.Timing.ClearWait
	p.enemyShots.ReleaseAll()
	p.logger.Info("stage clear", "stage", p.stages[p.stageIndex].ID, "score", p.score)
}

// stage.Sink implementation.

// ScrollSpeed returns the scroll velocity set by the stage.
func (p *PlayData) ScrollSpeed() (vx, vy float64) { return p.scrollX, p.scrollY }

// SetScrollSpeed changes the scroll velocity.
func (p *PlayData) SetScrollSpeed(vx, vy float64) { p.scrollX, p.scrollY = vx, vy }

// SpawnEnemy places an enemy of the given species.
func (p *PlayData) SpawnEnemy(species, progress int, x, y float64) {
	p.spawnEnemy(species, progress, x, y)
}

// SpawnBoss places a boss. Bosses are ordinary species whose destroy
// routine ends the stage.
func (p *PlayData) SpawnBoss(species, progress int, x, y float64) {
	if e := p.spawnEnemy(species, progress, x, y); e != nil && !e.Species.Boss {
		p.logger.Warn("boss event names a regular species", "species", species)
	}
}

func (p *PlayData) spawnEnemy(species, progress int, x, y float64) *Enemy {
	sp, ok := LookupSpecies(species)
	if !ok {
		p.invalidSpecies++
		p.logger.Warn("unknown enemy species", "species", species)
		return nil
	}
	e, _, ok := p.enemies.Acquire()
	if !ok {
		p.poolFull(p.enemies.Name())
		return nil
	}
	e.init(sp, progress, x, y)
	return e
}

// SpawnBack places scenery.
func (p *PlayData) SpawnBack(kind, z int, x, y float64) {
	sprite, ok := backSprites[kind]
	if !ok {
		p.invalidKinds++
		p.logger.Warn("unknown scenery kind", "kind", kind)
		return
	}
	b, _, ok := p.backs.Acquire()
	if !ok {
		p.poolFull(p.backs.Name())
		return
	}
	ts := p.script.Stage().TileSize
	b.X, b.Y = x, y
	b.PrevX, b.PrevY = x, y
	b.Width, b.Height = ts, ts
	b.Kind = kind
	b.Sprite = sprite
	b.Z = z
	b.ScrollFactor = 1
}

// SpawnBlock places an obstacle.
func (p *PlayData) SpawnBlock(kind int, x, y float64) {
	sprite, ok := blockSprites[kind]
	if !ok {
		p.invalidKinds++
		p.logger.Warn("unknown block kind", "kind", kind)
		return
	}
	b, _, ok := p.blocks.Acquire()
	if !ok {
		p.poolFull(p.blocks.Name())
		return
	}
	ts := p.script.Stage().TileSize
	b.X, b.Y = x, y
	b.PrevX, b.PrevY = x, y
	b.Width, b.Height = ts, ts
	b.Kind = kind
	b.Sprite = sprite
	b.Z = 3
	b.ScrollFactor = 1
}

// PlayBGM forwards a music change to the audio sink.
func (p *PlayData) PlayBGM(no int) {
	p.bgm = no
	p.audio.PlayBGM(no)
}
